package scraper

import (
	_ "embed"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/jepco-digital/support-bot/internal/model"
)

//go:embed fallback.yaml
var fallbackYAML []byte

type fallbackSection struct {
	Heading string `yaml:"heading"`
	Text    string `yaml:"text"`
}

// FallbackSnapshot returns the bundled content used when the site cannot
// be scraped and no cached snapshot exists.
func FallbackSnapshot() (*model.Snapshot, error) {
	var raw map[string]map[string][]fallbackSection
	if err := yaml.Unmarshal(fallbackYAML, &raw); err != nil {
		return nil, eris.Wrap(err, "scraper: parse fallback content")
	}

	snap := &model.Snapshot{
		Meta: model.SnapshotMeta{
			ScrapedAt: time.Now().UTC(),
			Source:    "fallback",
		},
		Content: make(map[string]model.LanguageContent, len(raw)),
	}

	for bucket, categories := range raw {
		content := make(model.LanguageContent, len(categories))
		for cat, sections := range categories {
			for _, s := range sections {
				content[model.Category(cat)] = append(content[model.Category(cat)], model.Section{
					Heading: s.Heading,
					Text:    s.Text,
				})
			}
		}
		snap.Content[bucket] = content
	}

	snap.Meta.SectionCount = snap.CountSections()
	return snap, nil
}
