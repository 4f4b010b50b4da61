package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/jepco-digital/support-bot/internal/config"
	"github.com/jepco-digital/support-bot/internal/model"
)

// Builder turns crawled pages into a categorized content snapshot.
type Builder struct {
	crawler *Crawler
	cfg     config.ScrapeConfig
}

// NewBuilder wires a Builder from the scrape configuration.
func NewBuilder(cfg config.ScrapeConfig) *Builder {
	return &Builder{crawler: NewCrawler(cfg), cfg: cfg}
}

// BuildSnapshot crawls both site-language buckets and assembles the
// snapshot. It errors only when no page in either bucket could be
// fetched; the caller decides whether to fall back to bundled content.
func (b *Builder) BuildSnapshot(ctx context.Context) (*model.Snapshot, error) {
	snap := &model.Snapshot{
		Meta: model.SnapshotMeta{
			ScrapedAt: time.Now().UTC(),
			Source:    "live",
		},
		Content: make(map[string]model.LanguageContent, 2),
	}

	for _, bucket := range []string{"arabic", "english"} {
		urls := PageURLs(b.cfg.BaseURL, bucket, b.cfg.MaxPagesPerLang)
		pages, err := b.crawler.CrawlPages(ctx, urls)
		if err != nil {
			return nil, err
		}

		content := make(model.LanguageContent)
		for _, page := range pages {
			mergePage(content, &page)
			snap.Meta.PagesScraped = append(snap.Meta.PagesScraped, page.URL)
		}
		dedupeSections(content)
		snap.Content[bucket] = content

		zap.L().Info("bucket crawled",
			zap.String("bucket", bucket),
			zap.Int("pages", len(pages)),
		)
	}

	snap.Meta.SectionCount = snap.CountSections()
	if snap.Meta.SectionCount == 0 {
		return nil, eris.New("scraper: no content extracted from any page")
	}
	return snap, nil
}

// mergePage folds one page's extracted content into the bucket under the
// page's URL-derived category. Contact and pricing matches additionally
// land in their dedicated categories regardless of the page category.
func mergePage(content model.LanguageContent, page *model.ScrapedPage) {
	category := Categorize(page.URL)
	heading := page.Title
	if len(page.Headings) > 0 {
		heading = page.Headings[0]
	}

	add := func(cat model.Category, text string) {
		text = collapseSpace(text)
		if text == "" {
			return
		}
		content[cat] = append(content[cat], model.Section{
			Heading:   heading,
			Text:      text,
			SourceURL: page.URL,
		})
	}

	for _, p := range page.Paragraphs {
		add(category, p)
	}
	if len(page.ListItems) > 0 {
		add(category, strings.Join(page.ListItems, "; "))
	}
	for _, row := range page.TableRows {
		add(category, strings.Join(row, " | "))
	}

	if c := contactSummary(page.Contacts); c != "" {
		add(model.CategoryContactInfo, c)
	}
	if len(page.Pricing) > 0 {
		add(model.CategoryBilling, "Rates: "+strings.Join(page.Pricing, ", "))
	}
}

func contactSummary(c model.ContactInfo) string {
	var parts []string
	if len(c.PhoneNumbers) > 0 {
		parts = append(parts, "Phone: "+strings.Join(c.PhoneNumbers, ", "))
	}
	if len(c.Emails) > 0 {
		parts = append(parts, "Email: "+strings.Join(c.Emails, ", "))
	}
	if len(c.WorkingHours) > 0 {
		parts = append(parts, "Hours: "+strings.Join(c.WorkingHours, ", "))
	}
	return strings.Join(parts, " | ")
}

// dedupeSections drops repeated section texts within each category. Site
// templates repeat the same boilerplate on every page.
func dedupeSections(content model.LanguageContent) {
	for cat, sections := range content {
		seen := make(map[string]struct{}, len(sections))
		kept := sections[:0]
		for _, s := range sections {
			key := strings.ToLower(s.Text)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			kept = append(kept, s)
		}
		content[cat] = kept
	}
}
