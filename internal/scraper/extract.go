package scraper

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/net/html"

	"github.com/jepco-digital/support-bot/internal/model"
)

var (
	hotlinePattern  = regexp.MustCompile(`\b1\d{2}\b`)
	localPhone      = regexp.MustCompile(`\b0\d{1,2}[-\s]?\d{7,8}\b`)
	intlPhone       = regexp.MustCompile(`\+962[-\s]?\d{1,2}[-\s]?\d{7,8}`)
	emailPattern    = regexp.MustCompile(`[\w.\-]+@[\w.\-]+\.\w+`)
	workingHoursRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*(?:AM|PM|صباحاً|مساءً)`),
		regexp.MustCompile(`من\s*\d{1,2}:\d{2}\s*إلى\s*\d{1,2}:\d{2}`),
		regexp.MustCompile(`(?i)from\s*\d{1,2}:\d{2}\s*to\s*\d{1,2}:\d{2}`),
	}
	pricingRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*(?:فلس|fils)`),
		regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*(?:دينار|JOD)`),
		regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*(?:كيلو\s*واط|kWh)`),
	}
)

// minParagraphLen filters boilerplate fragments out of paragraph extraction.
const minParagraphLen = 10

// Extract parses an HTML document into a ScrapedPage: title, headings,
// paragraphs, list items, table rows, plus pattern-matched contact and
// pricing details from the full text.
func Extract(pageURL string, body []byte) (*model.ScrapedPage, error) {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, eris.Wrapf(err, "scraper: parse html %s", pageURL)
	}

	page := &model.ScrapedPage{URL: pageURL}
	var fullText strings.Builder
	walk(doc, page, &fullText)

	text := fullText.String()
	page.Contacts = extractContacts(text)
	page.Pricing = matchAll(text, pricingRes)

	return page, nil
}

// walk descends the DOM collecting content nodes. Script, style, and
// chrome elements contribute nothing.
func walk(n *html.Node, page *model.ScrapedPage, fullText *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "iframe", "nav", "header", "footer", "aside":
			return
		case "title":
			if page.Title == "" {
				page.Title = collapseSpace(textContent(n))
			}
			return
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if t := collapseSpace(textContent(n)); t != "" {
				page.Headings = append(page.Headings, t)
				fullText.WriteString(t)
				fullText.WriteString(" ")
			}
			return
		case "p":
			t := collapseSpace(textContent(n))
			if len(t) > minParagraphLen {
				page.Paragraphs = append(page.Paragraphs, t)
			}
			fullText.WriteString(t)
			fullText.WriteString(" ")
			return
		case "li":
			if t := collapseSpace(textContent(n)); t != "" {
				page.ListItems = append(page.ListItems, t)
				fullText.WriteString(t)
				fullText.WriteString(" ")
			}
			return
		case "tr":
			row := tableRow(n)
			if len(row) > 0 {
				page.TableRows = append(page.TableRows, row)
				fullText.WriteString(strings.Join(row, " "))
				fullText.WriteString(" ")
			}
			return
		}
	}
	if n.Type == html.TextNode {
		if t := collapseSpace(n.Data); t != "" {
			fullText.WriteString(t)
			fullText.WriteString(" ")
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, page, fullText)
	}
}

// tableRow collects the cell texts of a tr node, skipping all-empty rows.
func tableRow(tr *html.Node) []string {
	var cells []string
	nonEmpty := false
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			t := collapseSpace(textContent(c))
			cells = append(cells, t)
			if t != "" {
				nonEmpty = true
			}
		}
	}
	if !nonEmpty {
		return nil
	}
	return cells
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return sb.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func extractContacts(text string) model.ContactInfo {
	return model.ContactInfo{
		PhoneNumbers: dedupe(append(append(
			hotlinePattern.FindAllString(text, -1),
			localPhone.FindAllString(text, -1)...),
			intlPhone.FindAllString(text, -1)...)),
		Emails:       dedupe(emailPattern.FindAllString(text, -1)),
		WorkingHours: matchAll(text, workingHoursRes),
	}
}

func matchAll(text string, patterns []*regexp.Regexp) []string {
	var out []string
	for _, re := range patterns {
		out = append(out, re.FindAllString(text, -1)...)
	}
	return dedupe(out)
}

// dedupe removes duplicates preserving first-seen order.
func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
