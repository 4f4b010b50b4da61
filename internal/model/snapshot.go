package model

import "time"

// Category labels a bucket of site content.
type Category string

const (
	CategoryCompanyInfo       Category = "company_info"
	CategoryServices          Category = "services"
	CategoryBilling           Category = "billing"
	CategoryTechnicalServices Category = "technical_services"
	CategoryContactInfo       Category = "contact_info"
	CategorySafetyRegulations Category = "safety_regulations"
	CategoryFAQ               Category = "faq"
	CategoryAdditional        Category = "additional_content"
)

// Categories lists all content categories in a stable order.
func Categories() []Category {
	return []Category{
		CategoryCompanyInfo,
		CategoryServices,
		CategoryBilling,
		CategoryTechnicalServices,
		CategoryContactInfo,
		CategorySafetyRegulations,
		CategoryFAQ,
		CategoryAdditional,
	}
}

// ContactInfo holds pattern-matched contact details from a page.
type ContactInfo struct {
	PhoneNumbers []string `json:"phone_numbers,omitempty"`
	Emails       []string `json:"emails,omitempty"`
	WorkingHours []string `json:"working_hours,omitempty"`
}

// ScrapedPage is the extracted content of a single site page.
type ScrapedPage struct {
	URL        string      `json:"url"`
	Title      string      `json:"title"`
	Headings   []string    `json:"headings,omitempty"`
	Paragraphs []string    `json:"paragraphs,omitempty"`
	ListItems  []string    `json:"list_items,omitempty"`
	TableRows  [][]string  `json:"table_rows,omitempty"`
	Contacts   ContactInfo `json:"contacts"`
	Pricing    []string    `json:"pricing,omitempty"`
	StatusCode int         `json:"status_code"`
}

// Section is one deduplicated text block inside a snapshot category.
type Section struct {
	Heading   string `json:"heading,omitempty"`
	Text      string `json:"text"`
	SourceURL string `json:"source_url,omitempty"`
}

// LanguageContent maps categories to their sections for one site language.
type LanguageContent map[Category][]Section

// SnapshotMeta records how and when a snapshot was built.
type SnapshotMeta struct {
	ScrapedAt    time.Time `json:"scraped_at"`
	PagesScraped []string  `json:"pages_scraped"`
	SectionCount int       `json:"section_count"`
	Source       string    `json:"source"` // "live", "fallback"
}

// Snapshot is the persisted site-content artifact the chat engine grounds
// its replies on. Content keys are site-language buckets: "arabic", "english".
type Snapshot struct {
	Meta    SnapshotMeta               `json:"meta"`
	Content map[string]LanguageContent `json:"content"`
}

// Bucket returns the content for a site-language bucket, falling back to the
// other bucket when the requested one is empty.
func (s *Snapshot) Bucket(name string) LanguageContent {
	if s == nil {
		return nil
	}
	if lc, ok := s.Content[name]; ok && len(lc) > 0 {
		return lc
	}
	for other, lc := range s.Content {
		if other != name && len(lc) > 0 {
			return lc
		}
	}
	return nil
}

// CountSections tallies non-empty sections across all buckets and categories.
func (s *Snapshot) CountSections() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, lc := range s.Content {
		for _, sections := range lc {
			n += len(sections)
		}
	}
	return n
}
