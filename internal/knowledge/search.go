// Package knowledge selects the snapshot sections most relevant to a
// customer question and assembles the context block for the model prompt.
package knowledge

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jepco-digital/support-bot/internal/model"
)

const (
	// maxPerCategory caps sections taken from one category.
	maxPerCategory = 2
	// maxTotal caps the assembled context.
	maxTotal = 3
)

// contactFallback is returned when the snapshot has nothing to offer.
const contactFallback = "Please contact JEPCO customer service at 116 for detailed assistance, or visit www.jepco.com.jo for current information."

// disclaimer closes every context block.
const disclaimer = "For the most current information, please contact JEPCO at 116 or visit www.jepco.com.jo"

// categoryKeywords routes query terms to content categories. Both site
// languages share one table, since customers mix Arabic and English terms.
var categoryKeywords = map[model.Category][]string{
	model.CategoryBilling: {
		"bill", "فاتورة", "فواتير", "payment", "دفع", "pay", "cost", "تكلفة",
		"tariff", "تعرفة", "سعر", "price", "kwh", "كيلو واط",
	},
	model.CategoryServices: {
		"service", "خدمة", "خدمات", "help", "مساعدة", "connection", "اشتراك",
		"subscription", "meter", "عداد",
	},
	model.CategoryContactInfo: {
		"contact", "phone", "اتصال", "هاتف", "تواصل", "office", "مكتب",
		"area", "منطقة", "location", "موقع", "hours", "دوام",
	},
	model.CategoryTechnicalServices: {
		"emergency", "طوارئ", "urgent", "عاجل", "outage", "انقطاع", "قطع",
		"fault", "عطل", "maintenance", "صيانة",
	},
	model.CategoryCompanyInfo: {
		"about", "company", "الشركة", "jepco", "جيبكو", "history", "تاريخ",
	},
	model.CategorySafetyRegulations: {
		"safety", "سلامة", "regulation", "أنظمة",
	},
	model.CategoryFAQ: {
		"faq", "question", "سؤال", "أسئلة",
	},
}

// categoryLabels are the human-readable tags used in the context block.
var categoryLabels = map[model.Category]string{
	model.CategoryCompanyInfo:       "Company Information",
	model.CategoryServices:          "Customer Services",
	model.CategoryBilling:           "Billing Information",
	model.CategoryTechnicalServices: "Technical Services",
	model.CategoryContactInfo:       "Contact Information",
	model.CategorySafetyRegulations: "Safety & Regulations",
	model.CategoryFAQ:               "Frequently Asked Questions",
	model.CategoryAdditional:        "Additional Information",
}

// Search assembles the context block for a question: snapshot sections
// from the categories the query's keywords point at, capped per category
// and overall, closed with the contact disclaimer. Consumption-cost
// questions get a computed tariff estimate instead of a section search.
func Search(snap *model.Snapshot, query string, lang model.Language) string {
	if estimate, ok := estimateCost(snap, query, lang); ok {
		return estimate
	}

	bucket := snap.Bucket(lang.ContentBucket())
	if len(bucket) == 0 {
		return contactFallback
	}

	queryLower := strings.ToLower(query)
	categories := matchCategories(queryLower)

	zap.L().Debug("knowledge search",
		zap.String("language", string(lang)),
		zap.Int("categories", len(categories)),
	)

	var picked []string
	total := 0
	for _, cat := range categories {
		sections := rankSections(bucket[cat], queryLower)
		for i, s := range sections {
			if i >= maxPerCategory || total >= maxTotal {
				break
			}
			picked = append(picked, "["+categoryLabels[cat]+"] "+s.Text)
			total++
		}
		if total >= maxTotal {
			break
		}
	}

	// Nothing matched: fall back to general company content so the model
	// still has something grounded to work from.
	if len(picked) == 0 {
		for _, s := range bucket[model.CategoryCompanyInfo] {
			if len(picked) >= maxPerCategory {
				break
			}
			picked = append(picked, "["+categoryLabels[model.CategoryCompanyInfo]+"] "+s.Text)
		}
	}

	if len(picked) == 0 {
		return contactFallback
	}

	return "Available information:\n\n" +
		strings.Join(picked, "\n\n") +
		"\n\n" + disclaimer
}

// matchCategories returns the categories whose keywords appear in the
// query, in the stable category order. No hits means search everything.
func matchCategories(queryLower string) []model.Category {
	var matched []model.Category
	for _, cat := range model.Categories() {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(queryLower, kw) {
				matched = append(matched, cat)
				break
			}
		}
	}
	if len(matched) == 0 {
		return model.Categories()
	}
	return matched
}

// rankSections orders a category's sections by how many query words they
// contain, dropping sections that contain none. Short words are noise and
// are not counted.
func rankSections(sections []model.Section, queryLower string) []model.Section {
	words := queryWords(queryLower)

	type scored struct {
		section model.Section
		hits    int
	}
	var ranked []scored
	for _, s := range sections {
		textLower := strings.ToLower(s.Text + " " + s.Heading)
		hits := 0
		for _, w := range words {
			if strings.Contains(textLower, w) {
				hits++
			}
		}
		if hits > 0 {
			ranked = append(ranked, scored{section: s, hits: hits})
		}
	}

	// Equal-hit sections keep their snapshot order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].hits > ranked[j].hits
	})

	out := make([]model.Section, len(ranked))
	for i, r := range ranked {
		out[i] = r.section
	}
	return out
}

func queryWords(queryLower string) []string {
	var words []string
	for _, w := range strings.Fields(queryLower) {
		w = strings.Trim(w, "?!.,؟،")
		if len([]rune(w)) > 2 {
			words = append(words, w)
		}
	}
	return words
}
