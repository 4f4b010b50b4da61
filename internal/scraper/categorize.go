package scraper

import (
	"strings"

	"github.com/jepco-digital/support-bot/internal/model"
)

// categoryRules maps URL keywords to content categories. First match wins;
// pages matching nothing land in additional_content.
var categoryRules = []struct {
	category model.Category
	keywords []string
}{
	{model.CategoryCompanyInfo, []string{"about", "vision", "mission", "history", "company"}},
	{model.CategoryServices, []string{"service", "connection", "customer", "electronic"}},
	{model.CategoryBilling, []string{"bill", "payment", "tariff", "pricing"}},
	{model.CategoryTechnicalServices, []string{"outage", "maintenance", "technical", "electrical"}},
	{model.CategoryContactInfo, []string{"contact", "office", "emergency"}},
	{model.CategorySafetyRegulations, []string{"safety", "regulation", "standard"}},
	{model.CategoryFAQ, []string{"faq", "question", "help"}},
}

// Categorize assigns a page to a content category from its URL.
func Categorize(pageURL string) model.Category {
	lower := strings.ToLower(pageURL)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return model.CategoryAdditional
}
