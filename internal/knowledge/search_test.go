package knowledge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jepco-digital/support-bot/internal/model"
)

func testSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Meta: model.SnapshotMeta{Source: "fallback"},
		Content: map[string]model.LanguageContent{
			"english": {
				model.CategoryCompanyInfo: {
					{Heading: "About JEPCO", Text: "Jordan Electric Power Company distributes electricity in Amman."},
				},
				model.CategoryBilling: {
					{Heading: "Paying Your Bill", Text: "Electricity bills can be paid online via eFAWATEERcom or at any JEPCO office."},
					{Heading: "Tariffs", Text: "Residential tariffs are tiered by monthly consumption."},
					{Heading: "Subscriber Number", Text: "Your subscriber number is printed on the bill."},
				},
				model.CategoryContactInfo: {
					{Heading: "Contact", Text: "Emergency hotline 116, offices open Sunday to Thursday."},
				},
			},
			"arabic": {
				model.CategoryBilling: {
					{Heading: "دفع الفاتورة", Text: "يمكن دفع فواتير الكهرباء إلكترونياً أو في أي مكتب من مكاتب جيبكو."},
				},
			},
		},
	}
}

func TestSearchMatchesCategory(t *testing.T) {
	got := Search(testSnapshot(), "How can I pay my bill online?", model.LanguageEnglish)

	assert.Contains(t, got, "Available information:")
	assert.Contains(t, got, "[Billing Information]")
	assert.Contains(t, got, "eFAWATEERcom")
	assert.Contains(t, got, disclaimer)
	// Billing-only query must not drag in contact sections.
	assert.NotContains(t, got, "[Contact Information]")
}

func TestSearchCapsPerCategory(t *testing.T) {
	// Every billing section contains "bill" somewhere, but only two may
	// make it into the context.
	got := Search(testSnapshot(), "bill bills billing", model.LanguageEnglish)

	n := strings.Count(got, "[Billing Information]")
	assert.LessOrEqual(t, n, maxPerCategory)
}

func TestSearchArabicBucket(t *testing.T) {
	got := Search(testSnapshot(), "كيف أدفع فاتورة الكهرباء؟", model.LanguageJordanian)

	assert.Contains(t, got, "فواتير الكهرباء")
	assert.Contains(t, got, disclaimer)
}

func TestSearchFallsBackAcrossBuckets(t *testing.T) {
	snap := testSnapshot()
	delete(snap.Content, "arabic")

	// Arabic bucket missing: the english bucket still serves the query.
	got := Search(snap, "فاتورة bill", model.LanguageArabic)
	assert.Contains(t, got, "[Billing Information]")
}

func TestSearchNoMatchUsesCompanyInfo(t *testing.T) {
	got := Search(testSnapshot(), "zzz qqq xyzzy", model.LanguageEnglish)

	assert.Contains(t, got, "[Company Information]")
	assert.Contains(t, got, "Jordan Electric Power Company")
}

func TestSearchEmptySnapshot(t *testing.T) {
	snap := &model.Snapshot{Content: map[string]model.LanguageContent{}}

	got := Search(snap, "anything", model.LanguageEnglish)
	assert.Equal(t, contactFallback, got)
}

func TestMatchCategories(t *testing.T) {
	cats := matchCategories("there is an outage in my area")
	assert.Contains(t, cats, model.CategoryTechnicalServices)
	assert.Contains(t, cats, model.CategoryContactInfo)

	// No keyword hit searches everything.
	all := matchCategories("hello")
	assert.Equal(t, model.Categories(), all)
}

func TestRankSectionsOrdersByHits(t *testing.T) {
	sections := []model.Section{
		{Text: "Nothing relevant here at all."},
		{Text: "Pay your electricity charges at any office."},
		{Text: "The bill shows your subscriber number; pay online or at an office."},
	}

	ranked := rankSections(sections, "pay bill online")
	require.Len(t, ranked, 2)
	assert.Contains(t, ranked[0].Text, "subscriber number")
}
