// Package language detects the user's language bucket and holds the
// localized assets (system prompts, welcome and error messages) for each.
package language

import (
	"strings"
	"unicode"

	"github.com/jepco-digital/support-bot/internal/model"
)

// arabicRanges covers the Arabic script blocks counted during detection:
// Arabic, Arabic Supplement, Arabic Extended-A, and the presentation forms.
var arabicRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0600, Hi: 0x06FF, Stride: 1},
		{Lo: 0x0750, Hi: 0x077F, Stride: 1},
		{Lo: 0x08A0, Hi: 0x08FF, Stride: 1},
		{Lo: 0xFB50, Hi: 0xFDFF, Stride: 1},
		{Lo: 0xFE70, Hi: 0xFEFF, Stride: 1},
	},
}

// jordanianMarkers are dialect words and spellings that distinguish spoken
// Jordanian Arabic from formal Arabic. A single hit classifies the text as
// Jordanian.
var jordanianMarkers = []string{
	"شو", "ايش", "وين", "كيف", "هيك", "هاي", "هاد", "هاذا", "هاذي",
	"بدي", "بده", "بدها", "بدهم", "بدكم", "بدكن",
	"مش", "مو", "ما", "لا", "بس", "كمان", "برضو", "زي",
	"عشان", "علشان", "يعني", "يا زلمة", "يا جماعة",
	"الكهربا", "الفاتورة", "جيبكو",
}

// Detect classifies text as English, formal Arabic, or Jordanian Arabic.
// Empty input defaults to English. Text is Arabic when Arabic-script runes
// outnumber ASCII letters and make up more than 30% of the non-space runes;
// within Arabic, any Jordanian dialect marker selects the Jordanian bucket.
func Detect(text string) model.Language {
	if strings.TrimSpace(text) == "" {
		return model.LanguageEnglish
	}

	var arabicCount, latinCount, total int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		switch {
		case unicode.Is(arabicRanges, r):
			arabicCount++
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			latinCount++
		}
	}

	if arabicCount > latinCount && float64(arabicCount) > float64(total)*0.3 {
		lower := strings.ToLower(text)
		for _, marker := range jordanianMarkers {
			if strings.Contains(lower, marker) {
				return model.LanguageJordanian
			}
		}
		return model.LanguageArabic
	}

	return model.LanguageEnglish
}

// DisplayName returns the UI label for a language bucket.
func DisplayName(lang model.Language) string {
	switch lang {
	case model.LanguageArabic:
		return "العربية الفصحى"
	case model.LanguageJordanian:
		return "العربية الأردنية"
	default:
		return "English"
	}
}

// rtlMark is U+200F RIGHT-TO-LEFT MARK.
const rtlMark = "‏"

// FormatForDisplay prefixes RTL text with a direction mark so mixed-content
// renderers display it correctly.
func FormatForDisplay(text string, lang model.Language) string {
	if text == "" {
		return ""
	}
	if lang.RTL() {
		return rtlMark + text
	}
	return text
}
