package language

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jepco-digital/support-bot/internal/model"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.Language
	}{
		{
			name: "english sentence",
			text: "Hello, I need help with my electricity bill",
			want: model.LanguageEnglish,
		},
		{
			name: "formal arabic",
			text: "أرغب في تسديد فاتورتي عبر الإنترنت",
			want: model.LanguageArabic,
		},
		{
			name: "formal arabic with embedded dialect marker substring",
			text: "أحتاج مساعدة في فاتورة الكهرباء",
			want: model.LanguageJordanian,
		},
		{
			name: "jordanian dialect",
			text: "شو الوضع مع الكهربا؟ بدي أعرف عن الفاتورة",
			want: model.LanguageJordanian,
		},
		{
			name: "jordanian single marker",
			text: "وين أقرب مكتب لدفع الفواتير؟",
			want: model.LanguageJordanian,
		},
		{
			name: "empty defaults to english",
			text: "",
			want: model.LanguageEnglish,
		},
		{
			name: "whitespace only defaults to english",
			text: "   \n\t ",
			want: model.LanguageEnglish,
		},
		{
			name: "numbers only default to english",
			text: "116 0612345678",
			want: model.LanguageEnglish,
		},
		{
			name: "mostly english with one arabic word",
			text: "How do I pay my فاتورة online through the portal?",
			want: model.LanguageEnglish,
		},
		{
			name: "mostly arabic with one english word",
			text: "أحتاج مساعدة في تسديد المبلغ عبر online",
			want: model.LanguageArabic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.text))
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "English", DisplayName(model.LanguageEnglish))
	assert.Equal(t, "العربية الفصحى", DisplayName(model.LanguageArabic))
	assert.Equal(t, "العربية الأردنية", DisplayName(model.LanguageJordanian))
}

func TestFormatForDisplay(t *testing.T) {
	assert.Equal(t, "", FormatForDisplay("", model.LanguageArabic))
	assert.Equal(t, "hello", FormatForDisplay("hello", model.LanguageEnglish))

	got := FormatForDisplay("مرحبا", model.LanguageArabic)
	assert.Equal(t, "‏"+"مرحبا", got)

	got = FormatForDisplay("شو الأخبار", model.LanguageJordanian)
	assert.Equal(t, "‏"+"شو الأخبار", got)
}
