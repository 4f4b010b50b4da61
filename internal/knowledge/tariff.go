package knowledge

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jepco-digital/support-bot/internal/model"
)

// defaultRate is the approximate first residential tier in JOD per kWh,
// used when no rate can be parsed out of the snapshot's billing content.
const defaultRate = 0.068

// costKeywords flag a question as asking for a consumption cost estimate.
// The estimate only kicks in when the question also carries a number.
var costKeywords = []string{
	"احسب", "calculate", "حساب", "كم", "how much", "cost", "تكلفة",
	"فاتورة", "bill", "كيلو واط", "kwh", "سعر", "price",
}

var (
	numberPattern   = regexp.MustCompile(`\d+(?:\.\d+)?`)
	filsRatePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:فلس|fils)`)
	jodRatePattern  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:دينار|JOD)`)
)

// estimateCost answers consumption questions like "how much for 5 kWh daily"
// with a computed JOD estimate. It reports false when the question is not a
// cost calculation or carries no consumption figure, so the regular section
// search takes over.
func estimateCost(snap *model.Snapshot, query string, lang model.Language) (string, bool) {
	queryLower := strings.ToLower(query)
	if !isCostQuery(queryLower) {
		return "", false
	}

	kwhText := numberPattern.FindString(query)
	if kwhText == "" {
		return "", false
	}
	dailyKWh, err := strconv.ParseFloat(kwhText, 64)
	if err != nil || dailyKWh <= 0 {
		return "", false
	}

	rate, fromSnapshot := snapshotRate(snap, lang)

	zap.L().Debug("cost estimate",
		zap.Float64("daily_kwh", dailyKWh),
		zap.Float64("rate", rate),
		zap.Bool("from_snapshot", fromSnapshot),
	)

	if lang.RTL() {
		return formatCostArabic(dailyKWh, rate, fromSnapshot), true
	}
	return formatCostEnglish(dailyKWh, rate, fromSnapshot), true
}

func isCostQuery(queryLower string) bool {
	for _, kw := range costKeywords {
		if strings.Contains(queryLower, kw) {
			return true
		}
	}
	return false
}

// snapshotRate pulls a JOD-per-kWh rate out of the snapshot's billing
// sections: fils amounts are converted, dinar amounts are taken as-is when
// they look like a per-kWh rate. Falls back to the default tier rate.
func snapshotRate(snap *model.Snapshot, lang model.Language) (float64, bool) {
	bucket := snap.Bucket(lang.ContentBucket())
	for _, s := range bucket[model.CategoryBilling] {
		if m := filsRatePattern.FindStringSubmatch(s.Text); m != nil {
			if fils, err := strconv.ParseFloat(m[1], 64); err == nil && fils > 0 && fils < 1000 {
				return fils / 1000, true
			}
		}
		if m := jodRatePattern.FindStringSubmatch(s.Text); m != nil {
			if jod, err := strconv.ParseFloat(m[1], 64); err == nil && jod > 0 && jod < 1 {
				return jod, true
			}
		}
	}
	return defaultRate, false
}

func formatCostEnglish(dailyKWh, rate float64, fromSnapshot bool) string {
	var b strings.Builder
	b.WriteString("Electricity cost estimate:\n\n")
	b.WriteString("Consumption:\n")
	fmt.Fprintf(&b, "- Daily: %s kWh\n", trimFloat(dailyKWh))
	fmt.Fprintf(&b, "- Monthly: %s kWh\n\n", trimFloat(dailyKWh*30))
	b.WriteString("Estimated costs:\n")
	fmt.Fprintf(&b, "- Daily: %.3f JOD\n", dailyKWh*rate)
	fmt.Fprintf(&b, "- Monthly: %.2f JOD\n", dailyKWh*30*rate)
	fmt.Fprintf(&b, "- Yearly: %.2f JOD\n\n", dailyKWh*365*rate)
	fmt.Fprintf(&b, "Rate used: %.3f JOD/kWh", rate)
	if fromSnapshot {
		b.WriteString(" (from published JEPCO tariff information)")
	} else {
		b.WriteString("\n\nNote: these are estimated rates. For the exact current tariff, call JEPCO at 116 or visit www.jepco.com.jo")
	}
	return b.String()
}

func formatCostArabic(dailyKWh, rate float64, fromSnapshot bool) string {
	var b strings.Builder
	b.WriteString("حساب تكلفة الكهرباء:\n\n")
	b.WriteString("الاستهلاك:\n")
	fmt.Fprintf(&b, "- يومياً: %s كيلو واط ساعة\n", trimFloat(dailyKWh))
	fmt.Fprintf(&b, "- شهرياً: %s كيلو واط ساعة\n\n", trimFloat(dailyKWh*30))
	b.WriteString("التكلفة المقدرة:\n")
	fmt.Fprintf(&b, "- يومياً: %.3f دينار أردني\n", dailyKWh*rate)
	fmt.Fprintf(&b, "- شهرياً: %.2f دينار أردني\n", dailyKWh*30*rate)
	fmt.Fprintf(&b, "- سنوياً: %.2f دينار أردني\n\n", dailyKWh*365*rate)
	fmt.Fprintf(&b, "السعر المستخدم: %.3f دينار لكل كيلو واط ساعة", rate)
	if fromSnapshot {
		b.WriteString(" (من معلومات التعرفة المنشورة على موقع جيبكو)")
	} else {
		b.WriteString("\n\nملاحظة: هذه أسعار تقديرية. للحصول على التعرفة الدقيقة اتصل بجيبكو على الرقم 116 أو زر الموقع www.jepco.com.jo")
	}
	return b.String()
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
