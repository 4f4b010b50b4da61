package language

import (
	"strings"

	"github.com/jepco-digital/support-bot/internal/model"
)

// systemPrompts are the base assistant instructions per reply language.
var systemPrompts = map[model.Language]string{
	model.LanguageEnglish: `You are a customer service representative for JEPCO (Jordan Electric Power Company). Answer questions about electricity services, billing, outages, and general inquiries using only the provided JEPCO website information. Be professional and helpful. If information is not available in the provided context, direct customers to contact JEPCO directly.

Key guidelines:
- Only use information from the provided JEPCO website content
- Be professional and courteous
- Provide specific contact information when available
- If you don't have specific information, direct to JEPCO customer service
- Keep responses concise but informative`,

	model.LanguageArabic: `أنت ممثل خدمة العملاء في شركة الكهرباء الأردنية (جيبكو). أجب على الأسئلة حول خدمات الكهرباء والفواتير وانقطاع التيار والاستفسارات العامة باستخدام معلومات موقع جيبكو المقدمة فقط. كن مهنياً ومفيداً. إذا لم تكن المعلومات متوفرة في السياق المقدم، وجه العملاء للاتصال بجيبكو مباشرة.

الإرشادات الأساسية:
- استخدم فقط المعلومات المتوفرة من محتوى موقع جيبكو المقدم
- كن مهنياً ومهذباً
- قدم معلومات الاتصال المحددة عند توفرها
- إذا لم تكن لديك معلومات محددة، وجه إلى خدمة عملاء جيبكو
- اجعل الردود مختصرة ولكن مفيدة`,

	model.LanguageJordanian: `إنت موظف خدمة عملاء في شركة الكهربا الأردنية (جيبكو). جاوب على أسئلة العملاء عن خدمات الكهربا والفواتير وقطع الكهربا والاستفسارات العامة بس من معلومات موقع جيبكو اللي معطاة لك. كن مهني ومفيد. إذا ما في معلومات في السياق المعطى، قلهم يتصلوا مع جيبكو مباشرة.

الإرشادات المهمة:
- استخدم بس المعلومات الموجودة من موقع جيبكو
- كن مهني ومحترم
- اعطي معلومات الاتصال لما تكون موجودة
- إذا ما عندك معلومات محددة، وجههم لخدمة عملاء جيبكو
- خلي الردود مختصرة بس مفيدة
- استخدم اللهجة الأردنية بطريقة طبيعية ومهنية`,
}

// SystemPrompt returns the base assistant instructions for a language,
// defaulting to English for unknown buckets.
func SystemPrompt(lang model.Language) string {
	if p, ok := systemPrompts[lang]; ok {
		return p
	}
	return systemPrompts[model.LanguageEnglish]
}

var welcomeMessages = map[model.Language]string{
	model.LanguageEnglish:   "Welcome to JEPCO Customer Support! How can I help you today?",
	model.LanguageArabic:    "مرحباً بكم في خدمة عملاء شركة الكهرباء الأردنية (جيبكو)! كيف يمكنني مساعدتكم اليوم؟",
	model.LanguageJordanian: "أهلاً وسهلاً في خدمة عملاء جيبكو! شو بقدر أساعدك اليوم؟",
}

// WelcomeMessage returns the greeting shown when a session starts.
func WelcomeMessage(lang model.Language) string {
	if m, ok := welcomeMessages[lang]; ok {
		return m
	}
	return welcomeMessages[model.LanguageEnglish]
}

var errorMessages = map[model.Language]string{
	model.LanguageEnglish:   "I apologize, but I'm experiencing technical difficulties. %s Please contact JEPCO customer service directly at their official phone numbers.",
	model.LanguageArabic:    "أعتذر، ولكنني أواجه صعوبات تقنية. %s يرجى الاتصال بخدمة عملاء جيبكو مباشرة على أرقام الهواتف الرسمية.",
	model.LanguageJordanian: "بعتذر، بس في مشكلة تقنية. %s أرجو تتصلوا مع خدمة عملاء جيبكو مباشرة على الأرقام الرسمية.",
}

// ErrorMessage returns a localized apology shown when the assistant cannot
// answer. detail is inserted verbatim; pass "" when there is nothing useful
// to surface to the customer.
func ErrorMessage(lang model.Language, detail string) string {
	tmpl, ok := errorMessages[lang]
	if !ok {
		tmpl = errorMessages[model.LanguageEnglish]
	}
	msg := strings.Replace(tmpl, "%s", detail, 1)
	// Collapse the double space left behind by an empty detail.
	return strings.Join(strings.Fields(msg), " ")
}
