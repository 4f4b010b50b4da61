package model

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Language is one of the three reply-language buckets.
type Language string

const (
	LanguageEnglish   Language = "english"
	LanguageArabic    Language = "arabic"
	LanguageJordanian Language = "jordanian"
)

// Valid reports whether l is one of the known language buckets.
func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageArabic, LanguageJordanian:
		return true
	}
	return false
}

// RTL reports whether the language renders right-to-left.
func (l Language) RTL() bool {
	return l == LanguageArabic || l == LanguageJordanian
}

// ContentBucket maps a reply language to the site-content bucket it draws
// from. Jordanian dialect replies are grounded on the Arabic site content.
func (l Language) ContentBucket() string {
	if l == LanguageArabic || l == LanguageJordanian {
		return "arabic"
	}
	return "english"
}

// Session is a single chat conversation.
type Session struct {
	ID        string    `json:"id"`
	Language  Language  `json:"language"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is a single turn in a session.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Language  Language  `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

// Window returns the last n messages of history, preserving order.
func Window(history []Message, n int) []Message {
	if n <= 0 || len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
