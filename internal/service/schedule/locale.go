package schedule

import "fmt"

// Language selects the notification copy. Three locales are supported.
type Language string

const (
	LangEnglish     Language = "en"
	LangTraditional Language = "zh-Hant"
	LangSimplified  Language = "zh-Hans"
)

// ParseLanguage maps a raw language key onto a supported language,
// defaulting to English.
func ParseLanguage(key string) Language {
	switch Language(key) {
	case LangTraditional, LangSimplified, LangEnglish:
		return Language(key)
	default:
		return LangEnglish
	}
}

func title(lang Language) string {
	switch lang {
	case LangTraditional:
		return "🧊 鮮守衛提醒"
	case LangSimplified:
		return "🧊 鲜守卫提醒"
	default:
		return "🧊 FreshGuard Reminder"
	}
}

// body renders the reminder text. Zero days before expiry uses the
// "expires today" phrasing; English is the only locale that pluralizes.
func body(lang Language, itemName string, daysBefore int) string {
	switch lang {
	case LangTraditional:
		if daysBefore == 0 {
			return fmt.Sprintf("「%s」今天到期了！", itemName)
		}
		return fmt.Sprintf("「%s」還有 %d 天就要過期囉！", itemName, daysBefore)
	case LangSimplified:
		if daysBefore == 0 {
			return fmt.Sprintf("「%s」今天到期了！", itemName)
		}
		return fmt.Sprintf("「%s」还有 %d 天就要过期了！", itemName, daysBefore)
	default:
		if daysBefore == 0 {
			return fmt.Sprintf("%q expires today!", itemName)
		}
		plural := ""
		if daysBefore > 1 {
			plural = "s"
		}
		return fmt.Sprintf("%q expires in %d day%s!", itemName, daysBefore, plural)
	}
}
