// Package locale holds the interface message tables.
package locale

import (
	"fmt"
	"sort"
)

// DefaultLang is used when no language is configured.
const DefaultLang = "en"

var messages = map[string]map[string]string{
	"en": {
		"game_title":       "Guess the number!",
		"game_description": "You will hear a number between %d and %d. Type it.",
		"controls_hint":    "enter - submit, r - repeat, s - show, q - quit",
		"enter_number":     "Number: ",
		"correct":          "Correct! Next number...",
		"incorrect":        "Incorrect: %s. Try again.",
		"answer_shown":     "Answer: %d. Next number...",
		"round_error":      "Round skipped: %s",
		"session_broken":   "Too many rounds failed in a row; the clip store looks incomplete. Run: akousma check",
		"goodbye":          "Goodbye!",
		"stats_header":     "STATISTICS",
		"stats_rounds":     "Rounds played: %d",
		"stats_first_try":  "Correct on first try: %d (%.0f%%)",
		"stats_shown":      "Answers shown: %d",
		"stats_errored":    "Rounds skipped on error: %d",
		"stats_top_header": "Top error positions:",
		"stats_position":   "10^%d place",
		"stats_count":      "misses",
		"stats_curve":      "First-try results: %s",
		"summary_exit":     "press enter to exit",
	},
	"ru": {
		"game_title":       "Угадай число!",
		"game_description": "Вы услышите число от %d до %d. Введите его.",
		"controls_hint":    "enter - ответ, r - повтор, s - показать, q - выход",
		"enter_number":     "Число: ",
		"correct":          "Правильно! Следующее число...",
		"incorrect":        "Неправильно: %s. Попробуйте ещё раз.",
		"answer_shown":     "Ответ: %d. Следующее число...",
		"round_error":      "Раунд пропущен: %s",
		"session_broken":   "Слишком много раундов подряд с ошибкой; база клипов неполная. Запустите: akousma check",
		"goodbye":          "До свидания!",
		"stats_header":     "СТАТИСТИКА",
		"stats_rounds":     "Всего загадано: %d",
		"stats_first_try":  "Угадано с первой попытки: %d (%.0f%%)",
		"stats_shown":      "Показано ответов: %d",
		"stats_errored":    "Пропущено из-за ошибок: %d",
		"stats_top_header": "Топ ошибок по позициям:",
		"stats_position":   "разряд 10^%d",
		"stats_count":      "ошибок",
		"stats_curve":      "Первые попытки: %s",
		"summary_exit":     "нажмите enter для выхода",
	},
}

// Localizer resolves message keys for one interface language.
type Localizer struct {
	lang string
}

// New returns a Localizer for the given language code.
func New(lang string) (Localizer, error) {
	if _, ok := messages[lang]; !ok {
		return Localizer{}, fmt.Errorf("unknown interface language %q (available: %v)", lang, Languages())
	}
	return Localizer{lang: lang}, nil
}

// T returns the localized message for key, formatted with args. Unknown
// keys fall back to English, then to the key itself.
func (l Localizer) T(key string, args ...any) string {
	text, ok := messages[l.lang][key]
	if !ok {
		text, ok = messages[DefaultLang][key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}

// Languages lists the available interface languages.
func Languages() []string {
	out := make([]string, 0, len(messages))
	for lang := range messages {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}
