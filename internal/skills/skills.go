// Package skills разбирает строку навыков анкеты и фильтрует анкеты по навыку.
package skills

import "strings"

// Set — множество нормализованных навыков.
type Set map[string]struct{}

// Has сообщает, входит ли токен в множество.
func (s Set) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Split возвращает непустые навыки в исходном регистре и порядке.
func Split(raw string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}

// Normalize разбивает строку по запятым и приводит навыки к нижнему регистру.
// Пустые токены отбрасываются.
func Normalize(raw string) Set {
	tokens := Split(raw)
	set := make(Set, len(tokens))
	for _, token := range tokens {
		set[strings.ToLower(token)] = struct{}{}
	}
	return set
}

// NormalizeFilter приводит значение фильтра к виду токена. Пустая строка значит «без фильтра».
func NormalizeFilter(filter string) string {
	return strings.ToLower(strings.TrimSpace(filter))
}

// Matches сообщает, проходит ли строка навыков фильтр.
func Matches(raw, filter string) bool {
	token := NormalizeFilter(filter)
	if token == "" {
		return true
	}
	return Normalize(raw).Has(token)
}

var icons = map[string]string{
	"python":     "🐍",
	"flask":      "🌶️",
	"html":       "🗒️",
	"css":        "🎨",
	"html/css":   "🖌️",
	"git":        "🔧",
	"github":     "🧘",
	"telegram":   "✈️",
	"sql":        "🗄️",
	"sqlite":     "📘",
	"postgresql": "🐘",
	"javascript": "⚡️",
	"js":         "⚡️",
	"jinja":      "🧩",
	"go":         "🐹",
	"docker":     "🐳",
}

// Icon возвращает значок для известного инструмента или пустую строку.
func Icon(skill string) string {
	return icons[strings.ToLower(strings.TrimSpace(skill))]
}
