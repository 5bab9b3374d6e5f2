package storage

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fallbackFilename используется, когда после очистки от имени ничего не осталось.
const fallbackFilename = "avatar"

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// asciiFold раскладывает символы (NFKD) и отбрасывает всё, что не ASCII.
// Transformer хранит состояние, поэтому создаётся на каждый вызов.
func asciiFold() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
}

// SanitizeFilename превращает имя файла клиента в безопасное имя без каталогов.
// Разделители пути становятся пробелами, пробельные участки склеиваются "_",
// остаются только [A-Za-z0-9_.-], точки и подчёркивания по краям срезаются.
func SanitizeFilename(name string) string {
	folded, _, err := transform.String(asciiFold(), name)
	if err != nil {
		folded = name
	}

	folded = strings.NewReplacer("/", " ", "\\", " ").Replace(folded)
	folded = strings.Join(strings.Fields(folded), "_")
	folded = unsafeFilenameChars.ReplaceAllString(folded, "")
	folded = strings.Trim(folded, "._")

	if folded == "" {
		return fallbackFilename
	}
	return folded
}
