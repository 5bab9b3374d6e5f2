// Package web содержит HTML-шаблоны и статические файлы, встроенные в бинарник.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates разбирает все шаблоны с переданными функциями.
func Templates(funcs template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
}

// Static возвращает файловую систему со статикой без префикса static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// Префикс зашит в директиву embed выше.
		panic(err)
	}
	return sub
}
