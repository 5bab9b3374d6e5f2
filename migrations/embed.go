// Package migrations содержит SQL-миграции, встроенные в бинарник.
package migrations

import "embed"

// FS хранит файлы *.sql в порядке имён.
//
//go:embed *.sql
var FS embed.FS
