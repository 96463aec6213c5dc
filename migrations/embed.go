// Package migrations встраивает SQL-миграции журнала действий в бинарник.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
