package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// GetByID - универсальная функция для получения сущности по ID
func GetByID[T any](ctx context.Context, db *sqlx.DB, table string, id interface{}, notFoundErr error) (*T, error) {
	var entity T
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = $1", table)

	if err := db.GetContext(ctx, &entity, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFoundErr
		}
		return nil, fmt.Errorf("get by id from %s: %w", table, err)
	}

	return &entity, nil
}

// Where собирает условия запроса с нумерованными плейсхолдерами $1, $2, ...
type Where struct {
	clauses []string
	args    []interface{}
}

// Add добавляет условие вида "column = ?"; значение подставляется как аргумент.
func (w *Where) Add(column string, value interface{}) {
	w.args = append(w.args, value)
	w.clauses = append(w.clauses, fmt.Sprintf("%s = $%d", column, len(w.args)))
}

// SQL возвращает " WHERE ..." или пустую строку.
func (w *Where) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	out := " WHERE " + w.clauses[0]
	for _, c := range w.clauses[1:] {
		out += " AND " + c
	}
	return out
}

// Args возвращает накопленные аргументы.
func (w *Where) Args() []interface{} {
	return w.args
}

// Next возвращает номер следующего плейсхолдера.
func (w *Where) Next() int {
	return len(w.args) + 1
}
