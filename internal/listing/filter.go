// Package listing отбирает и разбивает на страницы коллекции консоли:
// текстовый поиск, фильтры по статусу и категории, период по дате.
package listing

import (
	"strconv"
	"strings"
	"time"
)

// All: значение фильтра, которое отключает его.
const All = "all"

// Record: запись, которую умеет фильтровать движок.
type Record interface {
	SearchFields() []string
	StatusValue() string
	CategoryValue() string
	Timestamp() time.Time
}

// Criteria: набор фильтров одного представления.
type Criteria struct {
	Query     string `json:"search"`
	Status    string `json:"status"`
	Category  string `json:"category"`
	DateRange string `json:"dateRange"`
}

// DefaultCriteria возвращает критерии, которые пропускают всё.
func DefaultCriteria() Criteria {
	return Criteria{Status: All, Category: All, DateRange: All}
}

// IsEmpty сообщает, что критерии ничего не отсекают.
func (c Criteria) IsEmpty() bool {
	return c.Query == "" && isAll(c.Status) && isAll(c.Category) && isAll(c.DateRange)
}

// ParseDays разбирает период "7" | "30" | "90" | "all".
// ok=false для нечислового или неположительного значения.
func ParseDays(dateRange string) (days int, ok bool) {
	if isAll(dateRange) {
		return 0, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(dateRange))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Cutoff возвращает нижнюю границу периода. Нулевое время означает отсутствие ограничения.
func Cutoff(dateRange string, now time.Time) time.Time {
	days, ok := ParseDays(dateRange)
	if !ok || days == 0 {
		return time.Time{}
	}
	return now.AddDate(0, 0, -days)
}

// Match проверяет одну запись. Строка поиска сравнивается как есть, без обрезки
// пробелов. Некорректный период трактуется как all.
func Match(r Record, c Criteria, now time.Time) bool {
	if q := strings.ToLower(c.Query); q != "" {
		found := false
		for _, field := range r.SearchFields() {
			if strings.Contains(strings.ToLower(field), q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if !isAll(c.Status) && r.StatusValue() != c.Status {
		return false
	}
	if !isAll(c.Category) && r.CategoryValue() != c.Category {
		return false
	}

	if cutoff := Cutoff(c.DateRange, now); !cutoff.IsZero() && r.Timestamp().Before(cutoff) {
		return false
	}
	return true
}

// Filter возвращает подмножество items, сохраняя исходный порядок.
func Filter[T Record](items []T, c Criteria, now time.Time) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if Match(it, c, now) {
			out = append(out, it)
		}
	}
	return out
}

func isAll(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, All)
}
