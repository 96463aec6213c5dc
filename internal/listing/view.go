package listing

import (
	"strings"

	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
)

// View хранит состояние списка в консоли: фильтры, вкладку и текущую страницу.
// Любая смена фильтра или вкладки возвращает на первую страницу.
type View struct {
	Criteria Criteria `json:"criteria"`
	Tab      string   `json:"tab,omitempty"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
}

func NewView(pageSize int) *View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &View{Criteria: DefaultCriteria(), Page: 1, PageSize: pageSize}
}

// SetQuery меняет строку поиска и сообщает, изменилась ли она.
func (v *View) SetQuery(q string) bool {
	return v.set(&v.Criteria.Query, q)
}

func (v *View) SetStatus(status string) bool {
	return v.set(&v.Criteria.Status, normalizeAll(status))
}

func (v *View) SetCategory(category string) bool {
	return v.set(&v.Criteria.Category, normalizeAll(category))
}

// SetDateRange принимает "all" или положительное число дней.
func (v *View) SetDateRange(dateRange string) (bool, error) {
	dateRange = normalizeAll(dateRange)
	if _, ok := ParseDays(dateRange); !ok {
		return false, apperror.Validation("invalid date range " + dateRange)
	}
	return v.set(&v.Criteria.DateRange, dateRange), nil
}

func (v *View) SetTab(tab string) bool {
	return v.set(&v.Tab, strings.TrimSpace(tab))
}

// SetPage запоминает запрошенную страницу; границы проверяет Clamp.
func (v *View) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.Page = page
}

// Clamp держит страницу в [1, max(totalPages, 1)].
func (v *View) Clamp(totalPages int) {
	upper := totalPages
	if upper < 1 {
		upper = 1
	}
	switch {
	case v.Page < 1:
		v.Page = 1
	case v.Page > upper:
		v.Page = upper
	}
}

// Reset возвращает фильтры по умолчанию.
func (v *View) Reset() {
	v.Criteria = DefaultCriteria()
	v.Page = 1
}

func (v *View) set(field *string, value string) bool {
	if *field == value {
		return false
	}
	*field = value
	v.Page = 1
	return true
}

func normalizeAll(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, All) {
		return All
	}
	return v
}
