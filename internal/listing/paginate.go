package listing

// DefaultPageSize: размер страницы консоли.
const DefaultPageSize = 10

// Page: одна страница отфильтрованной коллекции.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// TotalPages считает ceil(total / pageSize); для пустого набора 0.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate вырезает страницу page (с единицы). За пределами диапазона Items пуст.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	p := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: TotalPages(total, pageSize),
	}

	// сравнение до умножения: (page-1)*pageSize переполняется на больших page
	if page > p.TotalPages {
		return p
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	p.Items = items[start:end]
	return p
}
