package catalog

import (
	"strings"

	"github.com/ignatzorin/agency-site/internal/models"
)

// Вкладки галереи.
const (
	TabAll      = "all"
	TabFeatured = "featured"
	TabRecent   = "recent"
)

// featuredMaxID: первые проекты каталога считаются избранными.
const featuredMaxID = 3

type ProjectFilter struct {
	Tab   string
	Query string
	Stack string
	Year  string
}

type ProjectFacets struct {
	Stacks []string `json:"stacks"`
	Years  []string `json:"years"`
}

// IsValidTab проверяет вкладку галереи.
func IsValidTab(tab string) bool {
	switch tab {
	case "", TabAll, TabFeatured, TabRecent:
		return true
	}
	return false
}

// Projects возвращает карточки проектов без полного описания.
func (c *Catalog) Projects(f ProjectFilter) []models.Project {
	q := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]models.Project, 0, len(c.projects))
	for _, p := range c.projects {
		switch f.Tab {
		case TabFeatured:
			if p.ID > featuredMaxID {
				continue
			}
		case TabRecent:
			if p.Year != c.latestYear {
				continue
			}
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.ShortDescription), q) &&
			!strings.Contains(strings.ToLower(p.Client), q) {
			continue
		}
		if !bypass(f.Stack, "") && !strings.Contains(p.Stack, f.Stack) {
			continue
		}
		if !bypass(f.Year, "") && p.Year != f.Year {
			continue
		}
		out = append(out, p.Summary())
	}
	return out
}

// ProjectFacets возвращает основные технологии (первая часть "A + B") и годы.
func (c *Catalog) ProjectFacets() ProjectFacets {
	facets := ProjectFacets{Stacks: []string{"all"}, Years: []string{"all"}}
	for _, p := range c.projects {
		facets.Stacks = appendUnique(facets.Stacks, p.PrimaryStack())
		facets.Years = appendUnique(facets.Years, p.Year)
	}
	return facets
}
