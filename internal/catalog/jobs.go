package catalog

import (
	"strings"

	"github.com/ignatzorin/agency-site/internal/models"
)

// Значения «все» из выпадающих списков страницы вакансий.
const (
	AllDepartments = "All Departments"
	AllLocations   = "All Locations"
	AllTypes       = "All Types"
	AllRemote      = "All"
)

const (
	MinExperience = 0
	MaxExperience = 10
)

// JobFilter: фильтры страницы вакансий.
type JobFilter struct {
	Query         string
	Department    string
	Location      string
	Type          string
	Remote        string
	MinExperience int
	MaxExperience int
}

func DefaultJobFilter() JobFilter {
	return JobFilter{
		Department:    AllDepartments,
		Location:      AllLocations,
		Type:          AllTypes,
		Remote:        AllRemote,
		MinExperience: MinExperience,
		MaxExperience: MaxExperience,
	}
}

// JobFacets: варианты для выпадающих списков.
type JobFacets struct {
	Departments []string `json:"departments"`
	Locations   []string `json:"locations"`
	Types       []string `json:"types"`
	Remote      []string `json:"remote"`
}

// Jobs возвращает вакансии, подходящие под фильтр, в порядке каталога.
func (c *Catalog) Jobs(f JobFilter) []models.JobListing {
	q := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]models.JobListing, 0, len(c.jobs))
	for _, job := range c.jobs {
		if q != "" &&
			!strings.Contains(strings.ToLower(job.Title), q) &&
			!strings.Contains(strings.ToLower(job.Department), q) {
			continue
		}
		if !bypass(f.Department, AllDepartments) && job.Department != f.Department {
			continue
		}
		// локация сравнивается по вхождению: "Remote" совпадает с "Remote, US"
		if !bypass(f.Location, AllLocations) && !strings.Contains(job.Location, f.Location) {
			continue
		}
		if !bypass(f.Type, AllTypes) && job.Type != f.Type {
			continue
		}
		if !bypass(f.Remote, AllRemote) && job.Remote != f.Remote {
			continue
		}
		years := job.ExperienceYears()
		if years < f.MinExperience || years > f.MaxExperience {
			continue
		}
		out = append(out, job)
	}
	return out
}

// JobFacets собирает уникальные значения фильтров; первым идёт значение «все».
func (c *Catalog) JobFacets() JobFacets {
	facets := JobFacets{
		Departments: []string{AllDepartments},
		Locations:   []string{AllLocations},
		Types:       []string{AllTypes},
		Remote:      []string{AllRemote, "Remote", "Hybrid", "On-site"},
	}
	for _, job := range c.jobs {
		facets.Departments = appendUnique(facets.Departments, job.Department)
		facets.Locations = appendUnique(facets.Locations, job.Location)
		facets.Types = appendUnique(facets.Types, job.Type)
	}
	facets.Locations = appendUnique(facets.Locations, "Remote")
	return facets
}

func bypass(value, sentinel string) bool {
	value = strings.TrimSpace(value)
	return value == "" || value == sentinel || strings.EqualFold(value, "all")
}

func appendUnique(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
