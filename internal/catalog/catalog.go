// Package catalog отдаёт статические каталоги сайта: открытые вакансии и галерею проектов.
package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"sort"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"

	"github.com/ignatzorin/agency-site/internal/models"
	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Markdown без WithUnsafe: сырой HTML в описаниях экранируется.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Catalog неизменяем после загрузки и безопасен для конкурентного чтения.
type Catalog struct {
	jobs       []models.JobListing
	projects   []models.Project
	latestYear string
}

// Load читает встроенные каталоги.
func Load() (*Catalog, error) {
	jobsRaw, err := dataFS.ReadFile("data/jobs.yaml")
	if err != nil {
		return nil, fmt.Errorf("catalog: read jobs: %w", err)
	}
	projectsRaw, err := dataFS.ReadFile("data/projects.yaml")
	if err != nil {
		return nil, fmt.Errorf("catalog: read projects: %w", err)
	}
	return Parse(jobsRaw, projectsRaw)
}

// Parse собирает каталог из YAML. Идентификаторы должны быть уникальны.
func Parse(jobsYAML, projectsYAML []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(jobsYAML, &c.jobs); err != nil {
		return nil, fmt.Errorf("catalog: parse jobs: %w", err)
	}
	if err := yaml.Unmarshal(projectsYAML, &c.projects); err != nil {
		return nil, fmt.Errorf("catalog: parse projects: %w", err)
	}

	seen := make(map[int]bool, len(c.jobs))
	for _, j := range c.jobs {
		if seen[j.ID] {
			return nil, fmt.Errorf("catalog: duplicate job id %d", j.ID)
		}
		seen[j.ID] = true
	}
	seen = make(map[int]bool, len(c.projects))
	for _, p := range c.projects {
		if seen[p.ID] {
			return nil, fmt.Errorf("catalog: duplicate project id %d", p.ID)
		}
		seen[p.ID] = true
		if p.Year > c.latestYear {
			c.latestYear = p.Year
		}
	}

	sort.SliceStable(c.jobs, func(i, k int) bool { return c.jobs[i].ID < c.jobs[k].ID })
	sort.SliceStable(c.projects, func(i, k int) bool { return c.projects[i].ID < c.projects[k].ID })
	return c, nil
}

// Job возвращает вакансию по ID.
func (c *Catalog) Job(id int) (*models.JobListing, error) {
	for i := range c.jobs {
		if c.jobs[i].ID == id {
			job := c.jobs[i]
			return &job, nil
		}
	}
	return nil, apperror.ErrJobNotFound
}

// Project возвращает проект с описанием, отрендеренным в HTML.
func (c *Catalog) Project(id int) (*models.Project, error) {
	for i := range c.projects {
		if c.projects[i].ID != id {
			continue
		}
		p := c.projects[i]
		if p.FullDescription != "" {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(p.FullDescription), &buf); err != nil {
				return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to render project description")
			}
			p.FullDescriptionHTML = buf.String()
		}
		return &p, nil
	}
	return nil, apperror.ErrProjectNotFound
}

// LatestYear: самый свежий год в галерее, по нему строится вкладка recent.
func (c *Catalog) LatestYear() string {
	return c.latestYear
}
