package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-site/internal/catalog"
	"github.com/ignatzorin/agency-site/internal/interface/http/response"
	"github.com/ignatzorin/agency-site/internal/models"
	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
)

// CatalogHandler отдаёт вакансии и портфолио публичного сайта.
type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

type jobsResponse struct {
	Jobs   []models.JobListing `json:"jobs"`
	Total  int                 `json:"total"`
	Facets catalog.JobFacets   `json:"facets"`
}

// ListJobs обрабатывает GET /api/jobs.
func (h *CatalogHandler) ListJobs(c *gin.Context) {
	f := catalog.DefaultJobFilter()
	f.Query = c.Query("search")
	if v := c.Query("department"); v != "" {
		f.Department = v
	}
	if v := c.Query("location"); v != "" {
		f.Location = v
	}
	if v := c.Query("type"); v != "" {
		f.Type = v
	}
	if v := c.Query("remote"); v != "" {
		f.Remote = v
	}
	f.MinExperience = parseIntQuery(c, "minExperience", f.MinExperience)
	f.MaxExperience = parseIntQuery(c, "maxExperience", f.MaxExperience)
	if f.MinExperience > f.MaxExperience {
		response.Error(c, apperror.Validation("minExperience must not exceed maxExperience"))
		return
	}

	jobs := h.catalog.Jobs(f)
	response.Success(c, jobsResponse{Jobs: jobs, Total: len(jobs), Facets: h.catalog.JobFacets()})
}

// GetJob обрабатывает GET /api/jobs/:id.
func (h *CatalogHandler) GetJob(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	job, err := h.catalog.Job(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, job)
}

type projectsResponse struct {
	Projects   []models.Project      `json:"projects"`
	Total      int                   `json:"total"`
	Facets     catalog.ProjectFacets `json:"facets"`
	LatestYear string                `json:"latestYear"`
}

// ListProjects обрабатывает GET /api/projects.
func (h *CatalogHandler) ListProjects(c *gin.Context) {
	f := catalog.ProjectFilter{
		Tab:   c.DefaultQuery("tab", catalog.TabAll),
		Query: c.Query("search"),
		Stack: c.Query("stack"),
		Year:  c.Query("year"),
	}
	if !catalog.IsValidTab(f.Tab) {
		response.Error(c, apperror.Validation("unknown tab "+f.Tab))
		return
	}

	projects := h.catalog.Projects(f)
	response.Success(c, projectsResponse{
		Projects:   projects,
		Total:      len(projects),
		Facets:     h.catalog.ProjectFacets(),
		LatestYear: h.catalog.LatestYear(),
	})
}

// GetProject обрабатывает GET /api/projects/:id.
func (h *CatalogHandler) GetProject(c *gin.Context) {
	id, err := intParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	project, err := h.catalog.Project(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}
