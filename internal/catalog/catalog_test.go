package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
)

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load()
	require.NoError(t, err)
	return c
}

func titles(c *Catalog, f JobFilter) []string {
	var out []string
	for _, j := range c.Jobs(f) {
		out = append(out, j.Title)
	}
	return out
}

func TestJobs_DefaultFilterReturnsEverything(t *testing.T) {
	c := loadCatalog(t)
	assert.Len(t, c.Jobs(DefaultJobFilter()), 3)
}

func TestJobs_Filters(t *testing.T) {
	c := loadCatalog(t)

	f := DefaultJobFilter()
	f.Query = "engineer"
	assert.Equal(t, []string{"Senior Frontend Developer", "Backend Engineer"}, titles(c, f))

	f = DefaultJobFilter()
	f.Department = "Design"
	assert.Equal(t, []string{"Product Designer"}, titles(c, f))

	f = DefaultJobFilter()
	f.Remote = "On-site"
	assert.Equal(t, []string{"Backend Engineer"}, titles(c, f))

	f = DefaultJobFilter()
	f.Location = "New York"
	assert.Equal(t, []string{"Product Designer"}, titles(c, f))

	f = DefaultJobFilter()
	f.MaxExperience = 4
	assert.Equal(t, []string{"Product Designer", "Backend Engineer"}, titles(c, f))

	f = DefaultJobFilter()
	f.MinExperience = 5
	assert.Equal(t, []string{"Senior Frontend Developer"}, titles(c, f))
}

func TestJob_NotFound(t *testing.T) {
	c := loadCatalog(t)
	_, err := c.Job(42)
	assert.True(t, apperror.IsNotFound(err))

	job, err := c.Job(2)
	require.NoError(t, err)
	assert.Equal(t, "Design", job.Department)
	assert.Equal(t, 3, job.ExperienceYears())
}

func TestJobFacets(t *testing.T) {
	facets := loadCatalog(t).JobFacets()
	assert.Equal(t, []string{AllDepartments, "Engineering", "Design"}, facets.Departments)
	assert.Equal(t, AllLocations, facets.Locations[0])
	assert.Contains(t, facets.Locations, "Remote")
	assert.Equal(t, []string{AllTypes, "Full-time"}, facets.Types)
}

func TestProjects_Tabs(t *testing.T) {
	c := loadCatalog(t)

	assert.Len(t, c.Projects(ProjectFilter{Tab: TabAll}), 6)

	featured := c.Projects(ProjectFilter{Tab: TabFeatured})
	require.Len(t, featured, 3)
	for _, p := range featured {
		assert.LessOrEqual(t, p.ID, 3)
	}

	recent := c.Projects(ProjectFilter{Tab: TabRecent})
	assert.Equal(t, "2024", c.LatestYear())
	for _, p := range recent {
		assert.Equal(t, "2024", p.Year)
	}
	assert.Len(t, recent, 2)
}

func TestProjects_SearchStackYear(t *testing.T) {
	c := loadCatalog(t)

	got := c.Projects(ProjectFilter{Query: "harbor"})
	require.Len(t, got, 1)
	assert.Equal(t, 6, got[0].ID)
	assert.Empty(t, got[0].FullDescription)

	got = c.Projects(ProjectFilter{Stack: "React"})
	assert.Len(t, got, 2)

	got = c.Projects(ProjectFilter{Stack: "all", Year: "2022"})
	assert.Len(t, got, 2)
}

func TestProjectFacets(t *testing.T) {
	facets := loadCatalog(t).ProjectFacets()
	assert.Equal(t, []string{"all", "React", "Next.js", "Figma", "Vue", "ThreeJS"}, facets.Stacks)
	assert.Equal(t, []string{"all", "2024", "2023", "2022"}, facets.Years)
}

func TestProject_RendersMarkdown(t *testing.T) {
	c := loadCatalog(t)
	p, err := c.Project(1)
	require.NoError(t, err)
	assert.Contains(t, p.FullDescriptionHTML, "<strong>WCAG 2.1 AA</strong>")
	assert.Contains(t, p.FullDescriptionHTML, "<li>")

	_, err = c.Project(99)
	assert.True(t, apperror.IsNotFound(err))
}

func TestParse_RejectsDuplicateIDs(t *testing.T) {
	_, err := Parse([]byte("- id: 1\n- id: 1\n"), []byte("[]"))
	assert.Error(t, err)
}
