package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/agency-site/internal/models"
)

func TestBuildTimeline(t *testing.T) {
	now := time.Date(2024, 5, 30, 15, 0, 0, 0, time.UTC)
	at := func(days int) models.ApplicationBase {
		return models.ApplicationBase{AppliedAt: now.AddDate(0, 0, -days)}
	}

	jobs := []models.Application{
		&models.JobApplication{ApplicationBase: at(0)},
		&models.JobApplication{ApplicationBase: at(0)},
		&models.JobApplication{ApplicationBase: at(29)},
		&models.JobApplication{ApplicationBase: at(30)},
	}
	spontaneous := []models.Application{
		&models.SpontaneousApplication{ApplicationBase: at(1)},
	}

	points := BuildTimeline(jobs, spontaneous, now, TimelineDays)
	require.Len(t, points, 30)

	assert.Equal(t, "2024-05-01", points[0].Date)
	assert.Equal(t, 1, points[0].Job)
	assert.Equal(t, "2024-05-30", points[29].Date)
	assert.Equal(t, 2, points[29].Job)
	assert.Equal(t, 2, points[29].Total)
	assert.Equal(t, 1, points[28].Spontaneous)
}
