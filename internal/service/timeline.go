package service

import (
	"time"

	"github.com/ignatzorin/agency-site/internal/models"
)

// TimelineDays: глубина графика откликов.
const TimelineDays = 30

// BuildTimeline раскладывает отклики по дням (UTC) за последние days дней,
// самый старый день первым. Отклики вне окна не учитываются.
func BuildTimeline(jobs, spontaneous []models.Application, now time.Time, days int) []models.TimelinePoint {
	if days <= 0 {
		days = TimelineDays
	}

	today := now.UTC().Truncate(24 * time.Hour)
	points := make([]models.TimelinePoint, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i-days+1).Format(time.DateOnly)
		points[i] = models.TimelinePoint{Date: date}
		index[date] = i
	}

	count := func(apps []models.Application, job bool) {
		for _, app := range apps {
			i, ok := index[app.Timestamp().UTC().Format(time.DateOnly)]
			if !ok {
				continue
			}
			if job {
				points[i].Job++
			} else {
				points[i].Spontaneous++
			}
			points[i].Total++
		}
	}
	count(jobs, true)
	count(spontaneous, false)

	return points
}
