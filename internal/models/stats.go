package models

import "encoding/json"

// StatusCount: одна корзина агрегата по статусу.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// UnmarshalJSON принимает форму агрегата {_id, count}.
func (s *StatusCount) UnmarshalJSON(data []byte) error {
	var aux struct {
		MongoID string `json:"_id"`
		Status  string `json:"status"`
		Count   int    `json:"count"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.Status = aux.Status
	if s.Status == "" {
		s.Status = aux.MongoID
	}
	s.Count = aux.Count
	return nil
}

// ApplicationTotals: общее количество откликов.
type ApplicationTotals struct {
	All         int `json:"all"`
	Job         int `json:"job"`
	Spontaneous int `json:"spontaneous"`
}

// ApplicationStats: ответ GET /applications/stats.
type ApplicationStats struct {
	Total                           ApplicationTotals `json:"total"`
	JobApplicationsByStatus         []StatusCount     `json:"jobApplicationsByStatus"`
	SpontaneousApplicationsByStatus []StatusCount     `json:"spontaneousApplicationsByStatus"`
}

// JobCount возвращает количество вакансионных откликов в статусе.
func (s *ApplicationStats) JobCount(status string) int {
	return countOf(s.JobApplicationsByStatus, status)
}

// SpontaneousCount возвращает количество инициативных откликов в статусе.
func (s *ApplicationStats) SpontaneousCount(status string) int {
	return countOf(s.SpontaneousApplicationsByStatus, status)
}

func countOf(buckets []StatusCount, status string) int {
	for _, b := range buckets {
		if b.Status == status {
			return b.Count
		}
	}
	return 0
}

// ContactStats: ответ GET /contacts/stats.
type ContactStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
}

// TimelinePoint: количество откликов за один день.
type TimelinePoint struct {
	Date        string `json:"date"`
	Job         int    `json:"job"`
	Spontaneous int    `json:"spontaneous"`
	Total       int    `json:"total"`
}
