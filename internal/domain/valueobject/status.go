package valueobject

import (
	"strings"

	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
)

// ApplicationKind различает вакансионные и инициативные отклики.
// Значение совпадает с сегментом пути во внешнем API.
type ApplicationKind string

const (
	KindJob         ApplicationKind = "job"
	KindSpontaneous ApplicationKind = "spontaneous"
)

func (k ApplicationKind) IsValid() bool {
	return k == KindJob || k == KindSpontaneous
}

func NewApplicationKind(kind string) (ApplicationKind, error) {
	k := ApplicationKind(strings.ToLower(strings.TrimSpace(kind)))
	if !k.IsValid() {
		return "", apperror.Validation("unknown application type " + kind)
	}
	return k, nil
}

// Variant: стиль бейджа статуса в интерфейсе.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
	VariantDanger  Variant = "danger"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
	VariantMuted   Variant = "muted"
	VariantAccent  Variant = "accent"
)

type JobStatus string

const (
	JobStatusPending     JobStatus = "pending"
	JobStatusReviewed    JobStatus = "reviewed"
	JobStatusShortlisted JobStatus = "shortlisted"
	JobStatusRejected    JobStatus = "rejected"
)

// JobStatuses: словарь статусов в порядке отображения.
var JobStatuses = []JobStatus{JobStatusPending, JobStatusReviewed, JobStatusShortlisted, JobStatusRejected}

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusReviewed, JobStatusShortlisted, JobStatusRejected:
		return true
	}
	return false
}

// Advance: действие «Mark as …» из карточки отклика.
func (s JobStatus) Advance() JobStatus {
	if s == JobStatusPending {
		return JobStatusReviewed
	}
	return JobStatusShortlisted
}

func (s JobStatus) Variant() Variant {
	switch s {
	case JobStatusPending:
		return VariantWarning
	case JobStatusReviewed:
		return VariantInfo
	case JobStatusShortlisted:
		return VariantSuccess
	case JobStatusRejected:
		return VariantDanger
	}
	return VariantDefault
}

func NewJobStatus(status string) (JobStatus, error) {
	s := JobStatus(status)
	if !s.IsValid() {
		return "", apperror.Validation("invalid job application status " + status)
	}
	return s, nil
}

type SpontaneousStatus string

const (
	SpontaneousStatusPending   SpontaneousStatus = "pending"
	SpontaneousStatusReviewed  SpontaneousStatus = "reviewed"
	SpontaneousStatusContacted SpontaneousStatus = "contacted"
	SpontaneousStatusArchived  SpontaneousStatus = "archived"
)

var SpontaneousStatuses = []SpontaneousStatus{
	SpontaneousStatusPending, SpontaneousStatusReviewed, SpontaneousStatusContacted, SpontaneousStatusArchived,
}

func (s SpontaneousStatus) IsValid() bool {
	switch s {
	case SpontaneousStatusPending, SpontaneousStatusReviewed, SpontaneousStatusContacted, SpontaneousStatusArchived:
		return true
	}
	return false
}

// Advance ведёт pending → reviewed, всё остальное → contacted:
// shortlisted в словаре инициативных откликов нет.
func (s SpontaneousStatus) Advance() SpontaneousStatus {
	if s == SpontaneousStatusPending {
		return SpontaneousStatusReviewed
	}
	return SpontaneousStatusContacted
}

func (s SpontaneousStatus) Variant() Variant {
	switch s {
	case SpontaneousStatusPending:
		return VariantWarning
	case SpontaneousStatusReviewed:
		return VariantInfo
	case SpontaneousStatusContacted:
		return VariantAccent
	case SpontaneousStatusArchived:
		return VariantMuted
	}
	return VariantDefault
}

func NewSpontaneousStatus(status string) (SpontaneousStatus, error) {
	s := SpontaneousStatus(status)
	if !s.IsValid() {
		return "", apperror.Validation("invalid spontaneous application status " + status)
	}
	return s, nil
}

type ContactStatus string

const (
	ContactStatusPending ContactStatus = "pending"
	ContactStatusRead    ContactStatus = "read"
	ContactStatusReplied ContactStatus = "replied"
	ContactStatusSpam    ContactStatus = "spam"
)

var ContactStatuses = []ContactStatus{ContactStatusPending, ContactStatusRead, ContactStatusReplied, ContactStatusSpam}

func (s ContactStatus) IsValid() bool {
	switch s {
	case ContactStatusPending, ContactStatusRead, ContactStatusReplied, ContactStatusSpam:
		return true
	}
	return false
}

func (s ContactStatus) Advance() ContactStatus {
	if s == ContactStatusPending {
		return ContactStatusRead
	}
	return ContactStatusReplied
}

func (s ContactStatus) Variant() Variant {
	switch s {
	case ContactStatusPending:
		return VariantWarning
	case ContactStatusRead:
		return VariantInfo
	case ContactStatusReplied:
		return VariantSuccess
	case ContactStatusSpam:
		return VariantDanger
	}
	return VariantDefault
}

func NewContactStatus(status string) (ContactStatus, error) {
	s := ContactStatus(status)
	if !s.IsValid() {
		return "", apperror.Validation("invalid contact status " + status)
	}
	return s, nil
}

// ValidateApplicationStatus проверяет статус по словарю нужного вида отклика.
func ValidateApplicationStatus(kind ApplicationKind, status string) error {
	switch kind {
	case KindJob:
		_, err := NewJobStatus(status)
		return err
	case KindSpontaneous:
		_, err := NewSpontaneousStatus(status)
		return err
	}
	return apperror.Validation("unknown application type " + string(kind))
}
