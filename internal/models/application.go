package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ignatzorin/agency-site/internal/domain/valueobject"
)

// Application: отклик кандидата. Реализации: JobApplication и SpontaneousApplication,
// у каждой свой словарь статусов.
type Application interface {
	Kind() valueobject.ApplicationKind
	Base() *ApplicationBase
	StatusValue() string
	StatusVariant() valueobject.Variant
	SearchFields() []string
	CategoryValue() string
	Timestamp() time.Time
}

// ApplicationBase содержит поля, общие для обоих видов откликов.
type ApplicationBase struct {
	ID             string    `json:"id"`
	ApplicantName  string    `json:"applicantName"`
	ApplicantEmail string    `json:"applicantEmail"`
	ResumeURL      string    `json:"resumeUrl"`
	AppliedAt      time.Time `json:"appliedAt"`
}

// JobApplication: отклик на конкретную вакансию.
type JobApplication struct {
	ApplicationBase
	JobID       FlexString            `json:"jobId,omitempty"`
	JobTitle    string                `json:"jobTitle,omitempty"`
	Department  string                `json:"department,omitempty"`
	CoverLetter string                `json:"coverLetter,omitempty"`
	Status      valueobject.JobStatus `json:"status"`
}

func (a *JobApplication) Kind() valueobject.ApplicationKind  { return valueobject.KindJob }
func (a *JobApplication) Base() *ApplicationBase             { return &a.ApplicationBase }
func (a *JobApplication) StatusValue() string                { return string(a.Status) }
func (a *JobApplication) StatusVariant() valueobject.Variant { return a.Status.Variant() }
func (a *JobApplication) CategoryValue() string              { return string(a.JobID) }
func (a *JobApplication) Timestamp() time.Time               { return a.AppliedAt }

func (a *JobApplication) SearchFields() []string {
	return []string{a.ApplicantName, a.ApplicantEmail, a.JobTitle}
}

func (a *JobApplication) UnmarshalJSON(data []byte) error {
	type alias JobApplication
	aux := struct {
		MongoID string `json:"_id"`
		*alias
	}{alias: (*alias)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if a.ID == "" {
		a.ID = aux.MongoID
	}
	return nil
}

func (a JobApplication) MarshalJSON() ([]byte, error) {
	type alias JobApplication
	return json.Marshal(struct {
		Type    valueobject.ApplicationKind `json:"type"`
		Variant valueobject.Variant         `json:"statusVariant"`
		alias
	}{valueobject.KindJob, a.Status.Variant(), alias(a)})
}

// SpontaneousApplication: резюме, отправленное без привязки к вакансии.
type SpontaneousApplication struct {
	ApplicationBase
	Status valueobject.SpontaneousStatus `json:"status"`
}

func (a *SpontaneousApplication) Kind() valueobject.ApplicationKind {
	return valueobject.KindSpontaneous
}
func (a *SpontaneousApplication) Base() *ApplicationBase             { return &a.ApplicationBase }
func (a *SpontaneousApplication) StatusValue() string                { return string(a.Status) }
func (a *SpontaneousApplication) StatusVariant() valueobject.Variant { return a.Status.Variant() }
func (a *SpontaneousApplication) CategoryValue() string              { return "" }
func (a *SpontaneousApplication) Timestamp() time.Time               { return a.AppliedAt }

func (a *SpontaneousApplication) SearchFields() []string {
	return []string{a.ApplicantName, a.ApplicantEmail}
}

func (a *SpontaneousApplication) UnmarshalJSON(data []byte) error {
	type alias SpontaneousApplication
	aux := struct {
		MongoID string `json:"_id"`
		*alias
	}{alias: (*alias)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if a.ID == "" {
		a.ID = aux.MongoID
	}
	return nil
}

func (a SpontaneousApplication) MarshalJSON() ([]byte, error) {
	type alias SpontaneousApplication
	return json.Marshal(struct {
		Type    valueobject.ApplicationKind `json:"type"`
		Variant valueobject.Variant         `json:"statusVariant"`
		alias
	}{valueobject.KindSpontaneous, a.Status.Variant(), alias(a)})
}

// DecodeApplications разбирает массив откликов нужного вида.
func DecodeApplications(kind valueobject.ApplicationKind, raw json.RawMessage) ([]Application, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []Application{}, nil
	}

	switch kind {
	case valueobject.KindJob:
		var items []*JobApplication
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("models: decode job applications: %w", err)
		}
		out := make([]Application, 0, len(items))
		for _, it := range items {
			out = append(out, it)
		}
		return out, nil
	case valueobject.KindSpontaneous:
		var items []*SpontaneousApplication
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("models: decode spontaneous applications: %w", err)
		}
		out := make([]Application, 0, len(items))
		for _, it := range items {
			out = append(out, it)
		}
		return out, nil
	}
	return nil, fmt.Errorf("models: unknown application kind %q", kind)
}

// FlexString принимает и строку, и число: jobId приходит из multipart как строка,
// а из базы API может вернуться числом.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("models: jobId must be string or number: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

// FlexStringFromInt: удобный конструктор для каталога вакансий.
func FlexStringFromInt(v int) FlexString {
	return FlexString(strconv.Itoa(v))
}
