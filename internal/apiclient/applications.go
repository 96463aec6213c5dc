package apiclient

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/ignatzorin/agency-site/internal/domain/valueobject"
	"github.com/ignatzorin/agency-site/internal/models"
)

// Submission: данные формы отклика, которые уходят в API как multipart.
type Submission struct {
	Kind           valueobject.ApplicationKind
	JobID          string
	JobTitle       string
	Department     string
	ApplicantName  string
	ApplicantEmail string
	CoverLetter    string
	ResumeName     string
	Resume         io.Reader
}

func (s Submission) formData() map[string]string {
	fields := map[string]string{
		"applicantName":  s.ApplicantName,
		"applicantEmail": s.ApplicantEmail,
	}
	if s.Kind == valueobject.KindJob {
		fields["jobId"] = s.JobID
		fields["jobTitle"] = s.JobTitle
		fields["department"] = s.Department
		fields["coverLetter"] = s.CoverLetter
	}
	return fields
}

// ListApplications загружает полную коллекцию откликов одного вида.
func (c *Client) ListApplications(ctx context.Context, kind valueobject.ApplicationKind) ([]models.Application, error) {
	env, err := c.do(ctx, http.MethodGet, "/applications/{kind}", func(r *resty.Request) {
		r.SetPathParam("kind", string(kind))
	})
	if err != nil {
		return nil, err
	}
	items, err := models.DecodeApplications(kind, env.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return items, nil
}

// ApplicationStats загружает агрегаты по статусам.
func (c *Client) ApplicationStats(ctx context.Context) (*models.ApplicationStats, error) {
	env, err := c.do(ctx, http.MethodGet, "/applications/stats", nil)
	if err != nil {
		return nil, err
	}
	var stats models.ApplicationStats
	if err := decodeData(env, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// UpdateApplicationStatus отправляет PATCH /applications/{kind}/{id}/status.
func (c *Client) UpdateApplicationStatus(ctx context.Context, kind valueobject.ApplicationKind, id, status string) error {
	_, err := c.do(ctx, http.MethodPatch, "/applications/{kind}/{id}/status", func(r *resty.Request) {
		r.SetPathParams(map[string]string{"kind": string(kind), "id": id}).
			SetBody(map[string]string{"status": status})
	})
	return err
}

// DeleteApplication удаляет отклик.
func (c *Client) DeleteApplication(ctx context.Context, kind valueobject.ApplicationKind, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/applications/{kind}/{id}", func(r *resty.Request) {
		r.SetPathParams(map[string]string{"kind": string(kind), "id": id})
	})
	return err
}

// SubmitApplication отправляет отклик с резюме.
func (c *Client) SubmitApplication(ctx context.Context, s Submission) error {
	if !s.Kind.IsValid() {
		return fmt.Errorf("apiclient: unknown application kind %q", s.Kind)
	}
	_, err := c.do(ctx, http.MethodPost, "/applications/{kind}", func(r *resty.Request) {
		r.SetPathParam("kind", string(s.Kind)).
			SetMultipartFormData(s.formData())
		if s.Resume != nil {
			r.SetFileReader("resume", s.ResumeName, s.Resume)
		}
	})
	return err
}
