package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ignatzorin/agency-site/internal/apiclient"
	"github.com/ignatzorin/agency-site/internal/domain/valueobject"
	"github.com/ignatzorin/agency-site/internal/logger"
	"github.com/ignatzorin/agency-site/internal/models"
	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
	"github.com/ignatzorin/agency-site/internal/storage"
	"github.com/ignatzorin/agency-site/internal/validation"
)

// connectionErrorMessage: текст для ошибок сети до внешнего API.
const connectionErrorMessage = "Failed to connect to server. Please check your internet connection."

// SubmissionAPI отправляет публичные формы во внешний API.
type SubmissionAPI interface {
	SubmitApplication(ctx context.Context, s apiclient.Submission) error
	SubmitContact(ctx context.Context, in models.ContactInput) error
}

// JobLookup находит вакансию в каталоге.
type JobLookup interface {
	Job(id int) (*models.JobListing, error)
}

// ResumeSpool: временное хранилище резюме.
type ResumeSpool interface {
	MaxBytes() int64
	Spool(ctx context.Context, originalName string, r io.Reader) (*storage.SpooledFile, error)
	Open(file *storage.SpooledFile) (io.ReadSeekCloser, error)
	Delete(file *storage.SpooledFile) error
}

// ApplicationForm: поля формы отклика.
type ApplicationForm struct {
	Kind        valueobject.ApplicationKind
	JobID       int
	Name        string
	Email       string
	CoverLetter string
	ResumeName  string
	ResumeSize  int64
	Resume      io.Reader
}

// Receipt: подтверждение для посетителя сайта.
type Receipt struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// CareersService принимает отклики с публичного сайта.
type CareersService struct {
	api     SubmissionAPI
	jobs    JobLookup
	resumes ResumeSpool
}

// NewCareersService создаёт сервис откликов.
func NewCareersService(api SubmissionAPI, jobs JobLookup, resumes ResumeSpool) *CareersService {
	return &CareersService{api: api, jobs: jobs, resumes: resumes}
}

// Submit проверяет форму и резюме и пересылает отклик в API. Резюме живёт на диске
// только до конца вызова.
func (s *CareersService) Submit(ctx context.Context, form ApplicationForm) (*Receipt, error) {
	if !form.Kind.IsValid() {
		return nil, apperror.Validation("unknown application type " + string(form.Kind))
	}

	sub := apiclient.Submission{
		Kind:           form.Kind,
		ApplicantName:  plainText(form.Name),
		ApplicantEmail: plainText(form.Email),
	}

	if form.Kind == valueobject.KindJob {
		job, err := s.jobs.Job(form.JobID)
		if err != nil {
			return nil, err
		}
		sub.JobID = fmt.Sprint(job.ID)
		sub.JobTitle = job.Title
		sub.Department = job.Department
		sub.CoverLetter = plainText(form.CoverLetter)
	}

	if err := validation.ValidateApplicant(sub.ApplicantName, sub.ApplicantEmail, sub.CoverLetter); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	if form.Resume == nil || form.ResumeSize <= 0 {
		return nil, apperror.ErrResumeRequired
	}
	if form.ResumeSize > s.resumes.MaxBytes() {
		return nil, s.tooLarge()
	}

	spooled, err := s.resumes.Spool(ctx, form.ResumeName, form.Resume)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, s.tooLarge()
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to store resume")
	}
	defer func() {
		if err := s.resumes.Delete(spooled); err != nil {
			logger.WithComponent("careers").WithError(err).Warn("failed to delete spooled resume")
		}
	}()

	f, err := s.resumes.Open(spooled)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to read resume")
	}
	defer f.Close()

	header := make([]byte, validation.HeaderSize)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to read resume")
	}
	if err := validation.ValidateResume(spooled.Name, spooled.Size, s.resumes.MaxBytes(), header[:n]); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to read resume")
	}

	sub.ResumeName = spooled.Name
	sub.Resume = f

	if err := s.api.SubmitApplication(ctx, sub); err != nil {
		fallback := "Failed to submit application. Please try again."
		if form.Kind == valueobject.KindSpontaneous {
			fallback = "Failed to submit resume. Please try again."
		}
		logger.WithComponent("careers").WithError(err).WithField("kind", form.Kind).Warn("application submission failed")
		return nil, submissionError(err, fallback)
	}

	if form.Kind == valueobject.KindSpontaneous {
		return &Receipt{Title: "Resume submitted!", Message: "We've received your resume and will keep you in our talent pool."}, nil
	}
	return &Receipt{Title: "Application submitted!", Message: "We've received your application and will review it shortly."}, nil
}

func (s *CareersService) tooLarge() error {
	return apperror.New(apperror.ErrCodeTooLarge, fmt.Sprintf("Please upload a file smaller than %dMB", s.resumes.MaxBytes()/(1024*1024)))
}

// submissionError переводит ошибку API в ответ посетителю: отказ API с 4xx
// остаётся ошибкой запроса, сеть и 5xx считаются ошибкой внешней системы.
func submissionError(err error, fallback string) error {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		code := apperror.ErrCodeUpstream
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			code = apperror.ErrCodeBadRequest
		}
		return apperror.Wrap(err, code, apiclient.UserMessage(err, fallback))
	}
	if errors.Is(err, apiclient.ErrDecode) {
		return apperror.Wrap(err, apperror.ErrCodeUpstream, fallback)
	}
	return apperror.Wrap(err, apperror.ErrCodeUpstream, connectionErrorMessage)
}
