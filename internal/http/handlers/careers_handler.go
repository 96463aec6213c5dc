package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/agency-site/internal/domain/valueobject"
	"github.com/ignatzorin/agency-site/internal/interface/http/response"
	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
	"github.com/ignatzorin/agency-site/internal/service"
)

// multipartOverhead: запас на текстовые поля формы сверх лимита файла.
const multipartOverhead = 1 << 20

// ApplicationSubmitter принимает отклик с сайта.
type ApplicationSubmitter interface {
	Submit(ctx context.Context, form service.ApplicationForm) (*service.Receipt, error)
}

// CareersHandler принимает отклики на вакансии и резюме в кадровый резерв.
type CareersHandler struct {
	careers   ApplicationSubmitter
	maxUpload int64
}

func NewCareersHandler(careers ApplicationSubmitter, maxResumeBytes int64) *CareersHandler {
	return &CareersHandler{careers: careers, maxUpload: maxResumeBytes}
}

// Submit обрабатывает POST /api/applications/:kind (multipart).
func (h *CareersHandler) Submit(c *gin.Context) {
	kind, err := valueobject.NewApplicationKind(c.Param("kind"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+multipartOverhead)
	if err := c.Request.ParseMultipartForm(multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, apperror.New(apperror.ErrCodeTooLarge,
				"Please upload a file smaller than "+strconv.FormatInt(h.maxUpload/(1024*1024), 10)+"MB"))
			return
		}
		response.Error(c, apperror.Validation("request must be multipart/form-data"))
		return
	}

	form := service.ApplicationForm{
		Kind:        kind,
		Name:        c.PostForm("applicantName"),
		Email:       c.PostForm("applicantEmail"),
		CoverLetter: c.PostForm("coverLetter"),
	}
	if kind == valueobject.KindJob {
		jobID, err := strconv.Atoi(strings.TrimSpace(c.PostForm("jobId")))
		if err != nil || jobID <= 0 {
			response.Error(c, apperror.Validation("Please select a position"))
			return
		}
		form.JobID = jobID
	}

	fh, err := c.FormFile("resume")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.Error(c, apperror.ErrResumeRequired)
			return
		}
		response.Error(c, apperror.Validation("could not read the uploaded resume"))
		return
	}
	file, err := fh.Open()
	if err != nil {
		response.Error(c, apperror.Wrap(err, apperror.ErrCodeInternal, "could not read the uploaded resume"))
		return
	}
	defer file.Close()

	form.ResumeName = fh.Filename
	form.ResumeSize = fh.Size
	form.Resume = file

	receipt, err := h.careers.Submit(c.Request.Context(), form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, receipt)
}
