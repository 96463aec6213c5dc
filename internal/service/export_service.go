package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ignatzorin/agency-site/internal/domain/valueobject"
	"github.com/ignatzorin/agency-site/internal/models"
	"github.com/ignatzorin/agency-site/internal/pkg/apperror"
)

// XLSXContentType: MIME-тип выгрузки.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportFile: готовая выгрузка.
type ExportFile struct {
	Name string
	Data []byte
	Rows int
}

// ExportService выгружает отфильтрованные отклики текущей вкладки в XLSX.
type ExportService struct {
	dashboard *DashboardService
	audit     *AuditService
	now       func() time.Time
}

func NewExportService(dashboard *DashboardService, audit *AuditService) *ExportService {
	return &ExportService{dashboard: dashboard, audit: audit, now: time.Now}
}

// Applications строит книгу с одним листом: заголовок и по строке на отклик,
// в том порядке, в котором их отдал API.
func (s *ExportService) Applications(ctx context.Context, sess *ConsoleSession) (*ExportFile, error) {
	kind, criteria, apps := s.dashboard.Filtered(ctx, sess)

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Applications"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to build export")
	}

	header := exportHeader(kind)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to build export")
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to build export")
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	_ = f.SetCellStyle(sheet, "A1", lastCol+"1", bold)
	_ = f.SetColWidth(sheet, "A", lastCol, 22)

	for i, app := range apps {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := exportRow(app)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to build export")
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "failed to write export")
	}

	details := fmt.Sprintf("tab=%s search=%q status=%s days=%s job=%s rows=%d",
		kind, criteria.Query, criteria.Status, criteria.DateRange, criteria.Category, len(apps))
	s.audit.Record(ctx, sess, models.AuditExport, TargetKind(kind), "", details, true)

	return &ExportFile{
		Name: fmt.Sprintf("%s-applications-%s.xlsx", kind, s.now().UTC().Format("2006-01-02")),
		Data: buf.Bytes(),
		Rows: len(apps),
	}, nil
}

func exportHeader(kind valueobject.ApplicationKind) []any {
	if kind == valueobject.KindSpontaneous {
		return []any{"Name", "Email", "Status", "Applied At", "Resume"}
	}
	return []any{"Name", "Email", "Job", "Department", "Status", "Applied At", "Resume", "Cover Letter"}
}

func exportRow(app models.Application) []any {
	b := app.Base()
	applied := b.AppliedAt.UTC().Format("2006-01-02 15:04")

	if job, ok := app.(*models.JobApplication); ok {
		return []any{b.ApplicantName, b.ApplicantEmail, job.JobTitle, job.Department, app.StatusValue(), applied, b.ResumeURL, job.CoverLetter}
	}
	return []any{b.ApplicantName, b.ApplicantEmail, app.StatusValue(), applied, b.ResumeURL}
}
