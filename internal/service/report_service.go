package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/govdesk/front-office-api/internal/models"
	appErrors "github.com/govdesk/front-office-api/pkg/errors"
	"github.com/govdesk/front-office-api/pkg/export"
	"github.com/govdesk/front-office-api/pkg/storage"
)

type reportSource interface {
	ListForReport(ctx context.Context, from, to time.Time) ([]models.AppointmentDetail, error)
}

// ReportFormat selects the rendered output type.
type ReportFormat string

// Supported report formats.
const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// ReportResult describes a generated report file and its download token.
type ReportResult struct {
	Filename  string    `json:"filename"`
	Format    string    `json:"format"`
	Rows      int       `json:"rows"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ReportService renders appointment registers to CSV or PDF files and issues
// signed download tokens for them.
type ReportService struct {
	source reportSource
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	store  *storage.LocalStorage
	signer *storage.SignedURLSigner
	logger *zap.Logger
}

// NewReportService constructs the report service.
func NewReportService(source reportSource, store *storage.LocalStorage, signer *storage.SignedURLSigner, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		source: source,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		store:  store,
		signer: signer,
		logger: logger,
	}
}

// Generate renders the appointment register for the date range and stores the
// file for signed download.
func (s *ReportService) Generate(ctx context.Context, from, to time.Time, format ReportFormat) (*ReportResult, error) {
	if to.Before(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "report range end precedes start")
	}

	rows, err := s.source.ListForReport(ctx, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report data")
	}

	dataset := buildReportDataset(rows)

	var payload []byte
	switch format {
	case ReportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case ReportFormatPDF:
		title := fmt.Sprintf("Appointment Register %s to %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
		payload, err = s.pdf.Render(dataset, title)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported report format")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}

	id := uuid.NewString()
	filename := fmt.Sprintf("appointments-%s-%s.%s", from.Format("20060102"), to.Format("20060102"), format)
	ref := fmt.Sprintf("%s-%s", id, filename)
	if _, err := s.store.Save(ref, payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store report")
	}

	token, expiresAt, err := s.signer.Generate(id, ref)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign report url")
	}

	return &ReportResult{
		Filename:  filename,
		Format:    string(format),
		Rows:      len(rows),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// OpenByToken validates a signed token and opens the stored report file.
func (s *ReportService) OpenByToken(token string) (string, *os.File, error) {
	_, ref, _, err := s.signer.Parse(token, false)
	if err != nil {
		return "", nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token")
	}
	file, err := s.store.Open(ref)
	if err != nil {
		return "", nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open report file")
	}
	return ref, file, nil
}

// Cleanup removes report files older than the TTL.
func (s *ReportService) Cleanup(ttl time.Duration) {
	removed, err := s.store.CleanupOlderThan(ttl)
	if err != nil {
		s.logger.Sugar().Warnw("report cleanup failed", "error", err)
		return
	}
	if len(removed) > 0 {
		s.logger.Sugar().Infow("removed expired report files", "count", len(removed))
	}
}

func buildReportDataset(rows []models.AppointmentDetail) export.Dataset {
	dataset := export.Dataset{
		Headers: []string{"Date", "Client", "Contact", "Nature", "Officer", "Status", "Rating", "Sentiment"},
	}
	for _, row := range rows {
		rating := ""
		if row.Rating != nil {
			rating = fmt.Sprintf("%d", *row.Rating)
		}
		sentiment := ""
		if row.SentimentLabel != nil {
			sentiment = string(*row.SentimentLabel)
		}
		dataset.Rows = append(dataset.Rows, []string{
			row.AppointmentDate.Format("2006-01-02"),
			row.ClientName,
			row.ClientContact,
			row.NatureName,
			row.OfficerName,
			string(row.Status),
			rating,
			sentiment,
		})
	}
	return dataset
}
