package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/campus-ops/reservation-console/internal/dto"
	"github.com/campus-ops/reservation-console/internal/models"
	appErrors "github.com/campus-ops/reservation-console/pkg/errors"
	"github.com/campus-ops/reservation-console/pkg/export"
)

// ExportFormat enumerates supported report encodings.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportArtifact is a rendered report ready for download.
type ExportArtifact struct {
	Filename    string
	ContentType string
	Content     []byte
}

type conflictLister interface {
	List(ctx context.Context, session models.Session, query dto.ConflictQuery) (*dto.ConflictListResponse, error)
}

// ExportService renders the grouped conflict review into downloadable
// reports.
type ExportService struct {
	conflicts conflictLister
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	logger    *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(conflicts conflictLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		conflicts: conflicts,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
	}
}

var conflictReportHeaders = []string{"Type", "Resource", "Date", "Time", "Events", "Conflicts", "Description", "Suggested Actions"}

// ConflictReport fetches the current grouped conflicts and renders them.
func (s *ExportService) ConflictReport(ctx context.Context, session models.Session, format ExportFormat) (*ExportArtifact, error) {
	listing, err := s.conflicts.List(ctx, session, dto.ConflictQuery{Grouped: true})
	if err != nil {
		return nil, err
	}

	data := export.Dataset{Headers: conflictReportHeaders}
	for _, g := range listing.Groups {
		data.Rows = append(data.Rows, map[string]string{
			"Type":              string(g.Type),
			"Resource":          g.Resource,
			"Date":              g.Date,
			"Time":              g.TimeRange,
			"Events":            strconv.Itoa(len(g.EventIDs)),
			"Conflicts":         strconv.Itoa(len(g.Conflicts)),
			"Description":       g.Description,
			"Suggested Actions": strings.Join(g.Suggestions, "; "),
		})
	}

	stamp := time.Now().Format("2006-01-02")
	switch format {
	case ExportFormatCSV:
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv report")
		}
		return &ExportArtifact{
			Filename:    fmt.Sprintf("conflict-report-%s.csv", stamp),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case ExportFormatPDF:
		content, err := s.pdf.Render(data, "Conflict Report")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf report")
		}
		return &ExportArtifact{
			Filename:    fmt.Sprintf("conflict-report-%s.pdf", stamp),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}
