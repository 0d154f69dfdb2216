package service

import (
	"context"
	"fmt"
	"strconv"

	appErrors "github.com/classhub-id/academic-eval-api/pkg/errors"
	"github.com/classhub-id/academic-eval-api/pkg/export"
)

// ExportFormat selects the rendering backend for summary exports.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportFile is a rendered export ready for download.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders class exam summaries into downloadable files. The
// summary is always recomputed via SummaryService first; exports never read
// stored summary columns directly.
type ExportService struct {
	summaries *SummaryService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
}

// NewExportService constructs ExportService.
func NewExportService(summaries *SummaryService) *ExportService {
	return &ExportService{
		summaries: summaries,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
	}
}

// ClassExamSummary renders the class exam summary as CSV or PDF.
func (s *ExportService) ClassExamSummary(ctx context.Context, classNumber int, examinationID string, format ExportFormat) (*ExportFile, error) {
	summary, _, err := s.summaries.ClassExam(ctx, classNumber, examinationID)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"Subject", "Students", "Passed", "Failed", "Absent", "Obtained", "Total", "Average %"},
	}
	for _, subject := range summary.Subjects {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Subject":   subject.SubjectID,
			"Students":  strconv.Itoa(subject.TotalStudents),
			"Passed":    strconv.Itoa(subject.Passed),
			"Failed":    strconv.Itoa(subject.Failed),
			"Absent":    strconv.Itoa(subject.Absent),
			"Obtained":  strconv.FormatFloat(subject.TotalObtained, 'f', 2, 64),
			"Total":     strconv.FormatFloat(subject.TotalMarks, 'f', 2, 64),
			"Average %": subject.AveragePercentage.String(),
		})
	}

	base := fmt.Sprintf("class-%d-exam-%s-summary", classNumber, examinationID)
	switch format {
	case ExportFormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to render csv export")
		}
		return &ExportFile{Content: content, ContentType: "text/csv", Filename: base + ".csv"}, nil
	case ExportFormatPDF:
		title := fmt.Sprintf("Class %d Examination %s", classNumber, examinationID)
		content, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Internal(err, "failed to render pdf export")
		}
		return &ExportFile{Content: content, ContentType: "application/pdf", Filename: base + ".pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
