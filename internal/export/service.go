// Package export renders report history as an XLSX workbook for download.
// It is a pure function of its inputs; storage and delivery belong to the
// caller.
package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tenderlens/tenderlens/constants"
	"github.com/tenderlens/tenderlens/internal/metrics"
)

type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ExportHistoryXLSX returns a workbook with a summary row per report, a
// detail row per compliance finding, and a row per extracted requirement.
func (s *Service) ExportHistoryXLSX(entries []metrics.HistoryEntry) ([]byte, error) {
	start := time.Now()
	f := excelize.NewFile()

	const summarySheet = "Reports"
	const findingsSheet = "Findings"
	const matrixSheet = "Requirements"

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(findingsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(matrixSheet); err != nil {
		return nil, err
	}

	summaryHeaders := []string{"Source Document", "Report Kind", "Project Title", "Compliance %", "Findings", "Created At"}
	for i, h := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(summarySheet, cell, h)
	}
	findingHeaders := []string{"Source Document", "Requirement", "Compliance", "Score", "Comment"}
	for i, h := range findingHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(findingsSheet, cell, h)
	}
	matrixHeaders := []string{"Source Document", "Requirement", "Category", "Strictness", "Details"}
	for i, h := range matrixHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(matrixSheet, cell, h)
	}

	summaryRow := 2
	findingRow := 2
	matrixRow := 2
	for _, e := range entries {
		write := func(sheet string, row, col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		title := ""
		score := ""
		findings := 0
		switch e.Report.Kind {
		case constants.ReportCompliance:
			if r := e.Report.Compliance; r != nil {
				title = r.ProjectTitle
				score = fmt.Sprintf("%.1f", metrics.CompliancePercentage(r))
				findings = len(r.Findings)
			}
		case constants.ReportExtraction:
			if r := e.Report.Extraction; r != nil {
				title = r.ProjectEssence.Title
				findings = len(r.ComplianceMatrix)
			}
		}

		write(summarySheet, summaryRow, 1, e.SourceName)
		write(summarySheet, summaryRow, 2, string(e.Report.Kind))
		write(summarySheet, summaryRow, 3, title)
		write(summarySheet, summaryRow, 4, score)
		write(summarySheet, summaryRow, 5, findings)
		if !e.CreatedAt.IsZero() {
			write(summarySheet, summaryRow, 6, e.CreatedAt.UTC().Format(time.RFC3339))
		}
		summaryRow++

		if e.Report.Kind == constants.ReportCompliance && e.Report.Compliance != nil {
			for _, fd := range e.Report.Compliance.Findings {
				write(findingsSheet, findingRow, 1, e.SourceName)
				write(findingsSheet, findingRow, 2, fd.Requirement)
				write(findingsSheet, findingRow, 3, string(fd.Compliance))
				write(findingsSheet, findingRow, 4, fd.ComplianceScore)
				write(findingsSheet, findingRow, 5, fd.Comment)
				findingRow++
			}
		}

		if e.Report.Kind == constants.ReportExtraction && e.Report.Extraction != nil {
			for _, entry := range e.Report.Extraction.ComplianceMatrix {
				// Stored entries may predate the strict category enum.
				category, _ := constants.CanonicalizeCategory(string(entry.Category))
				write(matrixSheet, matrixRow, 1, e.SourceName)
				write(matrixSheet, matrixRow, 2, entry.Requirement)
				write(matrixSheet, matrixRow, 3, string(category))
				write(matrixSheet, matrixRow, 4, string(entry.Strictness))
				write(matrixSheet, matrixRow, 5, entry.Details)
				matrixRow++
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Info("export.history.ok",
		"reports", len(entries),
		"findings", findingRow-2,
		"requirements", matrixRow-2,
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
