// Package export writes recruiter application lists to Google Sheets.
package export

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/honeycarbs/jobzone/internal/domain"
)

const defaultTab = "Applications"

// valuesWriter describes the subset of the sheets client used by the exporter.
type valuesWriter interface {
	AppendValues(ctx context.Context, spreadsheetID, rng string, values [][]any) (int, error)
	UpdateValues(ctx context.Context, spreadsheetID, rng string, values [][]any) (int, error)
	ClearValues(ctx context.Context, spreadsheetID, rng string) error
}

// Target is the destination of an export
type Target struct {
	SpreadsheetID string
	Tab           string
	Replace       bool // clear the tab and write a header row first
}

// Result summarizes a finished export
type Result struct {
	SpreadsheetID string    `json:"spreadsheet_id"`
	Tab           string    `json:"tab"`
	Mode          string    `json:"mode"`
	WrittenRows   int       `json:"written_rows"`
	CompletedAt   time.Time `json:"completed_at"`
}

// Header is the first row written in replace mode
var Header = []any{"Application ID", "Job", "Location", "Candidate", "Email", "Resume", "Status", "Applied At"}

// Exporter writes applications as sheet rows
type Exporter struct {
	writer valuesWriter
	clock  func() time.Time
}

// New builds an Exporter; a nil writer means export is not configured
func New(writer valuesWriter) *Exporter {
	return &Exporter{writer: writer, clock: time.Now}
}

// Configured reports whether a sheets client is available
func (e *Exporter) Configured() bool {
	return e != nil && e.writer != nil
}

// Export writes apps to target
func (e *Exporter) Export(ctx context.Context, target Target, apps []domain.Application) (Result, error) {
	if !e.Configured() {
		return Result{}, domain.NewValidationError("Google Sheets export is not configured", nil)
	}
	if target.SpreadsheetID == "" {
		return Result{}, domain.NewValidationError("spreadsheet id is required", map[string]string{"spreadsheet_id": "required"})
	}

	tab := target.Tab
	if tab == "" {
		tab = defaultTab
	}
	result := Result{SpreadsheetID: target.SpreadsheetID, Tab: tab, Mode: "append"}

	rows := Rows(apps)
	if target.Replace {
		result.Mode = "replace"
		if err := e.writer.ClearValues(ctx, target.SpreadsheetID, tab+"!A:Z"); err != nil {
			return result, fmt.Errorf("export: %w", err)
		}
		values := append([][]any{Header}, rows...)
		if _, err := e.writer.UpdateValues(ctx, target.SpreadsheetID, tab+"!A1", values); err != nil {
			return result, fmt.Errorf("export: %w", err)
		}
		result.WrittenRows = len(rows)
	} else if len(rows) > 0 {
		if _, err := e.writer.AppendValues(ctx, target.SpreadsheetID, tab+"!A1", rows); err != nil {
			return result, fmt.Errorf("export: %w", err)
		}
		result.WrittenRows = len(rows)
	}

	result.CompletedAt = e.clock().UTC()
	return result, nil
}

// Rows converts applications to sheet rows in list order
func Rows(apps []domain.Application) [][]any {
	values := make([][]any, len(apps))
	for i, a := range apps {
		applied := ""
		if !a.AppliedAt.IsZero() {
			applied = a.AppliedAt.UTC().Format(time.RFC3339)
		}
		values[i] = []any{
			strconv.FormatInt(a.ID, 10),
			a.JobTitle,
			a.JobLocation,
			a.CandidateName,
			a.CandidateEmail,
			a.ResumeURL,
			string(a.Status),
			applied,
		}
	}
	return values
}
