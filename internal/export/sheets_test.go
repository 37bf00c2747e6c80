package export

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/honeycarbs/jobzone/internal/domain"
)

type fakeWriter struct {
	cleared  []string
	updated  map[string][][]any
	appended map[string][][]any
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{updated: map[string][][]any{}, appended: map[string][][]any{}}
}

func (f *fakeWriter) AppendValues(_ context.Context, _, rng string, values [][]any) (int, error) {
	f.appended[rng] = append(f.appended[rng], values...)
	return len(values), nil
}

func (f *fakeWriter) UpdateValues(_ context.Context, _, rng string, values [][]any) (int, error) {
	f.updated[rng] = values
	return len(values), nil
}

func (f *fakeWriter) ClearValues(_ context.Context, _, rng string) error {
	f.cleared = append(f.cleared, rng)
	return nil
}

var apps = []domain.Application{
	{ID: 10, JobTitle: "Go Engineer", CandidateEmail: "ann@mail.io", Status: domain.StatusAccepted, AppliedAt: time.Date(2025, 5, 2, 8, 0, 0, 0, time.UTC)},
	{ID: 11, JobTitle: "Designer", CandidateEmail: "bob@mail.io", Status: domain.StatusPending},
}

func TestExportReplace(t *testing.T) {
	w := newFakeWriter()
	e := New(w)

	res, err := e.Export(context.Background(), Target{SpreadsheetID: "sheet", Replace: true}, apps)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res.Mode != "replace" || res.WrittenRows != 2 || res.Tab != defaultTab {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(w.cleared) != 1 {
		t.Fatalf("expected tab to be cleared")
	}
	values := w.updated["Applications!A1"]
	if len(values) != 3 || values[0][0] != "Application ID" || values[1][6] != "Accepted" || values[1][7] != "2025-05-02T08:00:00Z" {
		t.Fatalf("unexpected values %v", values)
	}
}

func TestExportAppend(t *testing.T) {
	w := newFakeWriter()
	res, err := New(w).Export(context.Background(), Target{SpreadsheetID: "sheet", Tab: "Q2"}, apps)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res.Mode != "append" || len(w.appended["Q2!A1"]) != 2 || len(w.cleared) != 0 {
		t.Fatalf("unexpected append %+v %v", res, w.appended)
	}
}

func TestExportNotConfigured(t *testing.T) {
	if _, err := New(nil).Export(context.Background(), Target{SpreadsheetID: "sheet"}, apps); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := New(newFakeWriter()).Export(context.Background(), Target{}, apps); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected missing spreadsheet error, got %v", err)
	}
}
