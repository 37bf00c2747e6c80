package job

import (
	"reflect"
	"testing"

	"github.com/honeycarbs/jobzone/internal/domain"
)

func numbered(n int) []domain.Job {
	jobs := make([]domain.Job, n)
	for i := range jobs {
		jobs[i] = domain.Job{ID: domain.JobID(i + 1)}
	}
	return jobs
}

func TestPaginateInvariant(t *testing.T) {
	for n := 0; n <= 20; n++ {
		results := numbered(n)
		wantCount := (n + DefaultPageSize - 1) / DefaultPageSize

		var joined []domain.Job
		for page := 1; page <= max(wantCount, 1); page++ {
			p := Paginate(results, DefaultPageSize, page)
			if p.PageCount != wantCount {
				t.Fatalf("n=%d: want %d pages, got %d", n, wantCount, p.PageCount)
			}
			joined = append(joined, p.Items...)
		}
		if !reflect.DeepEqual(ids(joined), ids(results)) {
			t.Fatalf("n=%d: pages do not reproduce results", n)
		}

		for _, page := range []int{-3, 0, 1, 2, 5, 100} {
			p := Paginate(results, DefaultPageSize, page)
			if p.Page < 1 || p.Page > max(p.PageCount, 1) {
				t.Fatalf("n=%d page=%d: clamped page %d out of range", n, page, p.Page)
			}
		}
	}
}

func TestPaginateScenario(t *testing.T) {
	results := numbered(8)

	p := Paginate(results, 0, 1)
	if p.PageCount != 2 || len(p.Items) != 6 {
		t.Fatalf("page 1: %+v", p)
	}
	p = Paginate(results, DefaultPageSize, 2)
	if len(p.Items) != 2 {
		t.Fatalf("page 2: %d items", len(p.Items))
	}

	pager := NewPager(DefaultPageSize)
	pager.Reset(len(results))
	pager.Next()
	if got := pager.Next(); got != 2 {
		t.Fatalf("next at last page must stay, got %d", got)
	}
	pager.Prev()
	if got := pager.Prev(); got != 1 {
		t.Fatalf("prev at first page must stay, got %d", got)
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate(nil, DefaultPageSize, 3)
	if p.PageCount != 0 || p.Page != 1 || len(p.Items) != 0 {
		t.Fatalf("unexpected page %+v", p)
	}

	pager := NewPager(DefaultPageSize)
	if got := pager.Next(); got != 1 {
		t.Fatalf("empty pager moved to %d", got)
	}
}

func TestPagerJumpClamps(t *testing.T) {
	pager := NewPager(DefaultPageSize)
	pager.Reset(13)

	tests := []struct {
		jump, want int
	}{
		{jump: 2, want: 2},
		{jump: 9, want: 3},
		{jump: 0, want: 1},
		{jump: -1, want: 1},
	}
	for _, tt := range tests {
		if got := pager.Jump(tt.jump); got != tt.want {
			t.Fatalf("jump %d: want %d, got %d", tt.jump, tt.want, got)
		}
	}
}
