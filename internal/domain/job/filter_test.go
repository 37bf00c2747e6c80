package job

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/honeycarbs/jobzone/internal/domain"
)

func scenarioJobs() []domain.Job {
	return []domain.Job{
		{ID: 1, Title: "Backend Engineer", Category: "Programming", Location: "Remote", Visible: true},
		{ID: 2, Title: "Frontend Developer", Category: "Programming", Location: "Berlin", Visible: true},
		{ID: 3, Title: "Marketing Lead", Category: "Marketing", Location: "Remote", Visible: true},
		{ID: 4, Title: "Designer", Category: "Design", Location: "London", Visible: true},
		{ID: 5, Title: "Accountant", Category: "Finance", Location: "Paris", Visible: true},
	}
}

func ids(jobs []domain.Job) []domain.JobID {
	out := make([]domain.JobID, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestFilterScenario(t *testing.T) {
	jobs := scenarioJobs()
	sel := domain.FilterSelection{Categories: domain.NewSet("Programming")}

	got := Filter(jobs, sel, domain.SearchCriteria{})
	if want := []domain.JobID{2, 1}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("want %v, got %v", want, ids(got))
	}

	got = Filter(jobs, sel, domain.SearchCriteria{Location: "remote"})
	if want := []domain.JobID{1}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("want %v, got %v", want, ids(got))
	}

	got = Filter(jobs, domain.FilterSelection{}, domain.SearchCriteria{Title: "ENGINEER"})
	if want := []domain.JobID{1}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("want %v, got %v", want, ids(got))
	}
}

func TestFilterEmptySelectionReturnsAllNewestFirst(t *testing.T) {
	got := Filter(scenarioJobs(), domain.FilterSelection{}, domain.SearchCriteria{})
	if want := []domain.JobID{5, 4, 3, 2, 1}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("want %v, got %v", want, ids(got))
	}
	if got := Filter(nil, domain.FilterSelection{}, domain.SearchCriteria{}); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func matches(j domain.Job, sel domain.FilterSelection, search domain.SearchCriteria) bool {
	if sel.Categories.Len() > 0 && !sel.Categories.Has(j.Category) {
		return false
	}
	if sel.Locations.Len() > 0 && !sel.Locations.Has(j.Location) {
		return false
	}
	if !strings.Contains(strings.ToLower(j.Title), strings.ToLower(search.Title)) {
		return false
	}
	return strings.Contains(strings.ToLower(j.Location), strings.ToLower(search.Location))
}

func TestFilterSoundAndComplete(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	categories := []string{"Programming", "Marketing", "Design"}
	locations := []string{"Remote", "Berlin", "London"}
	titles := []string{"Go Engineer", "Data Engineer", "Designer", "Writer"}

	for round := 0; round < 200; round++ {
		jobs := make([]domain.Job, rng.Intn(15))
		for i := range jobs {
			jobs[i] = domain.Job{
				ID:       domain.JobID(i + 1),
				Title:    titles[rng.Intn(len(titles))],
				Category: categories[rng.Intn(len(categories))],
				Location: locations[rng.Intn(len(locations))],
				Visible:  true,
			}
		}

		sel := domain.FilterSelection{Categories: domain.NewSet(), Locations: domain.NewSet()}
		if rng.Intn(2) == 0 {
			sel.Categories = sel.Categories.Toggle(categories[rng.Intn(len(categories))])
		}
		if rng.Intn(2) == 0 {
			sel.Locations = sel.Locations.Toggle(locations[rng.Intn(len(locations))])
		}
		search := domain.SearchCriteria{}
		if rng.Intn(2) == 0 {
			search.Title = []string{"eng", "DES", "x"}[rng.Intn(3)]
		}
		if rng.Intn(3) == 0 {
			search.Location = []string{"re", "LON"}[rng.Intn(2)]
		}

		got := Filter(jobs, sel, search)
		var want []domain.JobID
		for i := len(jobs) - 1; i >= 0; i-- {
			if matches(jobs[i], sel, search) {
				want = append(want, jobs[i].ID)
			}
		}
		if !reflect.DeepEqual(ids(got), append([]domain.JobID{}, want...)) {
			t.Fatalf("round %d: want %v, got %v", round, want, ids(got))
		}
		if again := Filter(jobs, sel, search); !reflect.DeepEqual(got, again) {
			t.Fatalf("round %d: filter is not deterministic", round)
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	jobs := scenarioJobs()
	before := ids(jobs)
	_ = Filter(jobs, domain.FilterSelection{}, domain.SearchCriteria{})
	if !reflect.DeepEqual(ids(jobs), before) {
		t.Fatalf("input reordered: %v", ids(jobs))
	}
}

func TestRelated(t *testing.T) {
	acme := domain.CompanyRef{ID: 7}
	other := domain.CompanyRef{ID: 8}
	var jobs []domain.Job
	for i := 1; i <= 7; i++ {
		c := acme
		if i == 3 {
			c = other
		}
		jobs = append(jobs, domain.Job{ID: domain.JobID(i), Company: c})
	}

	got := Related(jobs, jobs[0], RelatedLimit)
	if want := []domain.JobID{2, 4, 5, 6}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("want %v, got %v", want, ids(got))
	}
}

func TestFacets(t *testing.T) {
	cats, locs := Facets(scenarioJobs())
	if want := []string{"Design", "Finance", "Marketing", "Programming"}; !reflect.DeepEqual(cats, want) {
		t.Fatalf("want %v, got %v", want, cats)
	}
	if want := []string{"Berlin", "London", "Paris", "Remote"}; !reflect.DeepEqual(locs, want) {
		t.Fatalf("want %v, got %v", want, locs)
	}
}
