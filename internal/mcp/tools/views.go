package tools

import (
	"time"

	"github.com/honeycarbs/jobzone/internal/domain"
	"github.com/honeycarbs/jobzone/internal/domain/job"
	"github.com/honeycarbs/jobzone/pkg/richtext"
)

type companyView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type jobView struct {
	ID       int64       `json:"id"`
	Title    string      `json:"title"`
	Company  companyView `json:"company"`
	Location string      `json:"location"`
	Category string      `json:"category"`
	Level    string      `json:"level"`
	Salary   int         `json:"salary"`
	PostedAt time.Time   `json:"posted_at"`
	Visible  bool        `json:"visible"`
	Summary  string      `json:"summary,omitempty"`
}

const summaryRunes = 160

func toJobView(j domain.Job) jobView {
	summary := []rune(richtext.PlainText(j.Description))
	if len(summary) > summaryRunes {
		summary = append(summary[:summaryRunes], '…')
	}
	return jobView{
		ID:       j.ID,
		Title:    j.Title,
		Company:  companyView{ID: j.Company.ID, Name: j.Company.Name, Image: j.Company.Image},
		Location: j.Location,
		Category: j.Category,
		Level:    j.Level,
		Salary:   j.Salary,
		PostedAt: j.PostedAt,
		Visible:  j.Visible,
		Summary:  string(summary),
	}
}

func toJobViews(jobs []domain.Job) []jobView {
	out := make([]jobView, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobView(j))
	}
	return out
}

type boardView struct {
	Jobs        []jobView `json:"jobs"`
	Page        int       `json:"page"`
	PageCount   int       `json:"page_count"`
	Total       int       `json:"total"`
	Categories  []string  `json:"selected_categories"`
	Locations   []string  `json:"selected_locations"`
	Title       string    `json:"search_title,omitempty"`
	Location    string    `json:"search_location,omitempty"`
	Facets      facets    `json:"facets"`
	Stale       bool      `json:"stale,omitempty"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

type facets struct {
	Categories []string `json:"categories"`
	Locations  []string `json:"locations"`
}

func toBoardView(v job.View) boardView {
	return boardView{
		Jobs:        toJobViews(v.Items),
		Page:        v.Page,
		PageCount:   v.PageCount,
		Total:       v.Total,
		Categories:  v.Selection.Categories.Values(),
		Locations:   v.Selection.Locations.Values(),
		Title:       v.Search.Title,
		Location:    v.Search.Location,
		Facets:      facets{Categories: v.Categories, Locations: v.Locations},
		Stale:       v.Stale,
		RefreshedAt: v.RefreshedAt,
	}
}

type applicationView struct {
	ID             int64     `json:"id"`
	JobID          int64     `json:"job_id"`
	JobTitle       string    `json:"job_title,omitempty"`
	JobLocation    string    `json:"job_location,omitempty"`
	CandidateEmail string    `json:"candidate_email"`
	CandidateName  string    `json:"candidate_name,omitempty"`
	ResumeURL      string    `json:"resume_url,omitempty"`
	Status         string    `json:"status"`
	AppliedAt      time.Time `json:"applied_at,omitzero"`
}

func toApplicationView(a domain.Application) applicationView {
	return applicationView{
		ID:             a.ID,
		JobID:          a.JobID,
		JobTitle:       a.JobTitle,
		JobLocation:    a.JobLocation,
		CandidateEmail: a.CandidateEmail,
		CandidateName:  a.CandidateName,
		ResumeURL:      a.ResumeURL,
		Status:         string(a.Status),
		AppliedAt:      a.AppliedAt,
	}
}

func toApplicationViews(apps []domain.Application) []applicationView {
	out := make([]applicationView, 0, len(apps))
	for _, a := range apps {
		out = append(out, toApplicationView(a))
	}
	return out
}
