package domain

import (
	"time"
)

// JobID identifies a job posting on the job board API
type JobID = int64

// ApplicationID identifies a single candidate application
type ApplicationID = int64

// CompanyRef references the company (recruiter account) that owns a job
type CompanyRef struct {
	ID    int64
	Name  string
	Email string
	Image string
}

// Job is a posting published by a recruiter
type Job struct {
	ID          JobID
	Title       string
	Description string // rich text markup
	Location    string
	Category    string
	Level       string
	Salary      int
	PostedAt    time.Time
	Company     CompanyRef
	Visible     bool
}

// NewJob holds the recruiter input for a job that does not exist yet
type NewJob struct {
	Title       string
	Description string
	Location    string
	Category    string
	Level       string
	Salary      int
	PostedAt    time.Time
	CompanyID   int64
}

// Recruiter is a company account as returned by login
type Recruiter struct {
	ID          int64
	CompanyName string
	Email       string
	Image       string
}

// ApplicationStatus is the review state of an application
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusAccepted ApplicationStatus = "Accepted"
	StatusRejected ApplicationStatus = "Rejected"
)

// Terminal reports whether the status settles the application for the candidate
func (s ApplicationStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Valid reports whether s is one of the known statuses
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	default:
		return false
	}
}

// Application is one candidate submission against one job
type Application struct {
	ID             ApplicationID
	JobID          JobID
	JobTitle       string
	JobLocation    string
	CandidateEmail string
	CandidateName  string
	CandidateImage string
	ResumeURL      string
	Status         ApplicationStatus
	AppliedAt      time.Time
}

// Candidate is the job seeker identity supplied by the external identity provider
type Candidate struct {
	Email string
	Name  string
	Image string
}

// Authenticated reports whether the candidate carries an identity
func (c *Candidate) Authenticated() bool {
	return c != nil && c.Email != ""
}

// SearchCriteria is the free-text search box input
type SearchCriteria struct {
	Title    string
	Location string
}

// Empty reports whether no text constraint is active
func (c SearchCriteria) Empty() bool {
	return c.Title == "" && c.Location == ""
}

// FilterSelection is the multi-select sidebar state; an empty set means match-all
type FilterSelection struct {
	Categories Set
	Locations  Set
}

// Clone returns a selection that shares no state with s
func (s FilterSelection) Clone() FilterSelection {
	return FilterSelection{
		Categories: s.Categories.Clone(),
		Locations:  s.Locations.Clone(),
	}
}

// AuthSession is the locally held proof of recruiter identity
type AuthSession struct {
	RecruiterID int64     `json:"recruiter_id"`
	CompanyName string    `json:"company_name"`
	Email       string    `json:"email"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

// Valid reports whether the session identifies a recruiter
func (s AuthSession) Valid() bool {
	return s.RecruiterID != 0 && s.Email != ""
}
