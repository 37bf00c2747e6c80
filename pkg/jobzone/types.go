package jobzone

import (
	"io"
	"net/http"
	"time"
)

// Config defines job board API client settings
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration // per request; 0 keeps the HTTP client's own timeout
	UserAgent  string
}

// Client talks to the job board REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

// Company is the owner of a job as embedded in job payloads
type Company struct {
	ID          int64  `json:"_id"`
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Image       string `json:"image"`
}

// Job is a job posting as served by /jobs/
type Job struct {
	ID          int64     `json:"_id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Level       string    `json:"level"`
	Company     *Company  `json:"company,omitempty"`
	Description string    `json:"description"`
	Salary      int       `json:"salary"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Visible     bool      `json:"visible"`
}

// CreateJobRequest is the body of POST /jobs/
type CreateJobRequest struct {
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Level       string    `json:"level"`
	CompanyID   int64     `json:"company_id"`
	Description string    `json:"description"`
	Salary      int       `json:"salary"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
}

// Application is a candidate application with its job embedded
type Application struct {
	ID        int64     `json:"id"`
	UserEmail string    `json:"user_email"`
	UserName  string    `json:"user_name"`
	UserImg   string    `json:"user_img"`
	Job       *Job      `json:"job,omitempty"`
	Resume    string    `json:"resume"`
	Status    string    `json:"status"`
	AppliedAt time.Time `json:"applied_at"`
}

// ApplyRequest is the body of POST /apply/
type ApplyRequest struct {
	JobID     int64  `json:"job_id"`
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
	UserImg   string `json:"user_img"`
	Resume    string `json:"resume"`
}

// Recruiter is the account returned by /login/
type Recruiter struct {
	ID          int64  `json:"_id"`
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Image       string `json:"image"`
}

// LoginResponse is the body of a successful /login/
type LoginResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Recruiter Recruiter `json:"recruiter"`
}

// SignUpRequest is sent as multipart form data to /sign-up/
type SignUpRequest struct {
	CompanyName string
	Email       string
	Password    string
	ImageName   string
	Image       io.Reader
}

// UploadResumeRequest is sent as multipart form data to /upload-resume/
type UploadResumeRequest struct {
	Email    string
	FileName string
	File     io.Reader
}

type resumeResponse struct {
	Email   string  `json:"email"`
	Resume  *string `json:"resume"`
	Message string  `json:"message"`
}

type messageResponse struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message"`
	Error   any    `json:"error"`
}

type statusUpdateRequest struct {
	ApplicationID int64  `json:"application_id"`
	Status        string `json:"status"`
}

type visibilityRequest struct {
	Visible bool `json:"visible"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
