package jobzone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	defaultUserAgent = "jobzone-client/0.1"
	maxBodyBytes     = 4 << 20
)

// NewClient instantiates a job board API client
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("jobzone: base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("jobzone: parse base url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		timeout:    cfg.Timeout,
		userAgent:  userAgent,
	}, nil
}

// ListJobs returns every job, or only the jobs of companyID when it is non-zero.
// Hidden jobs are included; callers filter on Visible.
func (c *Client) ListJobs(ctx context.Context, companyID int64) ([]Job, error) {
	q := url.Values{}
	if companyID != 0 {
		q.Set("company_id", strconv.FormatInt(companyID, 10))
	}

	var jobs []Job
	if err := c.getJSON(ctx, "list jobs", "/jobs/", q, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJob loads a single job
func (c *Client) GetJob(ctx context.Context, id int64) (Job, error) {
	var job Job
	err := c.getJSON(ctx, "get job", "/jobs/"+strconv.FormatInt(id, 10)+"/", nil, &job)
	return job, err
}

// CreateJob publishes a new job
func (c *Client) CreateJob(ctx context.Context, req CreateJobRequest) (Job, error) {
	var job Job
	err := c.sendJSON(ctx, "create job", http.MethodPost, "/jobs/", req, &job)
	return job, err
}

// SetJobVisibility shows or hides a job
func (c *Client) SetJobVisibility(ctx context.Context, id int64, visible bool) (Job, error) {
	var job Job
	err := c.sendJSON(ctx, "toggle visibility", http.MethodPatch, "/jobs/"+strconv.FormatInt(id, 10)+"/", visibilityRequest{Visible: visible}, &job)
	return job, err
}

// UserApplications lists the applications submitted with email
func (c *Client) UserApplications(ctx context.Context, email string) ([]Application, error) {
	var apps []Application
	if err := c.getJSON(ctx, "user applications", "/user-applications/", url.Values{"email": {email}}, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// UserResume returns the stored resume URL for email, or "" when the API has none
func (c *Client) UserResume(ctx context.Context, email string) (string, error) {
	var resp resumeResponse
	if err := c.getJSON(ctx, "user resume", "/user-resume/", url.Values{"email": {email}}, &resp); err != nil {
		return "", err
	}
	if resp.Resume == nil {
		return "", nil
	}
	return *resp.Resume, nil
}

// UploadResume stores a resume file for email and returns its URL
func (c *Client) UploadResume(ctx context.Context, req UploadResumeRequest) (string, error) {
	if req.File == nil {
		return "", fmt.Errorf("jobzone: upload resume: file is required")
	}

	body, contentType, err := multipartBody(map[string]string{"email": req.Email}, "resume", req.FileName, req.File)
	if err != nil {
		return "", fmt.Errorf("jobzone: upload resume: %w", err)
	}

	payload, _, err := c.do(ctx, "upload resume", http.MethodPost, "/upload-resume/", nil, body, contentType)
	if err != nil {
		return "", err
	}

	var resp resumeResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return "", fmt.Errorf("jobzone: upload resume: decode response: %w", err)
	}
	if resp.Resume == nil {
		return "", nil
	}
	return *resp.Resume, nil
}

// Apply submits an application. It returns ErrAlreadyApplied when the API
// already holds one for the same job and email.
func (c *Client) Apply(ctx context.Context, req ApplyRequest) (Application, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return Application{}, fmt.Errorf("jobzone: apply: encode request: %w", err)
	}

	payload, status, err := c.do(ctx, "apply", http.MethodPost, "/apply/", nil, bytes.NewReader(raw), "application/json")
	if err != nil {
		return Application{}, err
	}

	if status == http.StatusOK {
		var msg messageResponse
		if json.Unmarshal(payload, &msg) == nil && strings.EqualFold(strings.TrimSpace(msg.Message), "already applied") {
			return Application{}, ErrAlreadyApplied
		}
	}

	var app Application
	if err := json.Unmarshal(payload, &app); err != nil {
		return Application{}, fmt.Errorf("jobzone: apply: decode response: %w", err)
	}
	return app, nil
}

// CompanyApplications lists the applications to jobs owned by the recruiter with email
func (c *Client) CompanyApplications(ctx context.Context, email string) ([]Application, error) {
	var apps []Application
	if err := c.getJSON(ctx, "company applications", "/company-applications/", url.Values{"email": {email}}, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// UpdateApplicationStatus changes the review status of an application
func (c *Client) UpdateApplicationStatus(ctx context.Context, id int64, status string) error {
	return c.sendJSON(ctx, "update application status", http.MethodPatch, "/update-application-status/", statusUpdateRequest{ApplicationID: id, Status: status}, nil)
}

// Login authenticates a recruiter
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var resp LoginResponse
	err := c.sendJSON(ctx, "login", http.MethodPost, "/login/", loginRequest{Email: email, Password: password}, &resp)
	return resp, err
}

// SignUp creates a recruiter account and returns the API message
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (string, error) {
	if req.Image == nil {
		return "", fmt.Errorf("jobzone: sign up: image is required")
	}

	fields := map[string]string{
		"company_name": req.CompanyName,
		"email":        req.Email,
		"password":     req.Password,
	}
	body, contentType, err := multipartBody(fields, "image", req.ImageName, req.Image)
	if err != nil {
		return "", fmt.Errorf("jobzone: sign up: %w", err)
	}

	payload, _, err := c.do(ctx, "sign up", http.MethodPost, "/sign-up/", nil, body, contentType)
	if err != nil {
		return "", err
	}

	var msg messageResponse
	_ = json.Unmarshal(payload, &msg)
	return msg.Message, nil
}

// ResetPassword replaces the password of the recruiter with email
func (c *Client) ResetPassword(ctx context.Context, email, newPassword string) error {
	return c.sendJSON(ctx, "reset password", http.MethodPost, "/reset-password/", resetPasswordRequest{Email: email, NewPassword: newPassword}, nil)
}

func (c *Client) getJSON(ctx context.Context, op, p string, q url.Values, out any) error {
	payload, _, err := c.do(ctx, op, http.MethodGet, p, q, nil, "")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("jobzone: %s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) sendJSON(ctx context.Context, op, method, p string, in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("jobzone: %s: encode request: %w", op, err)
	}

	payload, _, err := c.do(ctx, op, method, p, nil, bytes.NewReader(raw), "application/json")
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("jobzone: %s: decode response: %w", op, err)
	}
	return nil
}

// do executes a request and returns the body of a 2xx response. Non-2xx
// responses become *APIError.
func (c *Client) do(ctx context.Context, op, method, p string, q url.Values, body io.Reader, contentType string) ([]byte, int, error) {
	if c == nil {
		return nil, 0, fmt.Errorf("jobzone: client is nil")
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := c.baseURL + p
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, 0, fmt.Errorf("jobzone: %s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("jobzone: %s: request failed: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("jobzone: %s: read response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, &APIError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(payload),
		}
	}

	return payload, resp.StatusCode, nil
}

func multipartBody(fields map[string]string, fileField, fileName string, file io.Reader) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := w.WriteField(key, fields[key]); err != nil {
			return nil, "", err
		}
	}

	if fileName == "" {
		fileName = fileField
	}
	part, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}
