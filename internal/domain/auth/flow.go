package auth

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/honeycarbs/jobzone/internal/domain"
	"github.com/honeycarbs/jobzone/pkg/logging"
)

// State is the screen the recruiter flow is on
type State int

const (
	StateLogin State = iota
	StateSignUpText
	StateSignUpImage
	StateForgotPassword
)

func (s State) String() string {
	switch s {
	case StateLogin:
		return "login"
	case StateSignUpText:
		return "signup_text"
	case StateSignUpImage:
		return "signup_image"
	case StateForgotPassword:
		return "forgot_password"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Registration is a complete sign-up request
type Registration struct {
	CompanyName string
	Email       string
	Password    string
	ImageName   string
	Image       io.Reader
}

// API is the account side of the job board API
type API interface {
	Login(ctx context.Context, email, password string) (domain.Recruiter, error)
	SignUp(ctx context.Context, r Registration) error
	ResetPassword(ctx context.Context, email, newPassword string) error
}

// Option configures Flow
type Option func(*Flow)

// WithLogger sets the logger
func WithLogger(log *logging.Logger) Option {
	return func(f *Flow) {
		if log != nil {
			f.log = log
		}
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(f *Flow) {
		f.clock = clock
	}
}

type draft struct {
	companyName string
	email       string
	password    string
}

// Flow drives recruiter login, two-step sign-up and password reset. At most
// one request is outstanding per Flow; submits and toggles made meanwhile
// fail with domain.ErrRequestInFlight. State only advances after the API
// confirms.
type Flow struct {
	api   API
	store SessionStore
	log   *logging.Logger
	clock func() time.Time

	mu       sync.Mutex
	state    State
	draft    draft
	inFlight bool
}

// NewFlow builds a Flow in StateLogin
func NewFlow(api API, store SessionStore, opts ...Option) (*Flow, error) {
	if api == nil {
		return nil, fmt.Errorf("auth.Flow: api is required")
	}
	if store == nil {
		return nil, fmt.Errorf("auth.Flow: session store is required")
	}

	f := &Flow{
		api:   api,
		store: store,
		log:   logging.NewNop(),
		clock: time.Now,
		state: StateLogin,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.log = f.log.Named("auth")
	return f, nil
}

var errInFlight = domain.NewError(domain.ErrRequestInFlight, "please wait for the previous request to finish", nil)

func wrongState(action string, s State) error {
	return domain.NewValidationError(fmt.Sprintf("%s is not available on the %s screen", action, s), nil)
}

// State returns the current screen
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// ToggleSignUp switches between login and sign-up. Leaving sign-up drops
// whatever step one collected.
func (f *Flow) ToggleSignUp() (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.inFlight {
		return f.state, errInFlight
	}
	switch f.state {
	case StateLogin:
		f.state = StateSignUpText
	case StateSignUpText, StateSignUpImage:
		f.draft = draft{}
		f.state = StateLogin
	default:
		return f.state, wrongState("sign up", f.state)
	}
	return f.state, nil
}

// ToggleForgot switches between login and password reset
func (f *Flow) ToggleForgot() (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.inFlight {
		return f.state, errInFlight
	}
	switch f.state {
	case StateLogin:
		f.state = StateForgotPassword
	case StateForgotPassword:
		f.state = StateLogin
	default:
		return f.state, wrongState("password reset", f.state)
	}
	return f.state, nil
}

// begin claims the flow for one request if it is in want
func (f *Flow) begin(want State, action string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.inFlight {
		return errInFlight
	}
	if f.state != want {
		return wrongState(action, f.state)
	}
	f.inFlight = true
	return nil
}

// end releases the flow and moves it to next when err is nil
func (f *Flow) end(err error, next State) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inFlight = false
	if err == nil {
		f.state = next
	}
}

// SubmitLogin authenticates the recruiter and stores the session
func (f *Flow) SubmitLogin(ctx context.Context, email, password string) (domain.AuthSession, error) {
	email = strings.TrimSpace(email)

	fields := domain.Fields{}
	fields.Email("email", email)
	fields.Require("password", password, "password is required")
	if err := fields.Err("check your login details"); err != nil {
		return domain.AuthSession{}, err
	}

	if err := f.begin(StateLogin, "login"); err != nil {
		return domain.AuthSession{}, err
	}

	session, err := f.login(ctx, email, password)
	f.end(err, StateLogin)
	return session, err
}

func (f *Flow) login(ctx context.Context, email, password string) (domain.AuthSession, error) {
	r, err := f.api.Login(ctx, email, password)
	if err != nil {
		f.log.Warn("login failed", "err", err)
		return domain.AuthSession{}, err
	}

	session := domain.AuthSession{
		RecruiterID: r.ID,
		CompanyName: r.CompanyName,
		Email:       r.Email,
		Image:       r.Image,
		CreatedAt:   f.clock(),
	}
	if session.Email == "" {
		session.Email = email
	}
	if !session.Valid() {
		return domain.AuthSession{}, domain.NewError(domain.ErrServer, "", fmt.Errorf("login response without recruiter id"))
	}

	if err := f.store.Set(ctx, session); err != nil {
		f.log.Error("store session failed", "err", err)
		return domain.AuthSession{}, domain.NewError(domain.ErrServer, "", err)
	}

	f.log.Info("recruiter logged in", "recruiter_id", session.RecruiterID)
	return session, nil
}

// SubmitSignUpText validates step one of sign-up and moves to the image step.
// Nothing is sent until the image is submitted.
func (f *Flow) SubmitSignUpText(companyName, email, password string) error {
	companyName = strings.TrimSpace(companyName)
	email = strings.TrimSpace(email)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.inFlight {
		return errInFlight
	}
	if f.state != StateSignUpText {
		return wrongState("sign up", f.state)
	}

	fields := domain.Fields{}
	fields.Require("company_name", companyName, "company name is required")
	fields.Email("email", email)
	fields.Password("password", password)
	if err := fields.Err("check your sign up details"); err != nil {
		return err
	}

	f.draft = draft{companyName: companyName, email: email, password: password}
	f.state = StateSignUpImage
	return nil
}

// SubmitSignUpImage creates the account with the company logo. On success the
// collected fields are dropped and the flow returns to login.
func (f *Flow) SubmitSignUpImage(ctx context.Context, imageName string, image io.Reader) error {
	if err := f.begin(StateSignUpImage, "sign up"); err != nil {
		return err
	}
	if image == nil {
		err := domain.NewValidationError("upload your company logo", map[string]string{"image": "image is required"})
		f.end(err, StateSignUpImage)
		return err
	}

	f.mu.Lock()
	d := f.draft
	f.mu.Unlock()

	err := f.api.SignUp(ctx, Registration{
		CompanyName: d.companyName,
		Email:       d.email,
		Password:    d.password,
		ImageName:   imageName,
		Image:       image,
	})
	if err != nil {
		f.log.Warn("sign up failed", "err", err)
	} else {
		f.mu.Lock()
		f.draft = draft{}
		f.mu.Unlock()
		f.log.Info("recruiter signed up", "company", d.companyName)
	}

	f.end(err, StateLogin)
	return err
}

// SubmitReset sets a new password for email and returns to login
func (f *Flow) SubmitReset(ctx context.Context, email, newPassword string) error {
	email = strings.TrimSpace(email)

	fields := domain.Fields{}
	fields.Email("email", email)
	fields.Password("new_password", newPassword)
	if err := fields.Err("check your reset details"); err != nil {
		return err
	}

	if err := f.begin(StateForgotPassword, "password reset"); err != nil {
		return err
	}

	err := f.api.ResetPassword(ctx, email, newPassword)
	if err != nil {
		f.log.Warn("password reset failed", "err", err)
	} else {
		f.log.Info("password reset")
	}

	f.end(err, StateLogin)
	return err
}

// Logout destroys the session and returns to login. It is refused while a
// request is outstanding.
func (f *Flow) Logout(ctx context.Context) error {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return errInFlight
	}
	f.inFlight = true
	f.mu.Unlock()

	err := f.store.Clear(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false
	if err != nil {
		f.log.Error("clear session failed", "err", err)
		return domain.NewError(domain.ErrServer, "", err)
	}
	f.state = StateLogin
	f.draft = draft{}
	return nil
}

// Session returns the stored recruiter session, if any. Read failures count
// as logged out.
func (f *Flow) Session(ctx context.Context) (domain.AuthSession, bool) {
	s, ok, err := f.store.Get(ctx)
	if err != nil {
		f.log.Warn("read session failed", "err", err)
		return domain.AuthSession{}, false
	}
	if !ok || !s.Valid() {
		return domain.AuthSession{}, false
	}
	return s, true
}
