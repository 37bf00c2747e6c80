package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/honeycarbs/jobzone/internal/domain"
)

type fakeAPI struct {
	mu sync.Mutex

	loginErr  error
	signUpErr error
	resetErr  error
	block     chan struct{}
	entered   chan struct{}
	logins    int
	signUps   []Registration
	resets    int
}

func (f *fakeAPI) wait() {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (domain.Recruiter, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logins++
	if f.loginErr != nil {
		return domain.Recruiter{}, f.loginErr
	}
	return domain.Recruiter{ID: 7, CompanyName: "Acme", Email: email, Image: "https://cdn.example/acme.png"}, nil
}

func (f *fakeAPI) SignUp(ctx context.Context, r Registration) error {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signUps = append(f.signUps, r)
	return f.signUpErr
}

func (f *fakeAPI) ResetPassword(ctx context.Context, email, newPassword string) error {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	return f.resetErr
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logins + len(f.signUps) + f.resets
}

type fakeStore struct {
	mu     sync.Mutex
	s      domain.AuthSession
	ok     bool
	setErr error
	clears int
}

func (f *fakeStore) Get(context.Context) (domain.AuthSession, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.s, f.ok, nil
}

func (f *fakeStore) Set(_ context.Context, s domain.AuthSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.s, f.ok = s, true
	return nil
}

func (f *fakeStore) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	f.s, f.ok = domain.AuthSession{}, false
	return nil
}

func newFlow(t *testing.T, api *fakeAPI, store *fakeStore) *Flow {
	t.Helper()
	f, err := NewFlow(api, store, WithClock(func() time.Time { return time.Unix(1700000000, 0) }))
	if err != nil {
		t.Fatalf("NewFlow: %v", err)
	}
	return f
}

func TestSignUpScenario(t *testing.T) {
	api := &fakeAPI{}
	f := newFlow(t, api, &fakeStore{})
	ctx := context.Background()

	if s, err := f.ToggleSignUp(); err != nil || s != StateSignUpText {
		t.Fatalf("toggle: %v %v", s, err)
	}

	err := f.SubmitSignUpText("Acme", "bad-email", "abcdef")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if f.State() != StateSignUpText {
		t.Fatalf("state moved to %v", f.State())
	}

	if err := f.SubmitSignUpText("Acme", "hr@acme.io", "abcdef"); err != nil {
		t.Fatalf("SubmitSignUpText: %v", err)
	}
	if f.State() != StateSignUpImage {
		t.Fatalf("want image step, got %v", f.State())
	}

	if err := f.SubmitSignUpImage(ctx, "logo.png", nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error without image, got %v", err)
	}
	if api.calls() != 0 {
		t.Fatalf("expected no network call, got %d", api.calls())
	}

	if err := f.SubmitSignUpImage(ctx, "logo.png", strings.NewReader("PNG")); err != nil {
		t.Fatalf("SubmitSignUpImage: %v", err)
	}
	if f.State() != StateLogin {
		t.Fatalf("want login after sign up, got %v", f.State())
	}
	if len(api.signUps) != 1 || api.signUps[0].CompanyName != "Acme" || api.signUps[0].Password != "abcdef" {
		t.Fatalf("unexpected sign up %+v", api.signUps)
	}
	if f.draft != (draft{}) {
		t.Fatalf("draft not cleared: %+v", f.draft)
	}
}

func TestSignUpPasswordTooShort(t *testing.T) {
	f := newFlow(t, &fakeAPI{}, &fakeStore{})
	_, _ = f.ToggleSignUp()

	err := f.SubmitSignUpText("Acme", "hr@acme.io", "abcde")
	var derr *domain.Error
	if !errors.As(err, &derr) || derr.Fields["password"] == "" {
		t.Fatalf("expected password field error, got %v", err)
	}
}

func TestSignUpConflictStaysOnImageStep(t *testing.T) {
	api := &fakeAPI{signUpErr: domain.NewError(domain.ErrConflict, "User already exists", nil)}
	f := newFlow(t, api, &fakeStore{})
	_, _ = f.ToggleSignUp()
	_ = f.SubmitSignUpText("Acme", "hr@acme.io", "abcdef")

	err := f.SubmitSignUpImage(context.Background(), "logo.png", strings.NewReader("PNG"))
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if f.State() != StateSignUpImage {
		t.Fatalf("state moved to %v", f.State())
	}
}

func TestLogin(t *testing.T) {
	store := &fakeStore{}
	f := newFlow(t, &fakeAPI{}, store)

	s, err := f.SubmitLogin(context.Background(), "hr@acme.io", "secret")
	if err != nil {
		t.Fatalf("SubmitLogin: %v", err)
	}
	if s.RecruiterID != 7 || s.Email != "hr@acme.io" || s.CreatedAt.IsZero() {
		t.Fatalf("unexpected session %+v", s)
	}
	if got, ok := f.Session(context.Background()); !ok || got.RecruiterID != 7 {
		t.Fatalf("session not stored")
	}

	if err := f.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, ok := f.Session(context.Background()); ok {
		t.Fatalf("session survived logout")
	}
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		apiErr   error
		want     error
		calls    int
	}{
		{name: "bad email", email: "hr", password: "secret", want: domain.ErrValidation},
		{name: "empty password", email: "hr@acme.io", want: domain.ErrValidation},
		{name: "wrong password", email: "hr@acme.io", password: "nope", apiErr: domain.NewError(domain.ErrInvalidCredentials, "", nil), want: domain.ErrInvalidCredentials, calls: 1},
		{name: "unknown account", email: "who@acme.io", password: "nope", apiErr: domain.NewError(domain.ErrNotFound, "User does not exist", nil), want: domain.ErrNotFound, calls: 1},
		{name: "timeout", email: "hr@acme.io", password: "secret", apiErr: domain.NewError(domain.ErrTimeout, "", nil), want: domain.ErrTimeout, calls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{loginErr: tt.apiErr}
			store := &fakeStore{}
			f := newFlow(t, api, store)

			_, err := f.SubmitLogin(context.Background(), tt.email, tt.password)
			if !errors.Is(err, tt.want) {
				t.Fatalf("want %v, got %v", tt.want, err)
			}
			if api.calls() != tt.calls {
				t.Fatalf("want %d calls, got %d", tt.calls, api.calls())
			}
			if store.ok {
				t.Fatalf("session stored after failure")
			}
		})
	}
}

func TestLoginStoreFailure(t *testing.T) {
	f := newFlow(t, &fakeAPI{}, &fakeStore{setErr: errors.New("disk full")})
	if _, err := f.SubmitLogin(context.Background(), "hr@acme.io", "secret"); !errors.Is(err, domain.ErrServer) {
		t.Fatalf("expected server error, got %v", err)
	}
}

func TestReset(t *testing.T) {
	api := &fakeAPI{}
	f := newFlow(t, api, &fakeStore{})
	ctx := context.Background()

	if err := f.SubmitReset(ctx, "hr@acme.io", "abcdef"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("reset outside forgot screen: %v", err)
	}

	if s, _ := f.ToggleForgot(); s != StateForgotPassword {
		t.Fatalf("want forgot, got %v", s)
	}
	if err := f.SubmitReset(ctx, "hr@acme.io", "abc"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected short password error, got %v", err)
	}
	if err := f.SubmitReset(ctx, "hr@acme.io", "abcdef"); err != nil {
		t.Fatalf("SubmitReset: %v", err)
	}
	if f.State() != StateLogin || api.resets != 1 {
		t.Fatalf("unexpected state %v after %d resets", f.State(), api.resets)
	}
}

func TestTogglesAreExclusive(t *testing.T) {
	f := newFlow(t, &fakeAPI{}, &fakeStore{})

	_, _ = f.ToggleForgot()
	if _, err := f.ToggleSignUp(); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("sign up from forgot screen: %v", err)
	}
	if s, _ := f.ToggleForgot(); s != StateLogin {
		t.Fatalf("want login, got %v", s)
	}
	if err := f.SubmitSignUpText("Acme", "hr@acme.io", "abcdef"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("sign up text from login screen: %v", err)
	}
}

func TestSubmitRejectedWhileInFlight(t *testing.T) {
	api := &fakeAPI{block: make(chan struct{}), entered: make(chan struct{}, 1)}
	f := newFlow(t, api, &fakeStore{})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := f.SubmitLogin(ctx, "hr@acme.io", "secret")
		done <- err
	}()
	<-api.entered

	if _, err := f.SubmitLogin(ctx, "hr@acme.io", "secret"); !errors.Is(err, domain.ErrRequestInFlight) {
		t.Fatalf("expected in-flight rejection, got %v", err)
	}
	if _, err := f.ToggleSignUp(); !errors.Is(err, domain.ErrRequestInFlight) {
		t.Fatalf("expected toggle rejection, got %v", err)
	}

	close(api.block)
	if err := <-done; err != nil {
		t.Fatalf("first login: %v", err)
	}
	if api.calls() != 1 {
		t.Fatalf("expected one network call, got %d", api.calls())
	}
}

func TestLogoutRejectedWhileLoginInFlight(t *testing.T) {
	api := &fakeAPI{block: make(chan struct{}), entered: make(chan struct{}, 1)}
	store := &fakeStore{}
	f := newFlow(t, api, store)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := f.SubmitLogin(ctx, "hr@acme.io", "secret")
		done <- err
	}()
	<-api.entered

	if err := f.Logout(ctx); !errors.Is(err, domain.ErrRequestInFlight) {
		t.Fatalf("expected in-flight rejection, got %v", err)
	}
	store.mu.Lock()
	clears := store.clears
	store.mu.Unlock()
	if clears != 0 {
		t.Fatalf("store cleared during login, %d times", clears)
	}

	close(api.block)
	if err := <-done; err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, ok := f.Session(ctx); !ok {
		t.Fatalf("expected a session after login")
	}

	if err := f.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, ok := f.Session(ctx); ok {
		t.Fatalf("session survived logout")
	}
}

func TestSignUpImageChecksStateFirst(t *testing.T) {
	api := &fakeAPI{}
	f := newFlow(t, api, &fakeStore{})

	err := f.SubmitSignUpImage(context.Background(), "logo.png", nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if msg := domain.UserMessage(err); !strings.Contains(msg, "not available") {
		t.Fatalf("expected wrong screen message, got %q", msg)
	}
	if f.State() != StateLogin {
		t.Fatalf("state moved to %v", f.State())
	}
	if api.calls() != 0 {
		t.Fatalf("expected no network call, got %d", api.calls())
	}
}

func TestStateString(t *testing.T) {
	if StateSignUpImage.String() != "signup_image" || State(9).String() != "state(9)" {
		t.Fatalf("unexpected names")
	}
}
