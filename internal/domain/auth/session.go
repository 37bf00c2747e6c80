package auth

import (
	"context"

	"github.com/honeycarbs/jobzone/internal/domain"
)

// SessionStore persists the single recruiter session. Flow is its only writer.
type SessionStore interface {
	// Get returns false when no session is stored
	Get(ctx context.Context) (domain.AuthSession, bool, error)
	Set(ctx context.Context, s domain.AuthSession) error
	Clear(ctx context.Context) error
}
