package repository

import (
	"context"
	"time"

	"github.com/tasknote/backend/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	// Resolve joins the session to its user in a single atomic round trip.
	// A session past its expiry at the reference time is deleted as a side
	// effect and reported as domain.ErrSessionNotFound, as is a session
	// whose user no longer exists. The returned user never carries the
	// password hash.
	Resolve(ctx context.Context, sessionID string, now time.Time) (*domain.User, error)
	// Delete is idempotent; deleting an absent session is not an error.
	Delete(ctx context.Context, sessionID string) error
}
