package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tasknote/backend/domain"
	"github.com/tasknote/backend/repository"
)

type sessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a Postgres-backed session repository.
// Sessions live next to users so the session-to-user join and the
// ON DELETE CASCADE consistency guarantee come from the same store.
func NewSessionRepository(pool *pgxpool.Pool) repository.SessionRepository {
	return &sessionRepository{pool: pool}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO sessions (id, user_id, expires_at, created_at)
	VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.ExpiresAt.UnixMilli(),
		session.CreatedAt,
	)
	return err
}

// Resolve performs lazy expiry in a single statement: the CTE deletes the
// row when it is already past its expiry, while the main query only returns
// the joined user for a still-valid session. Both parts see the same
// snapshot, so there is no window where an expired session resolves.
func (r *sessionRepository) Resolve(ctx context.Context, sessionID string, now time.Time) (*domain.User, error) {
	const query = `
	WITH purged AS (
		DELETE FROM sessions
		WHERE id = $1 AND expires_at < $2
	)
	SELECT u.id, u.email, u.created_at
	FROM sessions s
	JOIN users u ON u.id = s.user_id
	WHERE s.id = $1 AND s.expires_at >= $2
	`
	row := r.pool.QueryRow(ctx, query, sessionID, now.UnixMilli())

	var user domain.User
	if err := row.Scan(&user.ID, &user.Email, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *sessionRepository) Delete(ctx context.Context, sessionID string) error {
	const query = `DELETE FROM sessions WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, sessionID)
	return err
}
