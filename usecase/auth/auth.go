// Package auth implements the credential and session manager: registration,
// login, opaque session token issuance, lazy expiry, and revocation.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tasknote/backend/domain"
	"github.com/tasknote/backend/pkg/password"
	"github.com/tasknote/backend/repository"
)

// DefaultSessionTTL is the lifetime of a freshly issued session.
const DefaultSessionTTL = 30 * 24 * time.Hour

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	ttl      time.Duration
	logger   *zap.Logger

	now func() time.Time
}

func New(users repository.UserRepository, sessions repository.SessionRepository, ttl time.Duration, logger *zap.Logger) *UseCase {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Register creates a user with a hashed password and issues a session for
// it. A duplicate email surfaces as domain.ErrEmailTaken. The plaintext
// password is never stored.
func (uc *UseCase) Register(ctx context.Context, email, plain string) (*domain.User, *domain.Session, error) {
	if _, err := uc.users.GetByEmail(ctx, email); err == nil {
		return nil, nil, domain.ErrEmailTaken
	} else if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return nil, nil, err
	}

	hash, err := password.Hash(plain)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    uc.now(),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	session, err := uc.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	uc.logger.Info("user registered", zap.String("user_id", user.ID))
	return user.Public(), session, nil
}

// Login verifies credentials and issues a session. An unknown email and a
// wrong password produce the same domain.ErrBadCredentials so account
// existence does not leak. A malformed stored hash is surfaced as
// CORRUPT_DATA rather than masked as a mismatch.
func (uc *UseCase) Login(ctx context.Context, email, plain string) (*domain.User, *domain.Session, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, nil, domain.ErrBadCredentials
		}
		return nil, nil, err
	}

	ok, err := password.Verify(user.PasswordHash, plain)
	if err != nil {
		if errors.Is(err, password.ErrMalformedHash) || errors.Is(err, password.ErrIncompatibleVersion) {
			uc.logger.Error("stored password hash unreadable", zap.String("user_id", user.ID), zap.Error(err))
			return nil, nil, domain.WrapError(domain.ErrCodeCorruptData, "stored credentials unreadable", err)
		}
		return nil, nil, err
	}
	if !ok {
		return nil, nil, domain.ErrBadCredentials
	}

	session, err := uc.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user.Public(), session, nil
}

// CreateSession issues a session with an unguessable random token. Token
// uniqueness holds by construction; a collision would be a programmer
// error, not something to retry.
func (uc *UseCase) CreateSession(ctx context.Context, userID string) (*domain.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := uc.now()
	session := &domain.Session{
		ID:        token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.ttl),
	}
	if err := uc.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// UserBySession resolves a session token to its user. An expired session is
// deleted at the store boundary as a side effect and reported as
// domain.ErrSessionNotFound; there is no background sweep.
func (uc *UseCase) UserBySession(ctx context.Context, sessionID string) (*domain.User, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}
	return uc.sessions.Resolve(ctx, sessionID, uc.now())
}

// RevokeSession deletes the session. Revoking an absent session is a no-op.
func (uc *UseCase) RevokeSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return uc.sessions.Delete(ctx, sessionID)
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("auth: generating session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
