package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknote/backend/domain"
	"github.com/tasknote/backend/pkg/password"
)

// fakeStore backs both repository interfaces with maps and mirrors the
// store-level contracts: unique emails, session-to-user join, and lazy
// expiry with deletion inside Resolve.
type fakeStore struct {
	users    map[string]*domain.User // by id
	sessions map[string]*domain.Session
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*domain.User),
		sessions: make(map[string]*domain.Session),
	}
}

func (s *fakeStore) Create(ctx context.Context, user *domain.User) error {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *fakeStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type fakeSessions struct {
	store *fakeStore
}

func (s *fakeSessions) Create(ctx context.Context, session *domain.Session) error {
	clone := *session
	s.store.sessions[session.ID] = &clone
	return nil
}

func (s *fakeSessions) Resolve(ctx context.Context, sessionID string, now time.Time) (*domain.User, error) {
	session, ok := s.store.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if session.ExpiresAt.Before(now) {
		delete(s.store.sessions, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	user, ok := s.store.users[session.UserID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return user.Public(), nil
}

func (s *fakeSessions) Delete(ctx context.Context, sessionID string) error {
	delete(s.store.sessions, sessionID)
	return nil
}

func newTestUseCase(t *testing.T) (*UseCase, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	uc := New(store, &fakeSessions{store: store}, DefaultSessionTTL, nil)
	return uc, store
}

func TestRegisterAndLogin(t *testing.T) {
	uc, store := newTestUseCase(t)
	ctx := context.Background()

	user, session, err := uc.Register(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, session)

	assert.Equal(t, "a@x.com", user.Email)
	assert.Empty(t, user.PasswordHash, "hash must not leave the auth boundary")
	assert.Equal(t, user.ID, session.UserID)

	stored := store.users[user.ID]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotContains(t, stored.PasswordHash, "secret1")

	loggedIn, loginSession, err := uc.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEqual(t, session.ID, loginSession.ID, "each login issues a fresh token")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	_, _, err := uc.Register(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	_, _, err = uc.Register(ctx, "a@x.com", "another1")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeConflict))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	_, _, err := uc.Register(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	_, _, wrongPassword := uc.Login(ctx, "a@x.com", "wrong1")
	_, _, unknownEmail := uc.Login(ctx, "nobody@x.com", "secret1")

	assert.ErrorIs(t, wrongPassword, domain.ErrBadCredentials)
	assert.ErrorIs(t, unknownEmail, domain.ErrBadCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginCorruptStoredHash(t *testing.T) {
	uc, store := newTestUseCase(t)
	ctx := context.Background()

	user, _, err := uc.Register(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	store.users[user.ID].PasswordHash = "not-a-valid-encoding"

	_, _, err = uc.Login(ctx, "a@x.com", "secret1")
	require.Error(t, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeCorruptData),
		"a corrupt hash must not be reported as a credentials mismatch")
	assert.NotErrorIs(t, err, domain.ErrBadCredentials)
}

func TestSessionLifecycle(t *testing.T) {
	uc, store := newTestUseCase(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return base }

	registered, session, err := uc.Register(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, base.Add(DefaultSessionTTL), session.ExpiresAt)

	user, err := uc.UserBySession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	// Advance past expiry: the session resolves to nothing and is removed
	// from the store as a side effect.
	uc.now = func() time.Time { return base.Add(DefaultSessionTTL + time.Minute) }

	_, err = uc.UserBySession(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.NotContains(t, store.sessions, session.ID)
}

func TestRevokeSessionIdempotent(t *testing.T) {
	uc, store := newTestUseCase(t)
	ctx := context.Background()

	_, session, err := uc.Register(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, uc.RevokeSession(ctx, session.ID))
	assert.NotContains(t, store.sessions, session.ID)

	// Second revoke of the same token is a silent no-op.
	assert.NoError(t, uc.RevokeSession(ctx, session.ID))
	assert.NoError(t, uc.RevokeSession(ctx, ""))
}

func TestSessionTokensAreUnguessable(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	user, _, err := uc.Register(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		session, err := uc.CreateSession(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, session.ID, 64, "32 random bytes hex-encoded")
		assert.False(t, seen[session.ID])
		seen[session.ID] = true
	}
}

func TestStoredHashVerifiesDirectly(t *testing.T) {
	uc, store := newTestUseCase(t)
	ctx := context.Background()

	user, _, err := uc.Register(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	ok, err := password.Verify(store.users[user.ID].PasswordHash, "secret1")
	require.NoError(t, err)
	assert.True(t, ok)
}
