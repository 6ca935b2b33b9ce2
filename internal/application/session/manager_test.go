package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/account"
	domainsession "github.com/skilltrack-hub/skill-tracker-hub/internal/domain/session"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/infrastructure/persistence/memory"
	"github.com/skilltrack-hub/skill-tracker-hub/pkg/logger"
)

func newTestManager(t *testing.T, ttl time.Duration) (*Manager, account.Repository) {
	t.Helper()
	accounts := memory.NewAccountRepository()
	sessions := memory.NewSessionStore()
	log := logger.New(logger.Options{Output: testWriter{}, Level: logger.LevelError})
	return NewManager(accounts, sessions, ttl, log), accounts
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }

func studentInput() RegisterInput {
	return RegisterInput{
		Name:       "Alice",
		Email:      "alice@example.com",
		Password:   "s3cret",
		Role:       "student",
		Department: "Computer Science",
	}
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	mgr, accounts := newTestManager(t, DefaultTTL)

	sess, err := mgr.Register(ctx, studentInput())
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, shared.Email("alice@example.com"), sess.Account.Email)
	assert.Equal(t, shared.RoleStudent, sess.Account.Role)

	count, err := accounts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The freshly registered credentials authenticate.
	login, err := mgr.Login(ctx, "Alice@Example.com", "s3cret", "student")
	require.NoError(t, err)
	assert.Equal(t, sess.Account.ID, login.Account.ID)
	assert.NotEqual(t, sess.Token, login.Token, "each login issues a fresh token")
}

func TestRegister_DuplicateEmailLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	mgr, accounts := newTestManager(t, DefaultTTL)

	_, err := mgr.Register(ctx, studentInput())
	require.NoError(t, err)

	dup := studentInput()
	dup.Name = "Impostor"
	dup.Role = "faculty" // same email under any role is still a duplicate
	_, err = mgr.Register(ctx, dup)
	assert.ErrorIs(t, err, shared.ErrDuplicateEmail)
	assert.True(t, shared.IsAlreadyExists(err))

	count, err := accounts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegister_InvalidInput(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newTestManager(t, DefaultTTL)

	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"empty name", func(i *RegisterInput) { i.Name = "" }},
		{"empty email", func(i *RegisterInput) { i.Email = "" }},
		{"bad email", func(i *RegisterInput) { i.Email = "not-an-email" }},
		{"empty password", func(i *RegisterInput) { i.Password = "" }},
		{"unknown role", func(i *RegisterInput) { i.Role = "dean" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := studentInput()
			tt.mutate(&input)
			_, err := mgr.Register(ctx, input)
			assert.Error(t, err)
		})
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newTestManager(t, DefaultTTL)

	_, err := mgr.Register(ctx, studentInput())
	require.NoError(t, err)

	_, err = mgr.Login(ctx, "alice@example.com", "wrong", "student")
	assert.ErrorIs(t, err, shared.ErrWrongPassword)
	assert.True(t, shared.IsUnauthorized(err))
}

func TestLogin_UnknownPair(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newTestManager(t, DefaultTTL)

	_, err := mgr.Register(ctx, studentInput())
	require.NoError(t, err)

	// Right email, wrong role: the (email, role) pair does not match.
	_, err = mgr.Login(ctx, "alice@example.com", "s3cret", "faculty")
	assert.True(t, shared.IsNotFound(err))

	_, err = mgr.Login(ctx, "nobody@example.com", "s3cret", "student")
	assert.True(t, shared.IsNotFound(err))
}

func TestLogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newTestManager(t, DefaultTTL)

	sess, err := mgr.Register(ctx, studentInput())
	require.NoError(t, err)

	require.NoError(t, mgr.Logout(ctx, sess.Token))
	require.NoError(t, mgr.Logout(ctx, sess.Token), "second logout is not an error")
	require.NoError(t, mgr.Logout(ctx, ""))
	require.NoError(t, mgr.Logout(ctx, "never-issued"))

	_, err = mgr.Current(ctx, sess.Token)
	assert.ErrorIs(t, err, shared.ErrSessionNotFound)
}

func TestCurrent(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newTestManager(t, DefaultTTL)

	sess, err := mgr.Register(ctx, studentInput())
	require.NoError(t, err)

	got, err := mgr.Current(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.Account, got.Account)

	_, err = mgr.Current(ctx, "")
	assert.ErrorIs(t, err, shared.ErrSessionNotFound)
	_, err = mgr.Current(ctx, "never-issued")
	assert.ErrorIs(t, err, shared.ErrSessionNotFound)
}

func TestCurrent_ExpiredSessionEvicted(t *testing.T) {
	ctx := context.Background()
	accounts := memory.NewAccountRepository()
	store := memory.NewSessionStore()
	log := logger.New(logger.Options{Output: testWriter{}, Level: logger.LevelError})
	mgr := NewManager(accounts, store, DefaultTTL, log)

	stale := &domainsession.Session{
		Token: "stale-token",
		Account: account.Projection{
			ID:    "a1",
			Name:  "Alice",
			Email: shared.Email("alice@example.com"),
			Role:  shared.RoleStudent,
		},
		CreatedAt: time.Now().UTC().Add(-25 * time.Hour),
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, store.Put(ctx, stale))

	_, err := mgr.Current(ctx, stale.Token)
	assert.ErrorIs(t, err, shared.ErrSessionNotFound)
}
