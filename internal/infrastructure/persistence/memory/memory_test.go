package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/account"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/session"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/submission"
)

func newSubmission(t *testing.T, owner string) *submission.Submission {
	t.Helper()
	sub, err := submission.NewSubmission(submission.NewSubmissionParams{
		OwnerEmail: owner,
		SkillName:  "Go",
		Level:      "Beginner",
	})
	require.NoError(t, err)
	return sub
}

func TestSubmissionRepository_MonotonicIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepository()

	first := newSubmission(t, "alice@example.com")
	second := newSubmission(t, "alice@example.com")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, int64(1), first.ID.Int64())
	assert.Equal(t, int64(2), second.ID.Int64())
	assert.True(t, first.ID.Before(second.ID))
}

func TestSubmissionRepository_CloneIsolation(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepository()

	sub := newSubmission(t, "alice@example.com")
	require.NoError(t, repo.Create(ctx, sub))

	// Mutating the caller's copy after Create must not touch the store.
	sub.SkillName = "Tampered"

	stored, err := repo.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", stored.SkillName)

	// Mutating a read result must not touch the store either.
	stored.Feedback = "scribble"
	again, err := repo.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Feedback)
}

func TestSubmissionRepository_UpdateUnknownID(t *testing.T) {
	repo := NewSubmissionRepository()
	sub := newSubmission(t, "alice@example.com")
	sub.ID = shared.SubmissionID(99)

	err := repo.Update(context.Background(), sub)
	assert.ErrorIs(t, err, shared.ErrSubmissionNotFound)
}

func TestSubmissionRepository_ListByOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewSubmissionRepository()
	require.NoError(t, repo.Create(ctx, newSubmission(t, "alice@example.com")))
	require.NoError(t, repo.Create(ctx, newSubmission(t, "bob@example.com")))

	// Lookup is case-insensitive on the owner email.
	subs, err := repo.ListByOwner(ctx, shared.Email("ALICE@Example.com"))
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, shared.Email("alice@example.com"), subs[0].OwnerEmail)
}

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()

	acc, err := account.NewAccount(account.NewAccountParams{
		ID:           "a1",
		Name:         "Alice",
		Email:        "Alice@Example.com",
		PasswordHash: "hash",
		Role:         "student",
		Department:   "Computer Science",
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, acc))

	// The store is keyed by normalized email.
	err = repo.Create(ctx, acc)
	assert.ErrorIs(t, err, shared.ErrDuplicateEmail)

	got, err := repo.GetByEmail(ctx, shared.Email("alice@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = repo.GetByEmailAndRole(ctx, acc.Email, shared.RoleFaculty)
	assert.ErrorIs(t, err, shared.ErrAccountNotFound, "role mismatch reads as absent")

	got, err = repo.GetByEmailAndRole(ctx, acc.Email, shared.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, shared.RoleStudent, got.Role)

	exists, err := repo.ExistsByEmail(ctx, acc.Email)
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	sess := &session.Session{
		Token:     "tok",
		Account:   account.Projection{ID: "a1", Email: shared.Email("alice@example.com"), Role: shared.RoleStudent},
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, store.Put(ctx, sess))

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, sess.Account.ID, got.Account.ID)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, shared.ErrSessionNotFound)

	require.NoError(t, store.Delete(ctx, "tok"))
	require.NoError(t, store.Delete(ctx, "tok"), "delete is idempotent")
	_, err = store.Get(ctx, "tok")
	assert.ErrorIs(t, err, shared.ErrSessionNotFound)
}

func TestSessionStore_ExpiredEvicted(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	sess := &session.Session{
		Token:     "stale",
		Account:   account.Projection{ID: "a1"},
		CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, store.Put(ctx, sess))

	_, err := store.Get(ctx, "stale")
	assert.ErrorIs(t, err, shared.ErrSessionNotFound)
}
