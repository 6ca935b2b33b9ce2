package command

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
	"github.com/skilltrack-hub/skill-tracker-hub/internal/infrastructure/persistence/memory"
	"github.com/skilltrack-hub/skill-tracker-hub/pkg/logger"
)

func studentSession(email string) *session.Session {
	return &session.Session{
		Token: "t-student",
		Account: account.Projection{
			ID:         "s1",
			Name:       "Alice",
			Email:      shared.Email(email),
			Role:       shared.RoleStudent,
			Department: "Computer Science",
		},
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
}

func facultySession(email string) *session.Session {
	return &session.Session{
		Token: "t-faculty",
		Account: account.Projection{
			ID:         "f1",
			Name:       "Prof. Bob",
			Email:      shared.Email(email),
			Role:       shared.RoleFaculty,
			Department: "Computer Science",
		},
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{Output: discard{}, Level: logger.LevelFatal})
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// ══════════════════════════════════════════════════════════════════════════════
// ADD SKILL
// ══════════════════════════════════════════════════════════════════════════════

func TestAddSkill(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSubmissionRepository()
	h := NewAddSkillHandler(repo, quietLogger())

	result, err := h.Handle(ctx, AddSkillCommand{
		Actor:     studentSession("alice@example.com"),
		SkillName: "Go",
		Level:     "Intermediate",
	})
	require.NoError(t, err)

	assert.True(t, result.Submission.ID.IsValid())
	assert.Equal(t, submission.StatusPending, result.Submission.Status)
	assert.Empty(t, result.Submission.Feedback)
	assert.Equal(t, shared.Email("alice@example.com"), result.Submission.OwnerEmail)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAddSkill_EmptyNameLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSubmissionRepository()
	h := NewAddSkillHandler(repo, quietLogger())

	_, err := h.Handle(ctx, AddSkillCommand{
		Actor:     studentSession("alice@example.com"),
		SkillName: "   ",
		Level:     "Beginner",
	})
	assert.ErrorIs(t, err, shared.ErrEmptySkillName)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAddSkill_RequiresStudent(t *testing.T) {
	ctx := context.Background()
	h := NewAddSkillHandler(memory.NewSubmissionRepository(), quietLogger())

	_, err := h.Handle(ctx, AddSkillCommand{
		Actor:     facultySession("prof@example.com"),
		SkillName: "Go",
		Level:     "Beginner",
	})
	assert.ErrorIs(t, err, shared.ErrNotStudent)

	_, err = h.Handle(ctx, AddSkillCommand{SkillName: "Go", Level: "Beginner"})
	assert.ErrorIs(t, err, shared.ErrNotStudent, "nil actor is rejected")
}

func TestAddSkill_MonotonicIDs(t *testing.T) {
	ctx := context.Background()
	h := NewAddSkillHandler(memory.NewSubmissionRepository(), quietLogger())
	actor := studentSession("alice@example.com")

	var last shared.SubmissionID
	for _, skill := range []string{"Go", "SQL", "Rust"} {
		result, err := h.Handle(ctx, AddSkillCommand{Actor: actor, SkillName: skill, Level: "Beginner"})
		require.NoError(t, err)
		assert.True(t, last.Before(result.Submission.ID))
		last = result.Submission.ID
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// REVIEW SUBMISSION
// ══════════════════════════════════════════════════════════════════════════════

func seedSubmission(t *testing.T, repo submission.Repository, owner string) *submission.Submission {
	t.Helper()
	sub, err := submission.NewSubmission(submission.NewSubmissionParams{
		OwnerEmail: owner,
		SkillName:  "Go",
		Level:      "Intermediate",
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), sub))
	return sub
}

func TestReviewSubmission(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSubmissionRepository()
	sub := seedSubmission(t, repo, "alice@example.com")
	h := NewReviewSubmissionHandler(repo, quietLogger())

	result, err := h.Handle(ctx, ReviewSubmissionCommand{
		Actor:        facultySession("prof@example.com"),
		SubmissionID: sub.ID.Int64(),
		Status:       "Validated",
	})
	require.NoError(t, err)

	assert.Equal(t, submission.StatusPending, result.PreviousStatus)
	assert.Equal(t, submission.StatusValidated, result.Submission.Status)
	assert.Equal(t, shared.Email("prof@example.com"), result.Submission.ReviewedBy)

	stored, err := repo.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, submission.StatusValidated, stored.Status)
}

func TestReviewSubmission_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSubmissionRepository()
	sub := seedSubmission(t, repo, "alice@example.com")
	h := NewReviewSubmissionHandler(repo, quietLogger())
	actor := facultySession("prof@example.com")

	_, err := h.Handle(ctx, ReviewSubmissionCommand{Actor: actor, SubmissionID: sub.ID.Int64(), Status: "Validated"})
	require.NoError(t, err)

	result, err := h.Handle(ctx, ReviewSubmissionCommand{Actor: actor, SubmissionID: sub.ID.Int64(), Status: "Rejected"})
	require.NoError(t, err)

	assert.Equal(t, submission.StatusValidated, result.PreviousStatus)
	assert.Equal(t, submission.StatusRejected, result.Submission.Status)
}

func TestReviewSubmission_Rejections(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSubmissionRepository()
	sub := seedSubmission(t, repo, "alice@example.com")
	h := NewReviewSubmissionHandler(repo, quietLogger())

	_, err := h.Handle(ctx, ReviewSubmissionCommand{
		Actor:        studentSession("alice@example.com"),
		SubmissionID: sub.ID.Int64(),
		Status:       "Validated",
	})
	assert.ErrorIs(t, err, shared.ErrNotFaculty)

	_, err = h.Handle(ctx, ReviewSubmissionCommand{
		Actor:        facultySession("prof@example.com"),
		SubmissionID: sub.ID.Int64(),
		Status:       "Approved",
	})
	assert.ErrorIs(t, err, shared.ErrInvalidStatus)

	// Pending is a valid status but not a verdict.
	_, err = h.Handle(ctx, ReviewSubmissionCommand{
		Actor:        facultySession("prof@example.com"),
		SubmissionID: sub.ID.Int64(),
		Status:       "Pending",
	})
	assert.ErrorIs(t, err, shared.ErrNotReviewable)

	_, err = h.Handle(ctx, ReviewSubmissionCommand{
		Actor:        facultySession("prof@example.com"),
		SubmissionID: 999,
		Status:       "Validated",
	})
	assert.ErrorIs(t, err, shared.ErrSubmissionNotFound)
}

// ══════════════════════════════════════════════════════════════════════════════
// LEAVE FEEDBACK
// ══════════════════════════════════════════════════════════════════════════════

func TestLeaveFeedback(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSubmissionRepository()
	sub := seedSubmission(t, repo, "alice@example.com")
	h := NewLeaveFeedbackHandler(repo, quietLogger())
	actor := facultySession("prof@example.com")

	result, err := h.Handle(ctx, LeaveFeedbackCommand{
		Actor:        actor,
		SubmissionID: sub.ID.Int64(),
		Feedback:     "show a concurrent example",
	})
	require.NoError(t, err)

	assert.Equal(t, "show a concurrent example", result.Submission.Feedback)
	assert.Equal(t, submission.StatusPending, result.Submission.Status, "feedback leaves status alone")

	// Empty feedback clears the previous remark.
	result, err = h.Handle(ctx, LeaveFeedbackCommand{Actor: actor, SubmissionID: sub.ID.Int64()})
	require.NoError(t, err)
	assert.Empty(t, result.Submission.Feedback)
}

func TestLeaveFeedback_Rejections(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSubmissionRepository()
	sub := seedSubmission(t, repo, "alice@example.com")
	h := NewLeaveFeedbackHandler(repo, quietLogger())

	_, err := h.Handle(ctx, LeaveFeedbackCommand{
		Actor:        studentSession("alice@example.com"),
		SubmissionID: sub.ID.Int64(),
		Feedback:     "self-review",
	})
	assert.ErrorIs(t, err, shared.ErrNotFaculty)

	_, err = h.Handle(ctx, LeaveFeedbackCommand{
		Actor:        facultySession("prof@example.com"),
		SubmissionID: 42,
		Feedback:     "ghost",
	})
	assert.ErrorIs(t, err, shared.ErrSubmissionNotFound)
}
