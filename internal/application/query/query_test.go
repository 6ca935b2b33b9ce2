package query

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
)

func actorFor(role shared.Role, email, department string) *session.Session {
	return &session.Session{
		Token: "t",
		Account: account.Projection{
			ID:         "acc-" + email,
			Name:       "Someone",
			Email:      shared.Email(email),
			Role:       role,
			Department: department,
		},
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
}

func seedAccount(t *testing.T, repo account.Repository, email, department string) {
	t.Helper()
	acc, err := account.NewAccount(account.NewAccountParams{
		ID:           "acc-" + email,
		Name:         "Student " + email,
		Email:        email,
		PasswordHash: "hash",
		Role:         "student",
		Department:   department,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), acc))
}

func seed(t *testing.T, repo submission.Repository, owner, skill, level string) *submission.Submission {
	t.Helper()
	sub, err := submission.NewSubmission(submission.NewSubmissionParams{
		OwnerEmail: owner,
		SkillName:  skill,
		Level:      level,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), sub))
	return sub
}

func TestGetMySkills_OwnerIsolation(t *testing.T) {
	ctx := context.Background()
	subs := memory.NewSubmissionRepository()
	seed(t, subs, "alice@example.com", "Go", "Beginner")
	seed(t, subs, "bob@example.com", "SQL", "Advanced")
	latest := seed(t, subs, "alice@example.com", "Rust", "Intermediate")

	h := NewGetMySkillsHandler(subs)
	result, err := h.Handle(ctx, GetMySkillsQuery{Actor: actorFor(shared.RoleStudent, "alice@example.com", "")})
	require.NoError(t, err)

	require.Equal(t, 2, result.TotalCount)
	assert.Equal(t, latest.ID.Int64(), result.Skills[0].ID, "newest first")
	for _, skill := range result.Skills {
		assert.NotEqual(t, "SQL", skill.SkillName, "other students' rows never leak")
	}
}

func TestGetMySkills_RequiresStudent(t *testing.T) {
	h := NewGetMySkillsHandler(memory.NewSubmissionRepository())
	_, err := h.Handle(context.Background(), GetMySkillsQuery{Actor: actorFor(shared.RoleFaculty, "prof@example.com", "")})
	assert.ErrorIs(t, err, shared.ErrNotStudent)
}

func TestGetAllSubmissions(t *testing.T) {
	ctx := context.Background()
	subs := memory.NewSubmissionRepository()
	accounts := memory.NewAccountRepository()
	seedAccount(t, accounts, "alice@example.com", "Computer Science")
	seedAccount(t, accounts, "bob@example.com", "Physics")
	seed(t, subs, "alice@example.com", "Go", "Beginner")
	bobs := seed(t, subs, "bob@example.com", "SQL", "Advanced")

	// A reviewed row should not count as pending.
	require.NoError(t, bobs.Review(submission.StatusValidated, "prof@example.com"))
	require.NoError(t, subs.Update(ctx, bobs))

	h := NewGetAllSubmissionsHandler(subs, accounts)
	result, err := h.Handle(ctx, GetAllSubmissionsQuery{Actor: actorFor(shared.RoleFaculty, "prof@example.com", "Computer Science")})
	require.NoError(t, err)

	require.Equal(t, 2, result.TotalCount)
	assert.Equal(t, 1, result.PendingCount)

	byEmail := make(map[string]SubmissionDTO, len(result.Submissions))
	for _, row := range result.Submissions {
		byEmail[row.StudentEmail] = row
	}
	assert.Equal(t, "Student alice@example.com", byEmail["alice@example.com"].StudentName)
	assert.Equal(t, "prof@example.com", byEmail["bob@example.com"].ReviewedBy)
}

func TestGetAllSubmissions_DepartmentOnly(t *testing.T) {
	ctx := context.Background()
	subs := memory.NewSubmissionRepository()
	accounts := memory.NewAccountRepository()
	seedAccount(t, accounts, "alice@example.com", "Computer Science")
	seedAccount(t, accounts, "bob@example.com", "Physics")
	seed(t, subs, "alice@example.com", "Go", "Beginner")
	seed(t, subs, "bob@example.com", "SQL", "Advanced")

	h := NewGetAllSubmissionsHandler(subs, accounts)
	result, err := h.Handle(ctx, GetAllSubmissionsQuery{
		Actor:          actorFor(shared.RoleFaculty, "prof@example.com", "Computer Science"),
		DepartmentOnly: true,
	})
	require.NoError(t, err)

	require.Equal(t, 1, result.TotalCount)
	assert.Equal(t, "alice@example.com", result.Submissions[0].StudentEmail)
}

func TestGetAllSubmissions_OrphanedSubmissionKept(t *testing.T) {
	ctx := context.Background()
	subs := memory.NewSubmissionRepository()
	accounts := memory.NewAccountRepository()
	seed(t, subs, "ghost@example.com", "Go", "Beginner")

	h := NewGetAllSubmissionsHandler(subs, accounts)
	result, err := h.Handle(ctx, GetAllSubmissionsQuery{Actor: actorFor(shared.RoleFaculty, "prof@example.com", "")})
	require.NoError(t, err)

	require.Equal(t, 1, result.TotalCount)
	assert.Empty(t, result.Submissions[0].StudentName)
	assert.Empty(t, result.Submissions[0].StudentEmail)
}

func TestGetAllSubmissions_RequiresFaculty(t *testing.T) {
	h := NewGetAllSubmissionsHandler(memory.NewSubmissionRepository(), memory.NewAccountRepository())
	_, err := h.Handle(context.Background(), GetAllSubmissionsQuery{Actor: actorFor(shared.RoleStudent, "alice@example.com", "")})
	assert.ErrorIs(t, err, shared.ErrNotFaculty)
}

func TestGetSkillSummary_ScopeByRole(t *testing.T) {
	ctx := context.Background()
	subs := memory.NewSubmissionRepository()
	seed(t, subs, "alice@example.com", "Go", "Beginner")
	seed(t, subs, "alice@example.com", "Rust", "Beginner")
	seed(t, subs, "bob@example.com", "SQL", "Advanced")

	h := NewGetSkillSummaryHandler(subs)

	student, err := h.Handle(ctx, GetSkillSummaryQuery{Actor: actorFor(shared.RoleStudent, "alice@example.com", "")})
	require.NoError(t, err)
	assert.Equal(t, 2, student.TotalCount)
	assert.Equal(t, 2, student.LevelCounts["Beginner"])
	assert.Equal(t, 2, student.StatusCounts["Pending"])
	assert.Equal(t, 0, student.StatusCounts["Validated"], "every canonical status has a bucket")

	faculty, err := h.Handle(ctx, GetSkillSummaryQuery{Actor: actorFor(shared.RoleFaculty, "prof@example.com", "")})
	require.NoError(t, err)
	assert.Equal(t, 3, faculty.TotalCount)
	assert.Equal(t, 1, faculty.LevelCounts["Advanced"])
}

func TestGetSkillSummary_RequiresSession(t *testing.T) {
	h := NewGetSkillSummaryHandler(memory.NewSubmissionRepository())
	_, err := h.Handle(context.Background(), GetSkillSummaryQuery{})
	assert.ErrorIs(t, err, shared.ErrSessionNotFound)
}
