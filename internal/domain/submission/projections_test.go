package submission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
)

func mustSubmission(t *testing.T, id int64, owner, skill string, level Level, status Status) *Submission {
	t.Helper()
	sub, err := NewSubmission(NewSubmissionParams{
		OwnerEmail: owner,
		SkillName:  skill,
		Level:      string(level),
	})
	if err != nil {
		t.Fatalf("failed to build submission: %v", err)
	}
	sub.ID = shared.SubmissionID(id)
	sub.Status = status
	return sub
}

func TestStatusTally_AllStatusesPresent(t *testing.T) {
	tally := StatusTally(nil)

	assert.Len(t, tally, 3)
	assert.Equal(t, 0, tally[StatusPending])
	assert.Equal(t, 0, tally[StatusValidated])
	assert.Equal(t, 0, tally[StatusRejected])
}

func TestStatusTally_Counts(t *testing.T) {
	subs := []*Submission{
		mustSubmission(t, 1, "a@example.com", "Go", LevelBeginner, StatusPending),
		mustSubmission(t, 2, "a@example.com", "SQL", LevelExpert, StatusValidated),
		mustSubmission(t, 3, "b@example.com", "Go", LevelBeginner, StatusValidated),
	}

	tally := StatusTally(subs)
	assert.Equal(t, 1, tally[StatusPending])
	assert.Equal(t, 2, tally[StatusValidated])
	assert.Equal(t, 0, tally[StatusRejected])

	// Sum of buckets equals input size.
	total := 0
	for _, n := range tally {
		total += n
	}
	assert.Equal(t, len(subs), total)
}

func TestLevelTally_PassThroughBucket(t *testing.T) {
	subs := []*Submission{
		mustSubmission(t, 1, "a@example.com", "Go", LevelBeginner, StatusPending),
		mustSubmission(t, 2, "a@example.com", "SQL", Level("Wizard"), StatusPending),
	}

	tally := LevelTally(subs)

	// Four canonical buckets plus the off-enum one.
	assert.Len(t, tally, 5)
	assert.Equal(t, 1, tally[LevelBeginner])
	assert.Equal(t, 0, tally[LevelCertified])
	assert.Equal(t, 1, tally[Level("Wizard")])
}

func TestSortNewestFirst(t *testing.T) {
	subs := []*Submission{
		mustSubmission(t, 2, "a@example.com", "SQL", LevelBeginner, StatusPending),
		mustSubmission(t, 5, "a@example.com", "Go", LevelBeginner, StatusPending),
		mustSubmission(t, 1, "a@example.com", "Rust", LevelBeginner, StatusPending),
	}

	sorted := SortNewestFirst(subs)

	assert.Equal(t, shared.SubmissionID(5), sorted[0].ID)
	assert.Equal(t, shared.SubmissionID(2), sorted[1].ID)
	assert.Equal(t, shared.SubmissionID(1), sorted[2].ID)
}

func TestFilterByOwner(t *testing.T) {
	subs := []*Submission{
		mustSubmission(t, 1, "a@example.com", "Go", LevelBeginner, StatusPending),
		mustSubmission(t, 2, "b@example.com", "SQL", LevelBeginner, StatusPending),
		mustSubmission(t, 3, "a@example.com", "Rust", LevelBeginner, StatusPending),
	}

	mine := FilterByOwner(subs, shared.Email("A@Example.com"))
	assert.Len(t, mine, 2)
	for _, s := range mine {
		assert.Equal(t, shared.Email("a@example.com"), s.OwnerEmail)
	}

	none := FilterByOwner(subs, shared.Email("c@example.com"))
	assert.Empty(t, none)
}
