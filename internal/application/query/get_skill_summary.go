package query

import (
	"context"
	"time"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/session"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/submission"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET SKILL SUMMARY QUERY
// Status and level tallies backing the dashboard charts. Students see tallies
// over their own submissions; faculty see tallies over everything.
// ══════════════════════════════════════════════════════════════════════════════

// GetSkillSummaryQuery contains the parameters of a summary request.
type GetSkillSummaryQuery struct {
	// Actor is the session performing the call.
	Actor *session.Session
}

// Validate validates the query.
func (q GetSkillSummaryQuery) Validate() error {
	if q.Actor == nil {
		return shared.ErrSessionNotFound
	}
	return nil
}

// GetSkillSummaryResult contains chart-ready tallies.
type GetSkillSummaryResult struct {
	// StatusCounts maps each canonical status to its count (0 when unseen).
	StatusCounts map[string]int `json:"status_counts"`

	// LevelCounts maps each level to its count. Canonical levels are always
	// present; off-enum levels appear as their own buckets.
	LevelCounts map[string]int `json:"level_counts"`

	// TotalCount is the number of submissions tallied.
	TotalCount int `json:"total_count"`

	// GeneratedAt is when the result was generated.
	GeneratedAt time.Time `json:"generated_at"`
}

// GetSkillSummaryHandler handles summary queries.
type GetSkillSummaryHandler struct {
	submissions submission.Repository
}

// NewGetSkillSummaryHandler creates a new GetSkillSummaryHandler.
func NewGetSkillSummaryHandler(submissions submission.Repository) *GetSkillSummaryHandler {
	return &GetSkillSummaryHandler{submissions: submissions}
}

// Handle executes the query.
func (h *GetSkillSummaryHandler) Handle(ctx context.Context, query GetSkillSummaryQuery) (*GetSkillSummaryResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		subs []*submission.Submission
		err  error
	)
	if query.Actor.IsFaculty() {
		subs, err = h.submissions.ListAll(ctx)
	} else {
		subs, err = h.submissions.ListByOwner(ctx, query.Actor.Account.Email)
	}
	if err != nil {
		return nil, shared.WrapError("query", "GetSkillSummary", shared.ErrTransport, "failed to list submissions", err)
	}

	statusCounts := make(map[string]int, 3)
	for status, count := range submission.StatusTally(subs) {
		statusCounts[string(status)] = count
	}

	levelCounts := make(map[string]int, len(submission.CanonicalLevels))
	for level, count := range submission.LevelTally(subs) {
		levelCounts[string(level)] = count
	}

	return &GetSkillSummaryResult{
		StatusCounts: statusCounts,
		LevelCounts:  levelCounts,
		TotalCount:   len(subs),
		GeneratedAt:  time.Now().UTC(),
	}, nil
}
