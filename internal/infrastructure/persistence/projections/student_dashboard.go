// Package projections implements read models for CQRS pattern.
// Views are recomputed from the repositories on demand; nothing here writes.
package projections

import (
	"context"
	"time"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/account"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/submission"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT DASHBOARD VIEW - Denormalized Read Model for Student Home
// ══════════════════════════════════════════════════════════════════════════════

// StudentDashboard is everything the student home page needs in one shot:
// profile fields, the submission list, and the chart tallies.
type StudentDashboard struct {
	// Identity
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`

	// Submissions, newest-first.
	Submissions []DashboardRow `json:"submissions"`

	// Chart tallies over the student's own submissions.
	StatusCounts map[string]int `json:"status_counts"`
	LevelCounts  map[string]int `json:"level_counts"`

	// Totals
	TotalSubmitted int `json:"total_submitted"`
	TotalPending   int `json:"total_pending"`
	TotalValidated int `json:"total_validated"`
	TotalRejected  int `json:"total_rejected"`

	GeneratedAt time.Time `json:"generated_at"`
}

// DashboardRow is a single submission row in a dashboard table.
type DashboardRow struct {
	ID          int64     `json:"id"`
	SkillName   string    `json:"skillName"`
	Level       string    `json:"level"`
	Evidence    string    `json:"evidence,omitempty"`
	Status      string    `json:"status"`
	Feedback    string    `json:"feedback"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// StudentDashboardView builds StudentDashboard read models.
type StudentDashboardView struct {
	accounts    account.Repository
	submissions submission.Repository
}

// NewStudentDashboardView creates a new StudentDashboardView.
func NewStudentDashboardView(accounts account.Repository, submissions submission.Repository) *StudentDashboardView {
	return &StudentDashboardView{
		accounts:    accounts,
		submissions: submissions,
	}
}

// Build computes the dashboard for one student.
func (v *StudentDashboardView) Build(ctx context.Context, email shared.Email) (*StudentDashboard, error) {
	acc, err := v.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	subs, err := v.submissions.ListByOwner(ctx, email)
	if err != nil {
		return nil, err
	}

	submission.SortNewestFirst(subs)
	statusTally := submission.StatusTally(subs)

	dashboard := &StudentDashboard{
		Name:           acc.Name,
		Email:          string(acc.Email),
		Department:     acc.Department,
		Submissions:    make([]DashboardRow, 0, len(subs)),
		StatusCounts:   make(map[string]int, 3),
		LevelCounts:    make(map[string]int, len(submission.CanonicalLevels)),
		TotalSubmitted: len(subs),
		TotalPending:   statusTally[submission.StatusPending],
		TotalValidated: statusTally[submission.StatusValidated],
		TotalRejected:  statusTally[submission.StatusRejected],
		GeneratedAt:    time.Now().UTC(),
	}

	for status, count := range statusTally {
		dashboard.StatusCounts[string(status)] = count
	}
	for level, count := range submission.LevelTally(subs) {
		dashboard.LevelCounts[string(level)] = count
	}

	for _, s := range subs {
		dashboard.Submissions = append(dashboard.Submissions, DashboardRow{
			ID:          s.ID.Int64(),
			SkillName:   s.SkillName,
			Level:       string(s.Level),
			Evidence:    s.Evidence,
			Status:      string(s.Status),
			Feedback:    s.Feedback,
			SubmittedAt: s.CreatedAt,
		})
	}

	return dashboard, nil
}
