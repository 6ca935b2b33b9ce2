package projections

import (
	"context"
	"time"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/account"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/submission"
)

// ══════════════════════════════════════════════════════════════════════════════
// FACULTY DASHBOARD VIEW - Denormalized Read Model for the Review Table
// ══════════════════════════════════════════════════════════════════════════════

// FacultyDashboard aggregates every student's submissions with reviewer
// context and chart tallies for the faculty dashboard page.
type FacultyDashboard struct {
	// Submissions, newest-first, each with its student attached.
	Submissions []ReviewRow `json:"submissions"`

	// Chart tallies over all listed submissions.
	StatusCounts map[string]int `json:"status_counts"`
	LevelCounts  map[string]int `json:"level_counts"`

	TotalCount   int `json:"total_count"`
	PendingCount int `json:"pending_count"`

	// Department is non-empty when the view was scoped to one department.
	Department string `json:"department,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// ReviewRow is a faculty review-table row.
type ReviewRow struct {
	DashboardRow

	StudentName       string `json:"studentName"`
	StudentEmail      string `json:"studentEmail"`
	StudentDepartment string `json:"studentDepartment,omitempty"`
	ReviewedBy        string `json:"reviewed_by,omitempty"`
}

// FacultyDashboardView builds FacultyDashboard read models.
type FacultyDashboardView struct {
	accounts    account.Repository
	submissions submission.Repository
}

// NewFacultyDashboardView creates a new FacultyDashboardView.
func NewFacultyDashboardView(accounts account.Repository, submissions submission.Repository) *FacultyDashboardView {
	return &FacultyDashboardView{
		accounts:    accounts,
		submissions: submissions,
	}
}

// Build computes the dashboard. A non-empty department narrows the view to
// students of that department, mirroring the original faculty page.
func (v *FacultyDashboardView) Build(ctx context.Context, department string) (*FacultyDashboard, error) {
	subs, err := v.submissions.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	submission.SortNewestFirst(subs)

	dashboard := &FacultyDashboard{
		Submissions:  make([]ReviewRow, 0, len(subs)),
		StatusCounts: make(map[string]int, 3),
		LevelCounts:  make(map[string]int, len(submission.CanonicalLevels)),
		Department:   department,
		GeneratedAt:  time.Now().UTC(),
	}

	kept := make([]*submission.Submission, 0, len(subs))
	for _, s := range subs {
		student, err := v.accounts.GetByEmail(ctx, s.OwnerEmail)
		if err != nil {
			if shared.IsNotFound(err) {
				student = nil
			} else {
				return nil, err
			}
		}

		if department != "" && (student == nil || student.Department != department) {
			continue
		}

		row := ReviewRow{
			DashboardRow: DashboardRow{
				ID:          s.ID.Int64(),
				SkillName:   s.SkillName,
				Level:       string(s.Level),
				Evidence:    s.Evidence,
				Status:      string(s.Status),
				Feedback:    s.Feedback,
				SubmittedAt: s.CreatedAt,
			},
			ReviewedBy: string(s.ReviewedBy),
		}
		if student != nil {
			row.StudentName = student.Name
			row.StudentEmail = string(student.Email)
			row.StudentDepartment = student.Department
		}

		dashboard.Submissions = append(dashboard.Submissions, row)
		kept = append(kept, s)
		if s.Status == submission.StatusPending {
			dashboard.PendingCount++
		}
	}

	dashboard.TotalCount = len(kept)
	for status, count := range submission.StatusTally(kept) {
		dashboard.StatusCounts[string(status)] = count
	}
	for level, count := range submission.LevelTally(kept) {
		dashboard.LevelCounts[string(level)] = count
	}

	return dashboard, nil
}
