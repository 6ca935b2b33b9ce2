package query

import (
	"context"
	"time"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/account"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/session"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/submission"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET ALL SUBMISSIONS QUERY
// Faculty view over every student's submissions, newest-first, enriched with
// student name and email for the review table. DepartmentOnly narrows the
// list to students of the caller's own department, the way the original
// faculty dashboard works; by default the full list is returned.
// ══════════════════════════════════════════════════════════════════════════════

// GetAllSubmissionsQuery contains the parameters of a faculty listing.
type GetAllSubmissionsQuery struct {
	// Actor is the session performing the call. Must belong to faculty.
	Actor *session.Session

	// DepartmentOnly restricts the listing to students of the caller's
	// department. Ignored when the caller has no department.
	DepartmentOnly bool
}

// Validate validates the query.
func (q GetAllSubmissionsQuery) Validate() error {
	return q.Actor.RequireFaculty()
}

// SubmissionDTO is a review-table row: a submission plus its student.
type SubmissionDTO struct {
	SkillDTO

	// StudentName is the display name of the submitting student.
	StudentName string `json:"studentName"`

	// StudentEmail is the email of the submitting student.
	StudentEmail string `json:"studentEmail"`

	// StudentDepartment is the department of the submitting student.
	StudentDepartment string `json:"studentDepartment,omitempty"`

	// ReviewedBy is the faculty member who last touched the submission.
	ReviewedBy string `json:"reviewed_by,omitempty"`
}

// GetAllSubmissionsResult contains the result of a faculty listing.
type GetAllSubmissionsResult struct {
	// Submissions are the rows, newest-first.
	Submissions []SubmissionDTO `json:"submissions"`

	// TotalCount is the number of rows returned.
	TotalCount int `json:"total_count"`

	// PendingCount is how many of them still await review.
	PendingCount int `json:"pending_count"`

	// GeneratedAt is when the result was generated.
	GeneratedAt time.Time `json:"generated_at"`
}

// GetAllSubmissionsHandler handles faculty listing queries.
type GetAllSubmissionsHandler struct {
	submissions submission.Repository
	accounts    account.Repository
}

// NewGetAllSubmissionsHandler creates a new GetAllSubmissionsHandler.
func NewGetAllSubmissionsHandler(submissions submission.Repository, accounts account.Repository) *GetAllSubmissionsHandler {
	return &GetAllSubmissionsHandler{
		submissions: submissions,
		accounts:    accounts,
	}
}

// Handle executes the query.
func (h *GetAllSubmissionsHandler) Handle(ctx context.Context, query GetAllSubmissionsQuery) (*GetAllSubmissionsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	subs, err := h.submissions.ListAll(ctx)
	if err != nil {
		return nil, shared.WrapError("query", "GetAllSubmissions", shared.ErrTransport, "failed to list submissions", err)
	}

	submission.SortNewestFirst(subs)

	department := ""
	if query.DepartmentOnly {
		department = query.Actor.Account.Department
	}

	rows := make([]SubmissionDTO, 0, len(subs))
	pending := 0
	for _, s := range subs {
		student, err := h.accounts.GetByEmail(ctx, s.OwnerEmail)
		if err != nil {
			if shared.IsNotFound(err) {
				// Orphaned submission: keep the row, leave student fields empty.
				student = nil
			} else {
				return nil, shared.WrapError("query", "GetAllSubmissions", shared.ErrTransport, "failed to load student", err)
			}
		}

		if department != "" && (student == nil || student.Department != department) {
			continue
		}

		row := SubmissionDTO{
			SkillDTO:   newSkillDTO(s),
			ReviewedBy: string(s.ReviewedBy),
		}
		if student != nil {
			row.StudentName = student.Name
			row.StudentEmail = string(student.Email)
			row.StudentDepartment = student.Department
		}

		rows = append(rows, row)
		if s.Status == submission.StatusPending {
			pending++
		}
	}

	return &GetAllSubmissionsResult{
		Submissions:  rows,
		TotalCount:   len(rows),
		PendingCount: pending,
		GeneratedAt:  time.Now().UTC(),
	}, nil
}
