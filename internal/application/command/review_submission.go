package command

import (
	"context"
	"time"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/session"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/submission"
	"github.com/skilltrack-hub/skill-tracker-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// REVIEW SUBMISSION COMMAND
// A faculty member sets a submission's status to Validated or Rejected.
// Re-review is permitted: any status may be overwritten by any other, the
// transition discipline is deliberately loose. Feedback is untouched.
// ══════════════════════════════════════════════════════════════════════════════

// ReviewSubmissionCommand contains the data to review a submission.
type ReviewSubmissionCommand struct {
	// Actor is the session performing the call. Must belong to faculty.
	Actor *session.Session

	// SubmissionID identifies the submission under review.
	SubmissionID int64

	// Status is the verdict: Validated or Rejected.
	Status string
}

// Validate validates the command.
func (c ReviewSubmissionCommand) Validate() error {
	if err := c.Actor.RequireFaculty(); err != nil {
		return err
	}
	if _, err := shared.NewSubmissionID(c.SubmissionID); err != nil {
		return err
	}
	status, err := submission.NewStatus(c.Status)
	if err != nil {
		return err
	}
	if !status.IsReviewed() {
		return shared.ErrNotReviewable
	}
	return nil
}

// ReviewSubmissionResult contains the result of a review.
type ReviewSubmissionResult struct {
	// Submission is the updated submission.
	Submission *submission.Submission

	// PreviousStatus is the status before this review.
	PreviousStatus submission.Status

	// ReviewedAt is when the review was recorded.
	ReviewedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// ReviewSubmissionHandler handles the ReviewSubmissionCommand.
type ReviewSubmissionHandler struct {
	submissions submission.Repository
	log         *logger.Logger
}

// NewReviewSubmissionHandler creates a new ReviewSubmissionHandler.
func NewReviewSubmissionHandler(submissions submission.Repository, log *logger.Logger) *ReviewSubmissionHandler {
	if log == nil {
		log = logger.Default()
	}
	return &ReviewSubmissionHandler{
		submissions: submissions,
		log:         log.With(logger.Component("review_submission")),
	}
}

// Handle executes the command.
func (h *ReviewSubmissionHandler) Handle(ctx context.Context, cmd ReviewSubmissionCommand) (*ReviewSubmissionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	id := shared.SubmissionID(cmd.SubmissionID)
	sub, err := h.submissions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := sub.Status
	status, _ := submission.NewStatus(cmd.Status)
	if err := sub.Review(status, cmd.Actor.Account.Email); err != nil {
		return nil, err
	}

	if err := h.submissions.Update(ctx, sub); err != nil {
		return nil, err
	}

	h.log.Info("submission reviewed",
		logger.SubmissionID(sub.ID.Int64()),
		logger.String("status", string(sub.Status)),
		logger.Email(string(cmd.Actor.Account.Email)),
	)

	return &ReviewSubmissionResult{
		Submission:     sub,
		PreviousStatus: previous,
		ReviewedAt:     sub.UpdatedAt,
	}, nil
}
