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
// LEAVE FEEDBACK COMMAND
// A faculty member attaches remarks to a submission. Feedback is independent
// of status and may be set or overwritten at any point; an empty string
// clears it. Status is untouched.
// ══════════════════════════════════════════════════════════════════════════════

// LeaveFeedbackCommand contains the data to set feedback on a submission.
type LeaveFeedbackCommand struct {
	// Actor is the session performing the call. Must belong to faculty.
	Actor *session.Session

	// SubmissionID identifies the submission.
	SubmissionID int64

	// Feedback is the remark text. Empty clears existing feedback.
	Feedback string
}

// Validate validates the command.
func (c LeaveFeedbackCommand) Validate() error {
	if err := c.Actor.RequireFaculty(); err != nil {
		return err
	}
	if _, err := shared.NewSubmissionID(c.SubmissionID); err != nil {
		return err
	}
	return nil
}

// LeaveFeedbackResult contains the result of setting feedback.
type LeaveFeedbackResult struct {
	// Submission is the updated submission.
	Submission *submission.Submission

	// UpdatedAt is when the feedback was recorded.
	UpdatedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// LeaveFeedbackHandler handles the LeaveFeedbackCommand.
type LeaveFeedbackHandler struct {
	submissions submission.Repository
	log         *logger.Logger
}

// NewLeaveFeedbackHandler creates a new LeaveFeedbackHandler.
func NewLeaveFeedbackHandler(submissions submission.Repository, log *logger.Logger) *LeaveFeedbackHandler {
	if log == nil {
		log = logger.Default()
	}
	return &LeaveFeedbackHandler{
		submissions: submissions,
		log:         log.With(logger.Component("leave_feedback")),
	}
}

// Handle executes the command.
func (h *LeaveFeedbackHandler) Handle(ctx context.Context, cmd LeaveFeedbackCommand) (*LeaveFeedbackResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	sub, err := h.submissions.GetByID(ctx, shared.SubmissionID(cmd.SubmissionID))
	if err != nil {
		return nil, err
	}

	sub.SetFeedback(cmd.Feedback, cmd.Actor.Account.Email)

	if err := h.submissions.Update(ctx, sub); err != nil {
		return nil, err
	}

	h.log.Info("feedback recorded",
		logger.SubmissionID(sub.ID.Int64()),
		logger.Email(string(cmd.Actor.Account.Email)),
	)

	return &LeaveFeedbackResult{
		Submission: sub,
		UpdatedAt:  sub.UpdatedAt,
	}, nil
}
