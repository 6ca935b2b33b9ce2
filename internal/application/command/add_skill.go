// Package command contains write operations (CQRS - Commands).
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
// ADD SKILL COMMAND
// A student claims proficiency in a named skill, optionally attaching an
// evidence file reference. The new submission is always Pending with empty
// feedback; the store is untouched on any failure.
// ══════════════════════════════════════════════════════════════════════════════

// AddSkillCommand contains the data to create a skill submission.
type AddSkillCommand struct {
	// Actor is the session performing the call. Must belong to a student.
	Actor *session.Session

	// SkillName is the claimed skill (must be non-empty after trimming).
	SkillName string

	// Level is the claimed proficiency level.
	Level string

	// Evidence is an opaque stored-file reference (optional).
	Evidence string
}

// Validate validates the command.
func (c AddSkillCommand) Validate() error {
	if err := c.Actor.RequireStudent(); err != nil {
		return err
	}
	if c.Level == "" {
		return submission.ErrMissingLevel
	}
	return nil
}

// AddSkillResult contains the result of adding a skill.
type AddSkillResult struct {
	// Submission is the stored submission with its assigned ID.
	Submission *submission.Submission

	// CreatedAt is when the submission was recorded.
	CreatedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// AddSkillHandler handles the AddSkillCommand.
type AddSkillHandler struct {
	submissions submission.Repository
	log         *logger.Logger
}

// NewAddSkillHandler creates a new AddSkillHandler.
func NewAddSkillHandler(submissions submission.Repository, log *logger.Logger) *AddSkillHandler {
	if log == nil {
		log = logger.Default()
	}
	return &AddSkillHandler{
		submissions: submissions,
		log:         log.With(logger.Component("add_skill")),
	}
}

// Handle executes the command.
func (h *AddSkillHandler) Handle(ctx context.Context, cmd AddSkillCommand) (*AddSkillResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	sub, err := submission.NewSubmission(submission.NewSubmissionParams{
		OwnerEmail: string(cmd.Actor.Account.Email),
		SkillName:  cmd.SkillName,
		Level:      cmd.Level,
		Evidence:   cmd.Evidence,
	})
	if err != nil {
		return nil, err
	}

	if err := h.submissions.Create(ctx, sub); err != nil {
		return nil, shared.WrapError("submission", "Create", shared.ErrTransport, "failed to store submission", err)
	}

	h.log.Info("skill submitted",
		logger.Email(string(sub.OwnerEmail)),
		logger.SkillName(sub.SkillName),
		logger.SubmissionID(sub.ID.Int64()),
	)

	return &AddSkillResult{
		Submission: sub,
		CreatedAt:  sub.CreatedAt,
	}, nil
}
