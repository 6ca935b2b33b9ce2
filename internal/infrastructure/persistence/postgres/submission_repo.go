package postgres

import (
	"context"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/submission"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUBMISSION REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// SubmissionRepository implements submission.Repository for PostgreSQL.
// Submission IDs come from a BIGSERIAL column, keeping them monotonic with
// creation order.
type SubmissionRepository struct {
	conn *Connection
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(conn *Connection) *SubmissionRepository {
	return &SubmissionRepository{conn: conn}
}

const submissionColumns = `id, owner_email, skill_name, level, evidence, status, feedback, reviewed_by, created_at, updated_at`

// Create stores a new submission and fills in its assigned ID.
func (r *SubmissionRepository) Create(ctx context.Context, sub *submission.Submission) error {
	query := `
		INSERT INTO submissions (owner_email, skill_name, level, evidence, status, feedback, reviewed_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id int64
	err := r.conn.QueryRow(ctx, query,
		string(sub.OwnerEmail),
		sub.SkillName,
		string(sub.Level),
		sub.Evidence,
		string(sub.Status),
		sub.Feedback,
		string(sub.ReviewedBy),
		sub.CreatedAt,
		sub.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return shared.ErrAccountNotFound
		}
		return shared.WrapError("submission", "Create", shared.ErrTransport, "failed to create submission", err)
	}

	sub.ID = shared.SubmissionID(id)
	return nil
}

// GetByID returns a submission by ID.
func (r *SubmissionRepository) GetByID(ctx context.Context, id shared.SubmissionID) (*submission.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`

	row := r.conn.QueryRow(ctx, query, id.Int64())
	return r.scanSubmission(row)
}

// Update overwrites a submission.
func (r *SubmissionRepository) Update(ctx context.Context, sub *submission.Submission) error {
	query := `
		UPDATE submissions SET
			skill_name = $1,
			level = $2,
			evidence = $3,
			status = $4,
			feedback = $5,
			reviewed_by = $6,
			updated_at = $7
		WHERE id = $8
	`

	result, err := r.conn.Exec(ctx, query,
		sub.SkillName,
		string(sub.Level),
		sub.Evidence,
		string(sub.Status),
		sub.Feedback,
		string(sub.ReviewedBy),
		sub.UpdatedAt,
		sub.ID.Int64(),
	)
	if err != nil {
		return shared.WrapError("submission", "Update", shared.ErrTransport, "failed to update submission", err)
	}

	if result.RowsAffected() == 0 {
		return shared.ErrSubmissionNotFound
	}

	return nil
}

// ListByOwner returns all submissions owned by the given student.
func (r *SubmissionRepository) ListByOwner(ctx context.Context, owner shared.Email) ([]*submission.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE owner_email = $1`

	rows, err := r.conn.Query(ctx, query, string(owner.Normalize()))
	if err != nil {
		return nil, shared.WrapError("submission", "ListByOwner", shared.ErrTransport, "failed to query submissions", err)
	}
	defer rows.Close()

	return r.scanSubmissions(rows)
}

// ListAll returns all submissions across all students.
func (r *SubmissionRepository) ListAll(ctx context.Context) ([]*submission.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, shared.WrapError("submission", "ListAll", shared.ErrTransport, "failed to query submissions", err)
	}
	defer rows.Close()

	return r.scanSubmissions(rows)
}

// Count returns the total number of submissions.
func (r *SubmissionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.conn.QueryRow(ctx, "SELECT COUNT(*) FROM submissions").Scan(&count)
	if err != nil {
		return 0, shared.WrapError("submission", "Count", shared.ErrTransport, "failed to count submissions", err)
	}
	return count, nil
}

// scanSubmission scans a single submission row.
func (r *SubmissionRepository) scanSubmission(row pgx.Row) (*submission.Submission, error) {
	var (
		sub        submission.Submission
		id         int64
		owner      string
		level      string
		status     string
		reviewedBy string
	)

	err := row.Scan(
		&id,
		&owner,
		&sub.SkillName,
		&level,
		&sub.Evidence,
		&status,
		&sub.Feedback,
		&reviewedBy,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrSubmissionNotFound
		}
		return nil, shared.WrapError("submission", "Scan", shared.ErrTransport, "failed to scan submission", err)
	}

	sub.ID = shared.SubmissionID(id)
	sub.OwnerEmail = shared.Email(owner)
	sub.Level = submission.Level(level)
	sub.Status = submission.Status(status)
	sub.ReviewedBy = shared.Email(reviewedBy)
	return &sub, nil
}

// scanSubmissions scans multiple submission rows.
func (r *SubmissionRepository) scanSubmissions(rows pgx.Rows) ([]*submission.Submission, error) {
	result := make([]*submission.Submission, 0)
	for rows.Next() {
		sub, err := r.scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, sub)
	}
	return result, rows.Err()
}
