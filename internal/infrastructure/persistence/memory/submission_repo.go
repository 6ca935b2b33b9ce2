package memory

import (
	"context"
	"sync"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/submission"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUBMISSION REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// SubmissionRepository implements submission.Repository in memory.
// IDs are assigned from a monotonic in-process sequence.
type SubmissionRepository struct {
	mu          sync.RWMutex
	submissions map[shared.SubmissionID]*submission.Submission
	lastID      int64
}

// NewSubmissionRepository creates an empty in-memory submission repository.
func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{
		submissions: make(map[shared.SubmissionID]*submission.Submission),
	}
}

// Create stores a new submission, assigning the next monotonic ID in place.
func (r *SubmissionRepository) Create(_ context.Context, sub *submission.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	sub.ID = shared.SubmissionID(r.lastID)
	r.submissions[sub.ID] = sub.Clone()
	return nil
}

// GetByID returns a submission by ID.
func (r *SubmissionRepository) GetByID(_ context.Context, id shared.SubmissionID) (*submission.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, ok := r.submissions[id]
	if !ok {
		return nil, shared.ErrSubmissionNotFound
	}
	return sub.Clone(), nil
}

// Update overwrites a stored submission. The write is atomic per record:
// readers never observe a half-updated submission.
func (r *SubmissionRepository) Update(_ context.Context, sub *submission.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.submissions[sub.ID]; !ok {
		return shared.ErrSubmissionNotFound
	}

	r.submissions[sub.ID] = sub.Clone()
	return nil
}

// ListByOwner returns all submissions owned by the given student.
// Order is unspecified; callers re-sort.
func (r *SubmissionRepository) ListByOwner(_ context.Context, owner shared.Email) ([]*submission.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := owner.Normalize()
	result := make([]*submission.Submission, 0)
	for _, sub := range r.submissions {
		if sub.OwnerEmail == key {
			result = append(result, sub.Clone())
		}
	}
	return result, nil
}

// ListAll returns all submissions. Order is unspecified; callers re-sort.
func (r *SubmissionRepository) ListAll(_ context.Context) ([]*submission.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*submission.Submission, 0, len(r.submissions))
	for _, sub := range r.submissions {
		result = append(result, sub.Clone())
	}
	return result, nil
}

// Count returns the total number of submissions.
func (r *SubmissionRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.submissions), nil
}
