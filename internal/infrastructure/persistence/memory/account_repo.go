// Package memory implements an in-process record store. It is the default
// single-client binding and the fixture store for tests: the same repository
// contracts as the postgres package, backed by mutex-guarded maps keyed the
// way the contracts key records (accounts by email, submissions by ID).
package memory

import (
	"context"
	"sync"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/account"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ACCOUNT REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// AccountRepository implements account.Repository in memory.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[shared.Email]*account.Account
}

// NewAccountRepository creates an empty in-memory account repository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[shared.Email]*account.Account),
	}
}

// Create creates a new account.
func (r *AccountRepository) Create(_ context.Context, acc *account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := acc.Email.Normalize()
	if _, ok := r.accounts[key]; ok {
		return shared.ErrDuplicateEmail
	}

	r.accounts[key] = acc.Clone()
	return nil
}

// GetByEmail returns an account by email, ignoring role.
func (r *AccountRepository) GetByEmail(_ context.Context, email shared.Email) (*account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.accounts[email.Normalize()]
	if !ok {
		return nil, shared.ErrAccountNotFound
	}
	return acc.Clone(), nil
}

// GetByEmailAndRole returns an account matching both email and role.
func (r *AccountRepository) GetByEmailAndRole(_ context.Context, email shared.Email, role shared.Role) (*account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.accounts[email.Normalize()]
	if !ok || acc.Role != role {
		return nil, shared.ErrAccountNotFound
	}
	return acc.Clone(), nil
}

// ExistsByEmail checks if an account exists by email.
func (r *AccountRepository) ExistsByEmail(_ context.Context, email shared.Email) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.accounts[email.Normalize()]
	return ok, nil
}

// Count returns the total number of accounts.
func (r *AccountRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.accounts), nil
}
