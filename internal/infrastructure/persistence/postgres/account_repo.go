package postgres

import (
	"context"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/account"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"

	"github.com/jackc/pgx/v5"
)

// ══════════════════════════════════════════════════════════════════════════════
// ACCOUNT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// AccountRepository implements account.Repository for PostgreSQL.
// Driver failures surface as a single transport-tagged error, untouched by
// any retry: retries belong to a policy layer outside this core.
type AccountRepository struct {
	conn *Connection
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(conn *Connection) *AccountRepository {
	return &AccountRepository{conn: conn}
}

const accountColumns = `id, name, email, password_hash, role, department, created_at`

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, acc *account.Account) error {
	query := `
		INSERT INTO accounts (id, name, email, password_hash, role, department, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.conn.Exec(ctx, query,
		acc.ID,
		acc.Name,
		string(acc.Email),
		acc.PasswordHash,
		string(acc.Role),
		acc.Department,
		acc.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrDuplicateEmail
		}
		return shared.WrapError("account", "Create", shared.ErrTransport, "failed to create account", err)
	}

	return nil
}

// GetByEmail returns an account by email, ignoring role.
func (r *AccountRepository) GetByEmail(ctx context.Context, email shared.Email) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	row := r.conn.QueryRow(ctx, query, string(email.Normalize()))
	return r.scanAccount(row)
}

// GetByEmailAndRole returns an account matching both email and role.
func (r *AccountRepository) GetByEmailAndRole(ctx context.Context, email shared.Email, role shared.Role) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1 AND role = $2`

	row := r.conn.QueryRow(ctx, query, string(email.Normalize()), string(role))
	return r.scanAccount(row)
}

// ExistsByEmail checks if an account exists by email.
func (r *AccountRepository) ExistsByEmail(ctx context.Context, email shared.Email) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1)",
		string(email.Normalize()),
	).Scan(&exists)
	if err != nil {
		return false, shared.WrapError("account", "Exists", shared.ErrTransport, "failed to check account existence", err)
	}
	return exists, nil
}

// Count returns the total number of accounts.
func (r *AccountRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.conn.QueryRow(ctx, "SELECT COUNT(*) FROM accounts").Scan(&count)
	if err != nil {
		return 0, shared.WrapError("account", "Count", shared.ErrTransport, "failed to count accounts", err)
	}
	return count, nil
}

// scanAccount scans a single account row.
func (r *AccountRepository) scanAccount(row pgx.Row) (*account.Account, error) {
	var (
		acc   account.Account
		email string
		role  string
	)

	err := row.Scan(
		&acc.ID,
		&acc.Name,
		&email,
		&acc.PasswordHash,
		&role,
		&acc.Department,
		&acc.CreatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrAccountNotFound
		}
		return nil, shared.WrapError("account", "Scan", shared.ErrTransport, "failed to scan account", err)
	}

	acc.Email = shared.Email(email)
	acc.Role = shared.Role(role)
	return &acc, nil
}
