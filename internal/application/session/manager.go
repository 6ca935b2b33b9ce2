// Package session implements the session manager: the single component that
// authenticates accounts and tracks the active identity of a client context.
// Flow on login: Find Account → Verify Credential → Open Session.
// Flow on register: Validate → Check Uniqueness → Create Account → Open Session.
package session

import (
	"context"
	"time"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/account"
	domainsession "github.com/skilltrack-hub/skill-tracker-hub/internal/domain/session"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
	"github.com/skilltrack-hub/skill-tracker-hub/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTTL is how long a session stays valid without an explicit logout.
const DefaultTTL = 24 * time.Hour

// Manager authenticates accounts and owns the session lifecycle.
// All state lives in the injected repository and store, so the same manager
// serves both the in-process and the server-backed bindings.
type Manager struct {
	accounts account.Repository
	sessions domainsession.Store
	ttl      time.Duration
	log      *logger.Logger
}

// NewManager creates a session manager. A zero ttl falls back to DefaultTTL.
func NewManager(accounts account.Repository, sessions domainsession.Store, ttl time.Duration, log *logger.Logger) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = logger.Default()
	}
	return &Manager{
		accounts: accounts,
		sessions: sessions,
		ttl:      ttl,
		log:      log.With(logger.Component("session_manager")),
	}
}

// RegisterInput contains everything needed to register a new account.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Role       string
	Department string
}

// Validate checks if the input is valid for registration.
func (i RegisterInput) Validate() error {
	if i.Name == "" {
		return account.ErrEmptyName
	}
	if i.Email == "" {
		return shared.ErrInvalidEmail
	}
	if i.Password == "" {
		return account.ErrEmptyPassword
	}
	if _, err := shared.NewRole(i.Role); err != nil {
		return err
	}
	return nil
}

// Login authenticates an account by (email, role) and password.
// Fails with a NotFound-tagged error when no account matches the pair, and
// with a BadCredential-tagged error on password mismatch. On success the
// active session is stored and returned.
func (m *Manager) Login(ctx context.Context, email, password, role string) (*domainsession.Session, error) {
	normEmail, err := shared.NewEmail(email)
	if err != nil {
		return nil, err
	}
	normRole, err := shared.NewRole(role)
	if err != nil {
		return nil, err
	}

	acc, err := m.accounts.GetByEmailAndRole(ctx, normEmail, normRole)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.ErrAccountNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		m.log.Warn("login rejected", logger.Email(string(normEmail)))
		return nil, shared.ErrWrongPassword
	}

	sess, err := m.openSession(ctx, acc)
	if err != nil {
		return nil, err
	}

	m.log.Info("login", logger.Email(string(normEmail)), logger.RoleField(string(normRole)))
	return sess, nil
}

// Register creates a new account and performs Login's session-setting side
// effect. Fails with an AlreadyExists-tagged error when the email is taken
// under any role; the store is left unmodified on any failure.
func (m *Manager) Register(ctx context.Context, input RegisterInput) (*domainsession.Session, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	normEmail, err := shared.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}

	exists, err := m.accounts.ExistsByEmail(ctx, normEmail)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.WrapError("session", "Register", shared.ErrValidation, "failed to hash password", err)
	}

	acc, err := account.NewAccount(account.NewAccountParams{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        string(normEmail),
		PasswordHash: string(hash),
		Role:         input.Role,
		Department:   input.Department,
	})
	if err != nil {
		return nil, err
	}

	if err := m.accounts.Create(ctx, acc); err != nil {
		// Lost the race against a concurrent registration of the same email.
		if shared.IsAlreadyExists(err) {
			return nil, shared.ErrDuplicateEmail
		}
		return nil, err
	}

	sess, err := m.openSession(ctx, acc)
	if err != nil {
		return nil, err
	}

	m.log.Info("account registered",
		logger.Email(string(acc.Email)),
		logger.RoleField(string(acc.Role)),
	)
	return sess, nil
}

// Logout clears the session unconditionally. Clearing an absent session is
// not an error.
func (m *Manager) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.sessions.Delete(ctx, token); err != nil && !shared.IsNotFound(err) {
		return err
	}
	return nil
}

// Current returns the active session for the token, or a NotFound-tagged
// error when the session is absent or expired.
func (m *Manager) Current(ctx context.Context, token string) (*domainsession.Session, error) {
	if token == "" {
		return nil, shared.ErrSessionNotFound
	}

	sess, err := m.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if sess.IsExpired(time.Now().UTC()) {
		_ = m.sessions.Delete(ctx, token)
		return nil, shared.ErrSessionNotFound
	}

	return sess, nil
}

// openSession issues a fresh token and stores the account's public projection.
func (m *Manager) openSession(ctx context.Context, acc *account.Account) (*domainsession.Session, error) {
	now := time.Now().UTC()
	sess := &domainsession.Session{
		Token:     uuid.NewString(),
		Account:   acc.Project(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.sessions.Put(ctx, sess); err != nil {
		return nil, shared.WrapError("session", "Open", shared.ErrTransport, "failed to store session", err)
	}

	return sess, nil
}
