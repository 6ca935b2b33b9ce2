// Package session содержит модель активной сессии пользователя.
// Сессия - явный объект, передаваемый в сервисные вызовы: никакого
// неявного глобального состояния "текущего пользователя" в ядре нет.
package session

import (
	"context"
	"time"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/account"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SESSION ENTITY
// ══════════════════════════════════════════════════════════════════════════════

// Session - активная сессия клиента. Хранит публичную проекцию учётной
// записи (без учётных данных) и идентифицируется непрозрачным токеном.
type Session struct {
	// Token - непрозрачный идентификатор сессии (UUID), выдаётся при входе.
	Token string `json:"token"`

	// Account - публичная проекция учётной записи.
	Account account.Projection `json:"account"`

	// CreatedAt - время входа.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt - время истечения сессии.
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired проверяет, истекла ли сессия к указанному моменту.
func (s *Session) IsExpired(at time.Time) bool {
	return !s.ExpiresAt.IsZero() && at.After(s.ExpiresAt)
}

// IsStudent возвращает true, если сессия принадлежит студенту.
func (s *Session) IsStudent() bool {
	return s.Account.Role == shared.RoleStudent
}

// IsFaculty возвращает true, если сессия принадлежит преподавателю.
func (s *Session) IsFaculty() bool {
	return s.Account.Role == shared.RoleFaculty
}

// RequireStudent возвращает ошибку, если сессия не студенческая.
func (s *Session) RequireStudent() error {
	if s == nil || !s.IsStudent() {
		return shared.ErrNotStudent
	}
	return nil
}

// RequireFaculty возвращает ошибку, если сессия не преподавательская.
func (s *Session) RequireFaculty() error {
	if s == nil || !s.IsFaculty() {
		return shared.ErrNotFaculty
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// STORE INTERFACE
// Реализации: in-memory (один клиентский контекст) и Redis (серверная,
// много одновременных клиентов). Контракт одинаковый.
// ══════════════════════════════════════════════════════════════════════════════

// Store определяет операции над активными сессиями.
type Store interface {
	// Put сохраняет сессию по её токену.
	Put(ctx context.Context, sess *Session) error

	// Get возвращает сессию по токену.
	// Возвращает shared.ErrSessionNotFound, если сессии нет или она истекла.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete удаляет сессию. Удаление отсутствующей сессии не ошибка.
	Delete(ctx context.Context, token string) error
}
