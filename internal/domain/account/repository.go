package account

import (
	"context"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACE
// Эти интерфейсы определяют контракт для работы с хранилищем данных.
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository определяет операции над учётными записями.
// Записи ключуются по email; уникальность email не зависит от роли.
type Repository interface {
	// Create создаёт новую учётную запись.
	// Возвращает shared.ErrDuplicateEmail, если email уже зарегистрирован.
	Create(ctx context.Context, acc *Account) error

	// GetByEmail возвращает учётную запись по email (роль не учитывается).
	// Возвращает shared.ErrAccountNotFound, если запись не найдена.
	GetByEmail(ctx context.Context, email shared.Email) (*Account, error)

	// GetByEmailAndRole возвращает учётную запись по паре (email, роль) -
	// именно так выполняется вход в систему.
	// Возвращает shared.ErrAccountNotFound, если запись не найдена.
	GetByEmailAndRole(ctx context.Context, email shared.Email, role shared.Role) (*Account, error)

	// ExistsByEmail проверяет существование записи по email.
	ExistsByEmail(ctx context.Context, email shared.Email) (bool, error)

	// Count возвращает общее количество учётных записей.
	Count(ctx context.Context) (int, error)
}
