package submission

import (
	"context"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACE
// Реализации находятся в infrastructure/persistence. Порядок, возвращаемый
// хранилищем, не имеет значения: все читающие сценарии пересортировывают
// записи по ID (новые первыми).
// ══════════════════════════════════════════════════════════════════════════════

// Repository определяет операции над заявками.
type Repository interface {
	// Create сохраняет новую заявку и присваивает ей монотонный ID.
	// Поле sub.ID заполняется на месте.
	Create(ctx context.Context, sub *Submission) error

	// GetByID возвращает заявку по идентификатору.
	// Возвращает shared.ErrSubmissionNotFound, если заявка не найдена.
	GetByID(ctx context.Context, id shared.SubmissionID) (*Submission, error)

	// Update перезаписывает заявку целиком (атомарно в пределах одной записи).
	// Возвращает shared.ErrSubmissionNotFound, если заявка не найдена.
	Update(ctx context.Context, sub *Submission) error

	// ListByOwner возвращает все заявки указанного студента.
	ListByOwner(ctx context.Context, owner shared.Email) ([]*Submission, error)

	// ListAll возвращает все заявки всех студентов.
	ListAll(ctx context.Context) ([]*Submission, error)

	// Count возвращает общее количество заявок.
	Count(ctx context.Context) (int, error)
}
