// Package submission содержит доменную модель заявки на подтверждение навыка.
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package submission

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Status определяет состояние проверки заявки.
type Status string

const (
	// StatusPending - заявка ожидает проверки преподавателем.
	StatusPending Status = "Pending"
	// StatusValidated - навык подтверждён.
	StatusValidated Status = "Validated"
	// StatusRejected - заявка отклонена.
	StatusRejected Status = "Rejected"
)

// IsValid проверяет, что статус корректен.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusValidated, StatusRejected:
		return true
	default:
		return false
	}
}

// IsReviewed возвращает true, если по заявке уже есть решение.
func (s Status) IsReviewed() bool {
	return s == StatusValidated || s == StatusRejected
}

// CanTransitionTo проверяет допустимость перехода. Дисциплина переходов
// намеренно свободная: любой статус можно перезаписать любым корректным -
// повторная проверка разрешена. Более строгую политику можно навесить
// поверх сервисов, не трогая ядро.
func (s Status) CanTransitionTo(next Status) bool {
	return s.IsValid() && next.IsValid()
}

// NewStatus создаёт Status с валидацией.
func NewStatus(raw string) (Status, error) {
	st := Status(strings.TrimSpace(raw))
	if !st.IsValid() {
		return "", shared.ErrInvalidStatus
	}
	return st, nil
}

// Level определяет заявленный уровень владения навыком.
type Level string

const (
	// LevelBeginner - начальный уровень.
	LevelBeginner Level = "Beginner"
	// LevelIntermediate - средний уровень.
	LevelIntermediate Level = "Intermediate"
	// LevelExpert - экспертный уровень.
	LevelExpert Level = "Expert"
	// LevelCertified - уровень подтверждён сертификатом.
	LevelCertified Level = "Certified"
)

// CanonicalLevels - четыре канонических уровня в порядке возрастания.
var CanonicalLevels = []Level{LevelBeginner, LevelIntermediate, LevelExpert, LevelCertified}

// IsCanonical возвращает true, если уровень входит в канонический набор.
// Некaнонические значения не отбрасываются: витрины считают их как есть
// (отдельная корзина для прямой совместимости с историческими данными).
func (l Level) IsCanonical() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelExpert, LevelCertified:
		return true
	default:
		return false
	}
}

// String возвращает строковое представление уровня.
func (l Level) String() string {
	return string(l)
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: SUBMISSION
// ══════════════════════════════════════════════════════════════════════════════

// Submission - заявка студента на подтверждение навыка.
type Submission struct {
	// ID - монотонный идентификатор, назначается хранилищем при создании.
	// Сравнение двух ID сравнивает порядок создания.
	ID shared.SubmissionID

	// OwnerEmail - email студента, подавшего заявку.
	OwnerEmail shared.Email

	// SkillName - название навыка (непустое после обрезки пробелов).
	SkillName string

	// Level - заявленный уровень владения.
	Level Level

	// Evidence - непрозрачная ссылка на загруженный файл-подтверждение
	// (имя сохранённого файла). Пустая строка - подтверждения нет.
	Evidence string

	// Status - состояние проверки. Новая заявка всегда Pending.
	Status Status

	// Feedback - отзыв преподавателя. Может быть установлен при любом статусе.
	Feedback string

	// ReviewedBy - email преподавателя, последним менявшего статус или отзыв.
	ReviewedBy shared.Email

	// CreatedAt - время создания заявки.
	CreatedAt time.Time

	// UpdatedAt - время последнего изменения.
	UpdatedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrMissingOwner - заявка без владельца.
	ErrMissingOwner = errors.New("submission owner email is required")

	// ErrMissingLevel - заявка без уровня.
	ErrMissingLevel = errors.New("submission level is required")
)

// ══════════════════════════════════════════════════════════════════════════════
// FACTORY & VALIDATION
// ══════════════════════════════════════════════════════════════════════════════

// NewSubmissionParams содержит параметры для создания новой заявки.
type NewSubmissionParams struct {
	OwnerEmail string
	SkillName  string
	Level      string
	Evidence   string
}

// NewSubmission создаёт новую заявку со статусом Pending и пустым отзывом.
// ID остаётся нулевым до записи в хранилище.
func NewSubmission(params NewSubmissionParams) (*Submission, error) {
	owner, err := shared.NewEmail(params.OwnerEmail)
	if err != nil {
		return nil, ErrMissingOwner
	}

	name := strings.TrimSpace(params.SkillName)
	if name == "" {
		return nil, shared.ErrEmptySkillName
	}

	level := Level(strings.TrimSpace(params.Level))
	if level == "" {
		return nil, ErrMissingLevel
	}

	now := time.Now().UTC()

	return &Submission{
		OwnerEmail: owner,
		SkillName:  name,
		Level:      level,
		Evidence:   strings.TrimSpace(params.Evidence),
		Status:     StatusPending,
		Feedback:   "",
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN METHODS (Business Logic)
// ══════════════════════════════════════════════════════════════════════════════

// Review перезаписывает статус заявки решением преподавателя.
// Допустимы только Validated и Rejected; отзыв не затрагивается.
func (s *Submission) Review(status Status, reviewer shared.Email) error {
	if !status.IsReviewed() {
		return shared.ErrNotReviewable
	}

	s.Status = status
	s.ReviewedBy = reviewer
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// SetFeedback перезаписывает отзыв преподавателя (пустая строка очищает).
// Статус не затрагивается.
func (s *Submission) SetFeedback(feedback string, reviewer shared.Email) {
	s.Feedback = feedback
	s.ReviewedBy = reviewer
	s.UpdatedAt = time.Now().UTC()
}

// IsOwnedBy проверяет принадлежность заявки студенту.
func (s *Submission) IsOwnedBy(email shared.Email) bool {
	return s.OwnerEmail == email.Normalize()
}

// HasEvidence возвращает true, если к заявке приложен файл.
func (s *Submission) HasEvidence() bool {
	return s.Evidence != ""
}

// String возвращает строковое представление для логирования.
func (s *Submission) String() string {
	return fmt.Sprintf(
		"Submission{ID: %d, Owner: %s, Skill: %s, Level: %s, Status: %s}",
		s.ID, s.OwnerEmail, s.SkillName, s.Level, s.Status,
	)
}

// Clone создаёт копию заявки.
func (s *Submission) Clone() *Submission {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}
