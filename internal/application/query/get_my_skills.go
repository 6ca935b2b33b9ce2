// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
// Each query is a self-contained use case with its own request/response types.
package query

import (
	"context"
	"time"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/session"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/submission"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET MY SKILLS QUERY
// Возвращает заявки текущего студента, новые первыми. Студент никогда не
// видит чужие заявки: владелец берётся из сессии, а не из параметров.
// ══════════════════════════════════════════════════════════════════════════════

// GetMySkillsQuery содержит параметры запроса списка своих заявок.
type GetMySkillsQuery struct {
	// Actor - сессия, выполняющая запрос. Должна принадлежать студенту.
	Actor *session.Session
}

// Validate проверяет корректность параметров запроса.
func (q GetMySkillsQuery) Validate() error {
	return q.Actor.RequireStudent()
}

// SkillDTO - DTO заявки для слоя представления (Data Transfer Object).
type SkillDTO struct {
	// ID - идентификатор заявки.
	ID int64 `json:"id"`

	// SkillName - название навыка.
	SkillName string `json:"skillName"`

	// Level - заявленный уровень.
	Level string `json:"level"`

	// Evidence - ссылка на файл-подтверждение (пустая строка - нет файла).
	Evidence string `json:"evidence,omitempty"`

	// Status - состояние проверки.
	Status string `json:"status"`

	// Feedback - отзыв преподавателя.
	Feedback string `json:"feedback"`

	// SubmittedAt - время подачи заявки.
	SubmittedAt time.Time `json:"submitted_at"`
}

// GetMySkillsResult содержит результат запроса.
type GetMySkillsResult struct {
	// Skills - заявки студента, новые первыми.
	Skills []SkillDTO `json:"skills"`

	// TotalCount - общее количество заявок студента.
	TotalCount int `json:"total_count"`

	// GeneratedAt - время генерации результата.
	GeneratedAt time.Time `json:"generated_at"`
}

// GetMySkillsHandler обрабатывает запросы списка своих заявок.
type GetMySkillsHandler struct {
	submissions submission.Repository
}

// NewGetMySkillsHandler создаёт новый обработчик запроса.
func NewGetMySkillsHandler(submissions submission.Repository) *GetMySkillsHandler {
	return &GetMySkillsHandler{submissions: submissions}
}

// Handle выполняет запрос.
func (h *GetMySkillsHandler) Handle(ctx context.Context, query GetMySkillsQuery) (*GetMySkillsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	owner := query.Actor.Account.Email
	subs, err := h.submissions.ListByOwner(ctx, owner)
	if err != nil {
		return nil, shared.WrapError("query", "GetMySkills", shared.ErrTransport, "failed to list submissions", err)
	}

	submission.SortNewestFirst(subs)

	skills := make([]SkillDTO, 0, len(subs))
	for _, s := range subs {
		skills = append(skills, newSkillDTO(s))
	}

	return &GetMySkillsResult{
		Skills:      skills,
		TotalCount:  len(skills),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// newSkillDTO преобразует доменную заявку в DTO.
func newSkillDTO(s *submission.Submission) SkillDTO {
	return SkillDTO{
		ID:          s.ID.Int64(),
		SkillName:   s.SkillName,
		Level:       string(s.Level),
		Evidence:    s.Evidence,
		Status:      string(s.Status),
		Feedback:    s.Feedback,
		SubmittedAt: s.CreatedAt,
	}
}
