// Package account содержит доменную модель учётной записи (студент или преподаватель).
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package account

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: ACCOUNT
// ══════════════════════════════════════════════════════════════════════════════

// Account - учётная запись пользователя системы отслеживания навыков.
// Уникальный ключ - email (без учёта регистра, один email на все роли).
type Account struct {
	// ID - внутренний уникальный идентификатор (UUID в строковом формате).
	ID string

	// Name - отображаемое имя пользователя.
	Name string

	// Email - адрес электронной почты, натуральный ключ учётной записи.
	Email shared.Email

	// PasswordHash - bcrypt-хеш пароля. Никогда не покидает доменный слой:
	// наружу отдаётся только Projection().
	PasswordHash string

	// Role - роль учётной записи: student или faculty.
	Role shared.Role

	// Department - кафедра (опционально, пустая строка допустима).
	Department string

	// CreatedAt - время регистрации. Учётная запись неизменяема после создания.
	CreatedAt time.Time
}

// Projection - публичная проекция учётной записи для сессий и ответов API.
// Не содержит учётных данных.
type Projection struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Email      shared.Email `json:"email"`
	Role       shared.Role  `json:"role"`
	Department string       `json:"department,omitempty"`
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrEmptyName - пустое имя пользователя.
	ErrEmptyName = errors.New("account name is required")

	// ErrEmptyPassword - пустой пароль при регистрации.
	ErrEmptyPassword = errors.New("account password is required")

	// ErrEmptyHash - учётная запись без хеша пароля.
	ErrEmptyHash = errors.New("account password hash is required")
)

// ══════════════════════════════════════════════════════════════════════════════
// FACTORY & VALIDATION
// ══════════════════════════════════════════════════════════════════════════════

// NewAccountParams содержит параметры для создания новой учётной записи.
// PasswordHash уже должен быть захеширован вызывающей стороной.
type NewAccountParams struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Department   string
}

// NewAccount создаёт новую учётную запись с валидацией всех полей.
func NewAccount(params NewAccountParams) (*Account, error) {
	if params.ID == "" {
		return nil, errors.New("account id is required")
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	email, err := shared.NewEmail(params.Email)
	if err != nil {
		return nil, err
	}

	if params.PasswordHash == "" {
		return nil, ErrEmptyHash
	}

	role, err := shared.NewRole(params.Role)
	if err != nil {
		return nil, err
	}

	return &Account{
		ID:           params.ID,
		Name:         name,
		Email:        email,
		PasswordHash: params.PasswordHash,
		Role:         role,
		Department:   strings.TrimSpace(params.Department),
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN METHODS
// ══════════════════════════════════════════════════════════════════════════════

// Project возвращает публичную проекцию без учётных данных.
func (a *Account) Project() Projection {
	return Projection{
		ID:         a.ID,
		Name:       a.Name,
		Email:      a.Email,
		Role:       a.Role,
		Department: a.Department,
	}
}

// IsStudent возвращает true, если это учётная запись студента.
func (a *Account) IsStudent() bool {
	return a.Role == shared.RoleStudent
}

// IsFaculty возвращает true, если это учётная запись преподавателя.
func (a *Account) IsFaculty() bool {
	return a.Role == shared.RoleFaculty
}

// String возвращает строковое представление для логирования (без хеша).
func (a *Account) String() string {
	return fmt.Sprintf("Account{ID: %s, Email: %s, Role: %s}", a.ID, a.Email, a.Role)
}

// Clone создаёт копию учётной записи.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}
