package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/shared"
)

func TestNewAccount(t *testing.T) {
	acc, err := NewAccount(NewAccountParams{
		ID:           "a1b2",
		Name:         "  Alice  ",
		Email:        "Alice@Example.COM",
		PasswordHash: "$2a$10$hash",
		Role:         "student",
		Department:   " Computer Science ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice", acc.Name)
	assert.Equal(t, shared.Email("alice@example.com"), acc.Email)
	assert.Equal(t, shared.RoleStudent, acc.Role)
	assert.Equal(t, "Computer Science", acc.Department)
	assert.True(t, acc.IsStudent())
	assert.False(t, acc.IsFaculty())
}

func TestNewAccount_Validation(t *testing.T) {
	base := NewAccountParams{
		ID:           "a1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		Role:         "student",
	}

	tests := []struct {
		name    string
		mutate  func(*NewAccountParams)
		wantErr error
	}{
		{"empty name", func(p *NewAccountParams) { p.Name = "  " }, ErrEmptyName},
		{"bad email", func(p *NewAccountParams) { p.Email = "not-an-email" }, shared.ErrInvalidEmail},
		{"missing hash", func(p *NewAccountParams) { p.PasswordHash = "" }, ErrEmptyHash},
		{"unknown role", func(p *NewAccountParams) { p.Role = "admin" }, shared.ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := base
			tt.mutate(&params)
			_, err := NewAccount(params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAccount_Project(t *testing.T) {
	acc, err := NewAccount(NewAccountParams{
		ID:           "a1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		Role:         "faculty",
		Department:   "Electronics",
	})
	require.NoError(t, err)

	proj := acc.Project()
	assert.Equal(t, acc.ID, proj.ID)
	assert.Equal(t, acc.Email, proj.Email)
	assert.Equal(t, acc.Role, proj.Role)
	assert.Equal(t, acc.Department, proj.Department)

	// The projection type carries no credential field at all, but make sure
	// the string forms stay clean too.
	assert.NotContains(t, acc.String(), acc.PasswordHash)
}

func TestAccount_Clone(t *testing.T) {
	acc, err := NewAccount(NewAccountParams{
		ID:           "a1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		Role:         "student",
	})
	require.NoError(t, err)

	clone := acc.Clone()
	clone.Name = "Mallory"
	assert.Equal(t, "Alice", acc.Name)
}
