package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	email, err := NewEmail("  Alice@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, Email("alice@example.com"), email)

	for _, raw := range []string{"", "plain", "no@tld", "two@@example.com", "sp ace@example.com"} {
		_, err := NewEmail(raw)
		assert.ErrorIs(t, err, ErrInvalidEmail, "raw=%q", raw)
	}
}

func TestNewRole(t *testing.T) {
	role, err := NewRole(" Student ")
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, role)

	role, err = NewRole("FACULTY")
	require.NoError(t, err)
	assert.Equal(t, RoleFaculty, role)

	_, err = NewRole("admin")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestSubmissionID(t *testing.T) {
	id, err := NewSubmissionID(7)
	require.NoError(t, err)
	assert.True(t, id.IsValid())
	assert.Equal(t, int64(7), id.Int64())

	_, err = NewSubmissionID(0)
	assert.ErrorIs(t, err, ErrInvalidID)
	_, err = NewSubmissionID(-1)
	assert.ErrorIs(t, err, ErrInvalidID)

	// IDs are monotonic with creation order.
	older, _ := NewSubmissionID(3)
	newer, _ := NewSubmissionID(9)
	assert.True(t, older.Before(newer))
	assert.False(t, newer.Before(older))
}

func TestDepartmentCatalog(t *testing.T) {
	assert.Len(t, Departments, 6)
	assert.True(t, IsKnownDepartment("Computer Science"))
	assert.True(t, IsKnownDepartment(" information technology "))
	assert.False(t, IsKnownDepartment("Astrology"))
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsNotFound(ErrAccountNotFound))
	assert.True(t, IsNotFound(ErrSubmissionNotFound))
	assert.True(t, IsAlreadyExists(ErrDuplicateEmail))
	assert.True(t, IsValidation(ErrEmptySkillName))
	assert.True(t, IsValidation(ErrInvalidStatus))
	assert.True(t, IsUnauthorized(ErrWrongPassword))
	assert.True(t, IsUnauthorized(ErrNotFaculty))
	assert.True(t, IsTransport(ErrStoreUnavailable))

	assert.False(t, IsNotFound(ErrDuplicateEmail))
	assert.False(t, IsTransport(ErrAccountNotFound))
}

func TestWrapError_PreservesKind(t *testing.T) {
	inner := assert.AnError
	err := WrapError("submission", "Create", ErrTransport, "store write failed", inner)

	assert.True(t, IsTransport(err))
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "store write failed")
}
