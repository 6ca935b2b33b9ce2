// Package shared contains common domain types, errors, and value objects
// that are used across all domain packages.
package shared

import (
	"fmt"
	"regexp"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// Email Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Email represents an account email address, the natural key for accounts.
type Email string

// Simple email format check, intentionally loose (RFC 5322 is out of scope).
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsValid checks if the email has a plausible format.
func (e Email) IsValid() bool {
	return emailRegex.MatchString(string(e))
}

// String returns the string representation.
func (e Email) String() string {
	return string(e)
}

// Normalize returns a normalized (trimmed, lowercase) version of the email.
func (e Email) Normalize() Email {
	return Email(strings.ToLower(strings.TrimSpace(string(e))))
}

// NewEmail creates a new Email with validation.
func NewEmail(raw string) (Email, error) {
	e := Email(raw).Normalize()
	if !e.IsValid() {
		return "", ErrInvalidEmail
	}
	return e, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Role Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Role defines what an account is allowed to do.
type Role string

const (
	// RoleStudent can submit skills and see their own submissions.
	RoleStudent Role = "student"
	// RoleFaculty can review any submission and leave feedback.
	RoleFaculty Role = "faculty"
)

// IsValid checks if the role is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleFaculty
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// NewRole creates a new Role with validation.
func NewRole(raw string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Submission ID Value Object
// ═══════════════════════════════════════════════════════════════════════════

// SubmissionID identifies a skill submission. IDs are assigned monotonically
// by the record store, so comparing two IDs compares creation order.
type SubmissionID int64

// IsValid checks if the ID could have been assigned by a store.
func (s SubmissionID) IsValid() bool {
	return s > 0
}

// Int64 returns the underlying int64 value.
func (s SubmissionID) Int64() int64 {
	return int64(s)
}

// String returns the string representation.
func (s SubmissionID) String() string {
	return fmt.Sprintf("%d", s)
}

// Before reports whether this submission was created before the other.
func (s SubmissionID) Before(other SubmissionID) bool {
	return s < other
}

// NewSubmissionID creates a new SubmissionID with validation.
func NewSubmissionID(id int64) (SubmissionID, error) {
	if id <= 0 {
		return 0, NewDomainError("shared", "NewSubmissionID", ErrInvalidID, "submission ID must be positive")
	}
	return SubmissionID(id), nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Department Catalog
// ═══════════════════════════════════════════════════════════════════════════

// Departments is the seeded catalog offered at registration. Accounts may
// also carry an empty department.
var Departments = []string{
	"Computer Science",
	"Electronics",
	"Mechanical",
	"Civil Engineering",
	"Chemical Engineering",
	"Information Technology",
}

// IsKnownDepartment reports whether the name is part of the seeded catalog.
func IsKnownDepartment(name string) bool {
	for _, d := range Departments {
		if strings.EqualFold(d, strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}
