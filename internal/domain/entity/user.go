// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// User is an account of the video platform. Only the email identifies the user at login.
type User struct {
	ID           int64     // Auto-assigned numeric identifier.
	Email        string    // Unique login identifier.
	Username     string    // Public handle, optional at signup.
	Phone        string    // Contact number, optional.
	FirstName    string    // Given name, optional.
	LastName     string    // Family name, optional.
	PasswordHash string    // bcrypt hash; the plaintext password is never stored.
	IsActive     bool      // False until the email address is verified.
	DateJoined   time.Time // Timestamp of registration.
	UpdatedAt    time.Time // Timestamp of the last modification.
}

// ProfileChanges carries the optional fields of a partial profile update.
// A nil field is left untouched.
type ProfileChanges struct {
	Username  *string
	Phone     *string
	FirstName *string
	LastName  *string
}

// ApplyProfileChanges mutates only the supplied fields and reports whether anything changed.
func (u *User) ApplyProfileChanges(changes ProfileChanges) bool {
	changed := false
	apply := func(target *string, value *string) {
		if value == nil || *target == *value {
			return
		}
		*target = *value
		changed = true
	}

	apply(&u.Username, changes.Username)
	apply(&u.Phone, changes.Phone)
	apply(&u.FirstName, changes.FirstName)
	apply(&u.LastName, changes.LastName)

	return changed
}

// Activate marks the email as verified. It reports false when the account was already active.
func (u *User) Activate() bool {
	if u.IsActive {
		return false
	}
	u.IsActive = true

	return true
}
