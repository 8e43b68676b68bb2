package types

import "time"

// User represents an account in the system.
// It contains identity, role, and audit metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Username is the unique login name chosen by the user.
	Username string `json:"username" db:"username"`

	// FullName is the user's optional full name.
	FullName string `json:"full_name" db:"full_name"`

	// Email is the user's optional email address.
	Email string `json:"email" db:"email"`

	// Role indicates the user's authorization level within the system
	// (e.g., "admin", "user"). Role is stored as free-form text; only
	// "admin" carries meaning.
	Role string `json:"role" db:"role"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// LastLogin is the timestamp of the most recent successful login,
	// nil until the user logs in for the first time.
	LastLogin *time.Time `json:"last_login" db:"last_login"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
