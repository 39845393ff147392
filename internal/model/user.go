// Package model defines the data structures used throughout the application.
package model

// User represents a registered account.
//
// Users are created once at registration and never edited or deleted by any
// API operation. The password is only ever held as a bcrypt hash; the
// `json:"-"` tag keeps it out of every JSON response even if a User is
// encoded by mistake.
//
// WHY int64 IDs?
// The store assigns IDs from an auto-incrementing integer column. int64
// matches what database/sql returns from LastInsertId and what Postgres
// BIGSERIAL produces.
type User struct {
	ID           int64  `json:"id"    db:"Id"`
	Name         string `json:"name"  db:"Nome"`
	Email        string `json:"email" db:"Email"`
	PasswordHash string `json:"-"     db:"SenhaHash"`
}
