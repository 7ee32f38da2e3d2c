package auth

import "time"

// Principal is the authenticated identity attached to every request. It is
// the only view of the caller the resource services ever see.
type Principal struct {
	ID      string
	IsAdmin bool
}

// User is the domain representation of an account row. Accounts belong to the
// identity subsystem; this service references them (ownership, seeding) but
// never manages credentials, so the struct carries no JSON annotations.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
