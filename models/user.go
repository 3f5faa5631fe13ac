package models

import "time"

// User represents a registered account.
// Password is stored hashed (bcrypt); never returned in JSON responses.
type User struct {
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// UserSummary is the public projection returned by the list_users action.
type UserSummary struct {
	Username  string    `json:"username" db:"username"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AuthRequest is the body of POST /api/auth; Action is "login" or "register".
type AuthRequest struct {
	Action   string `json:"action"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned on successful login or registration.
type AuthResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
}
