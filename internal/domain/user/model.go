package user

import (
	"time"
)

// User is an operator account. The password hash and the soft-delete flag
// never serialize into responses.
type User struct {
	ID           int64     `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"firstName"`
	LastName     *string   `db:"last_name" json:"lastName,omitempty"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Deleted      bool      `db:"deleted" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// LoginPayload is the request body for POST /auth/login.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the login response: a signed bearer token plus the user.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
