package model

import "encoding/json"

// UserInfo is the profile blob returned by the backend for the signed-in user.
// The raw payload is kept so nothing the backend sends is lost when persisted.
type UserInfo struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff"`

	Raw json.RawMessage `json:"-"`
}

// Credentials are submitted to obtain an auth token.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Registration describes the sign-up form.
type Registration struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"-" validate:"required,eqfield=Password"`
}

// PasswordReset describes the reset-password form.
type PasswordReset struct {
	Email              string `json:"email" validate:"required,email"`
	Token              string `json:"token" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required"`
	ConfirmNewPassword string `json:"-" validate:"required,eqfield=NewPassword"`
}
