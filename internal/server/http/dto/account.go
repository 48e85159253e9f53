package dto

import "github.com/polkiloo/iowasensors/internal/domain/model"

// LoginRequest describes username/password payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Credentials() model.Credentials {
	return model.Credentials{Username: r.Username, Password: r.Password}
}

// RegisterRequest describes the sign-up form.
type RegisterRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r RegisterRequest) Registration() model.Registration {
	return model.Registration{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Username:        r.Username,
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
	}
}

// ResetPasswordRequest describes the password reset form.
type ResetPasswordRequest struct {
	Email              string `json:"email"`
	Token              string `json:"token"`
	NewPassword        string `json:"new_password"`
	ConfirmNewPassword string `json:"confirm_new_password"`
}

func (r ResetPasswordRequest) PasswordReset() model.PasswordReset {
	return model.PasswordReset{
		Email:              r.Email,
		Token:              r.Token,
		NewPassword:        r.NewPassword,
		ConfirmNewPassword: r.ConfirmNewPassword,
	}
}

// RedirectResponse tells the client which screen to open next.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}
