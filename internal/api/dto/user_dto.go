package dto

import (
	"time"

	"github.com/spec-kit/eats-service/internal/domain"
)

// CreateAccountInput payload for signup.
type CreateAccountInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginInput payload for login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EditProfileInput carries the optional fields of a profile edit.
type EditProfileInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyEmailInput payload for email verification.
type VerifyEmailInput struct {
	Code string `json:"code"`
}

// CoreOutput is the uniform result envelope every account operation returns.
// OK=true implies Error is absent; OK=false implies no payload.
type CoreOutput struct {
	OK    bool    `json:"ok"`
	Error *string `json:"error,omitempty"`
}

// LoginOutput carries the issued token on success.
type LoginOutput struct {
	CoreOutput
	Token *string `json:"token,omitempty"`
}

// UserOutput carries a user view on success.
type UserOutput struct {
	CoreOutput
	User *UserView `json:"user,omitempty"`
}

// UserView is the externally visible shape of a user, hash excluded.
type UserView struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserView maps a domain user to its output shape.
func NewUserView(user *domain.User) *UserView {
	if user == nil {
		return nil
	}
	return &UserView{
		ID:        user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		Verified:  user.Verified,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// OKOutput builds a success envelope.
func OKOutput() CoreOutput {
	return CoreOutput{OK: true}
}

// FailOutput builds a failure envelope with a fixed message.
func FailOutput(message string) CoreOutput {
	return CoreOutput{OK: false, Error: &message}
}
