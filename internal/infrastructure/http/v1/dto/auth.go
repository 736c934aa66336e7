package dto

import (
	"stockbook/internal/domain/auth"
)

// SignInRequest for user sign-in.
type SignInRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials converts to domain credentials.
func (r *SignInRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{UserID: r.UserID, Password: r.Password}
}
