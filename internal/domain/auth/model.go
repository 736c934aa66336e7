package auth

import (
	"time"

	"stockbook/internal/core/entity"
	"stockbook/internal/core/security"
)

// Credentials for sign-in.
type Credentials struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// Token is an issued access token.
type Token struct {
	AccessToken string         `json:"accessToken"`
	TokenType   string         `json:"tokenType"`
	ExpiresAt   time.Time      `json:"expiresAt"`
	Actor       security.Actor `json:"actor"`
}

// Profile is what the current actor may see about itself.
type Profile struct {
	User        entity.User `json:"user"`
	Permissions []string    `json:"permissions"`
}

func newProfile(u entity.User) Profile {
	u.PasswordHash = ""
	granted := security.Granted(u.Role)
	names := make([]string, len(granted))
	for i, a := range granted {
		names[i] = a.String()
	}
	return Profile{User: u, Permissions: names}
}
