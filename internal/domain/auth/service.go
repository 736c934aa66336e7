package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/security"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain/store"
	"stockbook/pkg/logger"
)

// Service resolves users from the ledger document and issues tokens for them.
type Service struct {
	txm        tx.Manager[*store.Document]
	jwtService *JWTService
}

// NewService creates a new auth service.
func NewService(txm tx.Manager[*store.Document], jwtService *JWTService) *Service {
	return &Service{txm: txm, jwtService: jwtService}
}

// SignIn checks the password against the stored bcrypt hash and issues a token.
// Unknown users, users without a password and wrong passwords all fail alike.
func (s *Service) SignIn(ctx context.Context, creds Credentials) (*Token, error) {
	user, err := s.user(ctx, creds.UserID)
	if err != nil || user.PasswordHash == "" {
		logger.Warn(ctx, "sign-in rejected", "user_id", creds.UserID)
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		logger.Warn(ctx, "sign-in rejected", "user_id", creds.UserID)
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "user signed in", "user_id", user.ID, "role", user.Role)
	return token, nil
}

// IssueToken issues a token for a known user without a password check.
// Only local tooling calls this.
func (s *Service) IssueToken(ctx context.Context, userID string) (*Token, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Authenticate validates a bearer token and confirms its user still exists
// with the same role.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (security.Actor, error) {
	actor, err := s.jwtService.ValidateToken(tokenString)
	if err != nil {
		return security.Actor{}, apperror.NewUnauthorized("invalid or expired token").WithCause(err)
	}

	user, err := s.user(ctx, actor.ID)
	if err != nil || user.Role != actor.Role {
		return security.Actor{}, apperror.NewUnauthorized("token no longer matches a user")
	}
	return user.Actor(), nil
}

// Me returns the profile of the current actor.
func (s *Service) Me(ctx context.Context, actor security.Actor) (Profile, error) {
	user, err := s.user(ctx, actor.ID)
	if err != nil {
		return Profile{}, err
	}
	return newProfile(user), nil
}

func (s *Service) user(ctx context.Context, userID string) (entity.User, error) {
	var out entity.User
	err := s.txm.ReadOnly(ctx, func(ctx context.Context, doc *store.Document) error {
		u, ok := doc.User(userID)
		if !ok {
			return apperror.NewNotFound("user", userID)
		}
		out = *u
		return nil
	})
	return out, err
}

func (s *Service) issue(user entity.User) (*Token, error) {
	actor := user.Actor()
	signed, expiresAt, err := s.jwtService.GenerateToken(actor)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("issue token for %s: %w", user.ID, err))
	}
	return &Token{AccessToken: signed, TokenType: "Bearer", ExpiresAt: expiresAt, Actor: actor}, nil
}

// IsInvalidToken reports whether err came from a rejected token.
func IsInvalidToken(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}
