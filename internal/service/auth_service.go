package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pointdigital/manager-api/internal/auth"
	"github.com/pointdigital/manager-api/internal/model"
	"github.com/pointdigital/manager-api/internal/repository"
)

var errBadCredentials = fmt.Errorf("%w: no active account found with the given credentials", ErrUnauthenticated)

type AuthService struct {
	users  *repository.UserRepository
	tokens *repository.TokenRepository
	jwt    *auth.Manager
	log    zerolog.Logger
}

func NewAuthService(users *repository.UserRepository, tokens *repository.TokenRepository, jwt *auth.Manager, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, jwt: jwt, log: log}
}

// Login checks the password and issues a fresh pair.
func (s *AuthService) Login(ctx context.Context, username, password string) (*auth.TokenPair, error) {
	if username == "" || password == "" {
		return nil, invalid("username and password are required")
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(storeError(err, "user"), ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errBadCredentials
	}
	return s.jwt.Issue(user)
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. A token that was already rotated is rejected.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	if refreshToken == "" {
		return nil, invalid("refresh is required")
	}
	claims, err := s.jwt.ParseRefresh(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(storeError(err, "user"), ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrUnauthenticated)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user is inactive", ErrUnauthenticated)
	}

	if err := s.tokens.Revoke(ctx, claims.ID, claims.UserID, claims.ExpiresAtTime()); err != nil {
		if errors.Is(storeError(err, "token"), ErrConflict) {
			s.log.Warn().Str("user_id", claims.UserID).Str("jti", claims.ID).Msg("refresh token reuse rejected")
			return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, auth.ErrInvalidToken)
		}
		return nil, err
	}
	return s.jwt.Issue(user)
}

// Authenticate turns an access token into the caller's principal. The role is
// re-read from the store so a role change applies to live tokens.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (model.Principal, error) {
	claims, err := s.jwt.ParseAccess(accessToken)
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(storeError(err, "user"), ErrNotFound) {
			return model.Principal{}, fmt.Errorf("%w: user not found", ErrUnauthenticated)
		}
		return model.Principal{}, err
	}
	if !user.IsActive {
		return model.Principal{}, fmt.Errorf("%w: user is inactive", ErrUnauthenticated)
	}
	p := claims.Principal()
	p.Username = user.Username
	p.Role = user.Role
	return p, nil
}
