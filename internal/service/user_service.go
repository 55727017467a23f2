package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/pointdigital/manager-api/internal/model"
	"github.com/pointdigital/manager-api/internal/policy"
	"github.com/pointdigital/manager-api/internal/repository"
)

type UserService struct {
	users *repository.UserRepository
	log   zerolog.Logger
}

func NewUserService(users *repository.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

type CreateUserInput struct {
	Name     string
	Username string
	Password string
	Role     model.UserRole
}

// UpdateUserInput is a partial update; nil fields keep their stored value.
type UpdateUserInput struct {
	Name     *string
	Password *string
	Role     *model.UserRole
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", invalid("password must be at most 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *UserService) Create(ctx context.Context, p model.Principal, in CreateUserInput) (*model.User, error) {
	if err := authorize(p, policy.ActionCreate, policy.ResourceUsers); err != nil {
		return nil, err
	}
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		return nil, invalid("username is required")
	}
	if in.Password == "" {
		return nil, invalid("password is required")
	}
	if in.Role == "" {
		in.Role = model.RoleAccountant
	}
	if !in.Role.Valid() {
		return nil, invalid("role must be ADMIN or ACCOUNTANT")
	}
	if in.Role == model.RoleAdmin && !p.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can create admins", ErrPermissionDenied)
	}
	return s.create(ctx, in)
}

func (s *UserService) create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
		IsActive:     true,
	}
	user.SetName(in.Name)
	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeError(err, "username")
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, p model.Principal, id string) (*model.User, error) {
	if err := authorize(p, policy.ActionRetrieve, policy.ResourceUsers); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "user")
	}
	return user, nil
}

func (s *UserService) Me(ctx context.Context, p model.Principal) (*model.User, error) {
	if err := authorize(p, policy.ActionMe, policy.ResourceUsers); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, storeError(err, "user")
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, p model.Principal, page *model.Page) ([]model.User, int64, error) {
	if err := authorize(p, policy.ActionList, policy.ResourceUsers); err != nil {
		return nil, 0, err
	}
	return s.users.List(ctx, page)
}

func (s *UserService) Update(ctx context.Context, p model.Principal, id string, in UpdateUserInput) (*model.User, error) {
	if err := authorize(p, policy.ActionUpdate, policy.ResourceUsers); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "user")
	}
	if in.Name != nil {
		user.SetName(*in.Name)
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, invalid("role must be ADMIN or ACCOUNTANT")
		}
		user.Role = *in.Role
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, storeError(err, "user")
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, p model.Principal, id string) error {
	if err := authorize(p, policy.ActionDelete, policy.ResourceUsers); err != nil {
		return err
	}
	if id == p.UserID {
		return invalid("you cannot delete your own account")
	}
	return storeError(s.users.Delete(ctx, id), "user")
}

// Bootstrap creates the first ADMIN when the user table is empty. It is a
// no-op once any user exists.
func (s *UserService) Bootstrap(ctx context.Context, username, password string) error {
	if username == "" {
		return nil
	}
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	user, err := s.create(ctx, CreateUserInput{Username: username, Password: password, Role: model.RoleAdmin})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return nil
		}
		return err
	}
	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("bootstrap admin created")
	return nil
}
