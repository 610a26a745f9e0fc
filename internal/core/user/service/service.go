package userapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blogcap/internal/core/access"
	"blogcap/internal/core/errs"
	userEntity "blogcap/internal/core/user"
	userPort "blogcap/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// UserService registers accounts and verifies credentials. It hands back an
// access.Identity; binding it to a session is the caller's job.
type UserService struct {
	UserRepository userPort.UserRepository
	Logger         *zap.Logger
}

func NewUserService(repo userPort.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepository: repo,
		Logger:         logger,
	}
}

// LoginAsUser matches an account by email.
func (s *UserService) LoginAsUser(ctx context.Context, email, password string) (access.Identity, error) {
	u, err := s.UserRepository.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return s.rejectLogin(err, zap.String("email", email))
	}
	if err := userEntity.CheckPassword(u.Password, password); err != nil {
		return s.rejectLogin(errs.ErrInvalidCredentials, zap.String("email", email))
	}
	s.Logger.Info("User logged in", zap.String("userID", u.ID.String()))
	return access.Identity{Kind: access.KindUser, UserID: u.ID, Role: u.Role}, nil
}

// LoginAsAdmin matches an account by username and only if it holds the admin role.
func (s *UserService) LoginAsAdmin(ctx context.Context, username, password string) (access.Identity, error) {
	u, err := s.UserRepository.FindAdminByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return s.rejectLogin(err, zap.String("username", username))
	}
	if err := userEntity.CheckPassword(u.Password, password); err != nil {
		return s.rejectLogin(errs.ErrInvalidCredentials, zap.String("username", username))
	}
	s.Logger.Info("Admin logged in", zap.String("userID", u.ID.String()))
	return access.Identity{Kind: access.KindAdmin, UserID: u.ID, Role: u.Role}, nil
}

// rejectLogin collapses "no such account" and "wrong password" into one answer.
// Storage failures are not credentials problems and pass through.
func (s *UserService) rejectLogin(err error, field zap.Field) (access.Identity, error) {
	if errors.Is(err, errs.ErrNotFound) || errors.Is(err, errs.ErrInvalidCredentials) {
		s.Logger.Info("Rejected login", field)
		return access.Anonymous, errs.ErrInvalidCredentials
	}
	s.Logger.Error("Login lookup failed", field, zap.Error(err))
	return access.Anonymous, fmt.Errorf("login: %w", err)
}

// RegisterUser creates an account. Duplicate username or email yields
// errs.ErrConflict and no row is written.
func (s *UserService) RegisterUser(ctx context.Context, in userPort.RegisterInput) (*userPort.UserDTO, error) {
	role, err := validateRegistration(&in)
	if err != nil {
		return nil, err
	}

	existing, err := s.UserRepository.FindByUsernameOrEmail(ctx, in.Username, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, errs.ErrConflict
	case err != nil && !errors.Is(err, errs.ErrNotFound):
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hashedPassword, err := userEntity.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &userEntity.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: in.Username,
		FullName: in.FullName,
		Email:    in.Email,
		Password: hashedPassword,
		Role:     role,
	}

	// the unique indexes still catch a registration racing this one
	created, err := s.UserRepository.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	s.Logger.Info("✅ Registered user", zap.String("userID", created.ID.String()), zap.String("role", string(created.Role)))
	return userPort.ToDTO(created), nil
}

// EnsureAdmin creates the bootstrap admin account unless its username exists.
func (s *UserService) EnsureAdmin(ctx context.Context, in userPort.RegisterInput) error {
	if _, err := s.UserRepository.FindByUsername(ctx, in.Username); err == nil {
		s.Logger.Info("Admin account already present", zap.String("username", in.Username))
		return nil
	} else if !errors.Is(err, errs.ErrNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	in.Role = string(userEntity.RoleAdmin)
	if _, err := s.RegisterUser(ctx, in); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return userPort.ToDTO(u), nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*userPort.UserDTO, error) {
	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*userPort.UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, userPort.ToDTO(u))
	}
	return dtos, nil
}

func validateRegistration(in *userPort.RegisterInput) (userEntity.Role, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.TrimSpace(in.Email)

	switch {
	case in.Username == "":
		return "", errs.Invalid("username", "is required")
	case in.FullName == "":
		return "", errs.Invalid("full_name", "is required")
	case in.Email == "":
		return "", errs.Invalid("email", "is required")
	case in.Password == "":
		return "", errs.Invalid("password", "is required")
	}

	role, ok := userEntity.ParseRole(in.Role)
	if !ok {
		return "", errs.Invalid("role", "must be user or admin")
	}
	return role, nil
}
