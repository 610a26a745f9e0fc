package user

import (
	"context"

	"blogcap/internal/core/user"
)

// UserRepository is the storage port for accounts. Lookups return
// errs.ErrNotFound when nothing matches; Create returns errs.ErrConflict on a
// duplicate username or email.
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindAdminByUsername(ctx context.Context, username string) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
}

// RegisterInput carries the registration form. Role may be empty.
type RegisterInput struct {
	Username string
	FullName string
	Email    string
	Password string
	Role     string
}

type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func ToDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:       u.ID.String(),
		Username: u.Username,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     string(u.Role),
	}
}
