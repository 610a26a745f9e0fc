package database

import (
	"context"
	"errors"
	"fmt"

	"blogcap/internal/core/errs"
	"blogcap/internal/core/user"

	"gorm.io/gorm"
)

// UserRepositoryDatabase implements UserRepository on gorm.
type UserRepositoryDatabase struct {
	db *gorm.DB
}

func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if err := repo.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id string) (*user.User, error) {
	return repo.first(ctx, "id = ?", id)
}

func (repo *UserRepositoryDatabase) FindByUsernameOrEmail(ctx context.Context, username, email string) (*user.User, error) {
	return repo.first(ctx, "username = ? OR email = ?", username, email)
}

func (repo *UserRepositoryDatabase) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return repo.first(ctx, "email = ?", email)
}

func (repo *UserRepositoryDatabase) FindAdminByUsername(ctx context.Context, username string) (*user.User, error) {
	return repo.first(ctx, "username = ? AND role = ?", username, user.RoleAdmin)
}

func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return repo.first(ctx, "username = ?", username)
}

func (repo *UserRepositoryDatabase) List(ctx context.Context) ([]*user.User, error) {
	var users []*user.User
	if err := repo.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (repo *UserRepositoryDatabase) first(ctx context.Context, query string, args ...interface{}) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where(query, args...).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}
