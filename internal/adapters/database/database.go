package database

import (
	"errors"

	"blogcap/internal/core/comment"
	"blogcap/internal/core/errs"
	"blogcap/internal/core/post"
	"blogcap/internal/core/user"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// NewGormConfig is shared by every connection the app opens. TranslateError
// makes duplicate keys surface as gorm.ErrDuplicatedKey on MySQL and SQLite alike.
func NewGormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// Migrate creates or updates the tables for all entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&post.Post{},
		&comment.Comment{},
	)
}

// notFound maps gorm's missing-row error to the core's.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	return err
}

// forUpdate adds a row lock where the engine has one. SQLite serializes
// writers on the whole database instead.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
}
