// Package databasetest opens throwaway SQLite databases for tests.
package databasetest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"blogcap/internal/adapters/database"
	"blogcap/internal/core/comment"
	"blogcap/internal/core/post"
	"blogcap/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq int64

// Open returns a migrated in-memory database private to the calling test. A
// single connection keeps SQLite from reporting table locks when tests submit
// concurrently; requests queue on the pool instead.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=on", name, atomic.AddInt64(&seq, 1))

	cfg := database.NewGormConfig()
	cfg.Logger = logger.Default.LogMode(logger.Silent)
	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// SeedUser inserts an account with a throwaway password digest.
func SeedUser(t *testing.T, db *gorm.DB, username string, role user.Role) *user.User {
	t.Helper()
	u := &user.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: username,
		FullName: strings.ToUpper(username[:1]) + username[1:],
		Email:    username + "@example.com",
		Password: "hash",
		Role:     role,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}

// SeedPost inserts a post owned by author.
func SeedPost(t *testing.T, db *gorm.DB, author *user.User, limit int) *post.Post {
	t.Helper()
	p := &post.Post{
		ID:                 uuid.Must(uuid.NewV4()),
		Title:              "Post by " + author.Username,
		Content:            "content",
		AuthorID:           author.ID,
		MaxCommentsPerUser: limit,
	}
	if err := db.Omit("Author").Create(p).Error; err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return p
}

// SeedComments inserts n comments by u on p, continuing u's sequence.
func SeedComments(t *testing.T, db *gorm.DB, p *post.Post, u *user.User, n int) {
	t.Helper()
	var existing int64
	db.Model(&comment.Comment{}).Where("post_id = ? AND user_id = ?", p.ID, u.ID).Count(&existing)
	for i := 1; i <= n; i++ {
		c := &comment.Comment{
			ID:      uuid.Must(uuid.NewV4()),
			Content: fmt.Sprintf("comment %d", i),
			PostID:  p.ID,
			UserID:  u.ID,
			Seq:     int(existing) + i,
		}
		if err := db.Omit("Post", "User").Create(c).Error; err != nil {
			t.Fatalf("failed to seed comment: %v", err)
		}
	}
}

// CountComments counts u's comments on p.
func CountComments(t *testing.T, db *gorm.DB, p *post.Post, u *user.User) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&comment.Comment{}).Where("post_id = ? AND user_id = ?", p.ID, u.ID).Count(&n).Error; err != nil {
		t.Fatalf("failed to count comments: %v", err)
	}
	return n
}
