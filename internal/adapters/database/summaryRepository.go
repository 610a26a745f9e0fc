package database

import (
	"context"

	"blogcap/internal/core/comment"
	"blogcap/internal/core/post"
	"blogcap/internal/core/user"
	summaryPort "blogcap/internal/ports/summary"

	"gorm.io/gorm"
)

// SummaryRepositoryDatabase answers the admin report with aggregate queries.
type SummaryRepositoryDatabase struct {
	db *gorm.DB
}

func NewSummaryRepositoryDatabase(db *gorm.DB) *SummaryRepositoryDatabase {
	return &SummaryRepositoryDatabase{db: db}
}

func (repo *SummaryRepositoryDatabase) CountUsers(ctx context.Context) (int64, error) {
	return repo.count(ctx, &user.User{})
}

func (repo *SummaryRepositoryDatabase) CountPosts(ctx context.Context) (int64, error) {
	return repo.count(ctx, &post.Post{})
}

func (repo *SummaryRepositoryDatabase) CountComments(ctx context.Context) (int64, error) {
	return repo.count(ctx, &comment.Comment{})
}

// TopCommenters uses an inner join, so users without comments never appear.
// Ties fall back to registration order.
func (repo *SummaryRepositoryDatabase) TopCommenters(ctx context.Context, limit int) ([]*summaryPort.CommenterDTO, error) {
	var rows []*summaryPort.CommenterDTO
	err := repo.db.WithContext(ctx).
		Table("users").
		Select("users.full_name AS full_name, COUNT(comments.id) AS comment_count").
		Joins("JOIN comments ON comments.user_id = users.id").
		Group("users.id, users.full_name, users.created_at").
		Order("comment_count DESC, users.created_at ASC, users.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (repo *SummaryRepositoryDatabase) count(ctx context.Context, model interface{}) (int64, error) {
	var n int64
	if err := repo.db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
