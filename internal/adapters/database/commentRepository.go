package database

import (
	"context"
	"errors"
	"fmt"

	"blogcap/internal/core/comment"
	"blogcap/internal/core/post"
	commentPort "blogcap/internal/ports/comment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepositoryDatabase implements CommentRepository on gorm.
type CommentRepositoryDatabase struct {
	db *gorm.DB
}

func NewCommentRepositoryDatabase(db *gorm.DB) *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{db: db}
}

func (repo *CommentRepositoryDatabase) WithinQuotaTx(ctx context.Context, fn func(store commentPort.QuotaStore) error) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&quotaStore{tx: tx})
	})
}

func (repo *CommentRepositoryDatabase) CountByPostAndUser(ctx context.Context, postID, userID string) (int64, error) {
	return countByPostAndUser(repo.db.WithContext(ctx), postID, userID)
}

func (repo *CommentRepositoryDatabase) FindByPostID(ctx context.Context, postID string) ([]*comment.Comment, error) {
	var comments []*comment.Comment
	if err := repo.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").Order("seq ASC").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}
	return comments, nil
}

// quotaStore is bound to one transaction.
type quotaStore struct {
	tx *gorm.DB
}

func (s *quotaStore) LockPost(ctx context.Context, postID string) (*post.Post, error) {
	var p post.Post
	if err := forUpdate(s.tx.WithContext(ctx)).Where("id = ?", postID).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *quotaStore) CountByPostAndUser(ctx context.Context, postID, userID string) (int64, error) {
	return countByPostAndUser(s.tx.WithContext(ctx), postID, userID)
}

func (s *quotaStore) Create(ctx context.Context, c *comment.Comment) error {
	if err := s.tx.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return commentPort.ErrSeqTaken
		}
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func countByPostAndUser(db *gorm.DB, postID, userID string) (int64, error) {
	var count int64
	if err := db.Model(&comment.Comment{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return count, nil
}
