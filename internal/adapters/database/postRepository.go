package database

import (
	"context"
	"fmt"

	"blogcap/internal/core/comment"
	"blogcap/internal/core/errs"
	"blogcap/internal/core/post"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepositoryDatabase implements PostRepository on gorm.
type PostRepositoryDatabase struct {
	db *gorm.DB
}

func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id string) (*post.Post, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) FindByAuthorID(ctx context.Context, authorID string) ([]*post.Post, error) {
	var posts []*post.Post
	if err := repo.db.WithContext(ctx).Where("author_id = ?", authorID).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("find posts by author: %w", err)
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) List(ctx context.Context) ([]*post.Post, error) {
	var posts []*post.Post
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Update writes the editable columns; gorm stamps updated_at.
func (repo *PostRepositoryDatabase) Update(ctx context.Context, p *post.Post) (*post.Post, error) {
	res := repo.db.WithContext(ctx).Model(&post.Post{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"title":                 p.Title,
			"content":               p.Content,
			"max_comments_per_user": p.MaxCommentsPerUser,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("update post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errs.ErrNotFound
	}
	return repo.FindByID(ctx, p.ID.String())
}

// DeleteIfNoComments deletes the post only while it has no comments. The
// comment delete is a backstop for the cascade and removes nothing when the
// check above it holds.
func (repo *PostRepositoryDatabase) DeleteIfNoComments(ctx context.Context, id string) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p post.Post
		if err := forUpdate(tx).Where("id = ?", id).First(&p).Error; err != nil {
			return notFound(err)
		}

		var count int64
		if err := tx.Model(&comment.Comment{}).Where("post_id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("count comments: %w", err)
		}
		if count > 0 {
			return errs.ErrHasComments
		}

		if err := tx.Where("post_id = ?", id).Delete(&comment.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := tx.Delete(&p).Error; err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		return nil
	})
}
