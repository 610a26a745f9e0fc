package post

import (
	"context"
	"time"

	"blogcap/internal/core/post"
)

// PostRepository is the storage port for posts.
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id string) (*post.Post, error)
	FindByAuthorID(ctx context.Context, authorID string) ([]*post.Post, error)
	List(ctx context.Context) ([]*post.Post, error)
	// Update writes title, content and limit and refreshes UpdatedAt.
	Update(ctx context.Context, post *post.Post) (*post.Post, error)
	// DeleteIfNoComments re-checks the comment set inside its own transaction
	// and returns errs.ErrHasComments without mutating anything when it is not
	// empty.
	DeleteIfNoComments(ctx context.Context, id string) error
}

type CreatePostInput struct {
	Title              string
	Content            string
	MaxCommentsPerUser *int // nil means post.DefaultMaxCommentsPerUser
}

type EditPostInput struct {
	Title              string
	Content            string
	MaxCommentsPerUser *int // nil means post.DefaultMaxCommentsPerUser
}

type PostDTO struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Content            string `json:"content"`
	AuthorID           string `json:"author_id"`
	MaxCommentsPerUser int    `json:"max_comments_per_user"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

func ToDTO(p *post.Post) *PostDTO {
	return &PostDTO{
		ID:                 p.ID.String(),
		Title:              p.Title,
		Content:            p.Content,
		AuthorID:           p.AuthorID.String(),
		MaxCommentsPerUser: p.MaxCommentsPerUser,
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          p.UpdatedAt.Format(time.RFC3339),
	}
}
