package comment

import (
	"context"
	"errors"
	"time"

	"blogcap/internal/core/comment"
	"blogcap/internal/core/post"
)

// ErrSeqTaken means another submission for the same (post, user) committed the
// sequence number first. The quota engine retries with a fresh count.
var ErrSeqTaken = errors.New("comment sequence already taken")

// QuotaStore is the view of storage available inside one quota transaction.
type QuotaStore interface {
	// LockPost loads the post and holds it for the rest of the transaction
	// where the engine supports row locks.
	LockPost(ctx context.Context, postID string) (*post.Post, error)
	CountByPostAndUser(ctx context.Context, postID, userID string) (int64, error)
	// Create returns ErrSeqTaken on a duplicate (post_id, user_id, seq).
	Create(ctx context.Context, c *comment.Comment) error
}

// CommentRepository is the storage port for comments.
type CommentRepository interface {
	// WithinQuotaTx runs fn in a single transaction; fn's error rolls it back.
	WithinQuotaTx(ctx context.Context, fn func(store QuotaStore) error) error
	CountByPostAndUser(ctx context.Context, postID, userID string) (int64, error)
	FindByPostID(ctx context.Context, postID string) ([]*comment.Comment, error)
}

type CommentDTO struct {
	ID        string `json:"id"`
	PostID    string `json:"post_id"`
	UserID    string `json:"user_id"`
	Author    string `json:"author,omitempty"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// QuotaDTO is what a user still has left on a post.
type QuotaDTO struct {
	Used      int `json:"used"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

func ToDTO(c *comment.Comment) *CommentDTO {
	return &CommentDTO{
		ID:        c.ID.String(),
		PostID:    c.PostID.String(),
		UserID:    c.UserID.String(),
		Author:    c.User.FullName,
		Content:   c.Content,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
