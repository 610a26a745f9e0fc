package commentapp

import (
	"context"
	"errors"
	"fmt"

	commentEntity "blogcap/internal/core/comment"
	"blogcap/internal/core/errs"
	commentPort "blogcap/internal/ports/comment"
	postPort "blogcap/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// DefaultMaxAttempts bounds how often SubmitComment retries after losing a
// sequence-number race.
const DefaultMaxAttempts = 5

// CommentService enforces the per-post, per-user comment quota.
type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
	MaxAttempts       int
	Logger            *zap.Logger
}

func NewCommentService(commentRepo commentPort.CommentRepository, postRepo postPort.PostRepository, maxAttempts int, logger *zap.Logger) *CommentService {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
		MaxAttempts:       maxAttempts,
		Logger:            logger,
	}
}

// SubmitComment adds a comment unless userID already holds the post's limit.
// Count and insert share one transaction, and the (post, user, seq) unique
// index rejects a racing insert that read the same count; that loser retries.
// Identical content is never deduplicated.
func (s *CommentService) SubmitComment(ctx context.Context, postID, userID, content string) (*commentPort.CommentDTO, error) {
	pid, err := uuid.FromString(postID)
	if err != nil {
		return nil, errs.ErrNotFound
	}
	uid, err := uuid.FromString(userID)
	if err != nil {
		return nil, errs.ErrNotFound
	}

	for attempt := 1; attempt <= s.MaxAttempts; attempt++ {
		var created *commentEntity.Comment
		err := s.CommentRepository.WithinQuotaTx(ctx, func(store commentPort.QuotaStore) error {
			p, err := store.LockPost(ctx, postID)
			if err != nil {
				return err
			}

			used, err := store.CountByPostAndUser(ctx, postID, userID)
			if err != nil {
				return err
			}
			if used >= int64(p.MaxCommentsPerUser) {
				return &errs.QuotaExceededError{Limit: p.MaxCommentsPerUser}
			}

			c := &commentEntity.Comment{
				ID:      uuid.Must(uuid.NewV4()),
				Content: content,
				PostID:  pid,
				UserID:  uid,
				Seq:     int(used) + 1,
			}
			if err := store.Create(ctx, c); err != nil {
				return err
			}
			created = c
			return nil
		})

		switch {
		case err == nil:
			s.Logger.Info("💬 Comment added", zap.String("postID", postID), zap.String("userID", userID), zap.Int("seq", created.Seq))
			return commentPort.ToDTO(created), nil
		case errors.Is(err, commentPort.ErrSeqTaken):
			s.Logger.Warn("⚠️ Lost comment sequence race, retrying", zap.String("postID", postID), zap.String("userID", userID), zap.Int("attempt", attempt))
			continue
		case errors.Is(err, errs.ErrQuotaExceeded):
			s.Logger.Info("Comment quota reached", zap.String("postID", postID), zap.String("userID", userID))
			return nil, err
		case errors.Is(err, errs.ErrNotFound):
			return nil, err
		default:
			return nil, fmt.Errorf("submit comment: %w", err)
		}
	}

	s.Logger.Error("❌ Giving up on comment after contention", zap.String("postID", postID), zap.String("userID", userID), zap.Int("attempts", s.MaxAttempts))
	return nil, errs.ErrContention
}

// ListByPost returns a post's comments oldest first.
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]*commentPort.CommentDTO, error) {
	if _, err := s.PostRepository.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.CommentRepository.FindByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*commentPort.CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, commentPort.ToDTO(c))
	}
	return dtos, nil
}

// Remaining reports how many comments userID may still add to postID. It is
// advisory; SubmitComment re-checks under its own transaction.
func (s *CommentService) Remaining(ctx context.Context, postID, userID string) (*commentPort.QuotaDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	used, err := s.CommentRepository.CountByPostAndUser(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	remaining := p.MaxCommentsPerUser - int(used)
	if remaining < 0 {
		remaining = 0
	}
	return &commentPort.QuotaDTO{Used: int(used), Limit: p.MaxCommentsPerUser, Remaining: remaining}, nil
}
