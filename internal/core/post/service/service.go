package postapp

import (
	"context"
	"fmt"
	"strings"

	"blogcap/internal/core/access"
	"blogcap/internal/core/errs"
	postEntity "blogcap/internal/core/post"
	postPort "blogcap/internal/ports/post"
	userPort "blogcap/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// PostService owns the post lifecycle: create, edit, and delete-only-when-empty.
type PostService struct {
	PostRepository postPort.PostRepository
	UserRepository userPort.UserRepository
	Logger         *zap.Logger
}

func NewPostService(postRepo postPort.PostRepository, userRepo userPort.UserRepository, logger *zap.Logger) *PostService {
	return &PostService{
		PostRepository: postRepo,
		UserRepository: userRepo,
		Logger:         logger,
	}
}

// CreatePost gates creation on the caller's identity and authors the post as
// that identity's account.
func (s *PostService) CreatePost(ctx context.Context, id access.Identity, in postPort.CreatePostInput) (*postPort.PostDTO, error) {
	if !access.CanCreatePost(id) {
		return nil, errs.ErrUnauthenticated
	}
	return s.Create(ctx, id.UserID.String(), in)
}

// Create stores a post for authorID. A missing limit becomes the default; a
// supplied one is stored as given, only Edit validates it.
func (s *PostService) Create(ctx context.Context, authorID string, in postPort.CreatePostInput) (*postPort.PostDTO, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errs.Invalid("title", "is required")
	}

	author, err := s.UserRepository.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	limit := postEntity.DefaultMaxCommentsPerUser
	if in.MaxCommentsPerUser != nil {
		limit = *in.MaxCommentsPerUser
	}

	p := &postEntity.Post{
		ID:                 uuid.Must(uuid.NewV4()),
		Title:              title,
		Content:            in.Content,
		AuthorID:           author.ID,
		MaxCommentsPerUser: limit,
	}

	created, err := s.PostRepository.Create(ctx, p)
	if err != nil {
		s.Logger.Error("❌ Failed to create post", zap.String("authorID", authorID), zap.Error(err))
		return nil, err
	}

	s.Logger.Info("📝 Created post", zap.String("postID", created.ID.String()), zap.String("authorID", authorID), zap.Int("maxCommentsPerUser", limit))
	return postPort.ToDTO(created), nil
}

// EditPost replaces title, content and limit. A missing limit resets to the
// default; a supplied one must be at least 1. On any failure the stored post
// is left as it was.
func (s *PostService) EditPost(ctx context.Context, id access.Identity, postID string, in postPort.EditPostInput) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(id, p, access.CanModify, "edit"); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errs.Invalid("title", "is required")
	}
	limit := postEntity.DefaultMaxCommentsPerUser
	if in.MaxCommentsPerUser != nil {
		limit = *in.MaxCommentsPerUser
	}
	if limit < 1 {
		return nil, errs.Invalid("max_comments_per_user", "must be a positive integer")
	}

	p.Title = title
	p.Content = in.Content
	p.MaxCommentsPerUser = limit

	updated, err := s.PostRepository.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	s.Logger.Info("Post updated", zap.String("postID", postID), zap.String("by", id.UserID.String()))
	return postPort.ToDTO(updated), nil
}

// DeletePost removes a post that has no comments.
func (s *PostService) DeletePost(ctx context.Context, id access.Identity, postID string) error {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.authorize(id, p, access.CanDelete, "delete"); err != nil {
		return err
	}
	if err := s.PostRepository.DeleteIfNoComments(ctx, postID); err != nil {
		return err
	}
	s.Logger.Info("🗑️ Post deleted", zap.String("postID", postID), zap.String("by", id.UserID.String()))
	return nil
}

func (s *PostService) GetPost(ctx context.Context, postID string) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return postPort.ToDTO(p), nil
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]*postPort.PostDTO, error) {
	posts, err := s.PostRepository.FindByAuthorID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return toDTOs(posts), nil
}

func (s *PostService) ListAll(ctx context.Context) ([]*postPort.PostDTO, error) {
	posts, err := s.PostRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	return toDTOs(posts), nil
}

func (s *PostService) authorize(id access.Identity, p *postEntity.Post, allowed func(access.Identity, *postEntity.Post) bool, action string) error {
	if allowed(id, p) {
		return nil
	}
	if !id.Authenticated() {
		return errs.ErrUnauthenticated
	}
	s.Logger.Warn("⚠️ Denied post "+action, zap.String("postID", p.ID.String()), zap.String("userID", id.UserID.String()))
	return fmt.Errorf("%s post: %w", action, errs.ErrPermission)
}

func toDTOs(posts []*postEntity.Post) []*postPort.PostDTO {
	dtos := make([]*postPort.PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, postPort.ToDTO(p))
	}
	return dtos
}
