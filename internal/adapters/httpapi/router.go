package httpapi

import (
	"context"

	"blogcap/internal/adapters/httpapi/middleware"
	"blogcap/internal/core/access"
	commentPort "blogcap/internal/ports/comment"
	postPort "blogcap/internal/ports/post"
	sessionPort "blogcap/internal/ports/session"
	summaryPort "blogcap/internal/ports/summary"
	userPort "blogcap/internal/ports/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserUseCase is the inbound port for accounts.
type UserUseCase interface {
	RegisterUser(ctx context.Context, in userPort.RegisterInput) (*userPort.UserDTO, error)
	LoginAsUser(ctx context.Context, email, password string) (access.Identity, error)
	LoginAsAdmin(ctx context.Context, username, password string) (access.Identity, error)
	GetUser(ctx context.Context, id string) (*userPort.UserDTO, error)
	ListUsers(ctx context.Context) ([]*userPort.UserDTO, error)
}

type SessionUseCase interface {
	middleware.SessionResolver
	Issue(ctx context.Context, id access.Identity) (*sessionPort.LoginResponse, error)
	Revoke(ctx context.Context, token string) error
}

type PostUseCase interface {
	CreatePost(ctx context.Context, id access.Identity, in postPort.CreatePostInput) (*postPort.PostDTO, error)
	EditPost(ctx context.Context, id access.Identity, postID string, in postPort.EditPostInput) (*postPort.PostDTO, error)
	DeletePost(ctx context.Context, id access.Identity, postID string) error
	GetPost(ctx context.Context, postID string) (*postPort.PostDTO, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*postPort.PostDTO, error)
	ListAll(ctx context.Context) ([]*postPort.PostDTO, error)
}

type CommentUseCase interface {
	SubmitComment(ctx context.Context, postID, userID, content string) (*commentPort.CommentDTO, error)
	ListByPost(ctx context.Context, postID string) ([]*commentPort.CommentDTO, error)
	Remaining(ctx context.Context, postID, userID string) (*commentPort.QuotaDTO, error)
}

type SummaryUseCase interface {
	Summary(ctx context.Context) (*summaryPort.SummaryDTO, error)
}

// SetupRoutes only wires routes; use cases are injected.
func SetupRoutes(
	userUC UserUseCase,
	sessionUC SessionUseCase,
	postUC PostUseCase,
	commentUC CommentUseCase,
	summaryUC SummaryUseCase,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	r.Use(middleware.SessionMiddleware(sessionUC, logger))

	ew := newErrorWriter(logger)
	uc := NewUserController(userUC, sessionUC, postUC, ew)
	pc := NewPostController(postUC, commentUC, ew)
	cc := NewCommentController(commentUC, ew)
	sc := NewSummaryController(summaryUC, userUC, postUC, ew)

	r.POST("/register", uc.RegisterUser)
	r.POST("/login", uc.LoginUser)
	r.POST("/admin/login", uc.LoginAdmin)
	r.POST("/logout", middleware.RequireIdentity(), uc.Logout)
	r.GET("/dashboard", middleware.RequireIdentity(), uc.Dashboard)

	r.GET("/posts/:id", pc.ViewPost)
	r.POST("/posts", middleware.RequireIdentity(), pc.CreatePost)
	r.PUT("/posts/:id", middleware.RequireIdentity(), pc.EditPost)
	r.DELETE("/posts/:id", middleware.RequireIdentity(), pc.DeletePost)
	r.POST("/posts/:id/comments", middleware.RequireIdentity(), cc.SubmitComment)

	admin := r.Group("/admin", middleware.RequireAdmin())
	admin.GET("/dashboard", sc.AdminDashboard)
	admin.GET("/summary", sc.Summary)
	return r
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
		)
	}
}
