package main

import (
	"context"

	dbadapter "blogcap/internal/adapters/database"
	"blogcap/internal/adapters/httpapi"
	redisadapter "blogcap/internal/adapters/redis"
	"blogcap/internal/config"
	commentapp "blogcap/internal/core/comment/service"
	postapp "blogcap/internal/core/post/service"
	sessionapp "blogcap/internal/core/session/service"
	summaryapp "blogcap/internal/core/summary/service"
	userapp "blogcap/internal/core/user/service"
	userPort "blogcap/internal/ports/user"

	"go.uber.org/zap"
)

func main() {
	config.InitLogger()
	cfg := config.Init()

	ctx := context.Background()

	// connects and migrates
	config.InitDB(cfg)
	config.InitRedis(ctx, cfg)

	defer closeResources(config.Logger)

	userRepo := dbadapter.NewUserRepositoryDatabase(config.DB)
	postRepo := dbadapter.NewPostRepositoryDatabase(config.DB)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(config.DB)
	summaryRepo := dbadapter.NewSummaryRepositoryDatabase(config.DB)
	sessionStore := redisadapter.NewSessionRepositoryRedis(config.RedisClient)

	userSvc := userapp.NewUserService(userRepo, config.Logger)
	sessionSvc := sessionapp.NewSessionService(sessionStore, []byte(cfg.JWTSecret), cfg.SessionTTL, config.Logger)
	postSvc := postapp.NewPostService(postRepo, userRepo, config.Logger)
	commentSvc := commentapp.NewCommentService(commentRepo, postRepo, cfg.QuotaMaxAttempts, config.Logger)
	summarySvc := summaryapp.NewSummaryService(summaryRepo)

	if cfg.HasBootstrapAdmin() {
		err := userSvc.EnsureAdmin(ctx, userPort.RegisterInput{
			Username: cfg.AdminUsername,
			FullName: cfg.AdminFullName,
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
		})
		if err != nil {
			config.Logger.Fatal("Error creating bootstrap admin", zap.Error(err))
		}
	}

	r := httpapi.SetupRoutes(userSvc, sessionSvc, postSvc, commentSvc, summarySvc, config.Logger)

	config.Logger.Info("App is running...", zap.String("port", cfg.AppPort))
	if err := r.Run(":" + cfg.AppPort); err != nil {
		config.Logger.Fatal("Server failed to start", zap.Error(err))
	}
}

// closeResources closes the Redis and database connections.
func closeResources(logger *zap.Logger) {
	if err := config.RedisClient.Close(); err != nil {
		logger.Error("Error closing Redis connection", zap.Error(err))
	}

	sqlDB, err := config.DB.DB()
	if err != nil {
		logger.Error("Error getting raw DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}
