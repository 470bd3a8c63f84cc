package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apphttp "boulderbuddy/internal/controller/http"
	"boulderbuddy/internal/repo/persistent"
	"boulderbuddy/internal/usecase"
	"boulderbuddy/pkg/cache"
	"boulderbuddy/pkg/config"
	"boulderbuddy/pkg/database"
	"boulderbuddy/pkg/jwt"
	"boulderbuddy/pkg/logger"
	"boulderbuddy/pkg/middleware"
	"boulderbuddy/pkg/queue"
	"boulderbuddy/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "boulderbuddy/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (continuing without cache)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil
	}

	jwtService := jwt.NewService(cfg.JWTSecret)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwtService,
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	// Initialize repositories
	userRepo := persistent.NewUserRepository(a.db)
	postRepo := persistent.NewPostRepository(a.db)
	feedRepo := persistent.NewFeedRepository(a.db)

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, a.jwtService, a.s3Client, a.log)
	postUseCase := usecase.NewPostUseCase(postRepo, a.redisClient, a.queueClient, a.log)
	feedUseCase := usecase.NewFeedUseCase(feedRepo, a.log)
	profileUseCase := usecase.NewProfileUseCase(userRepo, a.queueClient, a.log)

	// Initialize HTTP handlers
	authHandler := apphttp.NewAuthHandler(authUseCase)
	postHandler := apphttp.NewPostHandler(postUseCase, a.log)
	feedHandler := apphttp.NewFeedHandler(feedUseCase, a.log)
	profileHandler := apphttp.NewProfileHandler(profileUseCase, a.log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		api.POST("/signup", authHandler.Signup)
		api.POST("/login", authHandler.Login)

		// Public reads: anonymous viewers see the feed and profiles,
		// authenticated viewers additionally get likedByMe/isFollowing
		public := api.Group("")
		public.Use(middleware.OptionalAuthMiddleware(a.jwtService))
		{
			public.GET("/feed", feedHandler.GetFeed)
			public.GET("/profiles/:id", profileHandler.GetProfile)
			public.GET("/profiles/:id/posts", feedHandler.GetProfilePosts)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService))
		if a.redisClient != nil {
			protected.Use(middleware.RateLimitMiddleware(a.redisClient, 60, time.Minute))
		}
		{
			protected.GET("/me", authHandler.Me)
			protected.POST("/avatar", authHandler.UploadAvatar)
			protected.POST("/posts", postHandler.CreatePost)
			protected.PUT("/posts/:id", postHandler.UpdatePost)
			protected.DELETE("/posts/:id", postHandler.DeletePost)
			protected.POST("/posts/:id/like", postHandler.LikePost)
			protected.POST("/profiles/:id/follow", profileHandler.FollowUser)
		}
	}

	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Server starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down...")
}

func (a *App) Shutdown() error {
	// The context is used to inform the server it has 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		a.queueClient.Close()
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Server exited")
	return nil
}
