package router

import (
	"log"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/mratin/sparkfeed/backend/internal/handlers"
	"github.com/mratin/sparkfeed/backend/internal/middleware"
	"github.com/mratin/sparkfeed/backend/internal/models"
	"github.com/mratin/sparkfeed/backend/internal/repositories"
	"github.com/mratin/sparkfeed/backend/internal/services"
	"github.com/mratin/sparkfeed/backend/pkg/config"
	"github.com/mratin/sparkfeed/backend/pkg/storage"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, firebaseAuthClient *auth.Client, objectStore storage.ObjectStore, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.KarmaTransaction{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)

	// --- Initialize Services ---
	reactionService := services.NewReactionService(db)
	commentService := services.NewCommentService(db, commentRepo, userRepo)
	leaderboardService := services.NewLeaderboardService(
		db,
		time.Duration(cfg.LeaderboardWindowHours)*time.Hour,
		cfg.LeaderboardTopK,
	)

	// --- Route groups ---
	public := e.Group("/api/v1")
	protected := e.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to protected routes.")

	// Auth routes
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(e.Group("/api/v1/auth"), protected.Group("/auth"))
	log.Println("Auth routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, objectStore)
	postHandler.RegisterPostRoutes(public, protected)
	log.Println("Post routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentService)
	commentHandler.RegisterCommentRoutes(public, protected)
	log.Println("Comment routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(reactionService)
	likeHandler.RegisterLikeRoutes(protected)
	log.Println("Like routes configured.")

	// Leaderboard routes
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	leaderboardHandler.RegisterLeaderboardRoutes(public, protected)
	log.Println("Leaderboard routes configured.")

	log.Println("All routes configured.")
}
