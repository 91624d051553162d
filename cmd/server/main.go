package main

import (
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"Photostream/internal/api/middleware"
	"Photostream/internal/api/routes"
	"Photostream/internal/cache"
	"Photostream/internal/config"
	"Photostream/internal/core/comments"
	"Photostream/internal/core/likes"
	"Photostream/internal/core/posts"
	"Photostream/internal/core/users"
	postgresRepo "Photostream/internal/db/postgres"
	"Photostream/internal/storage/s3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Connected to database")

	// Run migrations
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set goose dialect:", err)
	}

	if err := goose.Up(db, "internal/db/migrations"); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	log.Println("Migrations completed successfully")

	gateway, err := s3.NewGateway(cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey, cfg.S3.Bucket, cfg.S3.UseSSL)
	if err != nil {
		log.Fatal("Failed to create storage gateway:", err)
	}

	// Feed cache is optional: no Redis address means every feed read hits
	// the database, which is fine for small deployments
	var feedCache *cache.FeedCache
	if cfg.Redis.Addr != "" {
		feedCache, err = cache.NewFeedCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.TTL, logger)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		log.Println("Feed cache enabled")
	}

	// Repositories
	userRepo := postgresRepo.NewUserRepository(db)
	postRepo := postgresRepo.NewPostRepository(db)
	likeRepo := postgresRepo.NewLikeRepository(db)
	commentRepo := postgresRepo.NewCommentRepository(db)

	// Services. The nil-interface dance keeps a missing cache an honest nil.
	var postCache posts.RecentPostCache
	var likeInvalidator likes.FeedInvalidator
	var commentInvalidator comments.FeedInvalidator
	if feedCache != nil {
		postCache = feedCache
		likeInvalidator = feedCache
		commentInvalidator = feedCache
	}

	userService := users.NewUserService(userRepo, logger)
	likeService := likes.NewLikeService(likeRepo, likeInvalidator, logger)
	commentService := comments.NewCommentService(commentRepo, userRepo, commentInvalidator, logger)
	postService := posts.NewPostService(postRepo, commentRepo, userRepo, likeRepo, gateway, postCache, logger)

	auth := middleware.NewIdentityMiddleware(cfg.JWTSecret)

	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	rateLimiter := middleware.NewRateLimiter(cfg.Rate.Requests, cfg.Rate.Window)
	r.Use(rateLimiter.Middleware)

	routes.RegisterUserRoutes(r, userService, auth)
	routes.RegisterPostRoutes(r, postService, auth)
	routes.RegisterEngagementRoutes(r, likeService, commentService, auth)
	routes.RegisterUploadRoutes(r, gateway, auth)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	fmt.Printf("Photostream starting on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
