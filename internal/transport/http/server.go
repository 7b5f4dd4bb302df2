package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"

	"devconnector/internal/cache"
	"devconnector/internal/config"
	"devconnector/internal/database"
	"devconnector/internal/handler"
	"devconnector/internal/redis"
	"devconnector/internal/repository"
	"devconnector/internal/service"
)

// Run wires configuration, storage, services and handlers, then serves.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Redis only backs the GitHub lookup cache; run without it when unset.
	var githubCache cache.GithubCache
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to create redis client: %w", err)
		}
		if err := redisClient.Ping(context.Background()); err != nil {
			return fmt.Errorf("failed to reach redis: %w", err)
		}
		defer redisClient.Close()
		githubCache = cache.NewRedisGithubCache(redisClient.Client)
		log.Println("Connected to Redis successfully")
	} else {
		log.Println("REDIS_URL not set, GitHub lookup cache disabled")
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)

	authService := service.NewAuthService(cfg)
	userService := service.NewUserService(userRepo, profileRepo, postRepo, db, authService)
	profileService := service.NewProfileService(profileRepo)
	postService := service.NewPostService(postRepo, userRepo)
	githubService := service.NewGithubService(cfg.GithubClientID, cfg.GithubClientSecret, githubCache)

	router := NewRouter(RouterConfig{
		UserHandler:    handler.NewUserHandler(userService),
		AuthHandler:    handler.NewAuthHandler(userService),
		ProfileHandler: handler.NewProfileHandler(profileService, userService, githubService),
		PostHandler:    handler.NewPostHandler(postService),
		AuthService:    authService,
		UserService:    userService,
	})

	addr := ":" + cfg.ServerPort
	log.Printf("Server has started on port %s", cfg.ServerPort)
	return stdhttp.ListenAndServe(addr, router)
}
