package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/pandiarajan-src/task-tracker-api/pkg/config"
	handlers "github.com/pandiarajan-src/task-tracker-api/pkg/handlers/http"
	"github.com/pandiarajan-src/task-tracker-api/pkg/infra/auth/jwt"
	"github.com/pandiarajan-src/task-tracker-api/pkg/infra/database"
	infraLogger "github.com/pandiarajan-src/task-tracker-api/pkg/infra/logger"
	"github.com/pandiarajan-src/task-tracker-api/pkg/infra/prometheus"
	"github.com/pandiarajan-src/task-tracker-api/pkg/infra/repository"
	"github.com/pandiarajan-src/task-tracker-api/pkg/middleware"
	"github.com/pandiarajan-src/task-tracker-api/pkg/server"
	"github.com/pandiarajan-src/task-tracker-api/pkg/validation"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	if err := config.Load("./config"); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	logger := infraLogger.NewLogger(cfg.App.LogLevel)

	prometheus.Initialize(prometheus.MetricsConfig{Enabled: cfg.Metrics.Enabled})

	db, err := database.NewDB(logger, &cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// repository
	taskRepository := repository.NewTaskRepository(db.DB)
	userRepository := repository.NewUserRepository(db.DB)

	jwtManager := jwt.NewJwtManager(&cfg.Auth)
	pipeline := validation.NewPipeline(&cfg.Validation, logger)

	// middleware
	middlewareTransport := middleware.Transport{
		AuthMiddleware:          middleware.NewAuthMiddleware(logger, &cfg.Auth, jwtManager),
		CORSMiddleware:          middleware.NewCORSMiddleware(&cfg.CORS),
		RateLimiterMiddleware:   middleware.NewRateLimiterMiddleware(logger, redisClient, &cfg.RateLimit, nil),
		RequestLoggerMiddleware: middleware.NewRequestLoggerMiddleware(logger),
		PanicRecoverMiddleware:  middleware.NewPanicRecoverMiddleware(logger),
	}

	// handler transport
	handlerTransport := handlers.HandlerTransport{
		// Tasks
		CreateTaskHandler: handlers.NewCreateTaskHandler(logger, taskRepository, pipeline, &cfg.Validation),
		ListTasksHandler:  handlers.NewListTasksHandler(logger, taskRepository),
		GetTaskHandler:    handlers.NewGetTaskHandler(logger, taskRepository),
		UpdateTaskHandler: handlers.NewUpdateTaskHandler(logger, taskRepository, pipeline, &cfg.Validation),
		DeleteTaskHandler: handlers.NewDeleteTaskHandler(logger, taskRepository),
		// Auth
		RegisterHandler:     handlers.NewRegisterHandler(logger, userRepository, pipeline, &cfg.Auth),
		LoginHandler:        handlers.NewLoginHandler(logger, userRepository, jwtManager),
		RefreshTokenHandler: handlers.NewRefreshTokenHandler(logger, userRepository, jwtManager),
		GetMeHandler:        handlers.NewGetMeHandler(logger, userRepository),
		// Misc
		GetVersionHandler: handlers.NewGetVersionHandler(logger),
		GetRootHandler:    handlers.NewGetRootHandler(&cfg.App),
	}

	srv := server.NewAPIServer(server.APIServerDI{
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		fmt.Println("error shutting down server:", err)
		os.Exit(1)
	}
	fmt.Println("server gracefully stopped")
}
