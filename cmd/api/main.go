package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/taskboardhq/taskboard-api/internal/config"
	"github.com/taskboardhq/taskboard-api/internal/handler"
	"github.com/taskboardhq/taskboard-api/internal/repository"
	"github.com/taskboardhq/taskboard-api/internal/usecase"
	"github.com/taskboardhq/taskboard-api/shared/auth"
	"github.com/taskboardhq/taskboard-api/shared/mailer"
	"github.com/taskboardhq/taskboard-api/shared/validator"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}
	logger.Info().Msg("connected to MongoDB")

	db := client.Database(cfg.Mongo.Database)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	boardRepo := repository.NewBoardMongoRepository(ctx, &logger, db)
	taskRepo := repository.NewTaskMongoRepository(ctx, &logger, db)

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Secret, cfg.Token.ExpiresIn)
	mail := mailer.New(cfg.SMTP)

	validate, err := validator.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build validator")
	}

	authUsecase := usecase.NewAuthUsecase(userRepo, jwtAuth, mail, cfg.FrontendURL, &logger)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(userRepo, mail, cfg.FrontendURL, &logger)
	boardUsecase := usecase.NewBoardUsecase(boardRepo, taskRepo)
	taskUsecase := usecase.NewTaskUsecase(taskRepo, boardRepo)

	router := handler.NewRouter(
		cfg,
		&logger,
		jwtAuth,
		handler.NewAuthHandler(authUsecase, validate, &logger),
		handler.NewPasswordResetHandler(passwordResetUsecase, validate, &logger),
		handler.NewBoardHandler(boardUsecase, validate, &logger),
		handler.NewTaskHandler(taskUsecase, validate, &logger),
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info().Int("port", cfg.Port).Str("environment", cfg.Environment).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDevelopment() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
