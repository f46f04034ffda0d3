package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/receptar-app/backend/config"
	"github.com/receptar-app/backend/internal/api"
	"github.com/receptar-app/backend/internal/database"
	"github.com/receptar-app/backend/internal/logging"
	"github.com/receptar-app/backend/internal/repo"
	"github.com/receptar-app/backend/internal/server"
	"github.com/receptar-app/backend/internal/service"
	"github.com/receptar-app/backend/internal/store"
)

func main() {
	log := logging.NewLogger(config.GetEnvironment())

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	ctx := context.Background()

	st, err := openStore(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to open store")
	}
	defer st.Close()

	recipes, err := repo.NewRecipes(ctx, st)
	if err != nil {
		log.WithError(err).Fatal("failed to load recipe collection")
	}
	users, err := repo.NewUsers(ctx, st)
	if err != nil {
		log.WithError(err).Fatal("failed to load user collection")
	}
	comments, err := repo.NewComments(ctx, st)
	if err != nil {
		log.WithError(err).Fatal("failed to load comment collection")
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to Redis")
	}

	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize S3")
	}

	deps := api.Deps{
		Config:   cfg,
		Recipes:  service.NewRecipeService(recipes, users, redisClient, log),
		Users:    service.NewUserService(users),
		Comments: service.NewCommentService(comments, recipes),
		UserRepo: users,
		S3:       s3cfg,
		Redis:    redisClient,
		Log:      log,
	}

	srv := server.New(cfg, deps, log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.WithError(err).Fatal("server error")
		}
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("server shutdown error")
	}
	log.Info("server stopped")
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StorageDriver {
	case config.DriverFile:
		return store.NewFile(cfg.DataDir)
	case config.DriverSQLite, config.DriverPostgres:
		db, err := database.Open(cfg)
		if err != nil {
			return nil, err
		}
		return store.NewSQL(db)
	default:
		return store.NewMemory(), nil
	}
}
