package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/packhouse/backend/internal/config"
	"github.com/packhouse/backend/internal/docview"
	"github.com/packhouse/backend/internal/logger"
	"github.com/packhouse/backend/internal/model"
	"github.com/packhouse/backend/internal/repository/postgres"
	"github.com/packhouse/backend/internal/service"
	"github.com/packhouse/backend/internal/session"
	storage "github.com/packhouse/backend/internal/storage/minio"
	"github.com/packhouse/backend/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	// .env is optional; real environments configure through the process env.
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	fileRepo := postgres.NewFileRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	identityService := service.NewIdentity(accountRepo, profileRepo, tokenManager, cfg.JWT.RecentLoginWindow, logger.Component("identity"))
	profileService := service.NewProfile(profileRepo, accountRepo, logger.Component("profile"))
	filesService := service.NewFiles(fileRepo, storageClient, cfg.Files.URLTTL, logger.Component("files"))

	selector := session.NewSelector(identityService, logger.Component("session"))
	defer selector.Close()

	// Warm the profile and document list as soon as an identity signs in, so
	// the workspace opens with data already present.
	var view *docview.View
	unsubscribe := identityService.Subscribe(func(s *model.Session) {
		if s == nil {
			if view != nil {
				view.Unmount()
				view = nil
			}
			return
		}
		if _, err := profileService.FetchOrCreate(ctx, s.UserID); err != nil {
			logger.Error("failed to load profile", "user_id", s.UserID, "error", err)
		}
		view = docview.NewView(filesService, s.UserID, logger.Component("docview"))
		if err := view.Refresh(ctx); err != nil {
			logger.Error("failed to load document list", "user_id", s.UserID, "error", err)
		}
	})
	defer unsubscribe()

	logAppVersion()
	logger.Info("backend ready", "bucket", cfg.Storage.Bucket)

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
