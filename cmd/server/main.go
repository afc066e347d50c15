package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/api"
	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/app/service"
	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/common/security"
	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/domain/repository"
	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/platform/config"
	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/platform/database"
	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/platform/storage"

	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Load Configuration
	config.Load()
	logrus.Info("Configuration loaded")

	// 2. Initialize JWT
	security.InitJWT()
	logrus.Info("JWT initialized")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	// 4. Initialize File Store
	fileStore := newFileStore()

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	assetRepo := repository.NewPgAssetRepository(database.DB)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo)
	assetService := service.NewAssetService(assetRepo, fileStore)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, assetService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logrus.Infof("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Could not listen on %s: %v", config.AppConfig.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	logrus.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server shutdown failed: %v", err)
	}

	logrus.Info("Server stopped gracefully")
}

func newFileStore() storage.FileStore {
	switch config.AppConfig.StorageBackend {
	case "s3":
		store, err := storage.NewMinioStore(context.Background(), storage.MinioConfig{
			Endpoint:  config.AppConfig.MinioEndpoint,
			AccessKey: config.AppConfig.MinioAccessKey,
			SecretKey: config.AppConfig.MinioSecretKey,
			Bucket:    config.AppConfig.MinioBucket,
			UseSSL:    config.AppConfig.MinioUseSSL,
		})
		if err != nil {
			logrus.Fatalf("Could not initialize S3 file store: %v", err)
		}
		logrus.Infof("S3 file store ready (bucket %s)", config.AppConfig.MinioBucket)
		return store
	case "local":
		store, err := storage.NewLocalStore(config.AppConfig.UploadDir)
		if err != nil {
			logrus.Fatalf("Could not initialize local file store: %v", err)
		}
		logrus.Infof("Local file store ready (%s)", config.AppConfig.UploadDir)
		return store
	default:
		logrus.Fatalf("Unknown storage backend %q", config.AppConfig.StorageBackend)
		return nil
	}
}
