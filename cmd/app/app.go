package app

import (
	"go.uber.org/zap"

	"github.com/robinw088/blog-with-users-start/internal/config"
	"github.com/robinw088/blog-with-users-start/internal/database"
	"github.com/robinw088/blog-with-users-start/internal/repository"
	"github.com/robinw088/blog-with-users-start/internal/service"
	"github.com/robinw088/blog-with-users-start/internal/storage"
)

func App(cfg *config.Config, logger *zap.Logger) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("Не удалось подключиться к БД", zap.Error(err))
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		logger.Fatal("Не удалось инициализировать MinIO", zap.Error(err))
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient)

	return db, repo, services
}
