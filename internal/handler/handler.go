package handlers

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/robinw088/blog-with-users-start/internal/config"
	"github.com/robinw088/blog-with-users-start/internal/database"
	"github.com/robinw088/blog-with-users-start/internal/service"
)

type Handlers struct {
	AuthService service.AuthService
	BlogService service.BlogService
	DB          *database.DB
	Cfg         *config.Config
	Validate    *validator.Validate
	Logger      *zap.Logger
}

func NewHandlers(services *service.Service, db *database.DB, cfg *config.Config, logger *zap.Logger) *Handlers {
	return &Handlers{
		AuthService: services.Auth,
		BlogService: services.Blog,
		DB:          db,
		Cfg:         cfg,
		Validate:    validator.New(),
		Logger:      logger,
	}
}
