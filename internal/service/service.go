package service

import (
	"github.com/robinw088/blog-with-users-start/internal/config"
	"github.com/robinw088/blog-with-users-start/internal/repository"
	"github.com/robinw088/blog-with-users-start/internal/storage"
)

type Service struct {
	Auth AuthService
	Blog BlogService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth: NewAuthService(rep.User, cfg),
		Blog: NewBlogService(rep.Post, rep.Comment, storage, cfg),
	}
}
