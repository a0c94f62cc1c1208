package test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/robinw088/blog-with-users-start/internal/config"
	handlers "github.com/robinw088/blog-with-users-start/internal/handler"
	"github.com/robinw088/blog-with-users-start/internal/models"
	"github.com/robinw088/blog-with-users-start/internal/repository"
	"github.com/robinw088/blog-with-users-start/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) IssueSessionToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ParseSessionToken(tokenString string) (*models.SessionUser, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionUser), args.Error(1)
}

type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) ListPosts(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockBlogService) GetPost(ctx context.Context, postID int) (*models.Post, []models.Comment, error) {
	args := m.Called(ctx, postID)

	var post *models.Post
	if args.Get(0) != nil {
		post = args.Get(0).(*models.Post)
	}

	var comments []models.Comment
	if args.Get(1) != nil {
		comments = args.Get(1).([]models.Comment)
	}

	return post, comments, args.Error(2)
}

func (m *MockBlogService) CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockBlogService) UpdatePost(ctx context.Context, req repository.UpdatePostRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockBlogService) DeletePost(ctx context.Context, postID int) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockBlogService) AddComment(ctx context.Context, req repository.CreateCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockBlogService) UploadCover(ctx context.Context, fileName string, file io.Reader, size int64) (string, error) {
	args := m.Called(ctx, fileName, file, size)
	return args.String(0), args.Error(1)
}

func newTestHandlers(authService service.AuthService, blogService service.BlogService) *handlers.Handlers {
	cfg := &config.Config{
		SessionSecret:   "test-secret",
		SessionDuration: time.Hour,
		HTMLDir:         "../../../ui/html",
		MaxUploadSize:   10 * 1024 * 1024,
	}

	services := &service.Service{
		Auth: authService,
		Blog: blogService,
	}

	return handlers.NewHandlers(services, nil, cfg, zap.NewNop())
}
