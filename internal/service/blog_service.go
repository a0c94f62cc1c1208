package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/robinw088/blog-with-users-start/internal/config"
	"github.com/robinw088/blog-with-users-start/internal/models"
	"github.com/robinw088/blog-with-users-start/internal/repository"
	"github.com/robinw088/blog-with-users-start/internal/storage"
)

// PostDateFormat - формат даты публикации, хранится строкой, как показывается читателю
const PostDateFormat = "January 2, 2006"

type BlogService interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, postID int) (*models.Post, []models.Comment, error)
	CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, req repository.UpdatePostRequest) error
	DeletePost(ctx context.Context, postID int) error
	AddComment(ctx context.Context, req repository.CreateCommentRequest) (*models.Comment, error)
	UploadCover(ctx context.Context, fileName string, file io.Reader, size int64) (string, error)
}

type blogService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	storage     storage.Storage
	cfg         *config.Config
}

func NewBlogService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, storage storage.Storage, cfg *config.Config) BlogService {
	return &blogService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		storage:     storage,
		cfg:         cfg,
	}
}

func (b *blogService) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := b.postRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (b *blogService) GetPost(ctx context.Context, postID int) (*models.Post, []models.Comment, error) {
	post, err := b.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, nil, err
	}

	comments, err := b.commentRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, nil, err
	}

	return post, comments, nil
}

func (b *blogService) CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		AuthorID: req.AuthorID,
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImgURL:   req.ImgURL,
		Date:     time.Now().Format(PostDateFormat),
	}

	err := b.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (b *blogService) UpdatePost(ctx context.Context, req repository.UpdatePostRequest) error {
	post, err := b.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return err
	}

	post.Title = req.Title
	post.Subtitle = req.Subtitle
	post.Body = req.Body
	post.ImgURL = req.ImgURL

	err = b.postRepo.Update(ctx, post)
	if err != nil {
		return err
	}

	return nil
}

func (b *blogService) DeletePost(ctx context.Context, postID int) error {
	post, err := b.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	err = b.postRepo.Delete(ctx, postID)
	if err != nil {
		return err
	}

	// обложка, загруженная в наше хранилище, удаляется вместе с постом;
	// внешние ссылки в img_url не трогаем
	if b.storage != nil {
		if objectName, ok := b.storage.ObjectNameFromURL(post.ImgURL); ok {
			if err := b.storage.DeleteCover(ctx, objectName); err != nil {
				return fmt.Errorf("ошибка удаления обложки поста: %w", err)
			}
		}
	}

	return nil
}

func (b *blogService) AddComment(ctx context.Context, req repository.CreateCommentRequest) (*models.Comment, error) {
	// комментарий привязывается к существующему посту
	if _, err := b.postRepo.GetByID(ctx, req.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   req.PostID,
		AuthorID: req.AuthorID,
		Text:     req.Text,
	}

	err := b.commentRepo.Create(ctx, comment)
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// UploadCover загружает обложку поста в MinIO и возвращает её URL
func (b *blogService) UploadCover(ctx context.Context, fileName string, file io.Reader, size int64) (string, error) {
	if b.storage == nil {
		return "", fmt.Errorf("хранилище изображений не настроено")
	}

	_, coverURL, err := b.storage.UploadCover(ctx, fileName, file, size)
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки обложки в MinIO: %w", err)
	}

	return coverURL, nil
}
