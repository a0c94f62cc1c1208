package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/robinw088/blog-with-users-start/internal/models"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

type CreatePostRequest struct {
	AuthorID int    `json:"author_id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
	ImgURL   string `json:"img_url"`
}

type UpdatePostRequest struct {
	PostID   int    `json:"post_id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
	ImgURL   string `json:"img_url"`
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (author_id, title, subtitle, body, img_url, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING post_id
	`

	err := r.db.GetContext(ctx, &post.PostID, query,
		post.AuthorID, post.Title, post.Subtitle, post.Body, post.ImgURL, post.Date)
	if err != nil {
		if isUniqueViolation(err, "posts_title_key") {
			return ErrDuplicateTitle
		}
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID int) (*models.Post, error) {
	query := `
		SELECT p.post_id, p.author_id, p.title, p.subtitle, p.body, p.img_url, p.date, u.name AS author_name
		FROM posts p JOIN users u ON u.user_id = p.author_id
		WHERE p.post_id = $1
	`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) GetAll(ctx context.Context) ([]models.Post, error) {
	query := `
		SELECT p.post_id, p.author_id, p.title, p.subtitle, p.body, p.img_url, p.date, u.name AS author_name
		FROM posts p JOIN users u ON u.user_id = p.author_id
		ORDER BY p.post_id DESC
	`

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			subtitle = :subtitle,
			body = :body,
			img_url = :img_url
		WHERE post_id = :post_id
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		if isUniqueViolation(err, "posts_title_key") {
			return ErrDuplicateTitle
		}
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

// Delete удаляет пост вместе с его комментариями в одной транзакции.
// Каскад объявлён и на уровне схемы (ON DELETE CASCADE).
func (r *PostRepositoryImpl) Delete(ctx context.Context, postID int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении комментариев поста: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPostNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}
