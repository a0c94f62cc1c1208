package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/robinw088/blog-with-users-start/internal/models"
)

type CommentRepositoryImpl struct {
	db *sqlx.DB
}

type CreateCommentRequest struct {
	PostID   int    `json:"post_id"`
	AuthorID int    `json:"author_id"`
	Text     string `json:"text"`
}

func NewCommentRepository(db *sqlx.DB) *CommentRepositoryImpl {
	return &CommentRepositoryImpl{db: db}
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *models.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO comments (post_id, author_id, text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING comment_id
	`

	err := r.db.GetContext(ctx, &comment.CommentID, query,
		comment.PostID, comment.AuthorID, comment.Text, comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	return nil
}

func (r *CommentRepositoryImpl) GetByPostID(ctx context.Context, postID int) ([]models.Comment, error) {
	query := `
		SELECT c.comment_id, c.post_id, c.author_id, c.text, c.created_at, u.name AS author_name
		FROM comments c JOIN users u ON u.user_id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at
	`

	var comments []models.Comment
	err := r.db.SelectContext(ctx, &comments, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	return comments, nil
}

func (r *CommentRepositoryImpl) CountByPostID(ctx context.Context, postID int) (int, error) {
	var count int

	query := `SELECT COUNT(*) FROM comments WHERE post_id = $1`

	err := r.db.GetContext(ctx, &count, query, postID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте комментариев: %w", err)
	}

	return count, nil
}
