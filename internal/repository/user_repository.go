package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/robinw088/blog-with-users-start/internal/models"
)

type userRepository struct {
	db     *sqlx.DB
	hasher PasswordHasher
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func NewUserRepository(db *sqlx.DB, hasher PasswordHasher) UserRepository {
	return &userRepository{db: db, hasher: hasher}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	// create password hash
	hashedPassword, err := r.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	user.PasswordHash = hashedPassword
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	// роль назначается внутри INSERT: первая запись в таблице получает 'admin'.
	// Гонку двух одновременных регистраций разрешает частичный уникальный
	// индекс users_single_admin_idx - проигравший вставляется как 'user'.
	query := `
		INSERT INTO users (email, password_hash, name, role, created_at)
		VALUES ($1, $2, $3,
			CASE WHEN NOT EXISTS (SELECT 1 FROM users) THEN 'admin' ELSE 'user' END,
			$4)
		RETURNING user_id, role
	`

	err = r.db.GetContext(ctx, user, query,
		user.Email, user.PasswordHash, user.Name, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return ErrDuplicateEmail
		}
		if isUniqueViolation(err, "users_single_admin_idx") {
			return r.createUserAsRegular(ctx, user)
		}
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return nil
}

func (r *userRepository) createUserAsRegular(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, name, role, created_at)
		VALUES ($1, $2, $3, 'user', $4)
		RETURNING user_id, role
	`

	err := r.db.GetContext(ctx, user, query,
		user.Email, user.PasswordHash, user.Name, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("ошибка при получении пользователя по email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	// пустой пароль не сравниваем с хешем
	if password == "" {
		return nil, ErrInvalidCredential
	}

	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	// checking that the password hash is the same
	err = r.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		return nil, ErrInvalidCredential
	}

	return user, nil
}
