package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robinw088/blog-with-users-start/internal/models"
)

func newTestUserRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewUserRepository(sqlxDB, NewBcryptHasher())

	return repo, mock, func() { db.Close() }
}

func testTime() time.Time {
	return time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
}

func TestUserRepository_CreateUser(t *testing.T) {
	repo, mock, closeDB := newTestUserRepo(t)
	defer closeDB()

	ctx := context.Background()

	email := "test@example.com"
	password := "password123"

	insertQuery := `
		INSERT INTO users (email, password_hash, name, role, created_at)
		VALUES ($1, $2, $3,
			CASE WHEN NOT EXISTS (SELECT 1 FROM users) THEN 'admin' ELSE 'user' END,
			$4)
		RETURNING user_id, role
	`

	regularInsertQuery := `
		INSERT INTO users (email, password_hash, name, role, created_at)
		VALUES ($1, $2, $3, 'user', $4)
		RETURNING user_id, role
	`

	t.Run("Первая запись в таблице получает роль admin", func(t *testing.T) {
		user := &models.User{
			Email: email,
			Name:  "Test User",
		}

		mock.ExpectQuery(insertQuery).
			WithArgs(
				email,
				sqlmock.AnyArg(), // password_hash
				"Test User",
				sqlmock.AnyArg(), // created_at
			).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "role"}).AddRow(1, models.RoleAdmin))

		err := repo.CreateUser(ctx, user, password)

		assert.NoError(t, err)
		assert.Equal(t, 1, user.UserID)
		assert.Equal(t, models.RoleAdmin, user.Role)
		assert.NotEqual(t, password, user.PasswordHash)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Последующие записи получают роль user", func(t *testing.T) {
		user := &models.User{
			Email: "second@example.com",
			Name:  "Second User",
		}

		mock.ExpectQuery(insertQuery).
			WithArgs("second@example.com", sqlmock.AnyArg(), "Second User", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "role"}).AddRow(2, models.RoleUser))

		err := repo.CreateUser(ctx, user, password)

		assert.NoError(t, err)
		assert.Equal(t, models.RoleUser, user.Role)
	})

	t.Run("Гонка за роль admin - проигравший вставляется как user", func(t *testing.T) {
		// обе регистрации увидели пустую таблицу, индекс users_single_admin_idx
		// пропускает только одного администратора
		user := &models.User{
			Email: "loser@example.com",
			Name:  "Loser",
		}

		mock.ExpectQuery(insertQuery).
			WithArgs("loser@example.com", sqlmock.AnyArg(), "Loser", sqlmock.AnyArg()).
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_single_admin_idx"`))

		mock.ExpectQuery(regularInsertQuery).
			WithArgs("loser@example.com", sqlmock.AnyArg(), "Loser", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "role"}).AddRow(2, models.RoleUser))

		err := repo.CreateUser(ctx, user, password)

		assert.NoError(t, err)
		assert.Equal(t, models.RoleUser, user.Role)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Ошибка при дублировании email", func(t *testing.T) {
		user := &models.User{
			Email: email,
			Name:  "Test User",
		}

		mock.ExpectQuery(insertQuery).
			WithArgs(
				email,
				sqlmock.AnyArg(),
				"Test User",
				sqlmock.AnyArg(),
			).
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		err := repo.CreateUser(ctx, user, password)

		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	repo, mock, closeDB := newTestUserRepo(t)
	defer closeDB()

	ctx := context.Background()
	email := "test@example.com"

	t.Run("Успешное получение по email", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"user_id", "email", "password_hash", "name", "role", "created_at",
		}).
			AddRow(1, email, "hashed_password", "Test User", models.RoleAdmin, testTime())

		mock.ExpectQuery(`SELECT * FROM users WHERE email = $1`).
			WithArgs(email).
			WillReturnRows(rows)

		user, err := repo.GetUserByEmail(ctx, email)

		require.NoError(t, err)
		assert.Equal(t, email, user.Email)
		assert.Equal(t, models.RoleAdmin, user.Role)
		assert.True(t, user.IsAdmin())

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE email = $1`).
			WithArgs(email).
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByEmail(ctx, email)

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	repo, mock, closeDB := newTestUserRepo(t)
	defer closeDB()

	ctx := context.Background()
	email := "test@example.com"
	password := "correct_password"
	wrongPassword := "wrong_password"

	hasher := NewBcryptHasher()
	hashedPassword, err := hasher.Hash(password)
	require.NoError(t, err)

	userRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{
			"user_id", "email", "password_hash", "name", "role", "created_at",
		}).
			AddRow(1, email, hashedPassword, "Test User", models.RoleUser, testTime())
	}

	t.Run("Успешная проверка пароля", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE email = $1`).
			WithArgs(email).
			WillReturnRows(userRows())

		user, err := repo.VerifyPassword(ctx, email, password)

		require.NoError(t, err)
		assert.Equal(t, email, user.Email)
	})

	t.Run("Неверный пароль", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE email = $1`).
			WithArgs(email).
			WillReturnRows(userRows())

		user, err := repo.VerifyPassword(ctx, email, wrongPassword)

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("Пустой пароль отклоняется без обращения к БД", func(t *testing.T) {
		user, err := repo.VerifyPassword(ctx, email, "")

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidCredential)

		err = mock.ExpectationsWereMet()
		assert.NoError(t, err)
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE email = $1`).
			WithArgs(email).
			WillReturnError(sql.ErrNoRows)

		user, err := repo.VerifyPassword(ctx, email, password)

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
