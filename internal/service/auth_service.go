package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/robinw088/blog-with-users-start/internal/config"
	"github.com/robinw088/blog-with-users-start/internal/models"
	"github.com/robinw088/blog-with-users-start/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	IssueSessionToken(user *models.User) (string, error)
	ParseSessionToken(tokenString string) (*models.SessionUser, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	existingUser, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err == nil && existingUser != nil {
		return nil, repository.ErrDuplicateEmail
	}

	user := &models.User{
		Email: req.Email,
		Name:  req.Name,
	}

	// роль назначает хранилище: первый зарегистрированный аккаунт
	// становится администратором, гонки разрешают уникальные индексы
	err = s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// IssueSessionToken подписывает данные сессии в JWT, который кладётся в cookie
func (s *authService) IssueSessionToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.UserID,
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
		"exp":    time.Now().Add(s.cfg.SessionDuration).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

func (s *authService) ParseSessionToken(tokenString string) (*models.SessionUser, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SessionSecret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("недействительный токен")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("неверный формат claims")
	}

	userID, okID := claims["userId"].(float64)
	email, okEmail := claims["email"].(string)
	name, okName := claims["name"].(string)
	role, okRole := claims["role"].(string)
	if !okID || !okEmail || !okName || !okRole {
		return nil, fmt.Errorf("неверные данные в токене")
	}

	sessionUser := &models.SessionUser{
		UserID: int(userID),
		Email:  email,
		Name:   name,
		Role:   role,
	}

	return sessionUser, nil
}
