package middleware

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/robinw088/blog-with-users-start/internal/models"
	"github.com/robinw088/blog-with-users-start/internal/service"
)

type Middleware func(http.Handler) http.Handler

const (
	// SessionCookieName - cookie с подписанным токеном сессии
	SessionCookieName = "session_token"

	sessionUserKey = "sessionUser"
)

// SessionMiddleware разбирает cookie сессии и кладёт пользователя в контекст запроса.
// Анонимные запросы проходят дальше без пользователя в контексте.
func SessionMiddleware(authService service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			sessionUser, err := authService.ParseSessionToken(cookie.Value)
			if err != nil {
				// недействительный или просроченный токен - считаем запрос анонимным
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionUserKey, sessionUser)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser возвращает пользователя текущей сессии или nil для анонимного запроса
func CurrentUser(r *http.Request) *models.SessionUser {
	user, ok := r.Context().Value(sessionUserKey).(*models.SessionUser)
	if !ok {
		return nil
	}
	return user
}

// AdminOnlyMiddleware пропускает только администратора.
// Проверка выполняется до обработчика, состояние не изменяется.
func AdminOnlyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil || !user.IsAdmin() {
			http.Error(w, "Доступ запрещен. Требуется роль администратора", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func LoggingMiddleware(logger *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
