package handlers

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/robinw088/blog-with-users-start/internal/middleware"
)

const flashCookieName = "flash"

// setFlash сохраняет одноразовое сообщение в cookie.
// Значение кодируется в base64, cookie не переносит кириллицу напрямую.
func (h *Handlers) setFlash(w http.ResponseWriter, message string) {
	cookie := &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		MaxAge:   int((5 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)
}

// popFlash читает сообщение и сразу гасит cookie
func (h *Handlers) popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	message, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}

	return string(message)
}

// setSessionCookie устанавливает cookie с токеном сессии
func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Cfg.SessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, cookie)
}

// clearSessionCookie удаляет cookie сессии
func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	}
	http.SetCookie(w, cookie)
}
