package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/robinw088/blog-with-users-start/internal/repository"
)

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.RenderHTML(w, r, "register.page.html", &HTMLData{Title: "Регистрация"})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ClientError(w, http.StatusBadRequest)
		return
	}

	form := RegisterForm{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
		Name:     strings.TrimSpace(r.FormValue("name")),
	}

	// валидация до любого обращения к БД
	if fieldErrors := h.validateForm(form); fieldErrors != nil {
		h.RenderHTML(w, r, "register.page.html", &HTMLData{
			Title:      "Регистрация",
			FormErrors: fieldErrors,
			FormData: map[string]string{
				"email": form.Email,
				"name":  form.Name,
			},
		})
		return
	}

	user, err := h.AuthService.Register(r.Context(), repository.CreateUserRequest{
		Email:    form.Email,
		Name:     form.Name,
		Password: form.Password,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			h.setFlash(w, "Аккаунт с таким email уже зарегистрирован")
			http.Redirect(w, r, "/register", http.StatusSeeOther)
			return
		}
		h.ServerError(w, err)
		return
	}

	// сразу логиним нового пользователя
	token, err := h.AuthService.IssueSessionToken(user)
	if err != nil {
		h.ServerError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.RenderHTML(w, r, "login.page.html", &HTMLData{Title: "Вход"})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ClientError(w, http.StatusBadRequest)
		return
	}

	form := LoginForm{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}

	if fieldErrors := h.validateForm(form); fieldErrors != nil {
		h.RenderHTML(w, r, "login.page.html", &HTMLData{
			Title:      "Вход",
			FormErrors: fieldErrors,
			FormData:   map[string]string{"email": form.Email},
		})
		return
	}

	user, err := h.AuthService.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrInvalidCredential) {
			// не уточняем, что именно неверно
			h.RenderHTML(w, r, "login.page.html", &HTMLData{
				Title:     "Вход",
				FormError: "Неверный email или пароль",
				FormData:  map[string]string{"email": form.Email},
			})
			return
		}
		h.ServerError(w, err)
		return
	}

	token, err := h.AuthService.IssueSessionToken(user)
	if err != nil {
		h.ServerError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
