package handlers

import (
	"bytes"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/robinw088/blog-with-users-start/internal/middleware"
	"github.com/robinw088/blog-with-users-start/internal/models"
)

type HTMLData struct {
	Title       string
	Path        string
	Flash       string
	FormError   string
	FormErrors  map[string]string
	FormData    map[string]string // для повторного показа введённых значений
	CurrentUser *models.SessionUser
	Post        *models.Post
	Posts       []models.Post
	Comments    []models.Comment
	IsEdit      bool
}

var functions = template.FuncMap{
	// тело поста и комментарии хранятся как rich text
	"safe": func(s string) template.HTML {
		return template.HTML(s)
	},
}

func (h *Handlers) RenderHTML(w http.ResponseWriter, r *http.Request, pageFile string, data *HTMLData) {
	if data == nil {
		data = &HTMLData{}
	}

	data.Path = r.URL.Path

	if data.CurrentUser == nil {
		data.CurrentUser = middleware.CurrentUser(r)
	}

	if data.Flash == "" {
		data.Flash = h.popFlash(w, r)
	}

	files := []string{
		filepath.Join(h.Cfg.HTMLDir, "base.layout.html"),
		filepath.Join(h.Cfg.HTMLDir, pageFile),
	}

	ts, err := template.New("").Funcs(functions).ParseFiles(files...)
	if err != nil {
		h.ServerError(w, err)
		return
	}

	buf := new(bytes.Buffer)

	// рендерим во временный буфер, чтобы не отдавать наполовину собранную страницу
	err = ts.ExecuteTemplate(buf, "base", data)
	if err != nil {
		h.ServerError(w, err)
		return
	}

	buf.WriteTo(w)
}
