package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/robinw088/blog-with-users-start/internal/middleware"
	"github.com/robinw088/blog-with-users-start/internal/repository"
)

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := h.BlogService.ListPosts(r.Context())
	if err != nil {
		h.ServerError(w, err)
		return
	}

	h.RenderHTML(w, r, "index.page.html", &HTMLData{
		Title: "Блог",
		Posts: posts,
	})
}

// ShowPost показывает пост с комментариями; POST добавляет комментарий
func (h *Handlers) ShowPost(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.NotFound(w)
		return
	}

	if r.Method == http.MethodPost {
		h.addComment(w, r, postID)
		return
	}

	post, comments, err := h.BlogService.GetPost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			h.NotFound(w)
			return
		}
		h.ServerError(w, err)
		return
	}

	h.RenderHTML(w, r, "post.page.html", &HTMLData{
		Title:    post.Title,
		Post:     post,
		Comments: comments,
	})
}

func (h *Handlers) addComment(w http.ResponseWriter, r *http.Request, postID int) {
	user := middleware.CurrentUser(r)
	if user == nil {
		// комментировать могут только вошедшие пользователи
		h.setFlash(w, "Войдите, чтобы оставить комментарий")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ClientError(w, http.StatusBadRequest)
		return
	}

	form := CommentForm{
		Text: strings.TrimSpace(r.FormValue("text")),
	}

	if fieldErrors := h.validateForm(form); fieldErrors != nil {
		post, comments, err := h.BlogService.GetPost(r.Context(), postID)
		if err != nil {
			h.NotFound(w)
			return
		}
		h.RenderHTML(w, r, "post.page.html", &HTMLData{
			Title:      post.Title,
			Post:       post,
			Comments:   comments,
			FormErrors: fieldErrors,
		})
		return
	}

	_, err := h.BlogService.AddComment(r.Context(), repository.CreateCommentRequest{
		PostID:   postID,
		AuthorID: user.UserID,
		Text:     form.Text,
	})
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			h.NotFound(w)
			return
		}
		h.ServerError(w, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/post/%d", postID), http.StatusSeeOther)
}

// NewPost - создание поста, маршрут защищён AdminOnlyMiddleware
func (h *Handlers) NewPost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.RenderHTML(w, r, "make-post.page.html", &HTMLData{Title: "Новый пост"})
		return
	}

	form, err := h.parsePostForm(r)
	if err != nil {
		h.ClientError(w, http.StatusBadRequest)
		return
	}

	if fieldErrors := h.validateForm(*form); fieldErrors != nil {
		h.RenderHTML(w, r, "make-post.page.html", &HTMLData{
			Title:      "Новый пост",
			FormErrors: fieldErrors,
			FormData:   postFormData(form),
		})
		return
	}

	user := middleware.CurrentUser(r)

	_, err = h.BlogService.CreatePost(r.Context(), repository.CreatePostRequest{
		AuthorID: user.UserID,
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImgURL:   form.ImgURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateTitle) {
			h.RenderHTML(w, r, "make-post.page.html", &HTMLData{
				Title:     "Новый пост",
				FormError: "Пост с таким заголовком уже существует",
				FormData:  postFormData(form),
			})
			return
		}
		h.ServerError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// EditPost - редактирование поста, маршрут защищён AdminOnlyMiddleware
func (h *Handlers) EditPost(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.NotFound(w)
		return
	}

	if r.Method != http.MethodPost {
		post, _, err := h.BlogService.GetPost(r.Context(), postID)
		if err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				h.NotFound(w)
				return
			}
			h.ServerError(w, err)
			return
		}

		h.RenderHTML(w, r, "make-post.page.html", &HTMLData{
			Title:  "Редактировать пост",
			IsEdit: true,
			Post:   post,
			FormData: map[string]string{
				"title":    post.Title,
				"subtitle": post.Subtitle,
				"body":     post.Body,
				"img_url":  post.ImgURL,
			},
		})
		return
	}

	form, err := h.parsePostForm(r)
	if err != nil {
		h.ClientError(w, http.StatusBadRequest)
		return
	}

	if fieldErrors := h.validateForm(*form); fieldErrors != nil {
		h.RenderHTML(w, r, "make-post.page.html", &HTMLData{
			Title:      "Редактировать пост",
			IsEdit:     true,
			FormErrors: fieldErrors,
			FormData:   postFormData(form),
		})
		return
	}

	err = h.BlogService.UpdatePost(r.Context(), repository.UpdatePostRequest{
		PostID:   postID,
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     form.Body,
		ImgURL:   form.ImgURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPostNotFound):
			h.NotFound(w)
		case errors.Is(err, repository.ErrDuplicateTitle):
			h.RenderHTML(w, r, "make-post.page.html", &HTMLData{
				Title:     "Редактировать пост",
				IsEdit:    true,
				FormError: "Пост с таким заголовком уже существует",
				FormData:  postFormData(form),
			})
		default:
			h.ServerError(w, err)
		}
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/post/%d", postID), http.StatusSeeOther)
}

// DeletePost - удаление поста, маршрут защищён AdminOnlyMiddleware
func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.NotFound(w)
		return
	}

	err = h.BlogService.DeletePost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			h.NotFound(w)
			return
		}
		h.ServerError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) About(w http.ResponseWriter, r *http.Request) {
	h.RenderHTML(w, r, "about.page.html", &HTMLData{Title: "О блоге"})
}

func (h *Handlers) Contact(w http.ResponseWriter, r *http.Request) {
	h.RenderHTML(w, r, "contact.page.html", &HTMLData{Title: "Контакты"})
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// parsePostForm разбирает форму поста; при наличии файла обложки
// загружает его в хранилище и подставляет полученный URL вместо img_url
func (h *Handlers) parsePostForm(r *http.Request) (*PostForm, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
			return nil, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
	}

	form := &PostForm{
		Title:    strings.TrimSpace(r.FormValue("title")),
		Subtitle: strings.TrimSpace(r.FormValue("subtitle")),
		Body:     r.FormValue("body"),
		ImgURL:   strings.TrimSpace(r.FormValue("img_url")),
	}

	file, header, err := r.FormFile("cover")
	if err != nil {
		// обложка не прикреплена - используем img_url из формы
		return form, nil
	}
	defer file.Close()

	coverURL, err := h.BlogService.UploadCover(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		return nil, err
	}

	form.ImgURL = coverURL
	return form, nil
}

func postFormData(form *PostForm) map[string]string {
	return map[string]string{
		"title":    form.Title,
		"subtitle": form.Subtitle,
		"body":     form.Body,
		"img_url":  form.ImgURL,
	}
}
