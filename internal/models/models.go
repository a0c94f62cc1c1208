package models

import (
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	UserID       int       `json:"userId" db:"user_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Post struct {
	PostID   int    `json:"postId" db:"post_id"`
	AuthorID int    `json:"authorId" db:"author_id"`
	Title    string `json:"title" db:"title"`
	Subtitle string `json:"subtitle" db:"subtitle"`
	Body     string `json:"body" db:"body"`
	ImgURL   string `json:"imgUrl" db:"img_url"`
	// Дата публикации хранится как отформатированная строка, например "August 31, 2026"
	Date       string `json:"date" db:"date"`
	AuthorName string `json:"authorName" db:"author_name"`
}

type Comment struct {
	CommentID  int       `json:"commentId" db:"comment_id"`
	PostID     int       `json:"postId" db:"post_id"`
	AuthorID   int       `json:"authorId" db:"author_id"`
	Text       string    `json:"text" db:"text"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	AuthorName string    `json:"authorName" db:"author_name"`
}

// SessionUser - данные пользователя, извлечённые из cookie сессии
type SessionUser struct {
	UserID int    `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

func (s *SessionUser) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
