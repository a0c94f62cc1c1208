package repository

import (
	"errors"
	"strings"
)

var (
	ErrUserNotFound      = errors.New("пользователь не найден")
	ErrDuplicateEmail    = errors.New("пользователь с таким email уже существует")
	ErrInvalidCredential = errors.New("неверный пароль")
	ErrPostNotFound      = errors.New("пост не найден")
	ErrDuplicateTitle    = errors.New("пост с таким заголовком уже существует")
	ErrCommentNotFound   = errors.New("комментарий не найден")
)

// isUniqueViolation проверяет, что ошибка Postgres вызвана нарушением
// уникального ограничения constraint
func isUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "duplicate key value") &&
		strings.Contains(err.Error(), constraint)
}
