package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Схемы форм по операциям. Валидация выполняется до любого обращения к БД.

type RegisterForm struct {
	Email    string `validate:"required"`
	Password string `validate:"required,min=4"`
	Name     string `validate:"required"`
}

type LoginForm struct {
	Email    string `validate:"required"`
	Password string `validate:"required,min=4"`
}

// PostForm - единая схема для создания и редактирования поста
type PostForm struct {
	Title    string `validate:"required"`
	Subtitle string `validate:"required"`
	Body     string `validate:"required"`
	ImgURL   string `validate:"required,url"`
}

type CommentForm struct {
	Text string `validate:"required"`
}

// validateForm возвращает сообщения об ошибках по полям формы
// или nil, если форма валидна
func (h *Handlers) validateForm(form interface{}) map[string]string {
	err := h.Validate.Struct(form)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"form": "неверные данные"}
	}

	fieldErrors := make(map[string]string)
	for _, fieldError := range validationErrors {
		fieldErrors[fieldError.Field()] = fieldMessage(fieldError)
	}

	return fieldErrors
}

func fieldMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "обязательное поле"
	case "min":
		return fmt.Sprintf("минимум %s символов", fieldError.Param())
	case "url":
		return "некорректный URL"
	default:
		return "неверное значение"
	}
}
