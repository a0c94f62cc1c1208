package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/robinw088/blog-with-users-start/cmd/app"
	"github.com/robinw088/blog-with-users-start/internal/config"
	handlers "github.com/robinw088/blog-with-users-start/internal/handler"
	"github.com/robinw088/blog-with-users-start/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Не удалось инициализировать логгер: %v", err)
	}
	defer logger.Sync()

	if cfg.SessionSecret == "" {
		logger.Fatal("SESSION_SECRET не установлен в .env файле")
	}

	db, _, services := app.App(cfg, logger)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, db, cfg, logger)

	// setting up routes
	r := mux.NewRouter()

	r.HandleFunc("/", handler.Home).Methods(http.MethodGet)
	r.HandleFunc("/health", handler.Health).Methods(http.MethodGet)
	r.HandleFunc("/about", handler.About).Methods(http.MethodGet)
	r.HandleFunc("/contact", handler.Contact).Methods(http.MethodGet)

	r.HandleFunc("/register", handler.Register).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/login", handler.Login).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/logout", handler.Logout).Methods(http.MethodGet)

	r.HandleFunc("/post/{id}", handler.ShowPost).Methods(http.MethodGet, http.MethodPost)

	// маршруты только для администратора
	admin := r.NewRoute().Subrouter()
	admin.HandleFunc("/new-post", handler.NewPost).Methods(http.MethodGet, http.MethodPost)
	admin.HandleFunc("/edit-post/{id}", handler.EditPost).Methods(http.MethodGet, http.MethodPost)
	admin.HandleFunc("/delete/{id}", handler.DeletePost).Methods(http.MethodGet)
	admin.Use(middleware.AdminOnlyMiddleware)

	handlerChain := middleware.Chain(
		r,
		middleware.LoggingMiddleware(logger),
		middleware.SessionMiddleware(services.Auth),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	logger.Info("Сервер запущен", zap.String("addr", addr), zap.String("db", cfg.DB.DbNAME))

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		logger.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}
