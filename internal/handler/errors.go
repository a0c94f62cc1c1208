package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

func (h *Handlers) ServerError(w http.ResponseWriter, err error) {
	h.Logger.Error("internal server error", zap.Error(err))
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func (h *Handlers) ClientError(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}

func (h *Handlers) NotFound(w http.ResponseWriter) {
	h.ClientError(w, http.StatusNotFound)
}

// writeSuccess - JSON-ответ, используется служебным /health
func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}
