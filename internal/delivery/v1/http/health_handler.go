package http

import (
	"context"
	"net/http"
	"time"
)

// Pinger — зависимость, доступность которой определяет здоровье сервиса.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// healthz отвечает 200, пока база данных доступна, иначе 503.
func (h *HealthHandler) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		WriteSuccess(w, http.StatusServiceUnavailable, NewErrorResponse(http.StatusServiceUnavailable, "database unavailable"))
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
