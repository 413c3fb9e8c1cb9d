package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/DRSN-tech/product-catalog/internal/infrastructure/identity"
	"github.com/DRSN-tech/product-catalog/pkg/e"
	"github.com/DRSN-tech/product-catalog/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// TokenVerifier проверяет access-токен и возвращает id пользователя.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// RequireAuth пропускает только запросы с валидным Bearer-токеном и кладёт id пользователя в контекст.
func RequireAuth(verifier TokenVerifier, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				WriteError(w, e.ErrUnauthenticated)
				return
			}

			id, err := verifier.Verify(token)
			if err != nil {
				log.Debugf("Rejected token: %v", err)
				WriteError(w, e.ErrUnauthenticated)
				return
			}

			next.ServeHTTP(w, r.WithContext(identity.WithSubject(r.Context(), id)))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}

	return ""
}

// RequestLogger пишет в лог метод, путь, статус и длительность каждого запроса.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.With(
				"request_id", middleware.GetReqID(r.Context()),
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String(),
			).Infof("%s %s", r.Method, r.URL.Path)
		})
	}
}
