package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

func NewCORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept-Language", "Idempotency-Key"},
		ExposedHeaders:   []string{"Idempotent-Replayed", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           86400,
	})
}
