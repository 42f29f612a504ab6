package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"care-app-go/internal/config"
	"care-app-go/internal/domain/authz"
	"care-app-go/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterIsPerActor(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 2}, logger.Nop())
	frozen := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return frozen }

	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(actorID string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/reservations", nil)
		req = req.WithContext(authz.WithActor(req.Context(), authz.Actor{ID: actorID, Role: authz.RoleUser}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("u1"))
	assert.Equal(t, http.StatusNoContent, call("u1"))
	assert.Equal(t, http.StatusTooManyRequests, call("u1"))
	assert.Equal(t, http.StatusNoContent, call("u2"))

	req := httptest.NewRequest(http.MethodGet, "/api/reservations", nil)
	req = req.WithContext(authz.WithActor(req.Context(), authz.Actor{ID: "u1"}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	frozen = frozen.Add(time.Second)
	assert.Equal(t, http.StatusNoContent, call("u1"))
}

func TestRateLimiterRequiresActor(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1}, logger.Nop())
	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/families", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rl.limiters)
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 0}, logger.Nop())
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	h := rl.Handler(next)
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
