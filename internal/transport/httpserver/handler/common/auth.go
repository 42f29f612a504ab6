package common

import (
	"net/http"
	"time"

	"care-app-go/internal/domain/authz"
	"care-app-go/internal/transport/httpserver/middleware"
)

type authMeResponse struct {
	ID          string     `json:"id"`
	ExternalID  string     `json:"external_id"`
	Email       string     `json:"email"`
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	PhoneNumber *string    `json:"phone_number"`
	Role        authz.Role `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	profile, ok := middleware.ProfileFromContext(r.Context())
	if !ok {
		WriteUnauthenticated(w, r)
		return
	}

	writeJSON(w, http.StatusOK, authMeResponse{
		ID:          profile.ID,
		ExternalID:  profile.ExternalID,
		Email:       profile.Email,
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		PhoneNumber: profile.PhoneNumber,
		Role:        profile.Role,
		CreatedAt:   profile.CreatedAt,
	})
}

// ActorFrom returns the caller resolved by the auth middleware, writing a 401
// when there is none.
func ActorFrom(w http.ResponseWriter, r *http.Request) (authz.Actor, bool) {
	actor, ok := authz.ActorFromContext(r.Context())
	if !ok {
		WriteUnauthenticated(w, r)
		return authz.Actor{}, false
	}
	return actor, true
}
