package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"care-app-go/internal/config"
	"care-app-go/internal/domain/apperr"
	"care-app-go/internal/domain/authz"
	"care-app-go/internal/domain/user"
	"care-app-go/pkg/logger"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
)

// ProfileResolver turns a verified identity into a stored profile.
type ProfileResolver interface {
	EnsureProfile(ctx context.Context, identity user.Identity) (*user.Profile, error)
}

type SupabaseAuth struct {
	baseURL   string
	apiKey    string
	jwtSecret []byte
	client    *http.Client
	profiles  ProfileResolver
	skipAuth  bool
	mockUser  user.Identity
	log       logger.Logger
}

type contextKey int

const profileKey contextKey = iota

type userResponse struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	Sub          string                 `json:"sub"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	User         struct {
		ID  string `json:"id"`
		Sub string `json:"sub"`
	} `json:"user"`
}

var errInvalidToken = errors.New("invalid token")

func NewSupabaseAuth(cfg config.SupabaseConfig, profiles ProfileResolver, log logger.Logger) *SupabaseAuth {
	baseURL := strings.TrimRight(cfg.URL, "/")
	timeout := cfg.AuthTimeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	var secret []byte
	if value := strings.TrimSpace(cfg.JWTSecret); value != "" {
		secret = []byte(value)
	}

	return &SupabaseAuth{
		baseURL:   baseURL,
		apiKey:    cfg.PublishableKey,
		jwtSecret: secret,
		client: &http.Client{
			Timeout: timeout,
		},
		profiles: profiles,
		skipAuth: cfg.SkipAuth,
		mockUser: user.Identity{
			ExternalID: strings.TrimSpace(cfg.MockUserID),
			Email:      strings.TrimSpace(cfg.MockUserEmail),
			FirstName:  strings.TrimSpace(cfg.MockUserFirstName),
			LastName:   strings.TrimSpace(cfg.MockUserLastName),
		},
		log: log,
	}
}

func (a *SupabaseAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := a.identify(w, r)
		if !ok {
			return
		}

		profile, err := a.profiles.EnsureProfile(r.Context(), identity)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindUnauthenticated {
				unauthorized(w)
				return
			}
			a.log.InternalError("auth: ensure profile failed", err, "external_id", identity.ExternalID)
			writeError(w, http.StatusInternalServerError, "profile_resolution_failed", "could not resolve user profile")
			return
		}

		ctx := authz.WithActor(r.Context(), profile.Actor())
		ctx = WithProfile(ctx, profile)
		ctx = logger.IntoContext(ctx, a.log.With("request_id", chimw.GetReqID(ctx), "actor_id", profile.ID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// identify writes the error response itself when it returns false.
func (a *SupabaseAuth) identify(w http.ResponseWriter, r *http.Request) (user.Identity, bool) {
	if a.skipAuth {
		if a.mockUser.ExternalID == "" {
			writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth mock user id not configured")
			return user.Identity{}, false
		}
		return a.mockUser, true
	}

	if len(a.jwtSecret) == 0 && (a.baseURL == "" || a.apiKey == "") {
		writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth not configured")
		return user.Identity{}, false
	}

	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		unauthorized(w)
		return user.Identity{}, false
	}

	identity, err := a.verify(r.Context(), token)
	if err != nil {
		a.log.BusinessError("auth: token rejected", err, "path", r.URL.Path)
		unauthorized(w)
		return user.Identity{}, false
	}
	return identity, true
}

func (a *SupabaseAuth) verify(ctx context.Context, token string) (user.Identity, error) {
	if len(a.jwtSecret) > 0 {
		identity, err := a.verifyLocal(token)
		if err == nil {
			return identity, nil
		}
		if a.baseURL == "" || a.apiKey == "" {
			return user.Identity{}, err
		}
	}
	return a.verifyRemote(ctx, token)
}

func (a *SupabaseAuth) verifyLocal(token string) (user.Identity, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return user.Identity{}, fmt.Errorf("jwt parse: %w", err)
	}
	if !parsed.Valid {
		return user.Identity{}, errInvalidToken
	}

	subject, _ := claims.GetSubject()
	if subject == "" {
		return user.Identity{}, errInvalidToken
	}

	metadata, _ := claims["user_metadata"].(map[string]interface{})
	return identityFrom(subject, stringClaim(claims, "email"), metadata), nil
}

func (a *SupabaseAuth) verifyRemote(ctx context.Context, token string) (user.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return user.Identity{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return user.Identity{}, fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return user.Identity{}, fmt.Errorf("auth status %d: %w", resp.StatusCode, errInvalidToken)
	}

	var payload userResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return user.Identity{}, fmt.Errorf("decode auth user: %w", err)
	}

	userID := firstNonEmpty(payload.ID, payload.Sub, payload.User.ID, payload.User.Sub)
	if userID == "" {
		return user.Identity{}, errInvalidToken
	}
	return identityFrom(userID, payload.Email, payload.UserMetadata), nil
}

func identityFrom(externalID, email string, metadata map[string]interface{}) user.Identity {
	firstName := stringFromMap(metadata, "first_name")
	lastName := stringFromMap(metadata, "last_name")
	if firstName == "" && lastName == "" {
		firstName = firstNonEmpty(stringFromMap(metadata, "full_name"), stringFromMap(metadata, "name"))
	}
	return user.Identity{
		ExternalID: externalID,
		Email:      email,
		FirstName:  firstName,
		LastName:   lastName,
	}
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
}

func WithProfile(ctx context.Context, profile *user.Profile) context.Context {
	return context.WithValue(ctx, profileKey, profile)
}

// ProfileFromContext returns the profile resolved by the auth middleware.
func ProfileFromContext(ctx context.Context) (*user.Profile, bool) {
	profile, ok := ctx.Value(profileKey).(*user.Profile)
	if !ok || profile == nil {
		return nil, false
	}
	return profile, true
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func stringClaim(claims jwt.MapClaims, key string) string {
	value, _ := claims[key].(string)
	return value
}

func stringFromMap(values map[string]interface{}, key string) string {
	if values == nil {
		return ""
	}
	value, ok := values[key]
	if !ok {
		return ""
	}
	parsed, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(parsed)
}
