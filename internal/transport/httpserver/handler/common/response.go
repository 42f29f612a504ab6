package common

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"care-app-go/internal/domain/apperr"
	"care-app-go/pkg/logger"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeError(w, status, code, message)
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	writeJSON(w, status, payload)
}

func DecodeJSON(r *http.Request, dst interface{}) error {
	return decodeJSON(r, dst)
}

// WriteInvalidJSON is the response for a body that does not decode.
func WriteInvalidJSON(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusBadRequest, "invalid_json", Localize(r, "invalid_json", "invalid json body"))
}

func WriteUnauthenticated(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusUnauthorized, "unauthenticated", Localize(r, "unauthenticated", "authentication required"))
}

// WriteDomainError maps err to a status by its apperr kind and logs it:
// classified errors as business errors, everything else as internal.
func WriteDomainError(w http.ResponseWriter, r *http.Request, log logger.Logger, op string, err error, args ...any) {
	log = logger.FromContext(r.Context(), log)
	target, ok := apperr.As(err)
	if !ok || target.Kind == apperr.KindInternal {
		log.InternalError(op, err, args...)
		writeError(w, http.StatusInternalServerError, "internal_error", Localize(r, "internal_error", "internal error"))
		return
	}

	log.BusinessError(op, err, append(args, "code", target.Code)...)
	writeJSON(w, StatusFor(target.Kind), errorEnvelope{Error: errorBody{
		Code:    target.Code,
		Message: Localize(r, target.Code, target.Message),
		Fields:  LocalizeFields(r, target.Fields),
	}})
}

func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindPermissionDenied:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
