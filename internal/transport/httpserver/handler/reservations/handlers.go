package reservations

import (
	"net/http"

	reservationdomain "care-app-go/internal/domain/reservation"
	commonhandler "care-app-go/internal/transport/httpserver/handler/common"
	"care-app-go/pkg/logger"
)

const (
	idempotencyKeyHeader   = "Idempotency-Key"
	idempotentReplayHeader = "Idempotent-Replayed"
)

type Handlers struct {
	Reservations *reservationdomain.Service
	log          logger.Logger
}

func New(reservations *reservationdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Reservations: reservations,
		log:          log,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteJSON(w, status, payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return commonhandler.DecodeJSON(r, dst)
}
