package applications

import (
	"net/http"

	applicationdomain "care-app-go/internal/domain/application"
	commonhandler "care-app-go/internal/transport/httpserver/handler/common"
	"care-app-go/pkg/logger"
)

type Handlers struct {
	Applications *applicationdomain.Service
	log          logger.Logger
}

func New(applications *applicationdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Applications: applications,
		log:          log,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteJSON(w, status, payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return commonhandler.DecodeJSON(r, dst)
}
