package families

import (
	"net/http"

	familydomain "care-app-go/internal/domain/family"
	commonhandler "care-app-go/internal/transport/httpserver/handler/common"
	"care-app-go/pkg/logger"
)

type Handlers struct {
	Families *familydomain.Service
	log      logger.Logger
}

func New(families *familydomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Families: families,
		log:      log,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteJSON(w, status, payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return commonhandler.DecodeJSON(r, dst)
}
