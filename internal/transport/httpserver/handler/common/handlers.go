package common

import (
	catalogdomain "care-app-go/internal/domain/catalog"
	"care-app-go/pkg/logger"
)

type Handlers struct {
	Catalog *catalogdomain.Service
	log     logger.Logger
}

func New(catalog *catalogdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Catalog: catalog,
		log:     log,
	}
}
