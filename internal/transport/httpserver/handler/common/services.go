package common

import (
	"net/http"
	"time"

	catalogdomain "care-app-go/internal/domain/catalog"
)

type ServiceResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Category    catalogdomain.Category `json:"category"`
	Description string                 `json:"description"`
	IsActive    bool                   `json:"is_active"`
	CreatedAt   time.Time              `json:"created_at"`
}

func ToServiceResponse(service *catalogdomain.CareService) *ServiceResponse {
	if service == nil {
		return nil
	}
	return &ServiceResponse{
		ID:          service.ID,
		Name:        service.Name,
		Category:    service.Category,
		Description: service.Description,
		IsActive:    service.IsActive,
		CreatedAt:   service.CreatedAt,
	}
}

func (h *Handlers) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.Catalog.ListActive(r.Context())
	if err != nil {
		WriteDomainError(w, r, h.log, "services.list: list active services failed", err)
		return
	}

	response := make([]*ServiceResponse, 0, len(services))
	for i := range services {
		response = append(response, ToServiceResponse(&services[i]))
	}

	writeJSON(w, http.StatusOK, response)
}
