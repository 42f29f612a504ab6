package applications

import (
	"net/http"
	"strings"

	applicationdomain "care-app-go/internal/domain/application"
	commonhandler "care-app-go/internal/transport/httpserver/handler/common"
	"github.com/go-chi/chi/v5"
)

type createApplicationRequest struct {
	ServiceID     string  `json:"service_id"`
	FamilyID      string  `json:"family_id"`
	Content       string  `json:"content"`
	PreferredDate *string `json:"preferred_date"`
}

type updateApplicationRequest struct {
	Status     applicationdomain.Status `json:"status"`
	AdminNotes *string                  `json:"admin_notes"`
}

type adminListResponse struct {
	Items []*ApplicationResponse `json:"items"`
	Stats statsResponse          `json:"stats"`
}

type statsResponse struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

func (h *Handlers) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := commonhandler.ActorFrom(w, r)
	if !ok {
		return
	}

	items, err := h.Applications.ListMine(r.Context(), actor)
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "applications.list_mine: list applications failed", err, "actor_id", actor.ID)
		return
	}

	writeJSON(w, http.StatusOK, toApplicationList(items))
}

func (h *Handlers) CreateApplication(w http.ResponseWriter, r *http.Request) {
	var req createApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w, r)
		return
	}

	actor, ok := commonhandler.ActorFrom(w, r)
	if !ok {
		return
	}

	preferredDate, err := commonhandler.ParseDateParam("preferred_date", req.PreferredDate)
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "applications.create: invalid preferred date", err, "actor_id", actor.ID)
		return
	}

	created, err := h.Applications.Create(r.Context(), actor, applicationdomain.CreateInput{
		ServiceID:     req.ServiceID,
		FamilyID:      req.FamilyID,
		Content:       req.Content,
		PreferredDate: preferredDate,
	})
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "applications.create: create application failed", err, "actor_id", actor.ID, "service_id", req.ServiceID)
		return
	}

	writeJSON(w, http.StatusCreated, ToApplicationResponse(created))
}

func (h *Handlers) GetApplication(w http.ResponseWriter, r *http.Request) {
	actor, ok := commonhandler.ActorFrom(w, r)
	if !ok {
		return
	}
	applicationID := strings.TrimSpace(chi.URLParam(r, "id"))

	result, err := h.Applications.Get(r.Context(), actor, applicationID)
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "applications.get: get application failed", err, "actor_id", actor.ID, "application_id", applicationID)
		return
	}

	writeJSON(w, http.StatusOK, ToApplicationResponse(result))
}

func (h *Handlers) UpdateApplication(w http.ResponseWriter, r *http.Request) {
	var req updateApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w, r)
		return
	}

	actor, ok := commonhandler.ActorFrom(w, r)
	if !ok {
		return
	}
	applicationID := strings.TrimSpace(chi.URLParam(r, "id"))

	updated, err := h.Applications.Transition(r.Context(), actor, applicationdomain.TransitionInput{
		ApplicationID: applicationID,
		Status:        applicationdomain.Status(strings.ToUpper(strings.TrimSpace(string(req.Status)))),
		AdminNotes:    req.AdminNotes,
	})
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "applications.update: transition failed", err, "actor_id", actor.ID, "application_id", applicationID, "status", req.Status)
		return
	}

	writeJSON(w, http.StatusOK, ToApplicationResponse(updated))
}

func (h *Handlers) ListAll(w http.ResponseWriter, r *http.Request) {
	actor, ok := commonhandler.ActorFrom(w, r)
	if !ok {
		return
	}

	var filter applicationdomain.ListFilter
	if value := strings.TrimSpace(r.URL.Query().Get("status")); value != "" && !strings.EqualFold(value, "all") {
		status := applicationdomain.Status(strings.ToUpper(value))
		filter.Status = &status
	}

	listing, err := h.Applications.ListAll(r.Context(), actor, filter)
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "applications.list_all: list applications failed", err, "actor_id", actor.ID)
		return
	}

	writeJSON(w, http.StatusOK, adminListResponse{
		Items: toApplicationList(listing.Items),
		Stats: statsResponse{
			Total:     listing.Stats.Total,
			Pending:   listing.Stats.ByStatus[applicationdomain.StatusPending],
			Approved:  listing.Stats.ByStatus[applicationdomain.StatusApproved],
			Rejected:  listing.Stats.ByStatus[applicationdomain.StatusRejected],
			Completed: listing.Stats.ByStatus[applicationdomain.StatusCompleted],
			Cancelled: listing.Stats.ByStatus[applicationdomain.StatusCancelled],
		},
	})
}
