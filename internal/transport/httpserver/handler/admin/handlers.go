package admin

import (
	"encoding/json"
	"net/http"
	"time"

	auditdomain "care-app-go/internal/domain/audit"
	dashboarddomain "care-app-go/internal/domain/dashboard"
	applicationshandler "care-app-go/internal/transport/httpserver/handler/applications"
	commonhandler "care-app-go/internal/transport/httpserver/handler/common"
	"care-app-go/pkg/logger"
)

type Handlers struct {
	Dashboard *dashboarddomain.Service
	Audit     *auditdomain.Service
	log       logger.Logger
}

func New(dashboard *dashboarddomain.Service, audit *auditdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Dashboard: dashboard,
		Audit:     audit,
		log:       log,
	}
}

type countsResponse struct {
	Users                int64 `json:"users"`
	Families             int64 `json:"families"`
	Applications         int64 `json:"applications"`
	PendingApplications  int64 `json:"pending_applications"`
	ApprovedApplications int64 `json:"approved_applications"`
	Reservations         int64 `json:"reservations"`
	PendingReservations  int64 `json:"pending_reservations"`
}

type overviewResponse struct {
	Counts             countsResponse                             `json:"counts"`
	RecentApplications []*applicationshandler.ApplicationResponse `json:"recent_applications"`
}

type activityResponse struct {
	ID          string             `json:"id"`
	ActorID     string             `json:"actor_id"`
	Action      auditdomain.Action `json:"action"`
	Description string             `json:"description"`
	Metadata    json.RawMessage    `json:"metadata"`
	CreatedAt   time.Time          `json:"created_at"`
}

func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	actor, ok := commonhandler.ActorFrom(w, r)
	if !ok {
		return
	}

	overview, err := h.Dashboard.Overview(r.Context(), actor)
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "admin.overview: load overview failed", err, "actor_id", actor.ID)
		return
	}

	recent := make([]*applicationshandler.ApplicationResponse, 0, len(overview.RecentApplications))
	for i := range overview.RecentApplications {
		recent = append(recent, applicationshandler.ToApplicationResponse(&overview.RecentApplications[i]))
	}

	commonhandler.WriteJSON(w, http.StatusOK, overviewResponse{
		Counts: countsResponse{
			Users:                overview.Counts.Users,
			Families:             overview.Counts.Families,
			Applications:         overview.Counts.Applications,
			PendingApplications:  overview.Counts.PendingApplications,
			ApprovedApplications: overview.Counts.ApprovedApplications,
			Reservations:         overview.Counts.Reservations,
			PendingReservations:  overview.Counts.PendingReservations,
		},
		RecentApplications: recent,
	})
}

func (h *Handlers) Activity(w http.ResponseWriter, r *http.Request) {
	actor, ok := commonhandler.ActorFrom(w, r)
	if !ok {
		return
	}

	limit, err := commonhandler.ParseIntParam(r.URL.Query().Get("limit"), 0)
	if err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", commonhandler.Localize(r, "invalid_limit", "limit must be a non-negative integer"))
		return
	}

	entries, err := h.Audit.ListRecent(r.Context(), actor, limit)
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "admin.activity: list activity failed", err, "actor_id", actor.ID)
		return
	}

	response := make([]activityResponse, 0, len(entries))
	for _, entry := range entries {
		metadata := json.RawMessage(entry.Metadata)
		if len(metadata) == 0 {
			metadata = json.RawMessage("{}")
		}
		response = append(response, activityResponse{
			ID:          entry.ID,
			ActorID:     entry.ActorID,
			Action:      entry.Action,
			Description: entry.Description,
			Metadata:    metadata,
			CreatedAt:   entry.CreatedAt,
		})
	}

	commonhandler.WriteJSON(w, http.StatusOK, response)
}
