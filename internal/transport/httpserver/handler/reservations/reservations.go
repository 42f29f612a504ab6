package reservations

import (
	"net/http"
	"strings"
	"time"

	reservationdomain "care-app-go/internal/domain/reservation"
	applicationshandler "care-app-go/internal/transport/httpserver/handler/applications"
	commonhandler "care-app-go/internal/transport/httpserver/handler/common"
	"github.com/go-chi/chi/v5"
)

type createReservationRequest struct {
	ApplicationID string `json:"application_id"`
	ReservedDate  string `json:"reserved_date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Note          string `json:"note"`
}

type updateReservationRequest struct {
	ReservedDate *string `json:"reserved_date"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	Note         *string `json:"note"`
	Status       *string `json:"status"`
	AdminNote    *string `json:"admin_note"`
}

type reservationResponse struct {
	ID            string                                   `json:"id"`
	ApplicationID string                                   `json:"application_id"`
	ReservedDate  string                                   `json:"reserved_date"`
	StartTime     string                                   `json:"start_time"`
	EndTime       *string                                  `json:"end_time"`
	Note          *string                                  `json:"note"`
	Status        reservationdomain.Status                 `json:"status"`
	AdminNote     *string                                  `json:"admin_note"`
	CreatedAt     time.Time                                `json:"created_at"`
	UpdatedAt     time.Time                                `json:"updated_at"`
	Application   *applicationshandler.ApplicationResponse `json:"application,omitempty"`
}

func toReservationResponse(model *reservationdomain.Reservation) reservationResponse {
	return reservationResponse{
		ID:            model.ID,
		ApplicationID: model.ApplicationID,
		ReservedDate:  reservationdomain.FormatDate(model.ReservedDate),
		StartTime:     model.StartTime,
		EndTime:       model.EndTime,
		Note:          model.Note,
		Status:        model.Status,
		AdminNote:     model.AdminNote,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
		Application:   applicationshandler.ToApplicationResponse(model.Application),
	}
}

func (h *Handlers) ListReservations(w http.ResponseWriter, r *http.Request) {
	actor, ok := commonhandler.ActorFrom(w, r)
	if !ok {
		return
	}

	items, err := h.Reservations.List(r.Context(), actor)
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "reservations.list: list reservations failed", err, "actor_id", actor.ID)
		return
	}

	response := make([]reservationResponse, 0, len(items))
	for i := range items {
		response = append(response, toReservationResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

// CreateReservation honours an optional Idempotency-Key header. A replay of
// a finished request answers 200 with the original reservation.
func (h *Handlers) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w, r)
		return
	}

	actor, ok := commonhandler.ActorFrom(w, r)
	if !ok {
		return
	}

	reservedDate, err := commonhandler.ParseDateRequired("reserved_date", req.ReservedDate)
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "reservations.create: invalid reserved date", err, "actor_id", actor.ID)
		return
	}

	input := reservationdomain.CreateInput{
		ApplicationID: req.ApplicationID,
		ReservedDate:  reservedDate,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Note:          req.Note,
	}

	var (
		created  *reservationdomain.Reservation
		replayed bool
	)
	if key := r.Header.Get(idempotencyKeyHeader); key != "" {
		created, replayed, err = h.Reservations.CreateOnce(r.Context(), actor, key, input)
	} else {
		created, err = h.Reservations.Create(r.Context(), actor, input)
	}
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "reservations.create: create reservation failed", err, "actor_id", actor.ID, "application_id", req.ApplicationID)
		return
	}

	if replayed {
		w.Header().Set(idempotentReplayHeader, "true")
		writeJSON(w, http.StatusOK, toReservationResponse(created))
		return
	}
	writeJSON(w, http.StatusCreated, toReservationResponse(created))
}

func (h *Handlers) GetReservation(w http.ResponseWriter, r *http.Request) {
	actor, ok := commonhandler.ActorFrom(w, r)
	if !ok {
		return
	}
	reservationID := strings.TrimSpace(chi.URLParam(r, "id"))

	result, err := h.Reservations.Get(r.Context(), actor, reservationID)
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "reservations.get: get reservation failed", err, "actor_id", actor.ID, "reservation_id", reservationID)
		return
	}

	writeJSON(w, http.StatusOK, toReservationResponse(result))
}

func (h *Handlers) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	var req updateReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w, r)
		return
	}

	actor, ok := commonhandler.ActorFrom(w, r)
	if !ok {
		return
	}
	reservationID := strings.TrimSpace(chi.URLParam(r, "id"))

	input := reservationdomain.UpdateInput{
		ID:        reservationID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Note:      req.Note,
		AdminNote: req.AdminNote,
	}
	if req.ReservedDate != nil {
		reservedDate, err := commonhandler.ParseDateRequired("reserved_date", *req.ReservedDate)
		if err != nil {
			commonhandler.WriteDomainError(w, r, h.log, "reservations.update: invalid reserved date", err, "actor_id", actor.ID, "reservation_id", reservationID)
			return
		}
		input.ReservedDate = &reservedDate
	}
	if req.Status != nil {
		status := reservationdomain.Status(strings.ToUpper(strings.TrimSpace(*req.Status)))
		input.Status = &status
	}

	updated, err := h.Reservations.Update(r.Context(), actor, input)
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "reservations.update: update reservation failed", err, "actor_id", actor.ID, "reservation_id", reservationID)
		return
	}

	writeJSON(w, http.StatusOK, toReservationResponse(updated))
}

func (h *Handlers) CancelReservation(w http.ResponseWriter, r *http.Request) {
	actor, ok := commonhandler.ActorFrom(w, r)
	if !ok {
		return
	}
	reservationID := strings.TrimSpace(chi.URLParam(r, "id"))

	cancelled, err := h.Reservations.Cancel(r.Context(), actor, reservationID)
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "reservations.cancel: cancel reservation failed", err, "actor_id", actor.ID, "reservation_id", reservationID)
		return
	}

	writeJSON(w, http.StatusOK, toReservationResponse(cancelled))
}
