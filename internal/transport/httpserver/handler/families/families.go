package families

import (
	"net/http"
	"strings"
	"time"

	familydomain "care-app-go/internal/domain/family"
	commonhandler "care-app-go/internal/transport/httpserver/handler/common"
	"github.com/go-chi/chi/v5"
)

type createFamilyRequest struct {
	FamilyName       string `json:"family_name"`
	MemberCount      int    `json:"member_count"`
	DisabilityType   string `json:"disability_type"`
	DisabilityLevel  string `json:"disability_level"`
	SpecialNotes     string `json:"special_notes"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergency_contact"`
}

type updateFamilyRequest struct {
	FamilyName       *string `json:"family_name"`
	MemberCount      *int    `json:"member_count"`
	DisabilityType   *string `json:"disability_type"`
	DisabilityLevel  *string `json:"disability_level"`
	SpecialNotes     *string `json:"special_notes"`
	Address          *string `json:"address"`
	EmergencyContact *string `json:"emergency_contact"`
}

type FamilyResponse struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id"`
	FamilyName       string    `json:"family_name"`
	MemberCount      int       `json:"member_count"`
	DisabilityType   *string   `json:"disability_type"`
	DisabilityLevel  *string   `json:"disability_level"`
	SpecialNotes     *string   `json:"special_notes"`
	Address          *string   `json:"address"`
	EmergencyContact *string   `json:"emergency_contact"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func ToFamilyResponse(model *familydomain.Family) *FamilyResponse {
	if model == nil {
		return nil
	}
	return &FamilyResponse{
		ID:               model.ID,
		OwnerID:          model.OwnerID,
		FamilyName:       model.FamilyName,
		MemberCount:      model.MemberCount,
		DisabilityType:   model.DisabilityType,
		DisabilityLevel:  model.DisabilityLevel,
		SpecialNotes:     model.SpecialNotes,
		Address:          model.Address,
		EmergencyContact: model.EmergencyContact,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

func (h *Handlers) ListFamilies(w http.ResponseWriter, r *http.Request) {
	actor, ok := commonhandler.ActorFrom(w, r)
	if !ok {
		return
	}

	families, err := h.Families.List(r.Context(), actor)
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "families.list: list families failed", err, "actor_id", actor.ID)
		return
	}

	response := make([]*FamilyResponse, 0, len(families))
	for i := range families {
		response = append(response, ToFamilyResponse(&families[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateFamily(w http.ResponseWriter, r *http.Request) {
	var req createFamilyRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w, r)
		return
	}

	actor, ok := commonhandler.ActorFrom(w, r)
	if !ok {
		return
	}

	created, err := h.Families.Create(r.Context(), actor, familydomain.CreateInput{
		FamilyName:       req.FamilyName,
		MemberCount:      req.MemberCount,
		DisabilityType:   req.DisabilityType,
		DisabilityLevel:  req.DisabilityLevel,
		SpecialNotes:     req.SpecialNotes,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
	})
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "families.create: create family failed", err, "actor_id", actor.ID)
		return
	}

	writeJSON(w, http.StatusCreated, ToFamilyResponse(created))
}

func (h *Handlers) GetFamily(w http.ResponseWriter, r *http.Request) {
	actor, ok := commonhandler.ActorFrom(w, r)
	if !ok {
		return
	}
	familyID := strings.TrimSpace(chi.URLParam(r, "id"))

	result, err := h.Families.Get(r.Context(), actor, familyID)
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "families.get: get family failed", err, "actor_id", actor.ID, "family_id", familyID)
		return
	}

	writeJSON(w, http.StatusOK, ToFamilyResponse(result))
}

func (h *Handlers) UpdateFamily(w http.ResponseWriter, r *http.Request) {
	var req updateFamilyRequest
	if err := decodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w, r)
		return
	}

	actor, ok := commonhandler.ActorFrom(w, r)
	if !ok {
		return
	}
	familyID := strings.TrimSpace(chi.URLParam(r, "id"))

	updated, err := h.Families.Update(r.Context(), actor, familyID, familydomain.UpdateInput{
		FamilyName:       req.FamilyName,
		MemberCount:      req.MemberCount,
		DisabilityType:   req.DisabilityType,
		DisabilityLevel:  req.DisabilityLevel,
		SpecialNotes:     req.SpecialNotes,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
	})
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "families.update: update family failed", err, "actor_id", actor.ID, "family_id", familyID)
		return
	}

	writeJSON(w, http.StatusOK, ToFamilyResponse(updated))
}

func (h *Handlers) DeleteFamily(w http.ResponseWriter, r *http.Request) {
	actor, ok := commonhandler.ActorFrom(w, r)
	if !ok {
		return
	}
	familyID := strings.TrimSpace(chi.URLParam(r, "id"))

	if err := h.Families.Delete(r.Context(), actor, familyID); err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "families.delete: delete family failed", err, "actor_id", actor.ID, "family_id", familyID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
