package applications

import (
	"time"

	applicationdomain "care-app-go/internal/domain/application"
	"care-app-go/internal/domain/authz"
	userdomain "care-app-go/internal/domain/user"
	commonhandler "care-app-go/internal/transport/httpserver/handler/common"
	familieshandler "care-app-go/internal/transport/httpserver/handler/families"
)

type ApplicantResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   *string    `json:"first_name"`
	LastName    *string    `json:"last_name"`
	PhoneNumber *string    `json:"phone_number"`
	Role        authz.Role `json:"role"`
}

type ApplicationResponse struct {
	ID            string                          `json:"id"`
	ApplicantID   string                          `json:"applicant_id"`
	ServiceID     string                          `json:"service_id"`
	FamilyID      *string                         `json:"family_id"`
	Content       string                          `json:"content"`
	PreferredDate *string                         `json:"preferred_date"`
	Status        applicationdomain.Status        `json:"status"`
	AdminNotes    *string                         `json:"admin_notes"`
	RequestDate   time.Time                       `json:"request_date"`
	ProcessedAt   *time.Time                      `json:"processed_at"`
	ProcessedByID *string                         `json:"processed_by_id"`
	CreatedAt     time.Time                       `json:"created_at"`
	UpdatedAt     time.Time                       `json:"updated_at"`
	Service       *commonhandler.ServiceResponse  `json:"service,omitempty"`
	Family        *familieshandler.FamilyResponse `json:"family,omitempty"`
	Applicant     *ApplicantResponse              `json:"applicant,omitempty"`
}

func ToApplicantResponse(profile *userdomain.Profile) *ApplicantResponse {
	if profile == nil {
		return nil
	}
	return &ApplicantResponse{
		ID:          profile.ID,
		Email:       profile.Email,
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		PhoneNumber: profile.PhoneNumber,
		Role:        profile.Role,
	}
}

func ToApplicationResponse(model *applicationdomain.Application) *ApplicationResponse {
	if model == nil {
		return nil
	}
	return &ApplicationResponse{
		ID:            model.ID,
		ApplicantID:   model.ApplicantID,
		ServiceID:     model.ServiceID,
		FamilyID:      model.FamilyID,
		Content:       model.Content,
		PreferredDate: commonhandler.FormatDatePtr(model.PreferredDate),
		Status:        model.Status,
		AdminNotes:    model.AdminNotes,
		RequestDate:   model.RequestDate,
		ProcessedAt:   model.ProcessedAt,
		ProcessedByID: model.ProcessedByID,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
		Service:       commonhandler.ToServiceResponse(model.Service),
		Family:        familieshandler.ToFamilyResponse(model.Family),
		Applicant:     ToApplicantResponse(model.Applicant),
	}
}

func toApplicationList(items []applicationdomain.Application) []*ApplicationResponse {
	response := make([]*ApplicationResponse, 0, len(items))
	for i := range items {
		response = append(response, ToApplicationResponse(&items[i]))
	}
	return response
}
