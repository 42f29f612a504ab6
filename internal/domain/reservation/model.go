package reservation

import (
	"time"

	"care-app-go/internal/domain/application"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

const AdminCancelNote = "admin cancelled"

// Reservation is an appointment booked against an approved application.
// ReservedDate is a calendar date stored at UTC midnight; StartTime and
// EndTime are "HH:MM" wall-clock strings.
type Reservation struct {
	ID            string    `gorm:"type:uuid;primaryKey"`
	ApplicationID string    `gorm:"type:uuid;not null;index"`
	ReservedDate  time.Time `gorm:"type:date;not null;index"`
	StartTime     string    `gorm:"type:varchar(5);not null"`
	EndTime       *string   `gorm:"type:varchar(5)"`
	Note          *string   `gorm:"column:note"`
	Status        Status    `gorm:"type:varchar(16);not null;index"`
	AdminNote     *string   `gorm:"column:admin_note"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`

	Application *application.Application `gorm:"foreignKey:ApplicationID;references:ID"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// OwnerID is the applicant of the underlying application.
func (r *Reservation) OwnerID() string {
	if r.Application == nil {
		return ""
	}
	return r.Application.ApplicantID
}

type CreateInput struct {
	ApplicationID string    `json:"applicationId"`
	ReservedDate  time.Time `json:"reservedDate"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime,omitempty"`
	Note          string    `json:"note,omitempty"`
}

// UpdateInput leaves nil fields untouched. Status and AdminNote are admin
// only; a pointer to an empty EndTime or Note clears it.
type UpdateInput struct {
	ID           string
	ReservedDate *time.Time
	StartTime    *string
	EndTime      *string
	Note         *string
	Status       *Status
	AdminNote    *string
}

func (in UpdateInput) empty() bool {
	return in.ReservedDate == nil &&
		in.StartTime == nil &&
		in.EndTime == nil &&
		in.Note == nil &&
		in.Status == nil &&
		in.AdminNote == nil
}

func (in UpdateInput) touchesSchedule() bool {
	return in.ReservedDate != nil || in.StartTime != nil || in.EndTime != nil
}

type ListFilter struct {
	// ApplicantID restricts the list to reservations of one applicant. Empty
	// means all reservations.
	ApplicantID string
}
