package application

import (
	"time"

	"care-app-go/internal/domain/catalog"
	"care-app-go/internal/domain/family"
	"care-app-go/internal/domain/user"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

var AllStatuses = []Status{StatusPending, StatusApproved, StatusRejected, StatusCompleted, StatusCancelled}

func (s Status) Valid() bool {
	for _, status := range AllStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted || s == StatusCancelled
}

type Application struct {
	ID            string     `gorm:"type:uuid;primaryKey"`
	ApplicantID   string     `gorm:"type:uuid;not null;index"`
	ServiceID     string     `gorm:"type:uuid;not null;index"`
	FamilyID      *string    `gorm:"type:uuid;index"`
	Content       string     `gorm:"not null"`
	PreferredDate *time.Time `gorm:"type:date"`
	Status        Status     `gorm:"type:varchar(16);not null;index"`
	AdminNotes    *string
	RequestDate   time.Time  `gorm:"not null"`
	ProcessedAt   *time.Time
	ProcessedByID *string    `gorm:"type:uuid"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime"`

	Service   *catalog.CareService `gorm:"foreignKey:ServiceID;references:ID"`
	Family    *family.Family       `gorm:"foreignKey:FamilyID;references:ID"`
	Applicant *user.Profile        `gorm:"foreignKey:ApplicantID;references:ID"`
}

func (Application) TableName() string {
	return "applications"
}

type CreateInput struct {
	ServiceID     string
	FamilyID      string
	Content       string
	PreferredDate *time.Time
}

type TransitionInput struct {
	ApplicationID string
	Status        Status
	AdminNotes    *string
}

// StatusChange is written only if the row still has the status it was read
// with.
type StatusChange struct {
	From          Status
	To            Status
	ProcessedAt   time.Time
	ProcessedByID string
	AdminNotes    *string
}

type ListFilter struct {
	Status *Status
}

type Stats struct {
	Total    int64
	ByStatus map[Status]int64
}

type Listing struct {
	Items []Application
	Stats Stats
}
