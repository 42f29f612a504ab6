package catalog

import "time"

type Category string

const (
	CategoryEmergencyCare Category = "EMERGENCY_CARE"
	CategoryHomeTutoring  Category = "HOME_TUTORING"
	CategoryCounseling    Category = "COUNSELING"
	CategoryTravel        Category = "TRAVEL"
	CategoryStaffDispatch Category = "STAFF_DISPATCH"
)

// CareService is one entry of the support-service catalog. Rows are seeded by
// migration and never written by the API.
type CareService struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	Category    Category  `gorm:"type:varchar(32);not null"`
	Description string    `gorm:"not null"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (CareService) TableName() string {
	return "services"
}
