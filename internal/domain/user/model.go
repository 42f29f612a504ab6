package user

import (
	"time"

	"care-app-go/internal/domain/authz"
)

type Profile struct {
	ID          string     `gorm:"type:uuid;primaryKey"`
	ExternalID  string     `gorm:"column:external_id;not null;uniqueIndex"`
	Email       string     `gorm:"not null;index"`
	FirstName   *string    `gorm:"column:first_name"`
	LastName    *string    `gorm:"column:last_name"`
	PhoneNumber *string    `gorm:"column:phone_number"`
	Role        authz.Role `gorm:"type:varchar(16);not null;default:'USER'"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "user_profiles"
}

func (p Profile) Actor() authz.Actor {
	return authz.Actor{
		ID:         p.ID,
		ExternalID: p.ExternalID,
		Email:      p.Email,
		Role:       p.Role,
	}
}

// Identity is what the external auth provider tells us about the caller.
type Identity struct {
	ExternalID string
	Email      string
	FirstName  string
	LastName   string
}
