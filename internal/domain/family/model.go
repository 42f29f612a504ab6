package family

import "time"

// Family is a care-recipient household registered by one profile.
type Family struct {
	ID               string    `gorm:"type:uuid;primaryKey"`
	OwnerID          string    `gorm:"type:uuid;not null;index"`
	FamilyName       string    `gorm:"not null"`
	MemberCount      int       `gorm:"not null"`
	DisabilityType   *string   `gorm:"column:disability_type"`
	DisabilityLevel  *string   `gorm:"column:disability_level"`
	SpecialNotes     *string   `gorm:"column:special_notes"`
	Address          *string   `gorm:"column:address"`
	EmergencyContact *string   `gorm:"column:emergency_contact"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (Family) TableName() string {
	return "families"
}

type CreateInput struct {
	FamilyName       string
	MemberCount      int
	DisabilityType   string
	DisabilityLevel  string
	SpecialNotes     string
	Address          string
	EmergencyContact string
}

// UpdateInput leaves a field unchanged when its pointer is nil. A pointer to
// an empty string clears an optional field.
type UpdateInput struct {
	FamilyName       *string
	MemberCount      *int
	DisabilityType   *string
	DisabilityLevel  *string
	SpecialNotes     *string
	Address          *string
	EmergencyContact *string
}

func (in UpdateInput) empty() bool {
	return in.FamilyName == nil &&
		in.MemberCount == nil &&
		in.DisabilityType == nil &&
		in.DisabilityLevel == nil &&
		in.SpecialNotes == nil &&
		in.Address == nil &&
		in.EmergencyContact == nil
}
