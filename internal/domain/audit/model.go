package audit

import (
	"time"

	"gorm.io/datatypes"
)

type Action string

const (
	ActionApplicationCreated Action = "APPLICATION_CREATED"
	ActionApplicationUpdated Action = "APPLICATION_UPDATED"
	ActionReservationCreate  Action = "RESERVATION_CREATE"
	ActionReservationUpdate  Action = "RESERVATION_UPDATE"
	ActionReservationCancel  Action = "RESERVATION_CANCEL"
	ActionFamilyCreated      Action = "FAMILY_CREATED"
	ActionFamilyUpdated      Action = "FAMILY_UPDATED"
	ActionFamilyDeleted      Action = "FAMILY_DELETED"
)

// ActivityLog rows are append-only: nothing in the codebase updates or
// deletes them.
type ActivityLog struct {
	ID          string         `gorm:"type:uuid;primaryKey"`
	ActorID     string         `gorm:"type:uuid;not null;index"`
	Action      Action         `gorm:"type:varchar(64);not null;index"`
	Description string         `gorm:"not null"`
	Metadata    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

type Entry struct {
	ActorID     string
	Action      Action
	Description string
	Metadata    map[string]any
}
