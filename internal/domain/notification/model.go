package notification

import "time"

const TypeApplicationStatus = "APPLICATION_STATUS"

type Notification struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	RecipientID string    `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"type:varchar(64);not null"`
	Title       string    `gorm:"not null"`
	Message     string    `gorm:"not null"`
	Link        *string   `gorm:"column:link"`
	IsRead      bool      `gorm:"not null;default:false;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
}

func (Notification) TableName() string {
	return "notifications"
}

type NotifyInput struct {
	RecipientID string
	Type        string
	Title       string
	Message     string
	Link        string
}

type Inbox struct {
	Items       []Notification
	UnreadCount int64
}
