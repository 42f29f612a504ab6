package idempotency

import "time"

type State string

const (
	StateProcessing State = "processing"
	StateCompleted  State = "completed"
)

const maxKeyLength = 128

// Record claims one (actor, scope, key) triple. The request hash pins the
// payload so a reused key with a different body is refused.
type Record struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	ActorID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_records_actor_scope_key"`
	Scope       string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_idempotency_records_actor_scope_key"`
	Key         string    `gorm:"column:idempotency_key;type:varchar(128);not null;uniqueIndex:idx_idempotency_records_actor_scope_key"`
	RequestHash string    `gorm:"type:char(64);not null"`
	Status      State     `gorm:"type:varchar(16);not null"`
	ResourceID  *string   `gorm:"type:uuid"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Record) TableName() string {
	return "idempotency_records"
}

// Claim is the outcome of Begin. Exactly one of RecordID and ResourceID is
// set: a fresh claim the caller must Complete or Release, or a replay of the
// resource created by the first request.
type Claim struct {
	RecordID   string
	ResourceID string
}

func (c Claim) Replayed() bool {
	return c.ResourceID != ""
}
