package idempotency

import (
	"context"
	"time"
)

type Repository interface {
	// Reserve inserts record unless the triple is already claimed, in which
	// case it returns the existing row.
	Reserve(ctx context.Context, record *Record) (bool, *Record, error)
	// Takeover re-arms a processing record last touched before staleBefore.
	// It reports false when another request got there first.
	Takeover(ctx context.Context, id string, staleBefore, now time.Time) (bool, error)
	Complete(ctx context.Context, id, resourceID string) error
	Release(ctx context.Context, id string) error
}
