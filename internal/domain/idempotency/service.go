package idempotency

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"care-app-go/internal/domain/apperr"
	"github.com/google/uuid"
)

// DefaultStaleAfter is how long a processing claim may go untouched before
// another request with the same key may take it over.
const DefaultStaleAfter = 5 * time.Minute

type Service struct {
	repo       Repository
	staleAfter time.Duration
	now        func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, staleAfter: DefaultStaleAfter, now: time.Now}
}

func NormalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || len(key) > maxKeyLength {
		return "", apperr.Invalid("idempotency_key", "must be 1 to 128 characters")
	}
	return key, nil
}

// Fingerprint hashes the JSON encoding of payload.
func Fingerprint(payload any) (string, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:]), nil
}

func (s *Service) Begin(ctx context.Context, actorID, scope, key, requestHash string) (Claim, error) {
	record := &Record{
		ID:          uuid.NewString(),
		ActorID:     actorID,
		Scope:       scope,
		Key:         key,
		RequestHash: requestHash,
		Status:      StateProcessing,
	}

	created, existing, err := s.repo.Reserve(ctx, record)
	if err != nil {
		return Claim{}, err
	}
	if created {
		return Claim{RecordID: record.ID}, nil
	}
	if existing == nil {
		return Claim{}, ErrRequestInProgress
	}
	if existing.RequestHash != requestHash {
		return Claim{}, ErrPayloadMismatch
	}
	if existing.Status == StateCompleted && existing.ResourceID != nil {
		return Claim{ResourceID: *existing.ResourceID}, nil
	}

	now := s.now().UTC()
	cutoff := now.Add(-s.staleAfter)
	if existing.Status == StateProcessing && existing.UpdatedAt.Before(cutoff) {
		taken, err := s.repo.Takeover(ctx, existing.ID, cutoff, now)
		if err != nil {
			return Claim{}, err
		}
		if taken {
			return Claim{RecordID: existing.ID}, nil
		}
	}
	return Claim{}, ErrRequestInProgress
}

func (s *Service) Complete(ctx context.Context, claim Claim, resourceID string) error {
	return s.repo.Complete(ctx, claim.RecordID, resourceID)
}

// Release drops a claim whose request failed so the key can be retried.
func (s *Service) Release(ctx context.Context, claim Claim) error {
	return s.repo.Release(ctx, claim.RecordID)
}
