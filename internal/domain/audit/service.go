package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"care-app-go/internal/domain/authz"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Counter is bumped once per recorded action.
type Counter interface {
	IncActivity(action string)
}

type noopCounter struct{}

func (noopCounter) IncActivity(string) {}

type Service struct {
	repo    Repository
	counter Counter
}

func NewService(repo Repository, counter Counter) *Service {
	if counter == nil {
		counter = noopCounter{}
	}
	return &Service{repo: repo, counter: counter}
}

func (s *Service) Record(ctx context.Context, entry Entry) error {
	if strings.TrimSpace(entry.ActorID) == "" {
		return fmt.Errorf("actor id is required")
	}
	if entry.Action == "" {
		return fmt.Errorf("action is required")
	}

	metadata := entry.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	encoded, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	row := ActivityLog{
		ID:          uuid.NewString(),
		ActorID:     entry.ActorID,
		Action:      entry.Action,
		Description: entry.Description,
		Metadata:    datatypes.JSON(encoded),
	}
	if err := s.repo.Append(ctx, &row); err != nil {
		return err
	}

	s.counter.IncActivity(string(entry.Action))
	return nil
}

func (s *Service) ListRecent(ctx context.Context, actor authz.Actor, limit int) ([]ActivityLog, error) {
	if err := authz.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
