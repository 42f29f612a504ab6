package notification

import (
	"context"
	"fmt"
	"strings"

	"care-app-go/internal/domain/authz"
	"github.com/google/uuid"
)

const inboxLimit = 50

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Notify(ctx context.Context, input NotifyInput) (*Notification, error) {
	if strings.TrimSpace(input.RecipientID) == "" {
		return nil, fmt.Errorf("recipient id is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}

	item := Notification{
		ID:          uuid.NewString(),
		RecipientID: input.RecipientID,
		Type:        input.Type,
		Title:       input.Title,
		Message:     input.Message,
	}
	if link := strings.TrimSpace(input.Link); link != "" {
		item.Link = &link
	}

	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns the caller's latest notifications plus the unread total.
func (s *Service) List(ctx context.Context, actor authz.Actor) (*Inbox, error) {
	if err := authz.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByRecipient(ctx, actor.ID, inboxLimit)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	return &Inbox{Items: items, UnreadCount: unread}, nil
}

func (s *Service) SetRead(ctx context.Context, actor authz.Actor, id string, isRead bool) (*Notification, error) {
	if err := authz.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	return s.repo.SetRead(ctx, actor.ID, id, isRead)
}

// MarkAllRead flips every unread notification of the caller. The second call
// in a row changes nothing and returns 0.
func (s *Service) MarkAllRead(ctx context.Context, actor authz.Actor) (int64, error) {
	if err := authz.RequireAuthenticated(actor); err != nil {
		return 0, err
	}
	return s.repo.MarkAllRead(ctx, actor.ID)
}
