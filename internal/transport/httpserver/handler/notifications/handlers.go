package notifications

import (
	"net/http"
	"strings"
	"time"

	notificationdomain "care-app-go/internal/domain/notification"
	commonhandler "care-app-go/internal/transport/httpserver/handler/common"
	"care-app-go/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	Notifications *notificationdomain.Service
	log           logger.Logger
}

func New(notifications *notificationdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Notifications: notifications,
		log:           log,
	}
}

type setReadRequest struct {
	IsRead *bool `json:"is_read"`
}

type notificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      *string   `json:"link"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type inboxResponse struct {
	Items       []notificationResponse `json:"items"`
	UnreadCount int64                  `json:"unread_count"`
}

type markAllReadResponse struct {
	Updated int64 `json:"updated"`
}

func toNotificationResponse(model *notificationdomain.Notification) notificationResponse {
	return notificationResponse{
		ID:        model.ID,
		Type:      model.Type,
		Title:     model.Title,
		Message:   model.Message,
		Link:      model.Link,
		IsRead:    model.IsRead,
		CreatedAt: model.CreatedAt,
	}
}

func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	actor, ok := commonhandler.ActorFrom(w, r)
	if !ok {
		return
	}

	inbox, err := h.Notifications.List(r.Context(), actor)
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "notifications.list: list notifications failed", err, "actor_id", actor.ID)
		return
	}

	items := make([]notificationResponse, 0, len(inbox.Items))
	for i := range inbox.Items {
		items = append(items, toNotificationResponse(&inbox.Items[i]))
	}
	commonhandler.WriteJSON(w, http.StatusOK, inboxResponse{Items: items, UnreadCount: inbox.UnreadCount})
}

func (h *Handlers) SetRead(w http.ResponseWriter, r *http.Request) {
	var req setReadRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		commonhandler.WriteInvalidJSON(w, r)
		return
	}

	actor, ok := commonhandler.ActorFrom(w, r)
	if !ok {
		return
	}
	notificationID := strings.TrimSpace(chi.URLParam(r, "id"))

	isRead := true
	if req.IsRead != nil {
		isRead = *req.IsRead
	}

	updated, err := h.Notifications.SetRead(r.Context(), actor, notificationID, isRead)
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "notifications.set_read: update notification failed", err, "actor_id", actor.ID, "notification_id", notificationID)
		return
	}

	commonhandler.WriteJSON(w, http.StatusOK, toNotificationResponse(updated))
}

func (h *Handlers) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := commonhandler.ActorFrom(w, r)
	if !ok {
		return
	}

	updated, err := h.Notifications.MarkAllRead(r.Context(), actor)
	if err != nil {
		commonhandler.WriteDomainError(w, r, h.log, "notifications.mark_all_read: update notifications failed", err, "actor_id", actor.ID)
		return
	}

	commonhandler.WriteJSON(w, http.StatusOK, markAllReadResponse{Updated: updated})
}
