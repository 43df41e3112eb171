package services

import (
	"context"

	"github.com/anonto42/shayari-hub/backend/internal/auth"
	"github.com/anonto42/shayari-hub/backend/internal/models"
	"github.com/anonto42/shayari-hub/backend/internal/repositories"
)

type NotificationService interface {
	// ListNotifications returns the newest notifications and then marks all
	// of them read. Items carry the read state observed before marking.
	ListNotifications(ctx context.Context, viewer *auth.Identity) ([]models.NotificationView, error)
	UnreadCount(ctx context.Context, viewer *auth.Identity) (int64, error)
}

type notificationService struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	shayaris      repositories.ShayariRepository
}

func NewNotificationService(
	notifications repositories.NotificationRepository,
	users repositories.UserRepository,
	shayaris repositories.ShayariRepository,
) NotificationService {
	return &notificationService{notifications: notifications, users: users, shayaris: shayaris}
}

func (s *notificationService) ListNotifications(ctx context.Context, viewer *auth.Identity) ([]models.NotificationView, error) {
	if viewer == nil {
		return nil, errNotSignedIn
	}

	notifications, err := s.notifications.GetByRecipientID(ctx, viewer.ID, ListingLimit)
	if err != nil {
		return nil, storeError("list notifications", err)
	}

	actors, err := compactUsers(ctx, s.users, userIDsOf(notifications, func(n models.Notification) uint { return n.ActorID }))
	if err != nil {
		return nil, err
	}
	snippets, err := s.snippets(ctx, notifications)
	if err != nil {
		return nil, err
	}

	views := make([]models.NotificationView, 0, len(notifications))
	for _, n := range notifications {
		view := models.NotificationView{
			ID:        n.ID,
			Type:      n.Type,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
			Actor:     authorOrID(actors, n.ActorID),
		}
		if n.ShayariID != nil {
			if snippet, ok := snippets[*n.ShayariID]; ok {
				view.Shayari = &snippet
			}
		}
		views = append(views, view)
	}

	if err := s.notifications.MarkAllAsRead(ctx, viewer.ID); err != nil {
		return nil, storeError("mark notifications read", err)
	}
	return views, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, viewer *auth.Identity) (int64, error) {
	if viewer == nil {
		return 0, errNotSignedIn
	}
	count, err := s.notifications.GetUnreadCount(ctx, viewer.ID)
	if err != nil {
		return 0, storeError("count unread notifications", err)
	}
	return count, nil
}

// snippets loads the shayaris referenced by notifications that still exist.
func (s *notificationService) snippets(ctx context.Context, notifications []models.Notification) (map[string]models.ShayariSnippet, error) {
	var ids []string
	for _, n := range notifications {
		if n.ShayariID != nil {
			ids = append(ids, *n.ShayariID)
		}
	}
	out := make(map[string]models.ShayariSnippet, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	shayaris, err := s.shayaris.GetShayarisByIDs(ctx, ids)
	if err != nil {
		return nil, storeError("load notification shayaris", err)
	}
	for _, sh := range shayaris {
		id := sh.ID.Hex()
		out[id] = models.ShayariSnippet{ID: id, Content: sh.Content}
	}
	return out, nil
}
