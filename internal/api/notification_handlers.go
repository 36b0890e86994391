package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/baejw0111/review-server/internal/domain"
)

func (s *Server) registerNotificationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listNotifications",
		Method:      http.MethodGet,
		Path:        "/api/v1/notifications",
		Summary:     "List notifications",
		Description: "Returns the caller's notifications, newest first",
		Tags:        []string{"Notifications"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListNotifications)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUnreadCount",
		Method:      http.MethodGet,
		Path:        "/api/v1/notifications/unread-count",
		Summary:     "Get unread notification count",
		Tags:        []string{"Notifications"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetUnreadCount)

	huma.Register(s.api, huma.Operation{
		OperationID: "markNotificationRead",
		Method:      http.MethodPost,
		Path:        "/api/v1/notifications/{id}/read",
		Summary:     "Mark a notification read",
		Tags:        []string{"Notifications"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleMarkNotificationRead)

	huma.Register(s.api, huma.Operation{
		OperationID: "markAllNotificationsRead",
		Method:      http.MethodPost,
		Path:        "/api/v1/notifications/read-all",
		Summary:     "Mark all notifications read",
		Tags:        []string{"Notifications"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleMarkAllNotificationsRead)
}

// ListNotificationsInput pages the notification feed.
type ListNotificationsInput struct {
	Limit  int `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Page size"`
	Offset int `query:"offset" default:"0" minimum:"0" doc:"Page offset"`
}

// NotificationsResponse lists notifications.
type NotificationsResponse struct {
	Notifications []*domain.Notification `json:"notifications"`
}

// NotificationsOutput wraps the notification list for Huma.
type NotificationsOutput struct {
	Body NotificationsResponse
}

func (s *Server) handleListNotifications(ctx context.Context, input *ListNotificationsInput) (*NotificationsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	notifications, err := s.services.Notification.List(ctx, userID, input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}
	return &NotificationsOutput{Body: NotificationsResponse{Notifications: notifications}}, nil
}

// UnreadCountResponse carries the unread badge count.
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}

// UnreadCountOutput wraps the unread count for Huma.
type UnreadCountOutput struct {
	Body UnreadCountResponse
}

func (s *Server) handleGetUnreadCount(ctx context.Context, _ *struct{}) (*UnreadCountOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	unread, err := s.services.Notification.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UnreadCountOutput{Body: UnreadCountResponse{Unread: unread}}, nil
}

// NotificationIDInput names a notification by ID.
type NotificationIDInput struct {
	ID string `path:"id" doc:"Notification ID"`
}

func (s *Server) handleMarkNotificationRead(ctx context.Context, input *NotificationIDInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Notification.MarkRead(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "read"}}, nil
}

// MarkAllReadResponse reports how many notifications changed.
type MarkAllReadResponse struct {
	Updated int `json:"updated"`
}

// MarkAllReadOutput wraps the mark-all result for Huma.
type MarkAllReadOutput struct {
	Body MarkAllReadResponse
}

func (s *Server) handleMarkAllNotificationsRead(ctx context.Context, _ *struct{}) (*MarkAllReadOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := s.services.Notification.MarkAllRead(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &MarkAllReadOutput{Body: MarkAllReadResponse{Updated: updated}}, nil
}
