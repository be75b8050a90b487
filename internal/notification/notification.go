// Package notification serves the signed-in user's notification feed.
package notification

import (
	"context"

	"backoffice-console/internal/apiclient"
	"backoffice-console/internal/logger"
	"backoffice-console/internal/session"

	"go.uber.org/zap"
)

type Notification struct {
	ID         string `json:"id,omitempty"`
	ReceiverID string `json:"receiverId,omitempty"`
	Message    string `json:"message"`
	CreatedAt  string `json:"createdAt"`
}

type Service interface {
	List(ctx context.Context, s *session.Session) ([]Notification, error)
}

type service struct {
	api *apiclient.Client
}

func NewService(api *apiclient.Client) Service {
	return &service{api: api}
}

// List returns the notifications addressed to the session's user.
func (svc *service) List(ctx context.Context, s *session.Session) ([]Notification, error) {
	notifications := []Notification{}
	if err := svc.api.Get(ctx, s, apiclient.Path("Notifications/%s", s.User.ID), &notifications); err != nil {
		logger.FromCtx(ctx).Error("failed to fetch notifications",
			zap.String("receiver_id", s.User.ID),
			zap.Error(err),
		)
		return nil, err
	}
	return notifications, nil
}
