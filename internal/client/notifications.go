package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/unclebandit/hudey-console/internal/model"
)

func (c *Client) ListNotifications(ctx context.Context) []model.Notification {
	notifications := []model.Notification{}
	if !c.soft(ctx, "/api/notifications", "fetch notifications", &notifications) {
		return []model.Notification{}
	}
	return notifications
}

func (c *Client) UnreadNotificationCount(ctx context.Context) int {
	var out model.UnreadCount
	if !c.soft(ctx, "/api/notifications/unread-count", "fetch unread count", &out) {
		return 0
	}
	return out.Count
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodPut, "/api/notifications/"+url.PathEscape(id)+"/read", nil, "mark notification read", nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.call(ctx, http.MethodPut, "/api/notifications/read-all", nil, "mark notifications read", nil)
}
