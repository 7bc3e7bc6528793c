package gamifier

import (
	"context"
	"time"

	"github.com/GriffinCanCode/StarfleetGamifier/internal/api"
)

// EventQuery selects a user's events.
type EventQuery struct {
	UserID         string
	OrganizationID string
	Since          *time.Time
}

// AdminEventQuery filters an organization's events.
type AdminEventQuery struct {
	OrganizationID string
	EventType      EventType
	UserID         string
	Since          *time.Time
	Until          *time.Time
}

// Events pages through a user's events.
func (c *Client) Events(ctx context.Context, q EventQuery, page PageRequest) (Page[Event], error) {
	if err := required("userId", q.UserID); err != nil {
		return Page[Event]{}, err
	}
	if err := required("organizationId", q.OrganizationID); err != nil {
		return Page[Event]{}, err
	}
	params := page.with(api.Params{
		"userId":         q.UserID,
		"organizationId": q.OrganizationID,
		"since":          q.Since,
	})
	return api.Get[Page[Event]](ctx, c.api, "events", params)
}

// AdminEvents pages through an organization's events.
func (c *Client) AdminEvents(ctx context.Context, q AdminEventQuery, page PageRequest) (Page[Event], error) {
	if err := required("organizationId", q.OrganizationID); err != nil {
		return Page[Event]{}, err
	}
	params := page.with(api.Params{
		"organizationId": q.OrganizationID,
		"eventType":      optional(string(q.EventType)),
		"userId":         optional(q.UserID),
		"since":          q.Since,
		"until":          q.Until,
	})
	return api.Get[Page[Event]](ctx, c.api, "events/admin", params)
}

// Feed returns a user's events since their last login.
func (c *Client) Feed(ctx context.Context, userID, organizationID string) ([]Event, error) {
	if err := required("userId", userID); err != nil {
		return nil, err
	}
	if err := required("organizationId", organizationID); err != nil {
		return nil, err
	}
	params := api.Params{"userId": userID, "organizationId": organizationID}
	return api.Get[[]Event](ctx, c.api, "events/feed", params)
}

// EventStatistics counts an organization's events.
func (c *Client) EventStatistics(ctx context.Context, organizationID string) (EventStatistics, error) {
	if err := required("organizationId", organizationID); err != nil {
		return EventStatistics{}, err
	}
	return api.Get[EventStatistics](ctx, c.api, "events/statistics", api.Params{"organizationId": organizationID})
}
