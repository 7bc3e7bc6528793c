package gamifier

import (
	"context"
	"fmt"
	"net/url"

	"github.com/GriffinCanCode/StarfleetGamifier/internal/api"
)

// Client exposes the backend endpoints as typed calls.
type Client struct {
	api *api.Client
}

// NewClient wraps an HTTP client.
func NewClient(c *api.Client) *Client {
	return &Client{api: c}
}

// API returns the underlying HTTP client.
func (c *Client) API() *api.Client {
	return c.api
}

// PageRequest selects a page. Zero fields are left to server defaults.
type PageRequest struct {
	Page int
	Size int
	Sort string
}

// Params returns the Spring pageable query parameters.
func (p PageRequest) Params() api.Params {
	return api.Params{
		"page": optionalInt(p.Page),
		"size": optionalInt(p.Size),
		"sort": optional(p.Sort),
	}
}

func (p PageRequest) with(extra api.Params) api.Params {
	params := p.Params()
	for k, v := range extra {
		params[k] = v
	}
	return params
}

// optional maps "" to nil so the parameter is dropped.
func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func optionalInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

func esc(id string) string {
	return url.PathEscape(id)
}

func required(field, value string) error {
	if value == "" {
		return fmt.Errorf("gamifier: %s is required", field)
	}
	return nil
}

// Users

// CurrentUser loads the signed-in user's dashboard.
func (c *Client) CurrentUser(ctx context.Context) (Dashboard, error) {
	return api.Get[Dashboard](ctx, c.api, "users/current", nil)
}

// Me loads the dashboard of the authenticated user.
func (c *Client) Me(ctx context.Context) (Dashboard, error) {
	return api.Get[Dashboard](ctx, c.api, "users/me", nil)
}

// Dashboard loads another user's dashboard.
func (c *Client) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	if err := required("userId", userID); err != nil {
		return Dashboard{}, err
	}
	return api.Get[Dashboard](ctx, c.api, "users/dashboard", api.Params{"userId": userID})
}

// User fetches a user record.
func (c *Client) User(ctx context.Context, userID string) (User, error) {
	if err := required("userId", userID); err != nil {
		return User{}, err
	}
	return api.Get[User](ctx, c.api, "users/"+esc(userID), nil)
}

// UpdateUser edits a user's profile.
func (c *Client) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (User, error) {
	if err := required("userId", userID); err != nil {
		return User{}, err
	}
	return api.Put[User](ctx, c.api, "users/"+esc(userID), req)
}

// ListUsers pages through users, optionally within one organization.
func (c *Client) ListUsers(ctx context.Context, organizationID string, page PageRequest) (Page[User], error) {
	params := page.with(api.Params{"organizationId": optional(organizationID)})
	return api.Get[Page[User]](ctx, c.api, "users", params)
}

// ImportUsers uploads a CSV of users into an organization.
func (c *Client) ImportUsers(ctx context.Context, organizationID string, file *api.File) (ImportResult, error) {
	if err := required("organizationId", organizationID); err != nil {
		return ImportResult{}, err
	}
	return api.Upload[ImportResult](ctx, c.api, "users", file, map[string]any{"organizationId": organizationID})
}

// MissionProgress returns a user's progress on one mission.
func (c *Client) MissionProgress(ctx context.Context, userID, missionID string) (MissionProgressResponse, error) {
	if err := required("userId", userID); err != nil {
		return MissionProgressResponse{}, err
	}
	if err := required("missionId", missionID); err != nil {
		return MissionProgressResponse{}, err
	}
	return api.Get[MissionProgressResponse](ctx, c.api, fmt.Sprintf("users/%s/missions/%s", esc(userID), esc(missionID)), nil)
}

// Rankings

// UserRank returns a user's current and next rank.
func (c *Client) UserRank(ctx context.Context, userID string) (UserRank, error) {
	if err := required("userId", userID); err != nil {
		return UserRank{}, err
	}
	return api.Get[UserRank](ctx, c.api, "rankings/user/"+esc(userID), nil)
}

// AvailableRanks lists an organization's ranks.
func (c *Client) AvailableRanks(ctx context.Context, organizationID string) ([]RankInfo, error) {
	if err := required("organizationId", organizationID); err != nil {
		return nil, err
	}
	return api.Get[[]RankInfo](ctx, c.api, fmt.Sprintf("rankings/organization/%s/ranks", esc(organizationID)), nil)
}

// Dashboard panels

// UserStats loads the dashboard headline numbers.
func (c *Client) UserStats(ctx context.Context) (UserStats, error) {
	return api.Get[UserStats](ctx, c.api, "dashboard/stats", nil)
}

// RecentActivity loads the recent activity panel.
func (c *Client) RecentActivity(ctx context.Context) ([]Activity, error) {
	return api.Get[[]Activity](ctx, c.api, "activity/recent", nil)
}
