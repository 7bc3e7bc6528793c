package gamifier

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/StarfleetGamifier/internal/api"
)

// MissionsProgress summarizes the current user's missions.
func (c *Client) MissionsProgress(ctx context.Context) ([]MissionProgressSummary, error) {
	return api.Get[[]MissionProgressSummary](ctx, c.api, "missions/progress", nil)
}

// UserMissionsProgress summarizes another user's missions.
func (c *Client) UserMissionsProgress(ctx context.Context, userID string) ([]MissionProgressSummary, error) {
	if err := required("userId", userID); err != nil {
		return nil, err
	}
	return api.Get[[]MissionProgressSummary](ctx, c.api, "missions/progress/"+esc(userID), nil)
}

// MissionDetails returns the current user's progress on one mission.
func (c *Client) MissionDetails(ctx context.Context, missionID string) (MissionDetails, error) {
	if err := required("missionId", missionID); err != nil {
		return MissionDetails{}, err
	}
	return api.Get[MissionDetails](ctx, c.api, fmt.Sprintf("missions/%s/progress", esc(missionID)), nil)
}

// UserMissionDetails returns another user's progress on one mission.
func (c *Client) UserMissionDetails(ctx context.Context, missionID, userID string) (MissionDetails, error) {
	if err := required("missionId", missionID); err != nil {
		return MissionDetails{}, err
	}
	if err := required("userId", userID); err != nil {
		return MissionDetails{}, err
	}
	return api.Get[MissionDetails](ctx, c.api, fmt.Sprintf("missions/%s/progress/%s", esc(missionID), esc(userID)), nil)
}

// Badges lists the current user's badges.
func (c *Client) Badges(ctx context.Context) ([]Badge, error) {
	return api.Get[[]Badge](ctx, c.api, "missions/badges", nil)
}

// UserBadges lists another user's badges.
func (c *Client) UserBadges(ctx context.Context, userID string) ([]Badge, error) {
	if err := required("userId", userID); err != nil {
		return nil, err
	}
	return api.Get[[]Badge](ctx, c.api, "missions/badges/"+esc(userID), nil)
}

// ActiveMissions lists missions still in progress.
func (c *Client) ActiveMissions(ctx context.Context) ([]MissionProgressSummary, error) {
	return api.Get[[]MissionProgressSummary](ctx, c.api, "missions/active", nil)
}
