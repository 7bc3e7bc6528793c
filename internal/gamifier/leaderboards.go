package gamifier

import (
	"context"

	"github.com/GriffinCanCode/StarfleetGamifier/internal/api"
)

// DepartmentQuery selects a department leaderboard.
type DepartmentQuery struct {
	OrganizationID string
	Department     string
	// Period defaults to all-time on the server.
	Period Period
	// YearMonth is YYYY-MM and only applies to the monthly period.
	YearMonth string
}

// MonthlyLeaderboard ranks points earned in one month (current month when
// yearMonth is empty).
func (c *Client) MonthlyLeaderboard(ctx context.Context, organizationID, yearMonth string, page PageRequest) (Page[LeaderboardEntry], error) {
	if err := required("organizationId", organizationID); err != nil {
		return Page[LeaderboardEntry]{}, err
	}
	params := page.with(api.Params{
		"organizationId": organizationID,
		"yearMonth":      optional(yearMonth),
	})
	return api.Get[Page[LeaderboardEntry]](ctx, c.api, "leaderboards/monthly", params)
}

// AllTimeLeaderboard ranks total points.
func (c *Client) AllTimeLeaderboard(ctx context.Context, organizationID string, page PageRequest) (Page[LeaderboardEntry], error) {
	if err := required("organizationId", organizationID); err != nil {
		return Page[LeaderboardEntry]{}, err
	}
	params := page.with(api.Params{"organizationId": organizationID})
	return api.Get[Page[LeaderboardEntry]](ctx, c.api, "leaderboards/all-time", params)
}

// DepartmentLeaderboard ranks users within one department.
func (c *Client) DepartmentLeaderboard(ctx context.Context, q DepartmentQuery, page PageRequest) (Page[LeaderboardEntry], error) {
	if err := required("organizationId", q.OrganizationID); err != nil {
		return Page[LeaderboardEntry]{}, err
	}
	if err := required("department", q.Department); err != nil {
		return Page[LeaderboardEntry]{}, err
	}
	params := page.with(api.Params{
		"organizationId": q.OrganizationID,
		"department":     q.Department,
		"period":         optional(string(q.Period)),
		"yearMonth":      optional(q.YearMonth),
	})
	return api.Get[Page[LeaderboardEntry]](ctx, c.api, "leaderboards/department", params)
}

// UserPosition finds a user on a leaderboard.
func (c *Client) UserPosition(ctx context.Context, organizationID, userID string, period Period, yearMonth string) (UserPosition, error) {
	if err := required("organizationId", organizationID); err != nil {
		return UserPosition{}, err
	}
	if err := required("userId", userID); err != nil {
		return UserPosition{}, err
	}
	params := api.Params{
		"organizationId": organizationID,
		"userId":         userID,
		"period":         optional(string(period)),
		"yearMonth":      optional(yearMonth),
	}
	return api.Get[UserPosition](ctx, c.api, "leaderboards/user-position", params)
}

// LeaderboardStatistics aggregates an organization's leaderboard.
func (c *Client) LeaderboardStatistics(ctx context.Context, organizationID string) (LeaderboardStatistics, error) {
	if err := required("organizationId", organizationID); err != nil {
		return LeaderboardStatistics{}, err
	}
	return api.Get[LeaderboardStatistics](ctx, c.api, "leaderboards/statistics", api.Params{"organizationId": organizationID})
}

// RankingsLeaderboard lists the top users by rank. A zero limit uses the
// server default of 50.
func (c *Client) RankingsLeaderboard(ctx context.Context, organizationID string, limit int) ([]UserRankSummary, error) {
	if err := required("organizationId", organizationID); err != nil {
		return nil, err
	}
	params := api.Params{"organizationId": organizationID, "limit": optionalInt(limit)}
	return api.Get[[]UserRankSummary](ctx, c.api, "leaderboards/rankings", params)
}

// RankStatistics shows the distribution of users over ranks.
func (c *Client) RankStatistics(ctx context.Context, organizationID string) (RankStatistics, error) {
	if err := required("organizationId", organizationID); err != nil {
		return RankStatistics{}, err
	}
	return api.Get[RankStatistics](ctx, c.api, "leaderboards/rank-statistics", api.Params{"organizationId": organizationID})
}

// LeaderboardPreview returns the top entries shown on the dashboard.
func (c *Client) LeaderboardPreview(ctx context.Context, organizationID string, limit int) ([]LeaderboardEntry, error) {
	params := api.Params{"organizationId": optional(organizationID), "limit": optionalInt(limit)}
	return api.Get[[]LeaderboardEntry](ctx, c.api, "leaderboards/preview", params)
}
