package gamifier

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/StarfleetGamifier/internal/api"
)

func orgPath(organizationID string, parts ...string) string {
	p := "organization/" + esc(organizationID)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

// CreateOrganization registers an organization.
func (c *Client) CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (Organization, error) {
	return api.Post[Organization](ctx, c.api, "organization", req)
}

// Organization fetches one organization.
func (c *Client) Organization(ctx context.Context, organizationID string) (Organization, error) {
	if err := required("organizationId", organizationID); err != nil {
		return Organization{}, err
	}
	return api.Get[Organization](ctx, c.api, orgPath(organizationID), nil)
}

// Organizations lists every organization.
func (c *Client) Organizations(ctx context.Context) ([]Organization, error) {
	return api.Get[[]Organization](ctx, c.api, "organization", nil)
}

// UpdateOrganization edits an organization.
func (c *Client) UpdateOrganization(ctx context.Context, organizationID string, req UpdateOrganizationRequest) (Organization, error) {
	if err := required("organizationId", organizationID); err != nil {
		return Organization{}, err
	}
	return api.Put[Organization](ctx, c.api, orgPath(organizationID), req)
}

// DeleteOrganization removes an organization.
func (c *Client) DeleteOrganization(ctx context.Context, organizationID string) error {
	if err := required("organizationId", organizationID); err != nil {
		return err
	}
	return c.api.Delete(ctx, orgPath(organizationID), nil)
}

// catalogue is the CRUD shape shared by action types, mission types and ranks.
type catalogue[T any] struct {
	client *Client
	kind   string
}

func (k catalogue[T]) create(ctx context.Context, organizationID string, item T) (T, error) {
	if err := required("organizationId", organizationID); err != nil {
		var zero T
		return zero, err
	}
	return api.Post[T](ctx, k.client.api, orgPath(organizationID, k.kind), item)
}

func (k catalogue[T]) list(ctx context.Context, organizationID string) ([]T, error) {
	if err := required("organizationId", organizationID); err != nil {
		return nil, err
	}
	return api.Get[[]T](ctx, k.client.api, orgPath(organizationID, k.kind), nil)
}

func (k catalogue[T]) update(ctx context.Context, organizationID, id string, item T) (T, error) {
	var zero T
	if err := required("organizationId", organizationID); err != nil {
		return zero, err
	}
	if err := required(fmt.Sprintf("%s id", k.kind), id); err != nil {
		return zero, err
	}
	return api.Put[T](ctx, k.client.api, orgPath(organizationID, k.kind, esc(id)), item)
}

func (k catalogue[T]) delete(ctx context.Context, organizationID, id string) error {
	if err := required("organizationId", organizationID); err != nil {
		return err
	}
	if err := required(fmt.Sprintf("%s id", k.kind), id); err != nil {
		return err
	}
	return k.client.api.Delete(ctx, orgPath(organizationID, k.kind, esc(id)), nil)
}

func (c *Client) actionTypes() catalogue[ActionType] {
	return catalogue[ActionType]{client: c, kind: "action-types"}
}

func (c *Client) missionTypes() catalogue[MissionType] {
	return catalogue[MissionType]{client: c, kind: "mission-types"}
}

func (c *Client) ranks() catalogue[RankConfiguration] {
	return catalogue[RankConfiguration]{client: c, kind: "ranks"}
}

// CreateActionType adds an action type.
func (c *Client) CreateActionType(ctx context.Context, organizationID string, t ActionType) (ActionType, error) {
	return c.actionTypes().create(ctx, organizationID, t)
}

// ActionTypes lists action types.
func (c *Client) ActionTypes(ctx context.Context, organizationID string) ([]ActionType, error) {
	return c.actionTypes().list(ctx, organizationID)
}

// UpdateActionType edits an action type.
func (c *Client) UpdateActionType(ctx context.Context, organizationID, actionTypeID string, t ActionType) (ActionType, error) {
	return c.actionTypes().update(ctx, organizationID, actionTypeID, t)
}

// DeleteActionType removes an action type.
func (c *Client) DeleteActionType(ctx context.Context, organizationID, actionTypeID string) error {
	return c.actionTypes().delete(ctx, organizationID, actionTypeID)
}

// CreateMissionType adds a mission type.
func (c *Client) CreateMissionType(ctx context.Context, organizationID string, t MissionType) (MissionType, error) {
	return c.missionTypes().create(ctx, organizationID, t)
}

// MissionTypes lists mission types.
func (c *Client) MissionTypes(ctx context.Context, organizationID string) ([]MissionType, error) {
	return c.missionTypes().list(ctx, organizationID)
}

// UpdateMissionType edits a mission type.
func (c *Client) UpdateMissionType(ctx context.Context, organizationID, missionTypeID string, t MissionType) (MissionType, error) {
	return c.missionTypes().update(ctx, organizationID, missionTypeID, t)
}

// DeleteMissionType removes a mission type.
func (c *Client) DeleteMissionType(ctx context.Context, organizationID, missionTypeID string) error {
	return c.missionTypes().delete(ctx, organizationID, missionTypeID)
}

// CreateRank adds a rank.
func (c *Client) CreateRank(ctx context.Context, organizationID string, r RankConfiguration) (RankConfiguration, error) {
	return c.ranks().create(ctx, organizationID, r)
}

// Ranks lists rank configurations.
func (c *Client) Ranks(ctx context.Context, organizationID string) ([]RankConfiguration, error) {
	return c.ranks().list(ctx, organizationID)
}

// UpdateRank edits a rank.
func (c *Client) UpdateRank(ctx context.Context, organizationID, rankID string, r RankConfiguration) (RankConfiguration, error) {
	return c.ranks().update(ctx, organizationID, rankID, r)
}

// DeleteRank removes a rank.
func (c *Client) DeleteRank(ctx context.Context, organizationID, rankID string) error {
	return c.ranks().delete(ctx, organizationID, rankID)
}
