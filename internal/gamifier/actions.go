package gamifier

import (
	"context"

	"github.com/GriffinCanCode/StarfleetGamifier/internal/api"
)

// CaptureAction logs an action for approval.
func (c *Client) CaptureAction(ctx context.Context, req CaptureActionRequest) (Action, error) {
	if err := required("organizationId", req.OrganizationID); err != nil {
		return Action{}, err
	}
	if err := required("userId", req.UserID); err != nil {
		return Action{}, err
	}
	if err := required("actionTypeId", req.ActionTypeID); err != nil {
		return Action{}, err
	}
	return api.Post[Action](ctx, c.api, "actions", req)
}

// ActionHistory pages through a user's actions.
func (c *Client) ActionHistory(ctx context.Context, userID string, page PageRequest) (Page[Action], error) {
	if err := required("userId", userID); err != nil {
		return Page[Action]{}, err
	}
	return api.Get[Page[Action]](ctx, c.api, "actions/history/"+esc(userID), page.Params())
}

// ImportActions uploads a CSV of actions into an organization.
func (c *Client) ImportActions(ctx context.Context, organizationID string, file *api.File) (ImportResult, error) {
	if err := required("organizationId", organizationID); err != nil {
		return ImportResult{}, err
	}
	return api.Upload[ImportResult](ctx, c.api, "actions/import", file, map[string]any{"organizationId": organizationID})
}

// PendingApprovals pages through actions awaiting a manager.
func (c *Client) PendingApprovals(ctx context.Context, managerID string, page PageRequest) (Page[Action], error) {
	if err := required("managerId", managerID); err != nil {
		return Page[Action]{}, err
	}
	return api.Get[Page[Action]](ctx, c.api, "actions/pending/"+esc(managerID), page.Params())
}

// ApproveAction approves a pending action.
func (c *Client) ApproveAction(ctx context.Context, actionID string) (Action, error) {
	if err := required("actionId", actionID); err != nil {
		return Action{}, err
	}
	return api.Put[Action](ctx, c.api, "actions/"+esc(actionID)+"/approve", nil)
}

// RejectAction rejects a pending action with a reason.
func (c *Client) RejectAction(ctx context.Context, actionID, reason string) (Action, error) {
	if err := required("actionId", actionID); err != nil {
		return Action{}, err
	}
	if err := required("rejectionReason", reason); err != nil {
		return Action{}, err
	}
	return api.Put[Action](ctx, c.api, "actions/"+esc(actionID)+"/reject", RejectActionRequest{RejectionReason: reason})
}
