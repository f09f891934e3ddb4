package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"learnhub_client/internal/model"
)

// User-management calls. All of them require an account that may manage
// the target; the server answers 403 otherwise.

func (c *Client) ListUsers(ctx context.Context) ([]model.UserRecord, error) {
	var out []model.UserRecord
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type createGuestRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	InstitutionID string `json:"institutionId"`
}

func (c *Client) CreateGuest(ctx context.Context, email, password, institutionID string) (*model.UserRecord, error) {
	var out model.UserRecord
	body := createGuestRequest{Email: email, Password: password, InstitutionID: institutionID}
	if err := c.do(ctx, http.MethodPost, "/api/admin/users/guests", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type changeRoleRequest struct {
	Role model.Role `json:"role"`
}

func (c *Client) ChangeRole(ctx context.Context, userID string, role model.Role) (*model.UserRecord, error) {
	var out model.UserRecord
	path := fmt.Sprintf("/api/admin/users/%s/role", userID)
	if err := c.do(ctx, http.MethodPut, path, changeRoleRequest{Role: role}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type updatePermissionsRequest struct {
	Permissions map[model.Permission]bool `json:"permissions"`
}

func (c *Client) UpdatePermissions(ctx context.Context, userID string, perms map[model.Permission]bool) (*model.UserRecord, error) {
	var out model.UserRecord
	path := fmt.Sprintf("/api/admin/users/%s/permissions", userID)
	if err := c.do(ctx, http.MethodPut, path, updatePermissionsRequest{Permissions: perms}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
