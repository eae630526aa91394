package blogclient

import (
	"context"
	"net/http"
	"net/url"
	"path"

	"kalshield/models"
)

// -------------------- Users --------------------

type ListUsersResponse struct {
	Users          []models.User `json:"users"`
	TotalUsers     int           `json:"totalUsers"`
	LastMonthUsers int           `json:"lastMonthUsers"`
}

// GetUsers calls GET /api/user/getusers (admin only).
func (c *Client) GetUsers(ctx context.Context, token string, page PageParams) (ListUsersResponse, error) {
	var out ListUsersResponse
	err := c.call(ctx, request{
		op:     "GetUsers",
		method: http.MethodGet,
		path:   "/api/user/getusers",
		query:  page.Query(),
		token:  token,
	}, &out)
	if err != nil {
		return ListUsersResponse{}, err
	}
	if out.Users == nil {
		out.Users = []models.User{}
	}
	return out, nil
}

// GetUser calls GET /api/user/{userId}. It is public and used for comment authors.
func (c *Client) GetUser(ctx context.Context, userID string) (models.User, error) {
	var out models.User
	err := c.call(ctx, request{
		op:     "GetUser",
		method: http.MethodGet,
		path:   path.Join("/api/user", url.PathEscape(userID)),
	}, &out)
	return out, err
}

// UpdateUser calls PUT /api/user/update/{id} with only the changed fields.
func (c *Client) UpdateUser(ctx context.Context, token, userID string, in models.UserUpdate) (models.User, error) {
	var out models.User
	err := c.call(ctx, request{
		op:     "UpdateUser",
		method: http.MethodPut,
		path:   path.Join("/api/user/update", url.PathEscape(userID)),
		body:   in,
		token:  token,
	}, &out)
	return out, err
}

// DeleteUser calls DELETE /api/user/delete/{id}.
func (c *Client) DeleteUser(ctx context.Context, token, userID string) error {
	return c.call(ctx, request{
		op:     "DeleteUser",
		method: http.MethodDelete,
		path:   path.Join("/api/user/delete", url.PathEscape(userID)),
		token:  token,
	}, nil)
}

// SignOut calls POST /api/user/signout so the backend clears its cookie.
func (c *Client) SignOut(ctx context.Context, token string) error {
	return c.call(ctx, request{
		op:     "SignOut",
		method: http.MethodPost,
		path:   "/api/user/signout",
		token:  token,
	}, nil)
}
