package blogclient

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"kalshield/cmd/web/httpclient"
	"kalshield/models"
)

// -------------------- Posts --------------------

// ListPostsParams are the typed filters of GET /api/post/getposts.
// Zero values are left out of the query.
type ListPostsParams struct {
	UserID     string
	Category   string
	Slug       string
	PostID     string
	SearchTerm string
	Sort       string
	StartIndex int
	Limit      int
}

// Query encodes the params for the backend.
func (p ListPostsParams) Query() url.Values {
	q := url.Values{}
	if p.UserID != "" {
		q.Set("userId", p.UserID)
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Slug != "" {
		q.Set("slug", p.Slug)
	}
	if p.PostID != "" {
		q.Set("postId", p.PostID)
	}
	if p.SearchTerm != "" {
		q.Set("searchTerm", p.SearchTerm)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.StartIndex > 0 {
		q.Set("startIndex", strconv.Itoa(p.StartIndex))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

type ListPostsResponse struct {
	Posts          []models.Post `json:"posts"`
	TotalPosts     int           `json:"totalPosts"`
	LastMonthPosts int           `json:"lastMonthPosts"`
}

// GetPosts calls GET /api/post/getposts with query passed through as given.
// Callers pass either ListPostsParams.Query() or the visitor's own URL params.
func (c *Client) GetPosts(ctx context.Context, query httpclient.Query) (ListPostsResponse, error) {
	var out ListPostsResponse
	err := c.call(ctx, request{
		op:     "GetPosts",
		method: http.MethodGet,
		path:   "/api/post/getposts",
		query:  query,
	}, &out)
	if err != nil {
		return ListPostsResponse{}, err
	}
	if out.Posts == nil {
		out.Posts = []models.Post{}
	}
	return out, nil
}

// GetPostBySlug returns the first post with slug, or ErrNotFound.
func (c *Client) GetPostBySlug(ctx context.Context, slug string) (models.Post, error) {
	return c.firstPost(ctx, ListPostsParams{Slug: slug})
}

// GetPostByID returns the post with id, or ErrNotFound.
func (c *Client) GetPostByID(ctx context.Context, id string) (models.Post, error) {
	return c.firstPost(ctx, ListPostsParams{PostID: id})
}

func (c *Client) firstPost(ctx context.Context, params ListPostsParams) (models.Post, error) {
	resp, err := c.GetPosts(ctx, params.Query())
	if err != nil {
		return models.Post{}, err
	}
	if len(resp.Posts) == 0 {
		return models.Post{}, ErrNotFound
	}
	return resp.Posts[0], nil
}

// CreatePost calls POST /api/post/create. The backend allows admins only.
func (c *Client) CreatePost(ctx context.Context, token string, in models.PostInput) (models.Post, error) {
	var out models.Post
	err := c.call(ctx, request{
		op:     "CreatePost",
		method: http.MethodPost,
		path:   "/api/post/create",
		body:   in,
		token:  token,
	}, &out)
	return out, err
}

// UpdatePost calls PUT /api/post/updatepost/{postId}/{userId}.
func (c *Client) UpdatePost(ctx context.Context, token, postID, userID string, in models.PostInput) (models.Post, error) {
	var out models.Post
	err := c.call(ctx, request{
		op:     "UpdatePost",
		method: http.MethodPut,
		path:   path.Join("/api/post/updatepost", url.PathEscape(postID), url.PathEscape(userID)),
		body:   in,
		token:  token,
	}, &out)
	return out, err
}

// DeletePost calls DELETE /api/post/deletepost/{postId}/{userId}.
func (c *Client) DeletePost(ctx context.Context, token, postID, userID string) error {
	return c.call(ctx, request{
		op:     "DeletePost",
		method: http.MethodDelete,
		path:   path.Join("/api/post/deletepost", url.PathEscape(postID), url.PathEscape(userID)),
		token:  token,
	}, nil)
}

// Ping checks that the backend answers a one-item post listing.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.GetPosts(ctx, ListPostsParams{Limit: 1}.Query())
	return err
}
