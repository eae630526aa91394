package blogclient

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"kalshield/models"
)

// -------------------- Comments --------------------

type createCommentRequest struct {
	Content string `json:"content"`
	PostID  string `json:"postId"`
	UserID  string `json:"userId"`
}

// CreateComment calls POST /api/comment/create and returns the stored comment.
func (c *Client) CreateComment(ctx context.Context, token, postID, userID, content string) (models.Comment, error) {
	var out models.Comment
	err := c.call(ctx, request{
		op:     "CreateComment",
		method: http.MethodPost,
		path:   "/api/comment/create",
		body:   createCommentRequest{Content: content, PostID: postID, UserID: userID},
		token:  token,
	}, &out)
	return out, err
}

// GetPostComments calls GET /api/comment/getPostComments/{postId}.
func (c *Client) GetPostComments(ctx context.Context, postID string) ([]models.Comment, error) {
	var out []models.Comment
	err := c.call(ctx, request{
		op:     "GetPostComments",
		method: http.MethodGet,
		path:   path.Join("/api/comment/getPostComments", url.PathEscape(postID)),
	}, &out)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Comment{}
	}
	return out, nil
}

// LikeComment toggles the visitor's like. The answer carries the updated likes list.
func (c *Client) LikeComment(ctx context.Context, token, commentID string) (models.Comment, error) {
	var out models.Comment
	err := c.call(ctx, request{
		op:     "LikeComment",
		method: http.MethodPut,
		path:   path.Join("/api/comment/likeComment", url.PathEscape(commentID)),
		token:  token,
	}, &out)
	if err != nil {
		return models.Comment{}, err
	}
	return out.WithLikes(out.Likes), nil
}

// EditComment calls PUT /api/comment/editComment/{id}.
func (c *Client) EditComment(ctx context.Context, token, commentID, content string) (models.Comment, error) {
	var out models.Comment
	err := c.call(ctx, request{
		op:     "EditComment",
		method: http.MethodPut,
		path:   path.Join("/api/comment/editComment", url.PathEscape(commentID)),
		body:   map[string]string{"content": content},
		token:  token,
	}, &out)
	return out, err
}

// DeleteComment calls DELETE /api/comment/deleteComment/{id}.
func (c *Client) DeleteComment(ctx context.Context, token, commentID string) error {
	return c.call(ctx, request{
		op:     "DeleteComment",
		method: http.MethodDelete,
		path:   path.Join("/api/comment/deleteComment", url.PathEscape(commentID)),
		token:  token,
	}, nil)
}

// PageParams is the startIndex/limit pair shared by the admin listings.
type PageParams struct {
	StartIndex int
	Limit      int
}

func (p PageParams) Query() url.Values {
	q := url.Values{}
	if p.StartIndex > 0 {
		q.Set("startIndex", strconv.Itoa(p.StartIndex))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

type ListCommentsResponse struct {
	Comments          []models.Comment `json:"comments"`
	TotalComments     int              `json:"totalComments"`
	LastMonthComments int              `json:"lastMonthComments"`
}

// GetComments calls GET /api/comment/getcomments (admin only).
func (c *Client) GetComments(ctx context.Context, token string, page PageParams) (ListCommentsResponse, error) {
	var out ListCommentsResponse
	err := c.call(ctx, request{
		op:     "GetComments",
		method: http.MethodGet,
		path:   "/api/comment/getcomments",
		query:  page.Query(),
		token:  token,
	}, &out)
	if err != nil {
		return ListCommentsResponse{}, err
	}
	if out.Comments == nil {
		out.Comments = []models.Comment{}
	}
	return out, nil
}
