package services

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"kalshield/cmd/web/auth"
	"kalshield/cmd/web/clients/blogclient"
	"kalshield/cmd/web/dto"
	"kalshield/models"
	"kalshield/querystate"
)

// OverviewLimit is how many of each kind the admin overview lists.
const OverviewLimit = 5

// DashboardService backs the admin tabs of the dashboard.
type DashboardService struct {
	client *blogclient.Client
}

func NewDashboardService(client *blogclient.Client) *DashboardService {
	return &DashboardService{client: client}
}

// Overview fetches the latest users, posts and comments concurrently.
func (s *DashboardService) Overview(ctx context.Context, sess auth.Session) (dto.DashboardStatsDTO, error) {
	var (
		users    blogclient.ListUsersResponse
		posts    blogclient.ListPostsResponse
		comments blogclient.ListCommentsResponse
	)
	page := blogclient.PageParams{Limit: OverviewLimit}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.client.GetUsers(gctx, sess.BackendToken, page)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = s.client.GetPosts(gctx, blogclient.ListPostsParams{Limit: OverviewLimit}.Query())
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.client.GetComments(gctx, sess.BackendToken, page)
		return err
	})
	if err := g.Wait(); err != nil {
		return dto.DashboardStatsDTO{}, err
	}

	return dto.DashboardStatsDTO{
		TotalUsers:        users.TotalUsers,
		TotalPosts:        posts.TotalPosts,
		TotalComments:     comments.TotalComments,
		LastMonthUsers:    users.LastMonthUsers,
		LastMonthPosts:    posts.LastMonthPosts,
		LastMonthComments: comments.LastMonthComments,
		Users:             users.Users,
		Posts:             mapPostCards(posts.Posts),
		Comments:          comments.Comments,
	}, nil
}

// Posts lists the visitor's own posts from startIndex.
func (s *DashboardService) Posts(ctx context.Context, sess auth.Session, startIndex int) (querystate.Results[dto.PostCardDTO], error) {
	q := blogclient.ListPostsParams{UserID: sess.UserID}.Query()
	if startIndex > 0 {
		q.Set(querystate.KeyStartIndex, strconv.Itoa(startIndex))
	}
	resp, err := s.client.GetPosts(ctx, q)
	if err != nil {
		return querystate.Results[dto.PostCardDTO]{}, err
	}
	return querystate.NewResults(mapPostCards(resp.Posts)), nil
}

// Users lists accounts from startIndex.
func (s *DashboardService) Users(ctx context.Context, sess auth.Session, startIndex int) (querystate.Results[models.User], error) {
	resp, err := s.client.GetUsers(ctx, sess.BackendToken, blogclient.PageParams{StartIndex: startIndex})
	if err != nil {
		return querystate.Results[models.User]{}, err
	}
	return querystate.NewResults(resp.Users), nil
}

// Comments lists all comments from startIndex.
func (s *DashboardService) Comments(ctx context.Context, sess auth.Session, startIndex int) (querystate.Results[models.Comment], error) {
	resp, err := s.client.GetComments(ctx, sess.BackendToken, blogclient.PageParams{StartIndex: startIndex})
	if err != nil {
		return querystate.Results[models.Comment]{}, err
	}
	return querystate.NewResults(resp.Comments), nil
}

func (s *DashboardService) DeletePost(ctx context.Context, sess auth.Session, postID string) error {
	return s.client.DeletePost(ctx, sess.BackendToken, postID, sess.UserID)
}

func (s *DashboardService) DeleteUser(ctx context.Context, sess auth.Session, userID string) error {
	return s.client.DeleteUser(ctx, sess.BackendToken, userID)
}

func (s *DashboardService) DeleteComment(ctx context.Context, sess auth.Session, commentID string) error {
	return s.client.DeleteComment(ctx, sess.BackendToken, commentID)
}
