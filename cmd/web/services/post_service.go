package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"kalshield/cmd/internal/logger"
	"kalshield/cmd/web/auth"
	"kalshield/cmd/web/clients/blogclient"
	"kalshield/cmd/web/dto"
	"kalshield/models"
)

// RecentPostsLimit is how many recent articles the reader page lists.
const RecentPostsLimit = 3

var ErrPostNotFound = errors.New("post not found")

// PostService loads posts for the home page, the reader and the feed.
type PostService struct {
	client   *blogclient.Client
	comments *CommentService
}

func NewPostService(client *blogclient.Client, comments *CommentService) *PostService {
	return &PostService{client: client, comments: comments}
}

// Latest returns the backend's default first page, newest first.
func (s *PostService) Latest(ctx context.Context) ([]dto.PostCardDTO, error) {
	resp, err := s.client.GetPosts(ctx, nil)
	if err != nil {
		return nil, err
	}
	return mapPostCards(resp.Posts), nil
}

// Recent returns the newest limit posts.
func (s *PostService) Recent(ctx context.Context, limit int) ([]dto.PostCardDTO, error) {
	resp, err := s.client.GetPosts(ctx, blogclient.ListPostsParams{Limit: limit}.Query())
	if err != nil {
		return nil, err
	}
	return mapPostCards(resp.Posts), nil
}

// ReaderPage is the article, the recent posts and the comments.
type ReaderPage struct {
	Post     dto.PostDetailDTO
	Recent   []dto.PostCardDTO
	Comments []dto.CommentDTO
}

// Reader loads the post by slug, then its recent posts and comments in
// parallel. Only the post itself is required; the rest degrade to empty.
func (s *PostService) Reader(ctx context.Context, slug string, viewer *auth.Session) (ReaderPage, error) {
	post, err := s.BySlug(ctx, slug)
	if err != nil {
		return ReaderPage{}, err
	}

	page := ReaderPage{Post: mapPostDetail(post)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recent, err := s.Recent(gctx, RecentPostsLimit)
		if err != nil {
			logger.WarnWithFields("recent posts unavailable", logger.Fields{"slug": slug, "error": err.Error()})
			return nil
		}
		page.Recent = recent
		return nil
	})
	g.Go(func() error {
		comments, err := s.comments.ForPost(gctx, post.ID, viewer)
		if err != nil {
			logger.WarnWithFields("comments unavailable", logger.Fields{"post_id": post.ID, "error": err.Error()})
			return nil
		}
		page.Comments = comments
		return nil
	})
	_ = g.Wait()

	return page, nil
}

// BySlug loads a post by its slug.
func (s *PostService) BySlug(ctx context.Context, slug string) (models.Post, error) {
	post, err := s.client.GetPostBySlug(ctx, slug)
	if errors.Is(err, blogclient.ErrNotFound) {
		return models.Post{}, ErrPostNotFound
	}
	return post, err
}

// ByID loads a post for the editor.
func (s *PostService) ByID(ctx context.Context, postID string) (models.Post, error) {
	post, err := s.client.GetPostByID(ctx, postID)
	if errors.Is(err, blogclient.ErrNotFound) {
		return models.Post{}, ErrPostNotFound
	}
	return post, err
}
