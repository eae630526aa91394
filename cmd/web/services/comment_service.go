package services

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"kalshield/cmd/internal/logger"
	"kalshield/cmd/web/auth"
	"kalshield/cmd/web/clients/blogclient"
	"kalshield/cmd/web/dto"
	"kalshield/models"
)

// authorLookups bounds concurrent author requests per page.
const authorLookups = 8

// CommentService manages comments and resolves their authors.
type CommentService struct {
	client *blogclient.Client
}

func NewCommentService(client *blogclient.Client) *CommentService {
	return &CommentService{client: client}
}

// ForPost lists the comments of a post with their authors. Authors are
// fetched concurrently, once per distinct user; a failed lookup leaves the
// author empty.
func (s *CommentService) ForPost(ctx context.Context, postID string, viewer *auth.Session) ([]dto.CommentDTO, error) {
	comments, err := s.client.GetPostComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	authors := s.lookupAuthors(ctx, comments)
	out := make([]dto.CommentDTO, 0, len(comments))
	for _, cm := range comments {
		out = append(out, mapComment(cm, authors[cm.UserID], viewer))
	}
	return out, nil
}

func (s *CommentService) lookupAuthors(ctx context.Context, comments []models.Comment) map[string]*models.User {
	var (
		mu      sync.Mutex
		authors = make(map[string]*models.User)
	)
	seen := make(map[string]bool)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(authorLookups)
	for _, cm := range comments {
		userID := cm.UserID
		if userID == "" || seen[userID] {
			continue
		}
		seen[userID] = true
		g.Go(func() error {
			u, err := s.client.GetUser(gctx, userID)
			if err != nil {
				logger.WarnWithFields("comment author lookup failed", logger.Fields{
					"user_id": userID,
					"error":   err.Error(),
				})
				return nil
			}
			mu.Lock()
			authors[userID] = &u
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return authors
}

func mapComment(cm models.Comment, author *models.User, viewer *auth.Session) dto.CommentDTO {
	d := dto.CommentDTO{
		ID:            cm.ID,
		PostID:        cm.PostID,
		Content:       cm.Content,
		NumberOfLikes: cm.NumberOfLikes,
		CreatedAt:     cm.CreatedAt,
		Author:        author,
	}
	if viewer != nil {
		d.LikedByViewer = cm.LikedBy(viewer.UserID)
		d.CanModify = viewer.UserID == cm.UserID || viewer.IsAdmin
	}
	return d
}

// validateComment trims content and enforces the length rule.
func validateComment(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", formError("Comment cannot be empty")
	}
	if utf8.RuneCountInString(content) > models.MaxCommentLength {
		return "", formError("Comment must be 200 characters or less")
	}
	return content, nil
}

// Create posts a comment as the signed-in visitor.
func (s *CommentService) Create(ctx context.Context, sess auth.Session, postID, content string) (dto.CommentDTO, error) {
	content, err := validateComment(content)
	if err != nil {
		return dto.CommentDTO{}, err
	}
	cm, err := s.client.CreateComment(ctx, sess.BackendToken, postID, sess.UserID, content)
	if err != nil {
		return dto.CommentDTO{}, err
	}
	author := &models.User{ID: sess.UserID, Username: sess.Username, ProfilePicture: sess.ProfilePicture}
	return mapComment(cm, author, &sess), nil
}

// Like toggles the visitor's like and returns the updated comment.
func (s *CommentService) Like(ctx context.Context, sess auth.Session, commentID string) (dto.CommentDTO, error) {
	cm, err := s.client.LikeComment(ctx, sess.BackendToken, commentID)
	if err != nil {
		return dto.CommentDTO{}, err
	}
	return mapComment(cm, nil, &sess), nil
}

// Edit replaces the comment content.
func (s *CommentService) Edit(ctx context.Context, sess auth.Session, commentID, content string) error {
	content, err := validateComment(content)
	if err != nil {
		return err
	}
	_, err = s.client.EditComment(ctx, sess.BackendToken, commentID, content)
	return err
}

// Delete removes a comment. The backend allows owners and admins.
func (s *CommentService) Delete(ctx context.Context, sess auth.Session, commentID string) error {
	return s.client.DeleteComment(ctx, sess.BackendToken, commentID)
}
