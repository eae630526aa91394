package services

import (
	"context"
	"strings"

	"kalshield/cmd/web/auth"
	"kalshield/cmd/web/clients/blogclient"
	"kalshield/models"
	"kalshield/storage"
)

const msgPostImage = "Image upload failed"

// EditorService creates and updates posts for admins.
type EditorService struct {
	client *blogclient.Client
	images imageUploader
}

func NewEditorService(client *blogclient.Client, uploader storage.Uploader, maxBytes int64) *EditorService {
	return &EditorService{client: client, images: imageUploader{uploader: uploader, maxBytes: maxBytes}}
}

// PostForm is the submitted editor form. Image replaces CurrentImage when set.
type PostForm struct {
	Title        string
	Category     string
	Content      string
	CurrentImage string
	Image        *Upload
}

func (s *EditorService) input(ctx context.Context, form PostForm) (models.PostInput, error) {
	in := models.PostInput{
		Title:    strings.TrimSpace(form.Title),
		Category: strings.TrimSpace(form.Category),
		Content:  form.Content,
		Image:    form.CurrentImage,
	}
	if in.Category == "" {
		in.Category = models.DefaultCategory
	}
	if form.Image != nil {
		url, err := s.images.store(ctx, form.Image, msgPostImage)
		if err != nil {
			return models.PostInput{}, err
		}
		in.Image = url
	}
	return in, nil
}

// Create publishes a new post and returns it (the backend assigns the slug).
func (s *EditorService) Create(ctx context.Context, sess auth.Session, form PostForm) (models.Post, error) {
	in, err := s.input(ctx, form)
	if err != nil {
		return models.Post{}, err
	}
	return s.client.CreatePost(ctx, sess.BackendToken, in)
}

// Update saves changes to postID.
func (s *EditorService) Update(ctx context.Context, sess auth.Session, postID string, form PostForm) (models.Post, error) {
	in, err := s.input(ctx, form)
	if err != nil {
		return models.Post{}, err
	}
	return s.client.UpdatePost(ctx, sess.BackendToken, postID, sess.UserID, in)
}
