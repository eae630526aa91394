package services

import (
	"context"
	"strings"

	"kalshield/cmd/web/auth"
	"kalshield/cmd/web/clients/blogclient"
	"kalshield/models"
	"kalshield/storage"
)

const msgProfileImage = "Could not upload image (File must be less than 2MB)"

// ProfileService updates and deletes the signed-in visitor's account.
type ProfileService struct {
	client *blogclient.Client
	images imageUploader
}

func NewProfileService(client *blogclient.Client, uploader storage.Uploader, maxBytes int64) *ProfileService {
	return &ProfileService{client: client, images: imageUploader{uploader: uploader, maxBytes: maxBytes}}
}

// ProfileInput is the submitted profile form. Picture is nil when no file was chosen.
type ProfileInput struct {
	Username string
	Email    string
	Password string
	Picture  *Upload
}

// Update sends only the fields that differ from the session. Nothing changed
// is a FormError.
func (s *ProfileService) Update(ctx context.Context, sess auth.Session, in ProfileInput) (models.User, error) {
	var upd models.UserUpdate
	if u := strings.TrimSpace(in.Username); u != "" && u != sess.Username {
		upd.Username = u
	}
	if e := strings.TrimSpace(in.Email); e != "" && e != sess.Email {
		upd.Email = e
	}
	if in.Password != "" {
		upd.Password = in.Password
	}
	if in.Picture != nil {
		url, err := s.images.store(ctx, in.Picture, msgProfileImage)
		if err != nil {
			return models.User{}, err
		}
		upd.ProfilePicture = url
	}

	if upd.Empty() {
		return models.User{}, formError("No changes made")
	}
	return s.client.UpdateUser(ctx, sess.BackendToken, sess.UserID, upd)
}

// Delete removes the visitor's own account.
func (s *ProfileService) Delete(ctx context.Context, sess auth.Session) error {
	return s.client.DeleteUser(ctx, sess.BackendToken, sess.UserID)
}
