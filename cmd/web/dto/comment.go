package dto

import (
	"time"

	"kalshield/models"
)

// CommentDTO is a comment with its resolved author and viewer flags.
type CommentDTO struct {
	ID            string       `json:"id"`
	PostID        string       `json:"post_id"`
	Content       string       `json:"content"`
	NumberOfLikes int          `json:"number_of_likes"`
	CreatedAt     time.Time    `json:"created_at"`
	Author        *models.User `json:"author,omitempty"`
	// LikedByViewer and CanModify depend on who is looking.
	LikedByViewer bool `json:"liked_by_viewer"`
	CanModify     bool `json:"can_modify"`
}

// AuthorName is the author's username, or "anonymous user" while unknown.
func (c CommentDTO) AuthorName() string {
	if c.Author == nil || c.Author.Username == "" {
		return "anonymous user"
	}
	return c.Author.Username
}
