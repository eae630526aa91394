package models

import "time"

// MaxCommentLength is the longest comment the UI lets through.
const MaxCommentLength = 200

// Comment on a post
// Collection (backend side): comments
type Comment struct {
	ID            string    `json:"_id"`
	PostID        string    `json:"postId"`
	UserID        string    `json:"userId"`
	Content       string    `json:"content"`
	Likes         []string  `json:"likes"`
	NumberOfLikes int       `json:"numberOfLikes"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// LikedBy reports whether userID is in the likes list.
func (c Comment) LikedBy(userID string) bool {
	if userID == "" {
		return false
	}
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// WithLikes replaces likes and recomputes NumberOfLikes from them.
func (c Comment) WithLikes(likes []string) Comment {
	c.Likes = likes
	c.NumberOfLikes = len(likes)
	return c
}
