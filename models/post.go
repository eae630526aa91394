package models

import "time"

// DefaultCategory is what the backend assigns when a post has no category.
const DefaultCategory = "uncategorized"

// Post represents a blog article as returned by the backend
// Collection (backend side): posts
type Post struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"` // HTML
	Image     string    `json:"image"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryOrDefault returns the post category, falling back to DefaultCategory.
func (p Post) CategoryOrDefault() string {
	if p.Category == "" {
		return DefaultCategory
	}
	return p.Category
}

// PostInput is the body of create/update post calls.
type PostInput struct {
	Title    string `json:"title,omitempty"`
	Content  string `json:"content,omitempty"`
	Category string `json:"category,omitempty"`
	Image    string `json:"image,omitempty"`
}
