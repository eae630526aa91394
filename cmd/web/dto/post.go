package dto

import (
	"html/template"
	"time"
)

// PostCardDTO is what a result grid, the home page and the API list show per post.
type PostCardDTO struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Image         string    `json:"image"`
	Category      string    `json:"category"`
	CategoryLabel string    `json:"category_label"`
	Excerpt       string    `json:"excerpt"`
	CreatedAt     time.Time `json:"created_at"`
}

// PostDetailDTO is a post prepared for the reader page.
// Content is sanitized HTML and safe to render unescaped.
type PostDetailDTO struct {
	PostCardDTO
	UserID         string
	Content        template.HTML
	RawContent     string
	ReadingMinutes int
	UpdatedAt      time.Time
}
