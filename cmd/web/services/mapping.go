package services

import (
	"html/template"

	"kalshield/cmd/web/dto"
	"kalshield/models"
	"kalshield/parser"
	"kalshield/querystate"
)

// mapPostCard converts a backend post into the card shown in lists.
func mapPostCard(p models.Post) dto.PostCardDTO {
	category := p.CategoryOrDefault()
	image := p.Image
	if image == "" {
		image = parser.FirstImage(p.Content)
	}
	return dto.PostCardDTO{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Image:         image,
		Category:      category,
		CategoryLabel: querystate.CategoryLabel(category),
		Excerpt:       parser.Excerpt(p.Content, parser.DefaultExcerptRunes),
		CreatedAt:     p.CreatedAt,
	}
}

func mapPostCards(posts []models.Post) []dto.PostCardDTO {
	out := make([]dto.PostCardDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, mapPostCard(p))
	}
	return out
}

// mapPostDetail prepares a post for the reader page.
func mapPostDetail(p models.Post) dto.PostDetailDTO {
	return dto.PostDetailDTO{
		PostCardDTO:    mapPostCard(p),
		UserID:         p.UserID,
		Content:        template.HTML(parser.Sanitize(p.Content)),
		RawContent:     p.Content,
		ReadingMinutes: parser.ReadingMinutes(p.Content),
		UpdatedAt:      p.UpdatedAt,
	}
}
