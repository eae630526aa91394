package dto

import "kalshield/querystate"

// SearchResultDTO is the JSON API answer for a search page.
type SearchResultDTO struct {
	State          querystate.State `json:"state"`
	Posts          []PostCardDTO    `json:"posts"`
	ShowMore       bool             `json:"showMore"`
	NextStartIndex int              `json:"nextStartIndex"`
}
