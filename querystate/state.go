// Package querystate keeps the search controls, the page URL and the post list
// in step. The URL is the source of truth: controls are parsed from it, the
// backend request is built from it, and a form submission only rewrites it.
package querystate

import "strconv"

const (
	KeySearchTerm = "searchTerm"
	KeySort       = "sort"
	KeyCategory   = "category"
	KeyStartIndex = "startIndex"
	KeyLimit      = "limit"

	SortDesc = "desc"
	SortAsc  = "asc"

	DefaultCategory = "uncategorized"
)

// Category is one option of the category filter.
type Category struct {
	Value string
	Label string
}

// Categories lists the filter options in display order.
var Categories = []Category{
	{Value: DefaultCategory, Label: "All Categories"},
	{Value: "ethical-hacking", Label: "Ethical Hacking"},
	{Value: "network-security", Label: "Network Security"},
	{Value: "penetration-testing", Label: "Penetration Testing"},
	{Value: "security-tools", Label: "Security Tools"},
	{Value: "web-security", Label: "Web Security"},
	{Value: "tutorials", Label: "Tutorials"},
}

// CategoryLabel returns the display label for value, or value itself when unknown.
func CategoryLabel(value string) string {
	for _, c := range Categories {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}

// State is the typed filter state shown in the search controls.
type State struct {
	SearchTerm string `json:"searchTerm"`
	Sort       string `json:"sort"`
	Category   string `json:"category"`
}

// DefaultState is what the controls show for a bare /search.
func DefaultState() State {
	return State{Sort: SortDesc, Category: DefaultCategory}
}

// FromParams reads the filter state from URL params, applying defaults.
// Sort values other than asc/desc render as desc; the URL itself is left alone.
func FromParams(p Params) State {
	s := State{
		SearchTerm: p.Get(KeySearchTerm),
		Sort:       normalizeSort(p.Get(KeySort)),
		Category:   p.Get(KeyCategory),
	}
	if s.Category == "" {
		s.Category = DefaultCategory
	}
	return s
}

// FormState builds state from submitted form fields. Empty selects fall back to
// their defaults.
func FormState(searchTerm, sort, category string) State {
	if sort == "" {
		sort = SortDesc
	}
	if category == "" {
		category = DefaultCategory
	}
	return State{SearchTerm: searchTerm, Sort: normalizeSort(sort), Category: category}
}

func normalizeSort(sort string) string {
	if sort == SortAsc {
		return SortAsc
	}
	return SortDesc
}

// Apply writes the three filter fields into a copy of p. Unrelated params are kept
// where they were; new keys are appended in searchTerm, sort, category order.
// Paging params are dropped so the new search starts at its first page.
func (s State) Apply(p Params) Params {
	out := resetPaging(p)
	out.Set(KeySearchTerm, s.SearchTerm)
	out.Set(KeySort, s.Sort)
	out.Set(KeyCategory, s.Category)
	return out
}

// ApplySearchTerm writes only the search term, as the header search box does.
func ApplySearchTerm(p Params, term string) Params {
	out := resetPaging(p)
	out.Set(KeySearchTerm, term)
	return out
}

func resetPaging(p Params) Params {
	out := p.Clone()
	out.Del(KeyStartIndex)
	out.Del(KeyLimit)
	return out
}

// StartIndex returns the startIndex param, or 0 when absent or invalid.
func StartIndex(p Params) int {
	n, err := strconv.Atoi(p.Get(KeyStartIndex))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
