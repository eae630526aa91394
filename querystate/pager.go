package querystate

import "strconv"

// PageSize is the backend's default page size for list endpoints. A page shorter
// than this means there is nothing left to load. It has to follow the backend.
const PageSize = 9

// HasMore reports whether a page of n items may be followed by another one.
func HasMore(n int) bool {
	return n >= PageSize
}

// Limit is the page size p asks for: its limit param, or PageSize.
func Limit(p Params) int {
	n, err := strconv.Atoi(p.Get(KeyLimit))
	if err != nil || n <= 0 {
		return PageSize
	}
	return n
}

// MoreParams returns a copy of p asking for the page after loaded items.
// Pages after the first are always PageSize long.
func MoreParams(p Params, loaded int) Params {
	out := p.Clone()
	out.Del(KeyLimit)
	out.Set(KeyStartIndex, strconv.Itoa(loaded))
	return out
}

// ReloadParams asks for the loaded items plus one more page, from the top.
// Without script the list is fetched again longer, so earlier rows stay.
func ReloadParams(p Params, loaded int) Params {
	out := p.Clone()
	out.Del(KeyStartIndex)
	out.Set(KeyLimit, strconv.Itoa(loaded+PageSize))
	return out
}

// Results accumulates pages for a "show more" list.
type Results[T any] struct {
	Items    []T
	ShowMore bool
}

// NewResults starts a list from its first page.
func NewResults[T any](page []T) Results[T] {
	items := make([]T, 0, len(page))
	items = append(items, page...)
	return Results[T]{Items: items, ShowMore: HasMore(len(page))}
}

// Append adds the next page after the existing items.
func (r *Results[T]) Append(page []T) {
	r.Items = append(r.Items, page...)
	r.ShowMore = HasMore(len(page))
}

// NextStartIndex is the offset of the next page.
func (r Results[T]) NextStartIndex() int {
	return len(r.Items)
}

// Empty reports whether nothing has been loaded.
func (r Results[T]) Empty() bool {
	return len(r.Items) == 0
}

// Remove drops the items matching fn, as after a successful delete.
func (r *Results[T]) Remove(fn func(T) bool) {
	out := r.Items[:0]
	for _, it := range r.Items {
		if !fn(it) {
			out = append(out, it)
		}
	}
	r.Items = out
}
