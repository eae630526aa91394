package services

import (
	"context"

	"kalshield/cmd/web/clients/blogclient"
	"kalshield/cmd/web/dto"
	"kalshield/querystate"
)

// SearchService drives the search page from its query string.
//
// The URL is the source of truth: Load parses the controls from it and sends
// it to the backend unchanged, SubmitURL only rewrites it.
type SearchService struct {
	client *blogclient.Client
}

func NewSearchService(client *blogclient.Client) *SearchService {
	return &SearchService{client: client}
}

// SearchPage is everything the search page renders.
type SearchPage struct {
	State   querystate.State
	Params  querystate.Params
	Results querystate.Results[dto.PostCardDTO]
}

// MoreParams is the query for the next "load more" request.
func (p SearchPage) MoreParams() querystate.Params {
	return querystate.MoreParams(p.Params, p.Results.NextStartIndex())
}

// ReloadParams is the "load more" link for visitors without script: the same
// search reloaded with room for one more page.
func (p SearchPage) ReloadParams() querystate.Params {
	return querystate.ReloadParams(p.Params, p.Results.NextStartIndex())
}

// Load parses rawQuery and fetches the first page for it. On error the
// returned page still carries the parsed state so the controls can render.
func (s *SearchService) Load(ctx context.Context, rawQuery string) (SearchPage, error) {
	params := querystate.ParseParams(rawQuery)
	page := SearchPage{
		State:   querystate.FromParams(params),
		Params:  params,
		Results: querystate.NewResults[dto.PostCardDTO](nil),
	}

	resp, err := s.client.GetPosts(ctx, querystate.RawQuery(rawQuery))
	if err != nil {
		return page, err
	}
	page.Results = querystate.NewResults(mapPostCards(resp.Posts))
	page.Results.ShowMore = len(resp.Posts) >= querystate.Limit(params)
	return page, nil
}

// SubmitURL applies a submitted form state to the current query and returns
// the URL to navigate to. It never fetches.
func (s *SearchService) SubmitURL(currentQuery string, st querystate.State) string {
	return searchURL(st.Apply(querystate.ParseParams(currentQuery)))
}

// SubmitSearchTermURL is SubmitURL for the header box, which only carries the term.
func (s *SearchService) SubmitSearchTermURL(currentQuery, term string) string {
	return searchURL(querystate.ApplySearchTerm(querystate.ParseParams(currentQuery), term))
}

func searchURL(p querystate.Params) string {
	if p.Len() == 0 {
		return "/search"
	}
	return "/search?" + p.Encode()
}

// Page fetches the page starting at the query's startIndex.
func (s *SearchService) Page(ctx context.Context, rawQuery string) ([]dto.PostCardDTO, bool, error) {
	resp, err := s.client.GetPosts(ctx, querystate.RawQuery(rawQuery))
	if err != nil {
		return nil, false, err
	}
	more := len(resp.Posts) >= querystate.Limit(querystate.ParseParams(rawQuery))
	return mapPostCards(resp.Posts), more, nil
}

// ShowMore requests the page after the loaded results and appends it.
// On error results are left untouched.
func (s *SearchService) ShowMore(ctx context.Context, rawQuery string, results *querystate.Results[dto.PostCardDTO]) error {
	params := querystate.MoreParams(querystate.ParseParams(rawQuery), results.NextStartIndex())
	resp, err := s.client.GetPosts(ctx, params)
	if err != nil {
		return err
	}
	results.Append(mapPostCards(resp.Posts))
	return nil
}
