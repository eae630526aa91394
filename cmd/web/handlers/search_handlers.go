package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kalshield/cmd/web/services"
	"kalshield/querystate"
)

// HeaderShowMore tells the page script whether another "load more" makes sense.
const HeaderShowMore = "X-Show-More"

const msgLoadFailed = "Could not load articles"

// SearchPageHandler renders /search from its query string. A backend failure
// is shown inline; the controls still reflect the URL.
func SearchPageHandler(svc *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Request.URL.RawQuery
		result, err := svc.Load(c.Request.Context(), raw)

		// Params.Encode escapes every value, so the query is safe as a URL.
		data := with(page(c, "Search"), gin.H{
			"State":       result.State,
			"Results":     result.Results,
			"MoreQuery":   template.URL(result.MoreParams().Encode()),
			"ReloadQuery": template.URL(result.ReloadParams().Encode()),
		})
		if err != nil {
			logFailure(c, "search failed", err, nil)
			data["Error"] = msgLoadFailed
		}
		c.HTML(http.StatusOK, "search.html", data)
	}
}

// SearchSubmitHandler applies the submitted filters to the current query and
// redirects. The header box only sends searchTerm, so the other filters in
// the URL are left alone in that case.
func SearchSubmitHandler(svc *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := c.PostForm("current")
		term := c.PostForm(querystate.KeySearchTerm)

		_, hasSort := c.GetPostForm(querystate.KeySort)
		_, hasCategory := c.GetPostForm(querystate.KeyCategory)

		var target string
		if !hasSort && !hasCategory {
			target = svc.SubmitSearchTermURL(current, term)
		} else {
			st := querystate.FormState(term, c.PostForm(querystate.KeySort), c.PostForm(querystate.KeyCategory))
			target = svc.SubmitURL(current, st)
		}
		c.Redirect(http.StatusSeeOther, target)
	}
}

// SearchMoreHandler returns the next page of cards as an HTML fragment.
func SearchMoreHandler(svc *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cards, more, err := svc.Page(c.Request.Context(), c.Request.URL.RawQuery)
		if err != nil {
			logFailure(c, "search show more failed", err, nil)
			c.String(http.StatusBadGateway, msgLoadFailed)
			return
		}
		c.Header(HeaderShowMore, strconv.FormatBool(more))
		c.HTML(http.StatusOK, "post_cards.html", cards)
	}
}
