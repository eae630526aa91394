package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kalshield/cmd/web/clients/blogclient"
	"kalshield/cmd/web/dto"
	"kalshield/cmd/web/services"
)

// SearchPostsAPIHandler godoc
// @Summary      Search posts
// @Description  Same query contract as the /search page. The query string is sent to the backend unchanged; use nextStartIndex as startIndex to fetch the next page.
// @Tags         posts
// @Param        searchTerm  query  string  false  "Search term"
// @Param        sort        query  string  false  "desc (default) or asc"
// @Param        category    query  string  false  "Category, uncategorized for all"
// @Param        startIndex  query  int     false  "Offset of the first post"
// @Param        limit       query  int     false  "Page size (backend default 9)"
// @Produce      json
// @Success      200  {object}  dto.SearchResultDTO
// @Failure      502  {object}  dto.ErrorResponseDTO
// @Router       /posts/search [get]
func SearchPostsAPIHandler(svc *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.Load(c.Request.Context(), c.Request.URL.RawQuery)
		if err != nil {
			logFailure(c, "api search failed", err, nil)
			c.JSON(http.StatusBadGateway, dto.ErrorResponseDTO{Error: "could not load articles"})
			return
		}
		posts := result.Results.Items
		if posts == nil {
			posts = []dto.PostCardDTO{}
		}
		c.JSON(http.StatusOK, dto.SearchResultDTO{
			State:          result.State,
			Posts:          posts,
			ShowMore:       result.Results.ShowMore,
			NextStartIndex: result.Results.NextStartIndex(),
		})
	}
}

// HealthHandler godoc
// @Summary      Health check
// @Description  Reports whether the blog backend answers a one-post listing.
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthDTO
// @Failure      503  {object}  dto.HealthDTO
// @Router       /health [get]
func HealthHandler(client *blogclient.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := client.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.HealthDTO{Status: "degraded", Backend: "down", Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.HealthDTO{Status: "ok"})
	}
}
