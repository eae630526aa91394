package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kalshield/cmd/web/auth"
	"kalshield/cmd/web/middleware"
	"kalshield/cmd/web/services"
)

// PostPageHandler renders an article with its comments and recent posts.
func PostPageHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderPost(c, svc, http.StatusOK, nil)
	}
}

func renderPost(c *gin.Context, svc *services.PostService, status int, extra gin.H) {
	slug := c.Param("slug")

	var sess *auth.Session
	if s, ok := middleware.CurrentSession(c); ok {
		sess = &s
	}

	reader, err := svc.Reader(c.Request.Context(), slug, sess)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			renderNotFound(c, "This article does not exist.")
			return
		}
		logFailure(c, "post load failed", err, nil)
		renderError(c, http.StatusBadGateway, msgSomethingWrong)
		return
	}

	data := with(page(c, reader.Post.Title), gin.H{
		"Post":     reader.Post,
		"Recent":   reader.Recent,
		"Comments": reader.Comments,
		"Return":   "/post/" + slug + "#comments",
	})
	c.HTML(status, "post.html", with(data, extra))
}

// CreateCommentHandler posts a comment. Validation and backend errors are
// shown under the comment box with the draft kept.
func CreateCommentHandler(posts *services.PostService, comments *services.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		content := c.PostForm("content")

		post, err := posts.BySlug(c.Request.Context(), slug)
		if err != nil {
			if errors.Is(err, services.ErrPostNotFound) {
				renderNotFound(c, "This article does not exist.")
				return
			}
			logFailure(c, "comment post lookup failed", err, nil)
			renderError(c, http.StatusBadGateway, msgSomethingWrong)
			return
		}

		if _, err := comments.Create(c.Request.Context(), mustSession(c), post.ID, content); err != nil {
			logFailure(c, "comment create failed", err, nil)
			renderPost(c, posts, statusFor(err), gin.H{
				"CommentError": services.VisitorMessage(err, msgSomethingWrong),
				"Draft":        content,
			})
			return
		}
		c.Redirect(http.StatusSeeOther, "/post/"+slug+"#comments")
	}
}

// LikeCommentHandler toggles a like. Anonymous visitors never get here:
// RequireUser sends them to sign in.
func LikeCommentHandler(svc *services.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := svc.Like(c.Request.Context(), mustSession(c), id); err != nil {
			logFailure(c, "comment like failed", err, nil)
		}
		c.Redirect(http.StatusSeeOther, safeReturn(c.PostForm("return"), "/"))
	}
}

// EditCommentHandler saves an edited comment. A rejected edit made from an
// article re-renders it with the error and the draft under that comment.
func EditCommentHandler(posts *services.PostService, comments *services.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		content := c.PostForm("content")
		back := safeReturn(c.PostForm("return"), "/")

		err := comments.Edit(c.Request.Context(), mustSession(c), id, content)
		if err == nil {
			c.Redirect(http.StatusSeeOther, back)
			return
		}
		var fe *services.FormError
		if errors.As(err, &fe) {
			if slug, ok := postSlug(back); ok {
				c.Params = append(c.Params, gin.Param{Key: "slug", Value: slug})
				renderPost(c, posts, http.StatusUnprocessableEntity, gin.H{
					"EditID":    id,
					"EditError": fe.Message,
					"EditDraft": content,
				})
				return
			}
		}
		logFailure(c, "comment edit failed", err, nil)
		c.Redirect(http.StatusSeeOther, back)
	}
}

// postSlug extracts the slug from a local /post/<slug> path.
func postSlug(target string) (string, bool) {
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		target = target[:i]
	}
	slug, ok := strings.CutPrefix(target, "/post/")
	if !ok || slug == "" || strings.Contains(slug, "/") {
		return "", false
	}
	return slug, true
}

func DeleteCommentHandler(svc *services.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := svc.Delete(c.Request.Context(), mustSession(c), id); err != nil {
			logFailure(c, "comment delete failed", err, nil)
		}
		c.Redirect(http.StatusSeeOther, safeReturn(c.PostForm("return"), "/"))
	}
}
