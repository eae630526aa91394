package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kalshield/cmd/internal/logger"
	"kalshield/cmd/web/services"
	"kalshield/models"
)

func editorPage(c *gin.Context, postID string, form services.PostForm) gin.H {
	title := "Create a post"
	if postID != "" {
		title = "Update post"
	}
	return with(page(c, title), gin.H{"PostID": postID, "Form": form})
}

func readPostForm(c *gin.Context) (services.PostForm, func(), error) {
	form := services.PostForm{
		Title:        c.PostForm("title"),
		Category:     c.PostForm("category"),
		Content:      c.PostForm("content"),
		CurrentImage: c.PostForm("currentImage"),
	}
	image, closeFile, err := formUpload(c, "image")
	form.Image = image
	return form, closeFile, err
}

func CreatePostPageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "editor.html", editorPage(c, "", services.PostForm{Category: models.DefaultCategory}))
	}
}

// CreatePostHandler publishes a post and opens it.
func CreatePostHandler(svc *services.EditorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, closeFile, err := readPostForm(c)
		defer closeFile()
		if err != nil {
			c.HTML(http.StatusBadRequest, "editor.html", with(editorPage(c, "", form), gin.H{"Error": "Image upload failed"}))
			return
		}

		post, err := svc.Create(c.Request.Context(), mustSession(c), form)
		if err != nil {
			logFailure(c, "post create failed", err, nil)
			form.Image = nil
			c.HTML(statusFor(err), "editor.html", with(editorPage(c, "", form), gin.H{"Error": services.VisitorMessage(err, msgSomethingWrong)}))
			return
		}
		logger.InfoWithFields("post created", logger.Fields{"post_id": post.ID, "slug": post.Slug})
		c.Redirect(http.StatusSeeOther, "/post/"+post.Slug)
	}
}

// UpdatePostPageHandler prefills the editor from the stored post.
func UpdatePostPageHandler(posts *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		postID := c.Param("postId")
		post, err := posts.ByID(c.Request.Context(), postID)
		if err != nil {
			if errors.Is(err, services.ErrPostNotFound) {
				renderNotFound(c, "This article does not exist.")
				return
			}
			logFailure(c, "post load for update failed", err, logger.Fields{"post_id": postID})
			renderError(c, http.StatusBadGateway, msgSomethingWrong)
			return
		}
		c.HTML(http.StatusOK, "editor.html", editorPage(c, postID, services.PostForm{
			Title:        post.Title,
			Category:     post.CategoryOrDefault(),
			Content:      post.Content,
			CurrentImage: post.Image,
		}))
	}
}

func UpdatePostHandler(svc *services.EditorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		postID := c.Param("postId")
		form, closeFile, err := readPostForm(c)
		defer closeFile()
		if err != nil {
			c.HTML(http.StatusBadRequest, "editor.html", with(editorPage(c, postID, form), gin.H{"Error": "Image upload failed"}))
			return
		}

		post, err := svc.Update(c.Request.Context(), mustSession(c), postID, form)
		if err != nil {
			logFailure(c, "post update failed", err, logger.Fields{"post_id": postID})
			form.Image = nil
			c.HTML(statusFor(err), "editor.html", with(editorPage(c, postID, form), gin.H{"Error": services.VisitorMessage(err, msgSomethingWrong)}))
			return
		}
		c.Redirect(http.StatusSeeOther, "/post/"+post.Slug)
	}
}
