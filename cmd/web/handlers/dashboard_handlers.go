package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kalshield/cmd/internal/logger"
	"kalshield/cmd/web/auth"
	"kalshield/cmd/web/dto"
	"kalshield/cmd/web/middleware"
	"kalshield/cmd/web/services"
	"kalshield/models"
	"kalshield/querystate"
)

const (
	tabProfile  = "profile"
	tabDash     = "dash"
	tabPosts    = "posts"
	tabUsers    = "users"
	tabComments = "comments"
)

func adminTab(tab string) bool {
	switch tab {
	case tabDash, tabPosts, tabUsers, tabComments:
		return true
	}
	return false
}

// DashboardHandler renders /dashboard?tab=... Unknown tabs fall back to profile.
func DashboardHandler(svc *services.DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderDashboard(c, svc, c.Query("tab"), http.StatusOK, nil)
	}
}

func renderDashboard(c *gin.Context, svc *services.DashboardService, tab string, status int, extra gin.H) {
	sess := mustSession(c)
	if tab != tabProfile && !adminTab(tab) {
		tab = tabProfile
	}
	if adminTab(tab) && !sess.IsAdmin {
		renderError(c, http.StatusForbidden, "You are not allowed to view this page.")
		return
	}

	data := with(page(c, "Dashboard"), gin.H{"Tab": tab})
	ctx := c.Request.Context()
	var err error
	switch tab {
	case tabDash:
		var stats dto.DashboardStatsDTO
		stats, err = svc.Overview(ctx, sess)
		if err == nil {
			data["Stats"] = &stats
		}
	case tabPosts:
		data["Posts"], err = svc.Posts(ctx, sess, 0)
	case tabUsers:
		data["Users"], err = svc.Users(ctx, sess, 0)
	case tabComments:
		data["Comments"], err = svc.Comments(ctx, sess, 0)
	}
	if err != nil {
		logFailure(c, "dashboard load failed", err, logger.Fields{"tab": tab})
		data["Error"] = services.VisitorMessage(err, msgSomethingWrong)
		// empty tables instead of missing ones
		data["Posts"] = querystate.Results[dto.PostCardDTO]{}
		data["Users"] = querystate.Results[struct{}]{}
		data["Comments"] = querystate.Results[struct{}]{}
	}
	c.HTML(status, "dashboard.html", with(data, extra))
}

// DashboardMoreHandler returns the next rows of a table as an HTML fragment.
func DashboardMoreHandler(svc *services.DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		table := dto.DashboardTable(c.Param("table"))
		if !table.Valid() {
			c.String(http.StatusNotFound, "unknown table")
			return
		}
		start, _ := strconv.Atoi(c.Query(querystate.KeyStartIndex))
		if start < 0 {
			start = 0
		}

		sess := mustSession(c)
		ctx := c.Request.Context()
		var (
			items any
			more  bool
			err   error
		)
		switch table {
		case dto.TablePosts:
			var res querystate.Results[dto.PostCardDTO]
			res, err = svc.Posts(ctx, sess, start)
			items, more = res.Items, res.ShowMore
		case dto.TableUsers:
			var res querystate.Results[models.User]
			res, err = svc.Users(ctx, sess, start)
			items, more = res.Items, res.ShowMore
		case dto.TableComments:
			var res querystate.Results[models.Comment]
			res, err = svc.Comments(ctx, sess, start)
			items, more = res.Items, res.ShowMore
		}
		if err != nil {
			logFailure(c, "dashboard show more failed", err, logger.Fields{"table": string(table)})
			c.String(http.StatusBadGateway, msgSomethingWrong)
			return
		}

		c.Header(HeaderShowMore, strconv.FormatBool(more))
		c.HTML(http.StatusOK, "dashboard_rows.html", gin.H{"Table": string(table), "Items": items})
	}
}

// deleteHandler runs a dashboard delete and returns to the table. Failures
// are logged and the row stays.
func deleteHandler(tab string, del func(c *gin.Context, sess auth.Session, id string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := del(c, mustSession(c), id); err != nil {
			logFailure(c, "dashboard delete failed", err, logger.Fields{"tab": tab, "id": id})
		}
		c.Redirect(http.StatusSeeOther, "/dashboard?tab="+tab)
	}
}

func DeletePostHandler(svc *services.DashboardService) gin.HandlerFunc {
	return deleteHandler(tabPosts, func(c *gin.Context, sess auth.Session, id string) error {
		return svc.DeletePost(c.Request.Context(), sess, id)
	})
}

func DeleteUserHandler(svc *services.DashboardService) gin.HandlerFunc {
	return deleteHandler(tabUsers, func(c *gin.Context, sess auth.Session, id string) error {
		return svc.DeleteUser(c.Request.Context(), sess, id)
	})
}

func DeleteDashboardCommentHandler(svc *services.DashboardService) gin.HandlerFunc {
	return deleteHandler(tabComments, func(c *gin.Context, sess auth.Session, id string) error {
		return svc.DeleteComment(c.Request.Context(), sess, id)
	})
}

// UpdateProfileHandler saves the profile form and refreshes the session.
func UpdateProfileHandler(dash *services.DashboardService, profile *services.ProfileService, authSvc *services.AuthService, cookie auth.CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := mustSession(c)

		picture, closeFile, err := formUpload(c, "profilePicture")
		if err != nil {
			renderDashboard(c, dash, tabProfile, http.StatusBadRequest, gin.H{"ProfileError": msgProfileImage})
			return
		}
		defer closeFile()

		user, err := profile.Update(c.Request.Context(), sess, services.ProfileInput{
			Username: c.PostForm("username"),
			Email:    c.PostForm("email"),
			Password: c.PostForm("password"),
			Picture:  picture,
		})
		if err != nil {
			if statusFor(err) != http.StatusUnprocessableEntity {
				logFailure(c, "profile update failed", err, logger.Fields{"user_id": sess.UserID})
			}
			renderDashboard(c, dash, tabProfile, statusFor(err), gin.H{"ProfileError": services.VisitorMessage(err, msgSomethingWrong)})
			return
		}

		updated := sess.WithUser(user)
		token, err := authSvc.Issue(updated)
		if err != nil {
			logFailure(c, "session refresh failed", err, nil)
		} else {
			auth.SetSessionCookie(c, cookie, token)
			middleware.SetSession(c, updated)
		}
		renderDashboard(c, dash, tabProfile, http.StatusOK, gin.H{"ProfileSuccess": "User's profile updated successfully"})
	}
}

// DeleteAccountHandler deletes the visitor's own account and signs them out.
func DeleteAccountHandler(dash *services.DashboardService, profile *services.ProfileService, cookie auth.CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := mustSession(c)
		if err := profile.Delete(c.Request.Context(), sess); err != nil {
			logFailure(c, "account delete failed", err, logger.Fields{"user_id": sess.UserID})
			renderDashboard(c, dash, tabProfile, statusFor(err), gin.H{"ProfileError": services.VisitorMessage(err, msgSomethingWrong)})
			return
		}
		auth.ClearSessionCookie(c, cookie)
		c.Redirect(http.StatusSeeOther, "/sign-in")
	}
}

const msgProfileImage = "Could not upload image (File must be less than 2MB)"
