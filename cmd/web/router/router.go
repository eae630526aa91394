package router

import (
	"html/template"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"kalshield/cmd/web/auth"
	"kalshield/cmd/web/clients/blogclient"
	"kalshield/cmd/web/handlers"
	"kalshield/cmd/web/middleware"
	"kalshield/cmd/web/services"
	_ "kalshield/docs"
	"kalshield/storage"
)

// Options are the dependencies of the web tier.
type Options struct {
	Client      *blogclient.Client
	Sessions    *auth.SessionManager
	Cookie      auth.CookieOptions
	Uploader    storage.Uploader
	MaxUpload   int64
	CORSOrigins []string
	Templates   *template.Template
}

func New(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestTrace(), middleware.Theme(), middleware.LoadSession(opts.Sessions, opts.Cookie))
	r.SetHTMLTemplate(opts.Templates)
	r.MaxMultipartMemory = 8 << 20

	client := opts.Client
	commentsSvc := services.NewCommentService(client)
	postsSvc := services.NewPostService(client, commentsSvc)
	searchSvc := services.NewSearchService(client)
	authSvc := services.NewAuthService(client, opts.Sessions)
	dashSvc := services.NewDashboardService(client)
	profileSvc := services.NewProfileService(client, opts.Uploader, opts.MaxUpload)
	editorSvc := services.NewEditorService(client, opts.Uploader, opts.MaxUpload)

	requireUser := middleware.RequireUser()
	requireAdmin := middleware.RequireAdmin(handlers.Forbidden())

	// Health check
	r.GET("/health", handlers.HealthHandler(client))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Pages
	r.GET("/", handlers.HomeHandler(postsSvc))
	r.GET("/about", handlers.AboutHandler())
	r.GET("/projects", handlers.ProjectsHandler())
	r.GET("/feed.xml", handlers.FeedHandler(postsSvc))
	r.POST("/theme/toggle", handlers.ToggleThemeHandler())

	r.GET("/search", handlers.SearchPageHandler(searchSvc))
	r.POST("/search", handlers.SearchSubmitHandler(searchSvc))
	r.GET("/search/more", handlers.SearchMoreHandler(searchSvc))

	r.GET("/post/:slug", handlers.PostPageHandler(postsSvc))
	r.POST("/post/:slug/comments", requireUser, handlers.CreateCommentHandler(postsSvc, commentsSvc))
	comments := r.Group("/comments/:id", requireUser)
	{
		comments.POST("/like", handlers.LikeCommentHandler(commentsSvc))
		comments.POST("/edit", handlers.EditCommentHandler(postsSvc, commentsSvc))
		comments.POST("/delete", handlers.DeleteCommentHandler(commentsSvc))
	}

	// Auth
	r.GET("/sign-in", handlers.SignInPageHandler())
	r.POST("/sign-in", handlers.SignInHandler(authSvc, opts.Cookie))
	r.GET("/sign-up", handlers.SignUpPageHandler())
	r.POST("/sign-up", handlers.SignUpHandler(authSvc))
	r.POST("/sign-out", handlers.SignOutHandler(authSvc, opts.Cookie))

	// Private
	dash := r.Group("/dashboard", requireUser)
	{
		dash.GET("", handlers.DashboardHandler(dashSvc))
		dash.POST("/profile", handlers.UpdateProfileHandler(dashSvc, profileSvc, authSvc, opts.Cookie))
		dash.POST("/profile/delete", handlers.DeleteAccountHandler(dashSvc, profileSvc, opts.Cookie))
	}
	admin := r.Group("/dashboard", requireAdmin)
	{
		admin.GET("/more/:table", handlers.DashboardMoreHandler(dashSvc))
		admin.POST("/posts/:id/delete", handlers.DeletePostHandler(dashSvc))
		admin.POST("/users/:id/delete", handlers.DeleteUserHandler(dashSvc))
		admin.POST("/comments/:id/delete", handlers.DeleteDashboardCommentHandler(dashSvc))
	}
	r.GET("/create-post", requireAdmin, handlers.CreatePostPageHandler())
	r.POST("/create-post", requireAdmin, handlers.CreatePostHandler(editorSvc))
	r.GET("/update-post/:postId", requireAdmin, handlers.UpdatePostPageHandler(postsSvc))
	r.POST("/update-post/:postId", requireAdmin, handlers.UpdatePostHandler(editorSvc))

	// v1 JSON API
	api := r.Group("/api/v1", middleware.CORS(opts.CORSOrigins))
	{
		api.GET("/posts/search", handlers.SearchPostsAPIHandler(searchSvc))
		api.OPTIONS("/posts/search", func(c *gin.Context) {})
	}

	r.NoRoute(handlers.NotFound())

	return r
}
