package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/uniconnect/internal/app/controllers"
	"github.com/yigit/uniconnect/internal/middleware"
	"github.com/yigit/uniconnect/internal/pkg/websocket"
)

// Controllers groups the handlers mounted under /api/v1.
type Controllers struct {
	Feed           *controllers.FeedController
	Clubs          *controllers.ClubController
	Events         *controllers.EventController
	Resources      *controllers.ResourceController
	Profiles       *controllers.ProfileController
	CourseReviews  *controllers.CourseReviewController
	Universities   *controllers.UniversityController
	Session        *controllers.SessionController
	IdentityStream *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, gate *middleware.SessionGate) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/health", controllers.Health)
	v1.GET("/feed/categories", c.Feed.Categories)
	v1.GET("/universities", c.Universities.ListUniversities)
	v1.GET("/departments", c.Universities.ListDepartments)

	// The session endpoint answers with null instead of 401 when signed out.
	v1.GET("/session", gate.Optional(), c.Session.CurrentSession)

	// --- Session-gated routes ---
	// The gate aborts before any handler, so no query runs without a session.
	protected := v1.Group("")
	protected.Use(gate.Require())
	{
		session := protected.Group("/session")
		{
			session.POST("/sign-out", c.Session.SignOut)
			session.GET("/events", c.IdentityStream.HandleConnection)
		}

		feed := protected.Group("/feed/posts")
		{
			feed.GET("", c.Feed.ListPosts)
			feed.POST("", c.Feed.CreatePost)
			feed.POST("/:id/like", c.Feed.ToggleLike)
			feed.GET("/:id/comments", c.Feed.ListComments)
			feed.POST("/:id/comments", c.Feed.CreateComment)
		}

		clubs := protected.Group("/clubs")
		{
			clubs.GET("", c.Clubs.ListClubs)
			clubs.GET("/:id/members", c.Clubs.ListMembers)
			clubs.POST("/:id/membership", c.Clubs.JoinClub)
			clubs.DELETE("/:id/membership", c.Clubs.LeaveClub)
		}

		protected.GET("/events/upcoming", c.Events.ListUpcoming)

		resources := protected.Group("/resources")
		{
			resources.GET("", c.Resources.ListResources)
			resources.POST("", c.Resources.CreateResource)
			resources.POST("/:id/download", c.Resources.RecordDownload)
		}

		profile := protected.Group("/profile")
		{
			profile.GET("", c.Profiles.GetOwnProfile)
			profile.PATCH("", c.Profiles.UpdateProfile)
			profile.GET("/:id", c.Profiles.GetProfile)
		}
		protected.GET("/leaderboard", c.Profiles.Leaderboard)

		protected.GET("/course-reviews", c.CourseReviews.ListRatings)
		protected.POST("/course-reviews", c.CourseReviews.CreateReview)
		protected.GET("/course-ratings", c.CourseReviews.ListRatings)
	}
}
