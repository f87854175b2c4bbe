package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lukasw/clubsite/internal/app/controllers"
	"github.com/lukasw/clubsite/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	eventController *controllers.SportEventController,
	referenceController *controllers.ReferenceController,
	membershipController *controllers.MembershipController,
	timerController *controllers.TimerController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/activate", authController.Activate)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Public reference data for the event editor ---
	v1.GET("/sports", referenceController.GetSports)
	v1.GET("/sport-locations", referenceController.GetSportLocations)
	v1.GET("/sport-event-types", referenceController.GetSportEventTypes)
	v1.GET("/sport-clubs", referenceController.GetSportClubs)

	// --- Sport events: readable anonymously, visibility filtered per caller ---
	events := v1.Group("/sport-events")
	events.Use(authMiddleware.OptionalJWTAuth())
	{
		events.GET("", eventController.List)
		events.GET("/:id", eventController.Get)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.Me)

		users := authenticated.Group("/users/me")
		{
			users.PUT("", userController.UpdateProfile)
			users.DELETE("", userController.DeleteAccount)
			users.PUT("/email", userController.ChangeEmail)
			users.PUT("/password", userController.ChangePassword)
		}

		eventsProtected := authenticated.Group("/sport-events")
		{
			eventsProtected.POST("", eventController.Create)
			eventsProtected.PUT("/:id", eventController.Update)
			eventsProtected.DELETE("/:id", eventController.Delete)
		}

		memberships := authenticated.Group("/sport-clubs/:clubId/memberships")
		{
			memberships.POST("", membershipController.Request)
			memberships.GET("", membershipController.List)
			memberships.GET("/me", membershipController.GetOwn)
			memberships.POST("/approve", membershipController.Approve)
			memberships.DELETE("/:userId/sports/:sportId", membershipController.Remove)
		}

		timers := authenticated.Group("/timers")
		{
			timers.GET("", timerController.List)
			timers.POST("", timerController.Create)
			timers.GET("/:id", timerController.Get)
			timers.PUT("/:id", timerController.Update)
			timers.DELETE("/:id", timerController.Delete)
		}
	}
}
