package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skullgoth/opentripboard-sub000/internal/config"
	"github.com/skullgoth/opentripboard-sub000/internal/database"
	"github.com/skullgoth/opentripboard-sub000/internal/handler"
	"github.com/skullgoth/opentripboard-sub000/internal/middleware"
	"github.com/skullgoth/opentripboard-sub000/internal/repository"
	"github.com/skullgoth/opentripboard-sub000/internal/routing"
	"github.com/skullgoth/opentripboard-sub000/internal/service"
)

// SetupRouter wires repositories, services and handlers into the Gin engine
func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "OpenTripBoard API is running",
		})
	})

	db := database.GetDB()
	tripRepo := repository.NewTripRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)

	router := routing.NewClient(cfg.RoutingURL)

	tripService := service.NewTripService(tripRepo)
	activityService := service.NewActivityService(activityRepo)
	suggestionService := service.NewSuggestionService(suggestionRepo)
	timelineService := service.NewTimelineService(tripRepo, activityRepo, suggestionRepo, router, cfg.RouteDelay)
	editService := service.NewEditService(activityRepo)

	tripHandler := handler.NewTripHandler(tripService, timelineService)
	activityHandler := handler.NewActivityHandler(activityService, editService)
	suggestionHandler := handler.NewSuggestionHandler(suggestionService)
	timelineHandler := handler.NewTimelineHandler(timelineService)
	routeHandler := handler.NewRouteHandler(router)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(300, time.Minute))
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		trips := api.Group("/trips")
		{
			trips.GET("", tripHandler.GetTrips)
			trips.POST("", tripHandler.CreateTrip)
			trips.GET("/:id", tripHandler.GetTripByID)
			trips.PUT("/:id", tripHandler.UpdateTrip)
			trips.DELETE("/:id", tripHandler.DeleteTrip)

			trips.GET("/:id/timeline", timelineHandler.GetTimeline)

			trips.GET("/:id/activities", activityHandler.GetActivities)
			trips.POST("/:id/activities", activityHandler.CreateActivity)

			trips.GET("/:id/suggestions", suggestionHandler.GetSuggestions)
			trips.POST("/:id/suggestions", suggestionHandler.CreateSuggestion)
		}

		activities := api.Group("/activities")
		{
			activities.PATCH("/:aid", activityHandler.EditActivity)
			activities.DELETE("/:aid", activityHandler.DeleteActivity)
		}

		suggestions := api.Group("/suggestions")
		{
			suggestions.POST("/:sid/vote", suggestionHandler.Vote)
			suggestions.PUT("/:sid/status", suggestionHandler.SetStatus)
			suggestions.DELETE("/:sid", suggestionHandler.DeleteSuggestion)
		}

		api.GET("/route", routeHandler.GetRoute)
		api.GET("/schema/:category", activityHandler.GetFieldSchema)
	}

	return r
}
