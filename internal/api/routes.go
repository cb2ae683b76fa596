package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Oganesson0221/debate-ai/internal/api/handlers"
	"github.com/Oganesson0221/debate-ai/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services) {
	roomHandler := handlers.NewRoomHandler(services.Room)
	speechHandler := handlers.NewSpeechHandler(services.Speech, services.Room)
	wsHandler := handlers.NewWebSocketHandler(services.Hub, services.Router)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	// Live connection endpoint. Kept off the /api tree so the
	// request/response API and the event transport stay distinct.
	r.GET("/ws", wsHandler.HandleWebSocket)

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	rooms := api.Group("/rooms")
	{
		rooms.POST("", roomHandler.CreateRoom)
		rooms.GET("/:code", roomHandler.GetRoom)
		rooms.POST("/:code/join", roomHandler.JoinRoom)
		rooms.POST("/:code/start", roomHandler.StartDebate)
		rooms.POST("/:code/end", roomHandler.EndDebate)
		rooms.POST("/:code/advance", roomHandler.AdvanceSpeaker)

		rooms.GET("/:code/speeches", speechHandler.ListSpeeches)
		rooms.POST("/:code/speeches", speechHandler.CreateSpeech)

		rooms.GET("/:code/pois", roomHandler.ListPOIs)
		rooms.POST("/:code/pois", roomHandler.OfferPOI)
		rooms.POST("/:code/pois/:id/respond", roomHandler.RespondPOI)

		rooms.GET("/:code/violations", roomHandler.ListViolations)
		rooms.POST("/:code/violations", roomHandler.ReportViolation)
	}

	speeches := api.Group("/speeches")
	{
		speeches.POST("/:id/end", speechHandler.EndSpeech)
		speeches.POST("/:id/segments", speechHandler.AddSegment)
		speeches.GET("/:id/segments", speechHandler.ListSegments)
	}
}
