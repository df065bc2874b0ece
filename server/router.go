package server

import (
	"time"

	"creatorpulse/domain/repository"
	httpHandler "creatorpulse/interfaces/http"
	"creatorpulse/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	userHandler httpHandler.IUserHandler,
	healthHandler httpHandler.IHealthHandler,
	challengeHandler *httpHandler.ChallengeHandler,
	trackerHandler *httpHandler.TrackerHandler,
	youtubeHandler httpHandler.IYouTubeHandler,
	youtubeAuthHandler httpHandler.IYouTubeAuthHandler,
	userRepository repository.IUser,
	cronSecret string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "https://localhost:4200", "http://localhost:4201", "https://localhost:4201"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/login", userHandler.Login)
	router.POST("/register", userHandler.Register)
	router.GET("/healthz", healthHandler.Health)

	// Scheduler entrypoint. Guarded by the shared cron secret, not user auth.
	jobs := router.Group("/jobs")
	jobs.Use(middleware.CronAuth(cronSecret))
	jobs.POST("/upload-tracker", trackerHandler.Run)
	jobs.GET("/upload-tracker", trackerHandler.Describe)

	api := router.Group("api")
	api.Use(middleware.Auth(userRepository))

	challenges := api.Group("/challenges")
	{
		challenges.POST("", challengeHandler.Create)
		challenges.GET("", challengeHandler.List)
		challenges.GET("/:id", challengeHandler.Get)
		challenges.POST("/:id/pause", challengeHandler.Pause)
		challenges.POST("/:id/resume", challengeHandler.Resume)
		challenges.PATCH("/:id/slots", challengeHandler.UpdateSlot)
		challenges.GET("/:id/uploads", challengeHandler.ListUploads)
	}

	api.POST("/youtube/token", youtubeAuthHandler.SaveToken)
	api.GET("/youtube/status", youtubeAuthHandler.Status)

	// YouTube lookup routes (only if the client is configured)
	if youtubeHandler != nil {
		youtube := api.Group("/youtube")
		{
			youtube.GET("/channels/:channelId", youtubeHandler.GetChannel)
			youtube.GET("/channels/:channelId/uploads", youtubeHandler.GetRecentUploads)
			youtube.GET("/videos/:videoId", youtubeHandler.GetVideo)
			youtube.GET("/videos", youtubeHandler.GetVideoStatistics)
		}
	}

	return router
}
