package server

import (
	"net/http"
	"time"

	"content-ops/domain/repository"
	httpHandler "content-ops/interfaces/http"
	"content-ops/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	userHandler httpHandler.IUserHandler,
	videoHandler httpHandler.IVideoHandler,
	publishHandler httpHandler.IPublishHandler,
	scriptHandler httpHandler.IScriptHandler,
	youtubeAuthHandler httpHandler.IYouTubeAuthHandler,
	userRepository repository.IUser,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://dashboard.reimaginehome.tv", "http://localhost:8501", "http://localhost:4200", "https://localhost:4200"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) bool {
			return origin == "https://dashboard.reimaginehome.tv" || origin == "http://localhost:8501" || origin == "http://localhost:4200" || origin == "https://localhost:4200"
		},
		MaxAge: 12 * time.Hour,
	}))

	api := router.Group("api")
	api.Use(middleware.Auth(userRepository))

	router.POST("/login", userHandler.Login)
	router.POST("/register", userHandler.Register)

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// OAuth authentication routes
	if youtubeAuthHandler != nil {
		router.GET("/auth/youtube", youtubeAuthHandler.GetAuthURL)
		router.GET("/auth/youtube/callback", youtubeAuthHandler.HandleCallback)
		api.GET("/youtube/oauth/status", youtubeAuthHandler.Status)
	}

	// Video library
	api.POST("/videos", videoHandler.CreateVideo)
	api.GET("/videos", videoHandler.ListVideos)
	api.GET("/videos/:videoId", videoHandler.GetVideo)
	api.DELETE("/videos/:videoId", videoHandler.DeleteVideo)

	// Publishing
	api.POST("/videos/:videoId/publish", publishHandler.PublishVideo)
	api.GET("/videos/:videoId/publish-status", publishHandler.GetPublishStatus)
	api.GET("/videos/:videoId/publish-history", publishHandler.GetHistory)
	api.GET("/publish/platforms", publishHandler.GetPlatforms)

	// Script tracking (only when the script store is available)
	if scriptHandler != nil {
		api.POST("/scripts", scriptHandler.SaveScript)
		api.GET("/scripts", scriptHandler.ListScripts)
		api.GET("/scripts/:scriptId", scriptHandler.GetScript)
		api.POST("/scripts/:scriptId/video-made", scriptHandler.MarkVideoMade)
	}

	return router
}
