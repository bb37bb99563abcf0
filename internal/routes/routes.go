package routes

import (
	"database/sql"
	"net/http"

	"github.com/khushi-1907/virtual-study-group/internal/config"
	"github.com/khushi-1907/virtual-study-group/internal/handlers"
	"github.com/khushi-1907/virtual-study-group/internal/middleware"
	"github.com/khushi-1907/virtual-study-group/internal/service"
	"github.com/khushi-1907/virtual-study-group/internal/ws"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	groupHandler *handlers.GroupHandler,
	messageHandler *handlers.MessageHandler,
	fileHandler *handlers.FileHandler,
	summaryHandler *handlers.SummaryHandler,
	hub *ws.Hub,
	groupSvc *service.GroupService,
	msgSvc *service.MessageService,
	userSvc *service.UserService,
	db *sql.DB,
) {
	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth routes
	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)
	api.POST("/forgot-password", middleware.PasswordResetRateLimit(db), authHandler.ForgotPassword)
	api.POST("/reset-password/:token", authHandler.ResetPassword)

	// Group routes
	groups := api.Group("/groups")
	groups.Use(middleware.AuthRequired())
	{
		groups.POST("", groupHandler.CreateGroup)
		groups.GET("", groupHandler.ListGroups)
		groups.POST("/:id/join", groupHandler.JoinGroup)
		groups.GET("/:id/messages", messageHandler.GetGroupMessages)
		groups.POST("/:id/messages", messageHandler.CreateGroupMessage)
		groups.POST("/:id/upload", fileHandler.UploadFile)
		groups.GET("/:id/files", fileHandler.ListGroupFiles)
	}

	// AI summaries
	api.POST("/summarize", middleware.AuthRequired(), summaryHandler.Summarize)

	// Realtime chat. The token rides in the query string because
	// browsers cannot set headers on WebSocket upgrades.
	api.GET("/ws", func(c *gin.Context) {
		ws.ServeWS(hub, groupSvc, msgSvc, userSvc, c)
	})

	// Uploaded files are served directly off disk.
	r.Static(config.GetConfig().Upload.PublicPath, config.GetConfig().Upload.Dir)
}
