package http

import (
	"github.com/gin-gonic/gin"

	"pfas-demo/internal/bootstrap"
	"pfas-demo/internal/transport/http/handler"
	"pfas-demo/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.Recovery())

	svc := app.Services
	healthHandler := handler.NewHealthHandler(app)
	authHandler := handler.NewAuthHandler(svc.Auth)
	uploadHandler := handler.NewUploadHandler(svc.Uploads)
	documentHandler := handler.NewDocumentHandler(svc.Documents)
	chemicalHandler := handler.NewChemicalHandler(svc.Chemicals)
	statsHandler := handler.NewStatsHandler(svc.Stats)
	chatHandler := handler.NewChatHandler(svc.Chat)

	router.GET("/healthz", healthHandler.Check)

	v1 := router.Group("/api/v1")
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	secured := v1.Group("")
	secured.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	secured.GET("/auth/me", authHandler.Me)

	uploads := secured.Group("/uploads")
	uploads.POST("", uploadHandler.Submit)
	uploads.GET("", uploadHandler.List)
	uploads.GET("/:id", uploadHandler.Get)
	uploads.POST("/:id/approve", uploadHandler.Approve)
	uploads.DELETE("/:id", uploadHandler.Dismiss)

	documents := secured.Group("/documents")
	documents.GET("", documentHandler.List)
	documents.GET("/:id", documentHandler.Get)
	documents.PATCH("/:id/status", documentHandler.UpdateStatus)

	chemicals := secured.Group("/chemicals")
	chemicals.GET("", chemicalHandler.List)
	chemicals.GET("/:id", chemicalHandler.Get)
	chemicals.POST("/:id/review", chemicalHandler.Review)

	secured.GET("/stats", statsHandler.Summary)

	chatGroup := secured.Group("/chat")
	chatGroup.POST("/messages", chatHandler.SendMessage)
	chatGroup.GET("/history", chatHandler.GetHistory)

	return router
}
