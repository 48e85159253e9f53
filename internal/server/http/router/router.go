package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/iowasensors/internal/metrics"
	"github.com/polkiloo/iowasensors/internal/server/http/handlers"
	"github.com/polkiloo/iowasensors/internal/server/http/middleware"
)

// Setup configures the console router with handlers and middleware.
func Setup(facade handlers.CompanionFacade, logger *slog.Logger, m *metrics.Metrics) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger, m))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	sessionHandler := handlers.NewSessionHandler(facade)
	accountHandler := handlers.NewAccountHandler(facade)
	storeHandler := handlers.NewStoreHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)
	chatHandler := handlers.NewChatHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	sensorHandler := handlers.NewSensorHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/metrics", gin.WrapH(m.Handler()))

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	session := api.Group("/session")
	session.POST("/login", sessionHandler.Login)
	session.GET("", sessionHandler.Current)
	session.DELETE("", sessionHandler.Logout)

	account := api.Group("/account")
	account.POST("/register", accountHandler.Register)
	account.POST("/reset-password", accountHandler.ResetPassword)

	api.GET("/store/products", storeHandler.Products)
	api.GET("/payment/confirm", storeHandler.ConfirmPayment)

	cart := api.Group("/cart")
	cart.GET("", cartHandler.Items)
	cart.DELETE("", cartHandler.Clear)
	cart.POST("/items", cartHandler.Add)
	cart.PUT("/items/:id", cartHandler.UpdateQuantity)
	cart.DELETE("/items/:id", cartHandler.Remove)

	signedIn := api.Group("")
	signedIn.Use(middleware.SessionRequired(facade, logger))

	admin := signedIn.Group("/admin/orders")
	admin.GET("", adminHandler.Board)
	admin.POST("/refresh", adminHandler.Refresh)
	admin.POST("/more", adminHandler.More)
	admin.POST("/:id/complete", adminHandler.Complete)

	chat := signedIn.Group("/chat")
	chat.GET("/messages", chatHandler.Messages)
	chat.PUT("/input", chatHandler.SetInput)
	chat.POST("/send", chatHandler.Send)
	chat.PUT("/:friendId", chatHandler.Mount)
	chat.DELETE("", chatHandler.Unmount)

	sensors := signedIn.Group("/sensors")
	sensors.POST("/add", sensorHandler.Add)
	sensors.POST("/register", sensorHandler.Register)

	return engine
}
