package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	feedH *FeedHandler,
	ratingH *RatingHandler,
	profileH *ProfileHandler,
	systemH *SystemHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y CORS para el frontend local.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), corsMiddleware())

	api := r.Group("/api")

	api.GET("/health", systemH.Health)
	api.GET("/account", systemH.Account)
	api.GET("/traits", systemH.Traits)
	api.GET("/settings", systemH.Settings)
	api.GET("/media/*path", systemH.Media)

	api.GET("/recommendations", feedH.GetRecommendations)
	api.POST("/acquire", feedH.StartAcquire)
	api.GET("/acquire/status", feedH.AcquireStatus)
	api.POST("/acquire/cancel", feedH.CancelAcquire)
	api.POST("/session/profiles", feedH.SessionProfiles)
	api.GET("/filter-options", feedH.FilterOptions)

	api.POST("/like", ratingH.Like)
	api.POST("/skip", ratingH.Skip)
	api.GET("/like-limit", ratingH.LikeLimit)
	api.POST("/message", ratingH.Message)

	api.GET("/profile/:id", profileH.GetProfile)
	api.GET("/me", profileH.GetMe)
	api.GET("/standouts", profileH.GetStandouts)
	api.POST("/save-profiles", profileH.SaveProfiles)
	api.GET("/saved-profiles", profileH.GetSaved)
	api.POST("/saved-profiles/search", profileH.ListSaved)
	api.DELETE("/saved-profiles", profileH.ClearSaved)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// corsMiddleware habilita CORS abierto para el frontend de desarrollo.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
