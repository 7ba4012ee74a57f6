package http

import (
	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-minimax/internal/transport/http/middleware"
	"github.com/iamasit07/connect4-minimax/internal/transport/websocket"
	"go.uber.org/zap"
)

// NewRouter wires the HTTP API and the websocket endpoint.
func NewRouter(games *GameHandler, ws *websocket.Handler, allowedOrigins []string, log *zap.SugaredLogger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log.Named("http")))
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(allowedOrigins, log))

	api := router.Group("/api")
	{
		api.GET("/health", games.Health)
		api.GET("/games", games.ListGames)
		api.POST("/analyze", games.Analyze)
	}

	router.GET("/ws", ws.HandleWebSocket)

	return router
}

func requestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Debugw("Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}
