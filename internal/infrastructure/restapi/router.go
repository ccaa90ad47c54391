package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"network_switcher/internal/pkg/utils"
)

// SetupRouter configures the gin engine with middleware and all routes.
func SetupRouter(h *NetworkHandler, zapLogger *zap.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	router.Use(utils.ZapLoggerMiddleware(zapLogger))
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/networks", h.ListNetworks)
		v1.GET("/networks/:chainId", h.GetNetwork)
		v1.GET("/networks/:chainId/health", h.GetNetworkHealth)

		v1.POST("/network/switch", h.StartSwitch)
		v1.GET("/network/switch/:sessionId", h.GetSwitchSession)
		v1.GET("/network/switch/:sessionId/events", h.StreamSwitchSession)

		v1.GET("/status", h.GetStatus)
		v1.GET("/transactions", h.GetTransactions)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return router
}
