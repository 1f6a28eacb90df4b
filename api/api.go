// Package api exposes the driver portal's HTTP routes on gin.
package api

import (
	"net/http"
	"time"

	"ridepilot/config"
	"ridepilot/pkg/logger"
	"ridepilot/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine. Token rotation is guarded only when
// cfg.DispatcherJWTSecret is set.
func NewRouter(cfg config.Config, services service.IServiceManager, log logger.ILogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(requestLogger(log))
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	h := &Handler{
		services: services,
		log:      log,
		timeout:  cfg.RequestTimeout,
	}

	r.GET("/health", h.Health)

	driver := r.Group("/api/driver")
	{
		driver.POST("/login", h.Login)
		driver.GET("/auth/", h.AuthByToken)
		driver.GET("/auth/:token", h.AuthByToken)

		rotate := []gin.HandlerFunc{}
		if cfg.DispatcherJWTSecret != "" {
			rotate = append(rotate, dispatcherGuard(cfg.DispatcherJWTSecret))
		} else {
			log.Warning("token rotation is not guarded; set DISPATCHER_JWT_SECRET to require dispatcher auth")
		}
		rotate = append(rotate, h.RegenerateToken)
		driver.POST("/regenerate-token/:driverId", rotate...)

		driver.GET("/:driverUuid/projects", h.Projects)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
