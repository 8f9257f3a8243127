// Package server assembles the HTTP API.
package server

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-repair-service/internal/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Registrar mounts a handler's routes under the API group.
type Registrar interface {
	Register(rg *gin.RouterGroup)
}

type Health interface {
	RemoteUp() bool
}

type Config struct {
	AllowOrigins []string
	Development  bool
}

func NewRouter(cfg Config, health Health, log logger.ZapLogger, handlers ...Registrar) *gin.Engine {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowOrigins) == 0 || (len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Accept-Language")
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		remote := "down"
		if health.RemoteUp() {
			remote = "up"
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "remote": remote})
	})

	v1 := r.Group("/api/v1")
	for _, h := range handlers {
		h.Register(v1)
	}
	return r
}

func requestLogger(log logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			log.Error("HTTP request", append(fields, zap.String("errors", c.Errors.String()))...)
		case c.Writer.Status() >= http.StatusBadRequest:
			log.Warn("HTTP request", fields...)
		default:
			log.Debug("HTTP request", fields...)
		}
	}
}
