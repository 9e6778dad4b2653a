package api

import (
	"log"
	stdhttp "net/http"
	"strings"
	"time"

	intconfig "vouchergen/internal/config"
	h "vouchergen/internal/http/handlers"
	"vouchergen/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), corsMiddleware(env))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		vouchers := api.Group("/vouchers")
		vouchers.POST("/generate", h.GenerateVouchers)
	}

	return r
}

func corsMiddleware(env intconfig.Env) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Accept", "Origin", "X-Request-ID"},
		ExposeHeaders: []string{
			"Content-Disposition", "X-Request-ID", "X-Validation-Passed",
		},
		MaxAge: 24 * time.Hour,
	}
	if env.CORSOrigins != "" {
		cfg.AllowOrigins = strings.Split(env.CORSOrigins, ",")
	} else {
		cfg.AllowAllOrigins = true
	}
	return cors.New(cfg)
}
