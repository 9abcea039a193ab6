// Package server exposes the analysis pipelines over HTTP.
package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Config holds the router dependencies.
type Config struct {
	AnalyzeHandler *AnalyzeHandler
	AllowOrigins   []string
}

// NewRouter builds the gin engine with CORS and the API routes.
func NewRouter(cfg *Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	}
	router.Use(cors.New(corsCfg))

	api := router.Group("/api")
	{
		api.GET("/analyze-crypto", cfg.AnalyzeHandler.AnalyzeCrypto)
		api.GET("/analyze-crypto-volume", cfg.AnalyzeHandler.AnalyzeCryptoVolume)
	}

	return router
}
