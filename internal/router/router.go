package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipemint/backend/config"
	"github.com/pageza/recipemint/backend/internal/api"
	"github.com/pageza/recipemint/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(cfg *config.Config, deps api.Deps) *gin.Engine {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	api.RegisterRoutes(router, deps)
	return router
}
