package api

import (
	"github.com/gin-gonic/gin"
	"github.com/talentio/profilehub/internal/api/handler"
	"github.com/talentio/profilehub/internal/api/middleware"
	"github.com/talentio/profilehub/internal/config"
	"github.com/talentio/profilehub/internal/enrich"
	"github.com/talentio/profilehub/internal/logger"
	"github.com/talentio/profilehub/internal/service"
	"github.com/talentio/profilehub/internal/storage"
)

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	builder *service.BuilderService,
	enricher enrich.Enricher,
	objectStore storage.ObjectStorage,
	log *logger.Logger,
	cfg *config.ServerConfig,
) *gin.Engine {
	// Set Gin mode
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.CORS.AllowAllOrigins,
	}))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	profileHandler := handler.NewProfileHandler(builder)
	mediaHandler := handler.NewMediaHandler(enricher, objectStore)

	// Health check
	r.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Profiles
		v1.POST("/profiles/import", profileHandler.Import)
		v1.GET("/profiles", profileHandler.List)
		v1.GET("/profiles/:id", profileHandler.Get)

		// Media
		v1.POST("/analyze-image", mediaHandler.AnalyzeImage)
		v1.POST("/resumes", mediaHandler.UploadResume)
	}

	return r
}
