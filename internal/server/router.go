package server

import (
	"github.com/gin-gonic/gin"
	"github.com/pratham-associates/listings/internal/ai"
	"github.com/pratham-associates/listings/internal/config"
	apierrors "github.com/pratham-associates/listings/internal/errors"
	"github.com/pratham-associates/listings/internal/handlers"
	"github.com/pratham-associates/listings/internal/logger"
	"github.com/pratham-associates/listings/internal/middleware"
	"github.com/pratham-associates/listings/internal/repository"
	"github.com/pratham-associates/listings/internal/services"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Config  *config.Config
	Store   *repository.Store
	Advisor ai.Advisor
	Logger  *logger.Logger
}

// NewRouter builds the gin engine with middleware and every route registered.
func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger

	apierrors.RegisterBindingTagNames()

	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS))

	propertyService := services.NewPropertyService(deps.Store.Properties, log.WithComponent("properties"))
	recommendationService := services.NewRecommendationService(
		deps.Store.Properties,
		deps.Store.Recommendations,
		deps.Advisor,
		log.WithComponent("recommendations"),
	)
	inquiryService := services.NewInquiryService(deps.Store.Inquiries, deps.Advisor, log.WithComponent("inquiries"))

	healthHandler := handlers.NewHealthHandler(deps.Store, cfg.Server.Env, cfg.Server.ServiceName)
	propertyHandler := handlers.NewPropertyHandler(propertyService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	inquiryHandler := handlers.NewInquiryHandler(inquiryService)

	// Model-backed routes share one per-client budget.
	aiLimit := middleware.RateLimit(middleware.NewRateLimiter(cfg.AI.RateLimitRPS, cfg.AI.RateLimitBurst))

	router.GET("/health/ready", healthHandler.Ready)

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Health)
		api.GET("/v1/info", healthHandler.Info)

		properties := api.Group("/properties")
		{
			properties.GET("", propertyHandler.List)
			properties.GET("/featured", propertyHandler.Featured)
			properties.GET("/search", propertyHandler.Search)
			properties.GET("/:id", propertyHandler.Get)

			if cfg.Server.AdminEnabled {
				properties.POST("", propertyHandler.Create)
				properties.PATCH("/:id", propertyHandler.Update)
			}
		}

		api.POST("/recommendations", aiLimit, recommendationHandler.Recommend)
		api.GET("/recommendations", recommendationHandler.ListByUser)

		api.POST("/inquiries", aiLimit, inquiryHandler.Submit)
		api.GET("/inquiries", inquiryHandler.List)
	}

	return router
}
