package routes

import (
	"net/http"
	"time"

	_ "brcargo_cotacoes/docs"
	"brcargo_cotacoes/internal/adapter/http/handlers"
	"brcargo_cotacoes/internal/adapter/http/middleware"
	"brcargo_cotacoes/internal/infrastructure/metrics"
	"brcargo_cotacoes/internal/usecase"
	"brcargo_cotacoes/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Dependencies are the built use cases and cross-cutting services the
// router needs. RateLimiter and Metrics are optional.
type Dependencies struct {
	Quotes        usecase.IQuoteUseCase
	Notifications usecase.INotificationUseCase
	Users         interfaces.IUserRepository
	Location      *time.Location
	Logger        *zap.Logger
	Metrics       *metrics.Metrics
	RateLimiter   *middleware.RateLimiter
	CORSOrigins   []string
}

// NewRouter builds the gin engine and wraps it with CORS.
func NewRouter(deps Dependencies) http.Handler {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(log), middleware.Recovery(log))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	// Rotas autenticadas por X-User-ID
	api := v1.Group("")
	if deps.RateLimiter != nil {
		api.Use(deps.RateLimiter.Middleware())
	}
	api.Use(middleware.Identity(deps.Users))
	addQuoteRoutes(api, handlers.NewQuoteHandler(deps.Quotes, deps.Location))
	addNotificationRoutes(api, handlers.NewNotificationHandler(deps.Notifications))

	return corsFor(deps.CORSOrigins).Handler(router)
}

func corsFor(origins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.HeaderUserID},
		MaxAge:         600,
	})
}
