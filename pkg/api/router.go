package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/urmzd/sdfwot/pkg/api/handlers"
	"github.com/urmzd/sdfwot/pkg/convert"
	"github.com/urmzd/sdfwot/pkg/db"
)

// Deps are the services the router exposes. Only Service is required;
// routes for a missing dependency are not registered.
type Deps struct {
	Service  *convert.Service
	History  db.ConversionStore
	Database handlers.Pinger
	Metrics  *Metrics
	Events   *convert.Broadcaster
}

// Router holds the Gin engine and dependencies
type Router struct {
	engine *gin.Engine
	deps   Deps
}

// NewRouter creates a new API router
func NewRouter(deps Deps) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)
	if deps.Metrics != nil {
		engine.Use(deps.Metrics.Middleware())
	}

	router := &Router{
		engine: engine,
		deps:   deps,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	if r.deps.Metrics != nil {
		r.engine.GET("/metrics", r.deps.Metrics.Handler())
	}

	// Health check at root
	healthHandler := handlers.NewHealthHandler(r.deps.Database)
	r.engine.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.engine.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.Health)

		convertHandler := handlers.NewConvertHandler(r.deps.Service)
		v1.POST("/convert", convertHandler.Convert)
		v1.POST("/validate", convertHandler.Validate)

		if r.deps.Events != nil {
			eventsHandler := handlers.NewEventsHandler(r.deps.Events)
			v1.GET("/events", eventsHandler.Events)
		}

		if r.deps.History != nil {
			conversionsHandler := handlers.NewConversionsHandler(r.deps.History)
			conversions := v1.Group("/conversions")
			{
				conversions.GET("", conversionsHandler.ListConversions)
				conversions.GET("/:id", conversionsHandler.GetConversion)
			}
		}
	}
}

// Handler returns the router as an http.Handler
func (r *Router) Handler() http.Handler {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
