package router

import (
	"time"

	"itabus/internal/config"
	"itabus/internal/handler"
	"itabus/internal/middleware"
	"itabus/internal/model"
	"itabus/internal/repository"
	"itabus/internal/service"
	"itabus/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, ratesSvc service.RatesService, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	quoteEventRepo := repository.NewQuoteEventRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	catalogSvc := service.NewCatalogService(itemRepo)
	projectSvc := service.NewProjectService(projectRepo, itemRepo, ratesSvc, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	itemsH := handler.NewItemsHandler(catalogSvc)
	ratesH := handler.NewRatesHandler(ratesSvc)
	projectsH := handler.NewProjectsHandler(projectSvc, cfg.PDFStoragePath)
	quoteEventsH := handler.NewQuoteEventsHandler(quoteEventRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/me", authH.Me)

		// Catalog — any authenticated user reads, only admin writes
		v1.GET("/items", itemsH.List)
		items := v1.Group("/items", middleware.RequireRole(model.RoleAdmin))
		{
			items.POST("", itemsH.Create)
			items.PUT("/:id", itemsH.Update)
			items.DELETE("/:id", itemsH.Delete)
		}

		// Global rates — read for all, update admin only
		v1.GET("/global-rates", ratesH.Get)
		v1.PUT("/global-rates", middleware.RequireRole(model.RoleAdmin), ratesH.Update)

		// Projects — any authenticated user; ownership enforced in the service
		projects := v1.Group("/projects")
		{
			projects.POST("", projectsH.Create)
			projects.GET("", projectsH.List)
			projects.GET("/:id", projectsH.Get)
			projects.GET("/:id/pdf", projectsH.DownloadPDF)
			projects.DELETE("/:id", projectsH.Delete)
		}

		// Stateless what-if quotation
		v1.POST("/calculate-price", projectsH.Calculate)

		// Administration
		users := v1.Group("/users", middleware.RequireRole(model.RoleAdmin))
		{
			users.GET("", usersH.List)
			users.DELETE("/:id", usersH.Delete)
		}
		v1.GET("/quote-events", middleware.RequireRole(model.RoleAdmin), quoteEventsH.ListRecent)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
