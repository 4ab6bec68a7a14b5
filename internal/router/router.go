package router

import (
	"html/template"
	"time"

	"github.com/aargibay-evolmind/excusator-3000/internal/config"
	"github.com/aargibay-evolmind/excusator-3000/internal/csrf"
	"github.com/aargibay-evolmind/excusator-3000/internal/handler"
	"github.com/aargibay-evolmind/excusator-3000/internal/middleware"
	"github.com/aargibay-evolmind/excusator-3000/internal/repository"
	"github.com/aargibay-evolmind/excusator-3000/internal/service"
	"github.com/aargibay-evolmind/excusator-3000/internal/worker"
	"github.com/aargibay-evolmind/excusator-3000/web"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
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

	// Admin templates are embedded in the binary.
	r.SetHTMLTemplate(template.Must(template.ParseFS(web.Templates, "templates/*.html")))

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	excuseRepo := repository.NewExcuseRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg, dispatcher)
	categorySvc := service.NewCategoryService(categoryRepo, cfg)
	excuseSvc := service.NewExcuseService(excuseRepo, categoryRepo)

	csrfStore := csrf.NewStore(rdb, time.Duration(cfg.CSRFTokenTTLMinutes)*time.Minute)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	excusesH := handler.NewExcusesHandler(excuseSvc)
	adminCategoriesH := handler.NewAdminCategoriesHandler(categorySvc, csrfStore)
	adminExcusesH := handler.NewAdminExcusesHandler(excuseSvc, categorySvc, csrfStore)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authH.Register)
			auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		}

		api.GET("/categories", categoriesH.List)
		api.GET("/excuse", excusesH.Random)
		// Pre-database prototype endpoint, kept for old clients.
		api.GET("/excuse/:id", excusesH.Legacy)

		api.GET("/me", middleware.JWTAuth(cfg.JWTSecret), authH.Me)
	}

	// Admin panel — server-rendered, form + anti-forgery token based.
	admin := r.Group("/admin")
	{
		admin.GET("", handler.Dashboard())

		admin.GET("/categories", adminCategoriesH.List)
		admin.POST("/categories", adminCategoriesH.Create)
		admin.POST("/categories/:id", adminCategoriesH.Delete)

		admin.GET("/excuses", adminExcusesH.List)
		admin.GET("/excuses/new", adminExcusesH.NewForm)
		admin.POST("/excuses/new", adminExcusesH.Create)
		admin.GET("/excuses/:id/edit", adminExcusesH.EditForm)
		admin.POST("/excuses/:id/edit", adminExcusesH.Update)
		admin.POST("/excuses/:id", adminExcusesH.Delete)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
