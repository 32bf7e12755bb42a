package v1

import (
	"go-jobboard-web/config"
	"go-jobboard-web/internal/delivery/http/middleware"
	"go-jobboard-web/internal/delivery/http/web"
	"go-jobboard-web/internal/domain"
	"go-jobboard-web/pkg/apperror"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SessionCodec signs and verifies session cookies.
type SessionCodec interface {
	web.SessionEncoder
	middleware.SessionTokens
}

type RouterDeps struct {
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	CompanyUC     domain.CompanyUsecase
	SavedJobUC    domain.SavedJobUsecase
	ContactUC     domain.ContactUsecase
	Health        HealthChecker
	Sessions      SessionCodec
	Logins        web.LoginGuard
	SessionStore  domain.SessionStore
	Config        *config.Config
}

// maxMultipartMemory is how much of a multipart body is held in memory
// before spilling to temp files.
const maxMultipartMemory = 8 << 20

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	r := gin.New()
	r.MaxMultipartMemory = maxMultipartMemory

	// Global Middlewares
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.CookieSecure))
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg)))
	r.Use(middleware.SessionLoader(deps.Sessions, deps.SessionStore, cfg.CookieSecure))

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperror.NotFound("Page not found"))
	})

	v1 := r.Group("/v1")
	v1.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	// Preflights need a matching route for the group middleware to run.
	v1.OPTIONS("/*path", func(c *gin.Context) {})

	v1.GET("/health", healthHandler(deps.Health))
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	NewJobHandler(v1, deps.JobUC)
	NewContactHandler(v1, deps.ContactUC)

	admin := v1.Group("/admin")
	if cfg.AdminAuthEnabled() {
		admin.Use(gin.BasicAuth(gin.Accounts{cfg.AdminUsername: cfg.AdminPassword}))
	}
	NewApplicationHandler(admin, deps.ApplicationUC)

	web.Register(r, web.Deps{
		JobUC:         deps.JobUC,
		ApplicationUC: deps.ApplicationUC,
		CompanyUC:     deps.CompanyUC,
		SavedJobUC:    deps.SavedJobUC,
		ContactUC:     deps.ContactUC,
		Sessions:      deps.Sessions,
		Logins:        deps.Logins,
		Config:        cfg,
	})

	return r
}
