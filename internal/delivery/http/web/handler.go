package web

import (
	"context"
	"embed"
	"errors"
	"go-jobboard-web/config"
	"go-jobboard-web/internal/delivery/http/middleware"
	"go-jobboard-web/internal/domain"
	"go-jobboard-web/pkg/apperror"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// maxFormBody bounds every form post. It is well above the CV limit so an
// oversized CV still reaches validation and gets the size message.
const maxFormBody = 20 << 20

// SessionEncoder signs a session id into the cookie value.
type SessionEncoder interface {
	Encode(sessionID string) (string, error)
	TTL() time.Duration
}

// LoginGuard locks out emails after repeated failed logins.
type LoginGuard interface {
	IsBlocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email, ip string) (bool, error)
	Clear(ctx context.Context, email string) error
}

// Deps are the page handlers' collaborators. Logins may be nil.
type Deps struct {
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	CompanyUC     domain.CompanyUsecase
	SavedJobUC    domain.SavedJobUsecase
	ContactUC     domain.ContactUsecase
	Sessions      SessionEncoder
	Logins        LoginGuard
	Config        *config.Config
}

type Handler struct {
	jobUC         domain.JobUsecase
	applicationUC domain.ApplicationUsecase
	companyUC     domain.CompanyUsecase
	savedJobUC    domain.SavedJobUsecase
	contactUC     domain.ContactUsecase
	sessions      SessionEncoder
	logins        LoginGuard
	cfg           *config.Config
	now           func() time.Time
}

// LoadTemplates parses the embedded page templates.
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
}

// Register mounts the HTML site on r.
func Register(r *gin.Engine, deps Deps) {
	h := &Handler{
		jobUC:         deps.JobUC,
		applicationUC: deps.ApplicationUC,
		companyUC:     deps.CompanyUC,
		savedJobUC:    deps.SavedJobUC,
		contactUC:     deps.ContactUC,
		sessions:      deps.Sessions,
		logins:        deps.Logins,
		cfg:           deps.Config,
		now:           time.Now,
	}
	cfg := deps.Config

	r.SetHTMLTemplate(template.Must(LoadTemplates()))
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	r.StaticFS("/static", http.FS(static))

	site := r.Group("")
	site.Use(middleware.BodyLimit(maxFormBody, "The request is too large"))
	site.Use(middleware.CSRFMiddleware(cfg.CookieSecure))

	loginLimit := middleware.RateLimit(middleware.LoginRateLimitConfig(cfg))
	uploadLimit := middleware.RateLimit(middleware.UploadRateLimitConfig(cfg))

	site.GET("/", h.Home)
	site.GET("/jobs", h.Jobs)
	site.GET("/jobs/results", h.JobResults)
	site.GET("/jobs/:id", h.JobDetail)
	site.POST("/jobs/:id/apply", uploadLimit, h.Apply)
	site.POST("/jobs/:id/save", h.SaveJob)
	site.GET("/saved-jobs", h.SavedJobs)
	site.POST("/saved-jobs/:id/delete", h.RemoveSavedJob)
	site.GET("/category/:id", h.Category)
	site.GET("/about", h.About)
	site.GET("/contact", h.ContactForm)
	site.POST("/contact", h.SubmitContact)

	company := site.Group("/company")
	{
		company.GET("/login", h.LoginForm)
		company.POST("/login", loginLimit, h.Login)
		company.GET("/signup", h.SignupForm)
		company.POST("/signup", loginLimit, h.Signup)
		company.POST("/logout", h.Logout)

		authed := company.Group("", middleware.RequireCompany())
		authed.GET("/dashboard", h.Dashboard)
		authed.GET("/jobs/post", h.PostJobForm)
		authed.POST("/jobs/post", h.PostJob)
	}

	admin := site.Group("/admin")
	if cfg.AdminAuthEnabled() {
		admin.Use(gin.BasicAuth(gin.Accounts{cfg.AdminUsername: cfg.AdminPassword}))
	}
	{
		admin.GET("/applications", h.AdminApplications)
		admin.GET("/applications/:id", h.AdminApplication)
		admin.POST("/applications/:id/status", h.UpdateApplicationStatus)
		admin.POST("/applications/:id/delete", h.DeleteApplication)
	}
}

// render adds the layout data every page needs.
func (h *Handler) render(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	sess := middleware.SessionFrom(c)
	data["CSRFToken"] = middleware.CSRFToken(c)
	data["SignedIn"] = sess.Authenticated()
	data["Year"] = h.now().Year()
	data["Path"] = c.Request.URL.Path
	data["RequestID"] = middleware.RequestIDFrom(c)
	c.HTML(code, name, data)
}

// paramID parses :id or records a 404.
func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		_ = c.Error(apperror.NotFound("Page not found"))
		return 0, false
	}
	return id, true
}

// errorCode is the status to re-render a form with after err.
func errorCode(err error) int {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// localPath accepts only same-site absolute paths for redirects.
func localPath(p, fallback string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return fallback
	}
	return p
}
