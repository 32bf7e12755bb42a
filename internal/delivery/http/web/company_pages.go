package web

import (
	"go-jobboard-web/internal/delivery/http/middleware"
	"go-jobboard-web/internal/domain"
	"go-jobboard-web/pkg/apperror"
	"go-jobboard-web/pkg/logger"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const dashboardPath = "/company/dashboard"

// MsgJobPosted confirms a new job posting.
const MsgJobPosted = "Job posted successfully!"

const MsgLoginBlocked = "Too many failed login attempts. Please try again later."

func (h *Handler) LoginForm(c *gin.Context) {
	if middleware.SessionFrom(c).Authenticated() {
		c.Redirect(http.StatusSeeOther, dashboardPath)
		return
	}
	h.render(c, http.StatusOK, "company_login.html", gin.H{
		"Title": "Company login",
		"Next":  c.Query("next"),
	})
}

func (h *Handler) Login(c *gin.Context) {
	var creds domain.CompanyCredentials
	_ = c.ShouldBind(&creds)
	next := c.PostForm("next")
	ctx := c.Request.Context()

	renderErr := func(code int, msg string) {
		h.render(c, code, "company_login.html", gin.H{
			"Title": "Company login",
			"Email": creds.Email,
			"Next":  next,
			"Error": msg,
		})
	}

	if h.logins != nil {
		blocked, err := h.logins.IsBlocked(ctx, creds.Email)
		if err != nil {
			logger.Log.ErrorContext(ctx, "Login block check failed", "request_id", middleware.RequestIDFrom(c), "error", err)
		}
		if blocked {
			renderErr(http.StatusTooManyRequests, MsgLoginBlocked)
			return
		}
	}

	sess, err := h.companyUC.Login(ctx, &creds)
	if err != nil {
		if h.logins != nil && errorCode(err) == http.StatusUnprocessableEntity {
			if blocked, trackErr := h.logins.RecordFailure(ctx, creds.Email, c.ClientIP()); trackErr != nil {
				logger.Log.ErrorContext(ctx, "Failed to record login failure", "request_id", middleware.RequestIDFrom(c), "error", trackErr)
			} else if blocked {
				renderErr(http.StatusTooManyRequests, MsgLoginBlocked)
				return
			}
		}
		renderErr(errorCode(err), apperror.Message(err, "Login failed. Please try again."))
		return
	}
	if h.logins != nil {
		if err := h.logins.Clear(ctx, creds.Email); err != nil {
			logger.Log.ErrorContext(ctx, "Failed to clear login failures", "request_id", middleware.RequestIDFrom(c), "error", err)
		}
	}
	if err := h.issueCookie(c, sess); err != nil {
		_ = c.Error(apperror.Internal(err))
		return
	}
	c.Redirect(http.StatusSeeOther, localPath(next, dashboardPath))
}

func (h *Handler) SignupForm(c *gin.Context) {
	h.render(c, http.StatusOK, "company_signup.html", gin.H{
		"Title": "Register your company",
		"Form":  &domain.CompanyRegistration{},
	})
}

func (h *Handler) Signup(c *gin.Context) {
	var reg domain.CompanyRegistration
	_ = c.ShouldBind(&reg)
	year, yearErr := optionalInt(c.PostForm("founded_year"))
	reg.FoundedYear = year

	renderErr := func(code int, msg string) {
		h.render(c, code, "company_signup.html", gin.H{
			"Title": "Register your company",
			"Form":  &reg,
			"Error": msg,
		})
	}
	if yearErr != nil {
		renderErr(http.StatusUnprocessableEntity, "Founded year must be a number")
		return
	}

	sess, err := h.companyUC.Register(c.Request.Context(), &reg)
	if err != nil {
		renderErr(errorCode(err), apperror.Message(err, "Registration failed. Please try again."))
		return
	}
	if err := h.issueCookie(c, sess); err != nil {
		_ = c.Error(apperror.Internal(err))
		return
	}
	c.Redirect(http.StatusSeeOther, dashboardPath)
}

func (h *Handler) issueCookie(c *gin.Context, sess *domain.Session) error {
	token, err := h.sessions.Encode(sess.ID)
	if err != nil {
		return err
	}
	middleware.SetSessionCookie(c, token, h.sessions.TTL(), h.cfg.CookieSecure)
	return nil
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.companyUC.Logout(c.Request.Context(), middleware.SessionFrom(c)); err != nil {
		logger.Log.ErrorContext(c.Request.Context(), "Logout failed", "request_id", middleware.RequestIDFrom(c), "error", err)
	}
	middleware.ClearSessionCookie(c, h.cfg.CookieSecure)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.companyUC.Dashboard(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	data := gin.H{
		"Title": "Company dashboard",
		"Stats": stats,
	}
	if c.Query("posted") == "1" {
		data["Success"] = MsgJobPosted
	}
	h.render(c, http.StatusOK, "company_dashboard.html", data)
}

func (h *Handler) PostJobForm(c *gin.Context) {
	h.renderPostJob(c, http.StatusOK, &domain.JobPosting{JobType: domain.JobTypeFullTime}, "")
}

func (h *Handler) renderPostJob(c *gin.Context, code int, posting *domain.JobPosting, errMsg string) {
	h.render(c, code, "post_job.html", gin.H{
		"Title":            "Post a job",
		"Form":             posting,
		"Categories":       h.jobUC.Categories(c.Request.Context()),
		"JobTypes":         domain.JobTypes,
		"ExperienceLevels": domain.ExperienceLevels,
		"Error":            errMsg,
	})
}

func (h *Handler) PostJob(c *gin.Context) {
	var posting domain.JobPosting
	_ = c.ShouldBind(&posting)

	minSalary, errMin := optionalInt64(c.PostForm("salary_min"))
	maxSalary, errMax := optionalInt64(c.PostForm("salary_max"))
	posting.SalaryMin, posting.SalaryMax = minSalary, maxSalary
	if errMin != nil || errMax != nil {
		h.renderPostJob(c, http.StatusUnprocessableEntity, &posting, "Salary must be a whole number")
		return
	}

	if _, err := h.companyUC.PostJob(c.Request.Context(), middleware.SessionFrom(c), &posting); err != nil {
		h.renderPostJob(c, errorCode(err), &posting, apperror.Message(err, "Could not post the job. Please try again."))
		return
	}
	c.Redirect(http.StatusSeeOther, dashboardPath+"?posted=1")
}

// optionalInt treats a blank field as absent.
func optionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optionalInt64(s string) (*int64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
