package web

import (
	"errors"
	"fmt"
	"go-jobboard-web/internal/domain"
	"go-jobboard-web/pkg/apperror"
	"go-jobboard-web/pkg/validation"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// MsgApplied confirms a submitted application.
const MsgApplied = "Application submitted successfully! The employer will be in touch."

func (h *Handler) Home(c *gin.Context) {
	page := h.jobUC.HomePage(c.Request.Context())
	h.render(c, http.StatusOK, "home.html", gin.H{
		"Title": "Find your next job",
		"Page":  page,
	})
}

// Jobs renders the listing page with results already in place. app.js
// swaps in /jobs/results on filter changes.
func (h *Handler) Jobs(c *gin.Context) {
	filter := domain.JobFilterFromQuery(c.Request.URL.Query())
	page := h.jobUC.SearchPage(c.Request.Context(), filter)
	h.render(c, http.StatusOK, "jobs.html", gin.H{
		"Title":            "Browse jobs",
		"Page":             page,
		"Loading":          domain.Pending[domain.Job](),
		"JobTypes":         domain.JobTypes,
		"ExperienceLevels": domain.ExperienceLevels,
	})
}

// JobResults renders only the result area for the current filter.
func (h *Handler) JobResults(c *gin.Context) {
	filter := domain.JobFilterFromQuery(c.Request.URL.Query())
	results := h.jobUC.SearchJobs(c.Request.Context(), filter)
	c.HTML(http.StatusOK, "job_results", results)
}

func (h *Handler) JobDetail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	extra := gin.H{}
	if c.Query("applied") == "1" {
		extra["Success"] = MsgApplied
	}
	h.renderJobPage(c, id, http.StatusOK, extra)
}

func (h *Handler) renderJobPage(c *gin.Context, id int64, code int, extra gin.H) {
	page, err := h.jobUC.GetJobPage(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	data := gin.H{
		"Title": page.Job.Title,
		"Page":  page,
		"Form":  &domain.ApplicationForm{},
	}
	for k, v := range extra {
		data[k] = v
	}
	h.render(c, code, "job_detail.html", data)
}

// Apply takes the multipart application form. Validation problems re-render
// the job page with the form kept and a single message.
func (h *Handler) Apply(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var form domain.ApplicationForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderJobPage(c, id, http.StatusBadRequest, gin.H{"Form": &form, "ApplyError": validation.MsgRequiredFields})
		return
	}
	form.JobID = id

	cv, closeCV, err := cvFromRequest(c)
	if err != nil {
		_ = c.Error(apperror.BadRequest("Could not read the uploaded file"))
		return
	}
	defer closeCV()

	if _, err := h.applicationUC.Submit(c.Request.Context(), &form, cv); err != nil {
		h.renderJobPage(c, id, errorCode(err), gin.H{
			"Form":       &form,
			"ApplyError": apperror.Message(err, "Error submitting application. Please try again."),
		})
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/jobs/%d?applied=1#apply", id))
}

// cvFromRequest returns a nil CVFile when no file was attached.
func cvFromRequest(c *gin.Context) (*domain.CVFile, func(), error) {
	noop := func() {}
	fh, err := c.FormFile("cv")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	return &domain.CVFile{
		Filename:    filepath.Base(fh.Filename),
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     f,
	}, func() { _ = f.Close() }, nil
}

func (h *Handler) SaveJob(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req domain.SaveJobRequest
	_ = c.ShouldBind(&req)

	if _, err := h.savedJobUC.Save(c.Request.Context(), id, &req); err != nil {
		h.renderJobPage(c, id, errorCode(err), gin.H{
			"SaveError": apperror.Message(err, "Could not save this job. Please try again."),
			"SaveEmail": req.Email,
		})
		return
	}
	c.Redirect(http.StatusSeeOther, "/saved-jobs?email="+url.QueryEscape(req.Email))
}

func (h *Handler) SavedJobs(c *gin.Context) {
	email := c.Query("email")
	h.render(c, http.StatusOK, "saved_jobs.html", gin.H{
		"Title":   "Saved jobs",
		"Email":   email,
		"Results": h.savedJobUC.List(c.Request.Context(), email),
	})
}

func (h *Handler) RemoveSavedJob(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.savedJobUC.Remove(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/saved-jobs?email="+url.QueryEscape(c.PostForm("candidate_email")))
}

func (h *Handler) Category(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	page, err := h.jobUC.CategoryPage(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.render(c, http.StatusOK, "category.html", gin.H{
		"Title": page.Category.Name,
		"Page":  page,
	})
}
