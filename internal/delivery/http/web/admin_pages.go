package web

import (
	"fmt"
	"go-jobboard-web/internal/delivery/http/middleware"
	"go-jobboard-web/internal/domain"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminApplications lists every application once and narrows it locally by
// status and search term.
func (h *Handler) AdminApplications(c *gin.Context) {
	filter := domain.ApplicationFilter{
		Status: c.DefaultQuery("status", domain.StatusAll),
		Search: strings.TrimSpace(c.Query("search")),
	}
	board := h.applicationUC.AdminBoard(c.Request.Context(), middleware.SessionFrom(c), filter)
	h.render(c, http.StatusOK, "admin_applications.html", gin.H{
		"Title":    "Applications",
		"Board":    board,
		"Statuses": domain.ApplicationStatuses,
		"Updated":  c.Query("updated") == "1",
		"Deleted":  c.Query("deleted") == "1",
		"Return":   adminListPath(filter),
	})
}

func (h *Handler) AdminApplication(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	detail, err := h.applicationUC.GetDetail(c.Request.Context(), middleware.SessionFrom(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.render(c, http.StatusOK, "admin_application.html", gin.H{
		"Title":    "Application from " + detail.Application.CandidateName,
		"Detail":   detail,
		"Statuses": domain.ApplicationStatuses,
		"Updated":  c.Query("updated") == "1",
	})
}

func (h *Handler) UpdateApplicationStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.applicationUC.UpdateStatus(c.Request.Context(), middleware.SessionFrom(c), id, c.PostForm("status")); err != nil {
		_ = c.Error(err)
		return
	}
	back := adminReturn(c.PostForm("return"), fmt.Sprintf("/admin/applications/%d", id))
	c.Redirect(http.StatusSeeOther, withFlag(back, "updated"))
}

func (h *Handler) DeleteApplication(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.applicationUC.Delete(c.Request.Context(), middleware.SessionFrom(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/applications?deleted=1")
}

func adminListPath(f domain.ApplicationFilter) string {
	q := url.Values{}
	if f.Status != "" && f.Status != domain.StatusAll {
		q.Set("status", f.Status)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if len(q) == 0 {
		return "/admin/applications"
	}
	return "/admin/applications?" + q.Encode()
}

// adminReturn keeps post-action redirects inside the admin section.
func adminReturn(p, fallback string) string {
	p = localPath(p, fallback)
	if !strings.HasPrefix(p, "/admin/") {
		return fallback
	}
	return p
}

func withFlag(p, flag string) string {
	sep := "?"
	if strings.Contains(p, "?") {
		sep = "&"
	}
	return p + sep + flag + "=1"
}
