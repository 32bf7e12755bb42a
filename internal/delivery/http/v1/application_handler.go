package v1

import (
	"go-jobboard-web/internal/delivery/http/middleware"
	"go-jobboard-web/internal/delivery/http/response"
	"go-jobboard-web/internal/domain"
	"go-jobboard-web/pkg/apperror"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers the admin application routes on admin,
// which the router has already wrapped in whatever auth is configured.
func NewApplicationHandler(admin *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	apps := admin.Group("/applications")
	{
		apps.GET("", handler.List)
		apps.GET("/:id", handler.GetDetails)
		apps.PATCH("/:id/status", handler.UpdateStatus)
		apps.DELETE("/:id", handler.Delete)
	}
}

// ApplicationListResponse is the filtered admin list plus counters over the
// unfiltered list.
type ApplicationListResponse struct {
	Results []domain.Application    `json:"results"`
	Count   int                     `json:"count"`
	Stats   domain.ApplicationStats `json:"stats"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// List godoc
// @Summary      List applications
// @Description  Fetch all applications and narrow them by status and a case-insensitive name/email search.
// @Tags         admin
// @Produce      json
// @Param        status  query  string  false  "Status filter (all, submitted, reviewing, interview, accepted, rejected)"
// @Param        search  query  string  false  "Candidate name or email"
// @Success      200  {object}  response.Response{data=ApplicationListResponse}
// @Failure      502  {object}  response.Response
// @Router       /admin/applications [get]
// @Security     BasicAuth
func (h *ApplicationHandler) List(c *gin.Context) {
	filter := domain.ApplicationFilter{
		Status: c.DefaultQuery("status", domain.StatusAll),
		Search: strings.TrimSpace(c.Query("search")),
	}
	board := h.applicationUC.AdminBoard(c.Request.Context(), middleware.SessionFrom(c), filter)
	if board.Error != "" {
		_ = c.Error(apperror.Unavailable(board.Error, nil))
		return
	}

	results := board.Filtered
	if results == nil {
		results = []domain.Application{}
	}
	response.Success(c, http.StatusOK, "Applications retrieved successfully", ApplicationListResponse{
		Results: results,
		Count:   len(results),
		Stats:   board.Stats,
	})
}

// GetDetails godoc
// @Summary      Get application details
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/applications/{id} [get]
// @Security     BasicAuth
func (h *ApplicationHandler) GetDetails(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}
	detail, err := h.applicationUC.GetDetail(c.Request.Context(), middleware.SessionFrom(c), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application retrieved successfully", gin.H{
		"application": detail.Application,
		"interviews":  detail.Interviews,
		"cv_url":      detail.CVURL,
	})
}

// UpdateStatus godoc
// @Summary      Update application status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id      path  int                  true  "Application ID"
// @Param        status  body  UpdateStatusRequest  true  "New status"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /admin/applications/{id}/status [patch]
// @Security     BasicAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest("Status is required"))
		return
	}
	if err := h.applicationUC.UpdateStatus(c.Request.Context(), middleware.SessionFrom(c), id, req.Status); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated", nil)
}

// Delete godoc
// @Summary      Delete an application
// @Tags         admin
// @Produce      json
// @Param        id   path  int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Router       /admin/applications/{id} [delete]
// @Security     BasicAuth
func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}
	if err := h.applicationUC.Delete(c.Request.Context(), middleware.SessionFrom(c), id); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application deleted", nil)
}

func applicationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		_ = c.Error(apperror.BadRequest("Invalid application ID"))
		return 0, false
	}
	return id, true
}
