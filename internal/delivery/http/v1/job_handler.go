package v1

import (
	"go-jobboard-web/internal/delivery/http/response"
	"go-jobboard-web/internal/domain"
	"go-jobboard-web/pkg/apperror"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := public.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.GET("/:id", handler.GetDetails)
	}
	public.GET("/categories", handler.Categories)
}

// JobPageResponse is a job with up to three similar jobs.
type JobPageResponse struct {
	Job     *domain.Job  `json:"job"`
	Similar []domain.Job `json:"similar_jobs"`
}

// List godoc
// @Summary      Search jobs
// @Description  List jobs matching the filter. A failed upstream fetch still returns 200 with an empty result and a notice.
// @Tags         jobs
// @Produce      json
// @Param        search      query  string  false  "Keyword"
// @Param        category    query  string  false  "Category ID"
// @Param        job_type    query  string  false  "Job type"
// @Param        experience  query  string  false  "Experience level"
// @Param        location    query  string  false  "Location"
// @Param        salary_min  query  string  false  "Minimum salary"
// @Param        salary_max  query  string  false  "Maximum salary"
// @Success      200  {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	filter := domain.JobFilterFromQuery(c.Request.URL.Query())
	res := h.jobUC.SearchJobs(c.Request.Context(), filter)
	response.List(c, http.StatusOK, "Jobs retrieved successfully", res)
}

// GetDetails godoc
// @Summary      Get job details
// @Description  Get a job and its similar jobs. Similar jobs degrade to an empty list.
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response{data=JobPageResponse}
// @Failure      404  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		_ = c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	page, err := h.jobUC.GetJobPage(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	similar := page.Similar
	if similar == nil {
		similar = []domain.Job{}
	}
	response.Success(c, http.StatusOK, "Job retrieved successfully", JobPageResponse{
		Job:     page.Job,
		Similar: similar,
	})
}

// Categories godoc
// @Summary      List job categories
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /categories [get]
func (h *JobHandler) Categories(c *gin.Context) {
	response.Success(c, http.StatusOK, "Categories retrieved successfully", h.jobUC.Categories(c.Request.Context()))
}
