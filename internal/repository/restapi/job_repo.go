package restapi

import (
	"context"
	"fmt"
	"go-jobboard-web/internal/domain"
	"net/http"
	"strconv"
)

type jobRepository struct {
	client *Client
}

func NewJobRepository(client *Client) domain.JobRepository {
	return &jobRepository{client: client}
}

func (r *jobRepository) List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	return getList[domain.Job](ctx, r.client, domain.JobListPath(filter), nil)
}

func (r *jobRepository) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	var job domain.Job
	if err := r.client.getJSON(ctx, itemPath("jobs", id), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Similar(ctx context.Context, id int64) ([]domain.Job, error) {
	return getList[domain.Job](ctx, r.client, fmt.Sprintf("/jobs/%d/similar/", id), nil)
}

func (r *jobRepository) Recent(ctx context.Context) ([]domain.Job, error) {
	return getList[domain.Job](ctx, r.client, "/recent-jobs/", nil)
}

func (r *jobRepository) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Job, error) {
	filter := domain.NewJobFilter(map[string]string{
		domain.FilterCategory: strconv.FormatInt(categoryID, 10),
	})
	return r.List(ctx, filter)
}

func (r *jobRepository) ListByCompany(ctx context.Context, session *domain.Session, companyID int64) ([]domain.Job, error) {
	return getList[domain.Job](ctx, r.client, fmt.Sprintf("/companies/%d/jobs/", companyID), session)
}

func (r *jobRepository) Create(ctx context.Context, session *domain.Session, posting *domain.JobPosting) (*domain.Job, error) {
	var job domain.Job
	if err := r.client.sendJSON(ctx, http.MethodPost, "/jobs/", session, posting, &job); err != nil {
		return nil, err
	}
	return &job, nil
}
