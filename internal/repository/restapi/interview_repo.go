package restapi

import (
	"context"
	"fmt"
	"go-jobboard-web/internal/domain"
	"net/http"
	"net/url"
)

type interviewRepository struct {
	client *Client
}

func NewInterviewRepository(client *Client) domain.InterviewRepository {
	return &interviewRepository{client: client}
}

func (r *interviewRepository) ListByApplication(ctx context.Context, session *domain.Session, applicationID int64) ([]domain.Interview, error) {
	return getList[domain.Interview](ctx, r.client, fmt.Sprintf("/interviews/?application=%d", applicationID), session)
}

type savedJobRepository struct {
	client *Client
}

func NewSavedJobRepository(client *Client) domain.SavedJobRepository {
	return &savedJobRepository{client: client}
}

func (r *savedJobRepository) List(ctx context.Context, email string) ([]domain.SavedJob, error) {
	return getList[domain.SavedJob](ctx, r.client, "/saved-jobs/?candidate_email="+url.QueryEscape(email), nil)
}

func (r *savedJobRepository) Save(ctx context.Context, jobID int64, email string) (*domain.SavedJob, error) {
	payload := map[string]any{
		"job":             jobID,
		"candidate_email": email,
	}
	var saved domain.SavedJob
	if err := r.client.sendJSON(ctx, http.MethodPost, "/saved-jobs/", nil, payload, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *savedJobRepository) Delete(ctx context.Context, id int64) error {
	return r.client.delete(ctx, itemPath("saved-jobs", id), nil)
}
