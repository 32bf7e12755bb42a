package restapi

import (
	"context"
	"go-jobboard-web/internal/domain"
)

type categoryRepository struct {
	client *Client
}

func NewCategoryRepository(client *Client) domain.CategoryRepository {
	return &categoryRepository{client: client}
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.JobCategory, error) {
	return getList[domain.JobCategory](ctx, r.client, "/categories/", nil)
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.JobCategory, error) {
	var category domain.JobCategory
	if err := r.client.getJSON(ctx, itemPath("categories", id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}
