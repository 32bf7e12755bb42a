package restapi

import (
	"context"
	"go-jobboard-web/internal/domain"
	"net/http"
)

type companyRepository struct {
	client *Client
}

func NewCompanyRepository(client *Client) domain.CompanyRepository {
	return &companyRepository{client: client}
}

func (r *companyRepository) Login(ctx context.Context, creds *domain.CompanyCredentials) (*domain.AuthResult, error) {
	var res domain.AuthResult
	if err := r.client.sendJSON(ctx, http.MethodPost, "/company-login/", nil, creds, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *companyRepository) Register(ctx context.Context, reg *domain.CompanyRegistration) (*domain.AuthResult, error) {
	var res domain.AuthResult
	if err := r.client.sendJSON(ctx, http.MethodPost, "/company-register/", nil, reg, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *companyRepository) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	var company domain.Company
	if err := r.client.getJSON(ctx, itemPath("companies", id), nil, &company); err != nil {
		return nil, err
	}
	return &company, nil
}
