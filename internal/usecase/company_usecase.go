package usecase

import (
	"context"
	"go-jobboard-web/internal/domain"
	"go-jobboard-web/internal/repository/restapi"
	"go-jobboard-web/pkg/apperror"
	"go-jobboard-web/pkg/validation"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MsgLoginFailed is shown when the API rejects credentials without detail.
const MsgLoginFailed = "Login failed. Please check your credentials."

type companyUsecase struct {
	companyRepo domain.CompanyRepository
	jobRepo     domain.JobRepository
	sessions    domain.SessionStore
	validate    *validator.Validate
	sessionTTL  time.Duration
	now         func() time.Time
	log         *slog.Logger
}

func NewCompanyUsecase(
	companyRepo domain.CompanyRepository,
	jobRepo domain.JobRepository,
	sessions domain.SessionStore,
	validate *validator.Validate,
	sessionTTL time.Duration,
	log *slog.Logger,
) domain.CompanyUsecase {
	return &companyUsecase{
		companyRepo: companyRepo,
		jobRepo:     jobRepo,
		sessions:    sessions,
		validate:    validate,
		sessionTTL:  sessionTTL,
		now:         time.Now,
		log:         log,
	}
}

func (uc *companyUsecase) Login(ctx context.Context, creds *domain.CompanyCredentials) (*domain.Session, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := uc.validate.Struct(creds); err != nil {
		return nil, apperror.Validation(validation.FirstMessage(err), err)
	}

	result, err := uc.companyRepo.Login(ctx, creds)
	if err != nil {
		uc.log.WarnContext(ctx, "Company login rejected", "email", creds.Email, "error", err)
		return nil, authError(err, MsgLoginFailed)
	}
	return uc.startSession(ctx, result)
}

func (uc *companyUsecase) Register(ctx context.Context, reg *domain.CompanyRegistration) (*domain.Session, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Location = strings.TrimSpace(reg.Location)
	if err := uc.validate.Struct(reg); err != nil {
		return nil, apperror.Validation(validation.FirstMessage(err), err)
	}

	result, err := uc.companyRepo.Register(ctx, reg)
	if err != nil {
		uc.log.WarnContext(ctx, "Company registration rejected", "email", reg.Email, "error", err)
		return nil, authError(err, restapi.MsgGeneric)
	}
	uc.log.InfoContext(ctx, "Company registered", "company_id", result.CompanyID)
	return uc.startSession(ctx, result)
}

func (uc *companyUsecase) startSession(ctx context.Context, result *domain.AuthResult) (*domain.Session, error) {
	if result.Token == "" {
		return nil, apperror.Unavailable(restapi.MsgGeneric, nil)
	}
	sess := &domain.Session{
		ID:        uuid.NewString(),
		Token:     result.Token,
		CompanyID: result.CompanyID,
		ExpiresAt: uc.now().Add(uc.sessionTTL),
	}
	if err := uc.sessions.Save(ctx, sess); err != nil {
		uc.log.ErrorContext(ctx, "Failed to store session", "error", err)
		return nil, apperror.Internal(err)
	}
	return sess, nil
}

// Logout forgets the session locally. The API token is not revoked.
func (uc *companyUsecase) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return nil
	}
	if err := uc.sessions.Delete(ctx, session.ID); err != nil {
		uc.log.ErrorContext(ctx, "Failed to delete session", "session_id", session.ID, "error", err)
		return apperror.Internal(err)
	}
	return nil
}

func (uc *companyUsecase) Dashboard(ctx context.Context, session *domain.Session) (*domain.DashboardStats, error) {
	if !session.Authenticated() {
		return nil, apperror.Unauthorized("Please log in to continue")
	}
	jobs, err := uc.jobRepo.ListByCompany(ctx, session, session.CompanyID)
	if err != nil {
		uc.log.ErrorContext(ctx, "Failed to fetch company jobs", "company_id", session.CompanyID, "error", err)
		return nil, upstreamError(err)
	}
	stats := domain.ComputeDashboardStats(jobs)
	return &stats, nil
}

func (uc *companyUsecase) PostJob(ctx context.Context, session *domain.Session, posting *domain.JobPosting) (*domain.Job, error) {
	if !session.Authenticated() {
		return nil, apperror.Unauthorized("Please log in to continue")
	}
	posting.Title = strings.TrimSpace(posting.Title)
	posting.Location = strings.TrimSpace(posting.Location)
	if err := uc.validate.Struct(posting); err != nil {
		return nil, apperror.Validation(validation.FirstMessage(err), err)
	}
	if posting.SalaryMin != nil && posting.SalaryMax != nil && *posting.SalaryMax < *posting.SalaryMin {
		return nil, apperror.Validation("Maximum salary must not be below minimum salary", nil)
	}

	companyID := session.CompanyID
	posting.Company = &companyID

	job, err := uc.jobRepo.Create(ctx, session, posting)
	if err != nil {
		uc.log.ErrorContext(ctx, "Failed to create job", "company_id", companyID, "error", err)
		return nil, upstreamError(err)
	}
	uc.log.InfoContext(ctx, "Job posted", "company_id", companyID, "job_id", job.ID)
	return job, nil
}

// MsgAuthUnavailable is shown when the API fails while checking credentials.
const MsgAuthUnavailable = "Sign-in is temporarily unavailable. Please try again later."

// authError keeps the API's own field message when it sent one. Only 4xx
// responses are credential problems; the rest are upstream failures.
func authError(err error, fallback string) error {
	if restapi.IsTransport(err) {
		return apperror.Unavailable(restapi.MsgNetwork, err)
	}
	if restapi.StatusCode(err) >= http.StatusInternalServerError {
		return apperror.Unavailable(MsgAuthUnavailable, err)
	}
	if restapi.IsValidation(err) {
		return apperror.Validation(restapi.Message(err), err)
	}
	return apperror.Validation(fallback, err)
}
