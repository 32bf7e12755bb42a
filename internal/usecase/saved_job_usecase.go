package usecase

import (
	"context"
	"go-jobboard-web/internal/domain"
	"go-jobboard-web/pkg/apperror"
	"go-jobboard-web/pkg/validation"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NoticeSavedJobsUnavailable is shown when the bookmark list failed to load.
const NoticeSavedJobsUnavailable = "We couldn't load your saved jobs right now. Please try again in a moment."

type savedJobUsecase struct {
	savedJobRepo domain.SavedJobRepository
	validate     *validator.Validate
	log          *slog.Logger
}

func NewSavedJobUsecase(savedJobRepo domain.SavedJobRepository, validate *validator.Validate, log *slog.Logger) domain.SavedJobUsecase {
	return &savedJobUsecase{
		savedJobRepo: savedJobRepo,
		validate:     validate,
		log:          log,
	}
}

func (uc *savedJobUsecase) Save(ctx context.Context, jobID int64, req *domain.SaveJobRequest) (*domain.SavedJob, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := uc.validate.Struct(req); err != nil {
		return nil, apperror.Validation(validation.FirstMessage(err), err)
	}
	saved, err := uc.savedJobRepo.Save(ctx, jobID, req.Email)
	if err != nil {
		uc.log.ErrorContext(ctx, "Failed to save job", "job_id", jobID, "error", err)
		return nil, upstreamError(err)
	}
	return saved, nil
}

// List degrades to an empty result with a notice. An empty email yields an
// empty, loaded list without calling the API.
func (uc *savedJobUsecase) List(ctx context.Context, email string) domain.ListResult[domain.SavedJob] {
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.Loaded[domain.SavedJob](nil)
	}
	saved, err := uc.savedJobRepo.List(ctx, email)
	if err != nil {
		uc.log.ErrorContext(ctx, "Failed to fetch saved jobs", "error", err)
		return domain.Failed[domain.SavedJob](NoticeSavedJobsUnavailable)
	}
	return domain.Loaded(saved)
}

func (uc *savedJobUsecase) Remove(ctx context.Context, id int64) error {
	if err := uc.savedJobRepo.Delete(ctx, id); err != nil {
		uc.log.ErrorContext(ctx, "Failed to remove saved job", "saved_job_id", id, "error", err)
		return upstreamError(err)
	}
	return nil
}
