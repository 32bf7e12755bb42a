package usecase

import (
	"bufio"
	"context"
	"errors"
	"go-jobboard-web/internal/domain"
	"go-jobboard-web/internal/repository/restapi"
	"go-jobboard-web/pkg/apperror"
	"go-jobboard-web/pkg/security"
	"go-jobboard-web/pkg/validation"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MsgApplicationsUnavailable replaces the admin table when the fetch failed.
const MsgApplicationsUnavailable = "Failed to load applications"

// MsgSubmitFailed is the fallback when the API gives nothing better.
const MsgSubmitFailed = "Error submitting application. Please try again."

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	interviewRepo   domain.InterviewRepository
	files           interface{ ResolveFileURL(string) string }
	validate        *validator.Validate
	log             *slog.Logger
}

// NewApplicationUsecase creates a new application usecase. files resolves
// server-relative CV paths to links.
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	interviewRepo domain.InterviewRepository,
	files interface{ ResolveFileURL(string) string },
	validate *validator.Validate,
	log *slog.Logger,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		interviewRepo:   interviewRepo,
		files:           files,
		validate:        validate,
		log:             log,
	}
}

// Submit validates the form and the CV locally, then makes the single
// multipart call. Nothing is sent when local validation fails.
func (uc *applicationUsecase) Submit(ctx context.Context, form *domain.ApplicationForm, cv *domain.CVFile) (*domain.Application, error) {
	form.CandidateName = strings.TrimSpace(form.CandidateName)
	form.CandidateEmail = strings.TrimSpace(form.CandidateEmail)
	form.PhoneNumber = strings.TrimSpace(form.PhoneNumber)

	if err := uc.validate.Struct(form); err != nil {
		return nil, apperror.Validation(validation.FirstMessage(err), err)
	}

	if cv == nil || cv.Content == nil {
		return nil, apperror.Validation(security.ErrCVNone.Error(), security.ErrCVNone)
	}

	// Peek at the head for content sniffing without consuming the stream.
	br := bufio.NewReaderSize(cv.Content, security.SniffLength)
	head, _ := br.Peek(security.SniffLength)
	if err := security.ValidateCV(cv.ContentType, cv.Size, head); err != nil {
		return nil, apperror.Validation(err.Error(), err)
	}
	cv.Content = br

	app, err := uc.applicationRepo.Create(ctx, form, cv)
	if err != nil {
		uc.log.ErrorContext(ctx, "Failed to submit application", "job_id", form.JobID, "error", err)
		if restapi.IsValidation(err) {
			return nil, apperror.Validation(restapi.Message(err), err)
		}
		msg := restapi.Message(err)
		if msg == restapi.MsgGeneric {
			msg = MsgSubmitFailed
		}
		return nil, apperror.Unavailable(msg, err)
	}
	return app, nil
}

// AdminBoard fetches every application once and narrows it locally.
func (uc *applicationUsecase) AdminBoard(ctx context.Context, session *domain.Session, filter domain.ApplicationFilter) *domain.ApplicationBoard {
	if filter.Status == "" || (filter.Status != domain.StatusAll && !domain.ValidApplicationStatus(filter.Status)) {
		filter.Status = domain.StatusAll
	}
	board := &domain.ApplicationBoard{
		All:      []domain.Application{},
		Filtered: []domain.Application{},
		Filter:   filter,
	}

	apps, err := uc.applicationRepo.List(ctx, session, domain.ApplicationQuery{})
	if err != nil {
		uc.log.ErrorContext(ctx, "Failed to fetch applications", "error", err)
		board.Error = MsgApplicationsUnavailable
		return board
	}

	board.All = apps
	board.Stats = domain.CountApplications(apps)
	board.Filtered = filter.Apply(apps)
	return board
}

// GetDetail loads one application; its interview list is best effort.
func (uc *applicationUsecase) GetDetail(ctx context.Context, session *domain.Session, id int64) (*domain.ApplicationDetail, error) {
	app, err := uc.applicationRepo.GetByID(ctx, session, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found.")
		}
		uc.log.ErrorContext(ctx, "Failed to fetch application", "application_id", id, "error", err)
		return nil, apperror.Unavailable(restapi.Message(err), err)
	}

	interviews, err := uc.interviewRepo.ListByApplication(ctx, session, id)
	if err != nil {
		uc.log.WarnContext(ctx, "Failed to fetch interviews", "application_id", id, "error", err)
		interviews = []domain.Interview{}
	}

	return &domain.ApplicationDetail{
		Application: app,
		Interviews:  interviews,
		CVURL:       uc.files.ResolveFileURL(app.CV),
	}, nil
}

func (uc *applicationUsecase) UpdateStatus(ctx context.Context, session *domain.Session, id int64, status string) error {
	if !domain.ValidApplicationStatus(status) {
		return apperror.BadRequest("Invalid application status")
	}
	if _, err := uc.applicationRepo.UpdateStatus(ctx, session, id, status); err != nil {
		uc.log.ErrorContext(ctx, "Failed to update application", "application_id", id, "error", err)
		return upstreamError(err)
	}
	return nil
}

func (uc *applicationUsecase) Delete(ctx context.Context, session *domain.Session, id int64) error {
	if err := uc.applicationRepo.Delete(ctx, session, id); err != nil {
		uc.log.ErrorContext(ctx, "Failed to delete application", "application_id", id, "error", err)
		return upstreamError(err)
	}
	return nil
}

// upstreamError maps an API failure to the AppError a handler renders.
func upstreamError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(restapi.Message(err))
	case restapi.IsValidation(err):
		return apperror.Validation(restapi.Message(err), err)
	default:
		return apperror.Unavailable(restapi.Message(err), err)
	}
}
