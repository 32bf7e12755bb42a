package usecase

import (
	"context"
	"errors"
	"go-jobboard-web/internal/domain"
	"go-jobboard-web/internal/repository/restapi"
	"go-jobboard-web/pkg/apperror"
	"log/slog"
	"net/http"
	"slices"

	"golang.org/x/sync/errgroup"
)

// NoticeJobsUnavailable is shown above an empty listing when the fetch failed.
const NoticeJobsUnavailable = "We couldn't load jobs right now. The list below may be incomplete; please try again in a moment."

type jobUsecase struct {
	jobRepo      domain.JobRepository
	categoryRepo domain.CategoryRepository
	similarLimit int
	log          *slog.Logger
}

func NewJobUsecase(jobRepo domain.JobRepository, categoryRepo domain.CategoryRepository, similarLimit int, log *slog.Logger) domain.JobUsecase {
	if similarLimit <= 0 {
		similarLimit = 3
	}
	return &jobUsecase{
		jobRepo:      jobRepo,
		categoryRepo: categoryRepo,
		similarLimit: similarLimit,
		log:          log,
	}
}

// HomePage loads categories and recent jobs side by side. Either section
// degrades to empty on failure.
func (u *jobUsecase) HomePage(ctx context.Context) *domain.HomePage {
	page := &domain.HomePage{
		Categories: []domain.JobCategory{},
		RecentJobs: []domain.Job{},
	}

	var g errgroup.Group
	g.Go(func() error {
		categories, err := u.categoryRepo.List(ctx)
		if err != nil {
			u.log.ErrorContext(ctx, "Failed to fetch categories", "error", err)
			return nil
		}
		page.Categories = categories
		return nil
	})
	g.Go(func() error {
		jobs, err := u.jobRepo.Recent(ctx)
		if err != nil {
			u.log.ErrorContext(ctx, "Failed to fetch recent jobs", "error", err)
			return nil
		}
		page.RecentJobs = jobs
		return nil
	})
	_ = g.Wait()

	return page
}

// SearchJobs never fails: a fetch error is logged and turned into an empty
// result with a notice.
func (u *jobUsecase) SearchJobs(ctx context.Context, filter domain.JobFilter) domain.ListResult[domain.Job] {
	jobs, err := u.jobRepo.List(ctx, filter)
	if err != nil {
		u.log.ErrorContext(ctx, "Failed to fetch jobs", "error", err, "query", filter.Query())
		return domain.Failed[domain.Job](NoticeJobsUnavailable)
	}
	return domain.Loaded(jobs)
}

// SearchPage loads the filter options and the listing side by side.
func (u *jobUsecase) SearchPage(ctx context.Context, filter domain.JobFilter) *domain.SearchPage {
	page := &domain.SearchPage{Filter: filter}

	var g errgroup.Group
	g.Go(func() error {
		page.Categories = u.Categories(ctx)
		return nil
	})
	g.Go(func() error {
		page.Results = u.SearchJobs(ctx, filter)
		return nil
	})
	_ = g.Wait()

	return page
}

// Categories degrades to an empty list; it only feeds select boxes.
func (u *jobUsecase) Categories(ctx context.Context) []domain.JobCategory {
	categories, err := u.categoryRepo.List(ctx)
	if err != nil {
		u.log.ErrorContext(ctx, "Failed to fetch categories", "error", err)
		return []domain.JobCategory{}
	}
	return categories
}

// GetJobPage fetches the job and its similar jobs concurrently. Only the
// primary fetch can fail the page.
func (u *jobUsecase) GetJobPage(ctx context.Context, id int64) (*domain.JobPage, error) {
	page := &domain.JobPage{Similar: []domain.Job{}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		job, err := u.jobRepo.GetByID(gctx, id)
		if err != nil {
			return err
		}
		page.Job = job
		return nil
	})
	g.Go(func() error {
		similar, err := u.jobRepo.Similar(gctx, id)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				u.log.WarnContext(ctx, "Failed to fetch similar jobs", "job_id", id, "error", err)
			}
			return nil
		}
		similar = slices.DeleteFunc(similar, func(j domain.Job) bool { return j.ID == id })
		if len(similar) > u.similarLimit {
			similar = similar[:u.similarLimit]
		}
		page.Similar = similar
		return nil
	})

	if err := g.Wait(); err != nil {
		u.log.ErrorContext(ctx, "Failed to fetch job details", "job_id", id, "error", err)
		return nil, jobFetchError(err)
	}
	return page, nil
}

// CategoryPage needs the category itself; its job list degrades like SearchJobs.
func (u *jobUsecase) CategoryPage(ctx context.Context, id int64) (*domain.CategoryPage, error) {
	page := &domain.CategoryPage{Jobs: domain.Pending[domain.Job]()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		category, err := u.categoryRepo.GetByID(gctx, id)
		if err != nil {
			return err
		}
		page.Category = category
		return nil
	})
	g.Go(func() error {
		jobs, err := u.jobRepo.ListByCategory(gctx, id)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				u.log.ErrorContext(ctx, "Failed to fetch category jobs", "category_id", id, "error", err)
			}
			page.Jobs = domain.Failed[domain.Job](NoticeJobsUnavailable)
			return nil
		}
		page.Jobs = domain.Loaded(jobs)
		return nil
	})

	if err := g.Wait(); err != nil {
		u.log.ErrorContext(ctx, "Failed to fetch category", "category_id", id, "error", err)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Category not found.")
		}
		return nil, apperror.Unavailable(restapi.Message(err), err)
	}
	return page, nil
}

func jobFetchError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.New(http.StatusNotFound, "Job not found.", err)
	}
	return apperror.Unavailable(restapi.Message(err), err)
}
