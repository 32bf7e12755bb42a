package domain

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Job types accepted by the listing API
const (
	JobTypeFullTime   = "Full-time"
	JobTypePartTime   = "Part-time"
	JobTypeContract   = "Contract"
	JobTypeFreelance  = "Freelance"
	JobTypeInternship = "Internship"
)

// Experience levels
const (
	ExperienceEntry  = "Entry"
	ExperienceMid    = "Mid"
	ExperienceSenior = "Senior"
)

// Job status constants
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
	JobStatusOnHold = "on_hold"
)

// JobTypes lists the job types in display order.
var JobTypes = []string{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeFreelance, JobTypeInternship}

// ExperienceLevels lists the experience levels in display order.
var ExperienceLevels = []string{ExperienceEntry, ExperienceMid, ExperienceSenior}

// Amount is a monetary value. The API serializes decimals either as JSON
// numbers or as numeric strings ("55000.00"); both decode to the same value.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	*a = Amount(v)
	return nil
}

// String formats the amount with thousands separators and no decimals.
func (a Amount) String() string {
	n := int64(a)
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// JobCategory groups jobs for browsing
type JobCategory struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	JobsCount   int     `json:"jobs_count"`
	CreatedAt   string  `json:"created_at"`
}

type Job struct {
	ID                int64        `json:"id"`
	Title             string       `json:"title"`
	Company           *Company     `json:"company"`
	Location          string       `json:"location"`
	Description       string       `json:"description"`
	Requirements      string       `json:"requirements"`
	SalaryMin         *Amount      `json:"salary_min,omitempty"`
	SalaryMax         *Amount      `json:"salary_max,omitempty"`
	SalaryCurrency    *string      `json:"salary_currency,omitempty"`
	JobType           string       `json:"job_type"`
	ExperienceLevel   *string      `json:"experience_level,omitempty"`
	Status            string       `json:"status"`
	Category          *JobCategory `json:"category,omitempty"`
	CategoryID        *int64       `json:"category_id,omitempty"`
	SkillsRequired    *string      `json:"skills_required,omitempty"`
	Benefits          *string      `json:"benefits,omitempty"`
	ApplicationsCount int          `json:"applications_count"`
	ViewsCount        int          `json:"views_count"`
	CreatedAt         string       `json:"created_at"`
	UpdatedAt         string       `json:"updated_at"`
}

// HasSalary reports whether a salary range should be shown at all.
func (j *Job) HasSalary() bool {
	return j.SalaryMin != nil && *j.SalaryMin > 0
}

// SalaryRange renders "$min - $max", or "$min" when no maximum is set.
// Returns "" when HasSalary is false.
func (j *Job) SalaryRange() string {
	if !j.HasSalary() {
		return ""
	}
	out := "$" + j.SalaryMin.String()
	if j.SalaryMax != nil && *j.SalaryMax > 0 {
		out += " - $" + j.SalaryMax.String()
	}
	return out
}

// CompanyName is safe to call when the company was not expanded.
func (j *Job) CompanyName() string {
	if j.Company == nil {
		return ""
	}
	return j.Company.Name
}

// IsOpen reports whether the job still accepts applications.
func (j *Job) IsOpen() bool {
	return j.Status == "" || j.Status == JobStatusOpen
}

// JobPosting is the payload a company sends to create a job
type JobPosting struct {
	Title           string  `json:"title" form:"title" validate:"required,max=200"`
	Location        string  `json:"location" form:"location" validate:"required"`
	Description     string  `json:"description" form:"description" validate:"required"`
	Requirements    string  `json:"requirements" form:"requirements"`
	SalaryMin       *int64  `json:"salary_min" form:"-" validate:"omitempty,gte=0"`
	SalaryMax       *int64  `json:"salary_max" form:"-" validate:"omitempty,gte=0"`
	JobType         string  `json:"job_type" form:"job_type" validate:"omitempty,oneof=Full-time Part-time Contract Freelance Internship"`
	ExperienceLevel string  `json:"experience_level,omitempty" form:"experience_level" validate:"omitempty,oneof=Entry Mid Senior"`
	Category        string  `json:"category" form:"category" validate:"required"`
	SkillsRequired  string  `json:"skills_required,omitempty" form:"skills_required"`
	Benefits        string  `json:"benefits,omitempty" form:"benefits"`
	Company         *int64  `json:"company,omitempty" form:"-"`
	SalaryCurrency  *string `json:"salary_currency,omitempty" form:"-"`
}

type CategoryRepository interface {
	List(ctx context.Context) ([]JobCategory, error)
	GetByID(ctx context.Context, id int64) (*JobCategory, error)
}

type JobRepository interface {
	List(ctx context.Context, filter JobFilter) ([]Job, error)
	GetByID(ctx context.Context, id int64) (*Job, error)
	Similar(ctx context.Context, id int64) ([]Job, error)
	Recent(ctx context.Context) ([]Job, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]Job, error)
	ListByCompany(ctx context.Context, session *Session, companyID int64) ([]Job, error)
	Create(ctx context.Context, session *Session, posting *JobPosting) (*Job, error)
}

// HomePage is everything rendered on the landing page
type HomePage struct {
	Categories []JobCategory
	RecentJobs []Job
}

// JobPage is a job detail view. Similar is empty when the secondary fetch
// failed or returned nothing.
type JobPage struct {
	Job     *Job
	Similar []Job
}

// SearchPage is the job listing with its filter form
type SearchPage struct {
	Filter     JobFilter
	Categories []JobCategory
	Results    ListResult[Job]
}

// CategoryPage lists the jobs in one category
type CategoryPage struct {
	Category *JobCategory
	Jobs     ListResult[Job]
}

type JobUsecase interface {
	HomePage(ctx context.Context) *HomePage
	SearchJobs(ctx context.Context, filter JobFilter) ListResult[Job]
	SearchPage(ctx context.Context, filter JobFilter) *SearchPage
	Categories(ctx context.Context) []JobCategory
	GetJobPage(ctx context.Context, id int64) (*JobPage, error)
	CategoryPage(ctx context.Context, id int64) (*CategoryPage, error)
}
