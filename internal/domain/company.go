package domain

import (
	"bytes"
	"context"
	"encoding/json"
)

type Company struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	Website       *string `json:"website,omitempty"`
	Logo          *string `json:"logo,omitempty"`
	Location      string  `json:"location"`
	Industry      *string `json:"industry,omitempty"`
	EmployeeCount *string `json:"employee_count,omitempty"`
	FoundedYear   *int    `json:"founded_year,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         string  `json:"email"`
	Verified      bool    `json:"verified"`
	JobsCount     int     `json:"jobs_count"`
	ActiveJobs    int     `json:"active_jobs"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// UnmarshalJSON accepts either a company object or a bare company id.
func (c *Company) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] != '{' && !bytes.Equal(b, []byte("null")) {
		return json.Unmarshal(b, &c.ID)
	}
	type plain Company
	return json.Unmarshal(b, (*plain)(c))
}

// CompanyCredentials is the company login form
type CompanyCredentials struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// CompanyRegistration is the company signup form
type CompanyRegistration struct {
	Name          string `json:"name" form:"name" validate:"required,max=200,valid_name"`
	Email         string `json:"email" form:"email" validate:"required,email"`
	Password      string `json:"password" form:"password" validate:"required,min=8"`
	Location      string `json:"location" form:"location" validate:"required"`
	Website       string `json:"website" form:"website" validate:"omitempty,url"`
	Industry      string `json:"industry" form:"industry"`
	Description   string `json:"description" form:"description" validate:"max=2000"`
	Phone         string `json:"phone" form:"phone" validate:"omitempty,valid_phone"`
	EmployeeCount string `json:"employee_count" form:"employee_count"`
	FoundedYear   *int   `json:"founded_year" form:"-" validate:"omitempty,gte=1800,max_current_year"`
}

// AuthResult is what the API returns from login and register.
type AuthResult struct {
	Token     string `json:"token"`
	CompanyID int64  `json:"company_id"`
}

// DashboardStats summarizes a company's postings
type DashboardStats struct {
	TotalJobs           int
	ActiveJobs          int
	TotalApplications   int
	PendingApplications int
	Jobs                []Job
}

// ComputeDashboardStats derives the dashboard counters from the company's
// job list.
func ComputeDashboardStats(jobs []Job) DashboardStats {
	s := DashboardStats{TotalJobs: len(jobs), Jobs: jobs}
	for _, j := range jobs {
		if j.Status == JobStatusOpen {
			s.ActiveJobs++
		}
		s.TotalApplications += j.ApplicationsCount
	}
	return s
}

type CompanyRepository interface {
	Login(ctx context.Context, creds *CompanyCredentials) (*AuthResult, error)
	Register(ctx context.Context, reg *CompanyRegistration) (*AuthResult, error)
	GetByID(ctx context.Context, id int64) (*Company, error)
}

type CompanyUsecase interface {
	Login(ctx context.Context, creds *CompanyCredentials) (*Session, error)
	Register(ctx context.Context, reg *CompanyRegistration) (*Session, error)
	Logout(ctx context.Context, session *Session) error
	Dashboard(ctx context.Context, session *Session) (*DashboardStats, error)
	PostJob(ctx context.Context, session *Session, posting *JobPosting) (*Job, error)
}
