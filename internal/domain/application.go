package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
)

// Application status constants
const (
	ApplicationStatusSubmitted = "submitted"
	ApplicationStatusReviewing = "reviewing"
	ApplicationStatusInterview = "interview"
	ApplicationStatusRejected  = "rejected"
	ApplicationStatusAccepted  = "accepted"

	// StatusAll is the post-filter value that matches every status.
	StatusAll = "all"
)

// ApplicationStatuses is the fixed status enumeration in display order.
var ApplicationStatuses = []string{
	ApplicationStatusSubmitted,
	ApplicationStatusReviewing,
	ApplicationStatusInterview,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
}

func ValidApplicationStatus(s string) bool {
	for _, st := range ApplicationStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// JobRef is the job an application points at. The API sends either the bare
// job id or the expanded job object.
type JobRef struct {
	ID  int64
	Job *Job
}

func (r *JobRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '{' {
		var j Job
		if err := json.Unmarshal(b, &j); err != nil {
			return err
		}
		r.ID, r.Job = j.ID, &j
		return nil
	}
	return json.Unmarshal(b, &r.ID)
}

func (r JobRef) MarshalJSON() ([]byte, error) {
	if r.Job != nil {
		return json.Marshal(r.Job)
	}
	return json.Marshal(r.ID)
}

// Application represents a candidate's submission against a job
type Application struct {
	ID               int64   `json:"id"`
	Job              JobRef  `json:"job"`
	JobTitle         *string `json:"job_title,omitempty"`
	CandidateName    string  `json:"candidate_name"`
	CandidateEmail   string  `json:"candidate_email"`
	PhoneNumber      string  `json:"phone_number"`
	CandidateMessage *string `json:"candidate_message,omitempty"`
	CV               string  `json:"cv"` // server-relative file path
	Status           string  `json:"status"`
	Rating           *int    `json:"rating,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	SubmittedAt      string  `json:"submitted_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// Title returns the best available job title for display.
func (a *Application) Title() string {
	if a.JobTitle != nil && *a.JobTitle != "" {
		return *a.JobTitle
	}
	if a.Job.Job != nil {
		return a.Job.Job.Title
	}
	return ""
}

// ApplicationForm is the candidate-entered part of an application
type ApplicationForm struct {
	JobID            int64  `form:"-"`
	CandidateName    string `form:"candidate_name" validate:"required,max=200,valid_name,no_emoji"`
	CandidateEmail   string `form:"candidate_email" validate:"required,email"`
	PhoneNumber      string `form:"phone_number" validate:"omitempty,valid_phone"`
	CandidateMessage string `form:"candidate_message" validate:"max=5000"`
}

// CVFile is an uploaded résumé as received from the browser.
type CVFile struct {
	Filename    string
	ContentType string // browser-declared MIME type
	Size        int64
	Content     io.Reader
}

// ApplicationFilter narrows an already-fetched list without another request.
type ApplicationFilter struct {
	Status string // StatusAll or one of ApplicationStatuses
	Search string
}

// Matches reports whether app passes both the status and the search term.
// An empty Status is treated as StatusAll.
func (f ApplicationFilter) Matches(app Application) bool {
	if f.Status != "" && f.Status != StatusAll && app.Status != f.Status {
		return false
	}
	term := strings.ToLower(f.Search)
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(app.CandidateName), term) ||
		strings.Contains(strings.ToLower(app.CandidateEmail), term)
}

// Apply keeps the applications that Match, in source order.
func (f ApplicationFilter) Apply(apps []Application) []Application {
	out := make([]Application, 0, len(apps))
	for _, app := range apps {
		if f.Matches(app) {
			out = append(out, app)
		}
	}
	return out
}

// ApplicationStats are counted over the unfiltered list.
type ApplicationStats struct {
	Total     int `json:"total"`
	Submitted int `json:"submitted"`
	Accepted  int `json:"accepted"`
	Rejected  int `json:"rejected"`
}

func CountApplications(apps []Application) ApplicationStats {
	s := ApplicationStats{Total: len(apps)}
	for _, a := range apps {
		switch a.Status {
		case ApplicationStatusSubmitted:
			s.Submitted++
		case ApplicationStatusAccepted:
			s.Accepted++
		case ApplicationStatusRejected:
			s.Rejected++
		}
	}
	return s
}

// ApplicationBoard is the admin applications view.
type ApplicationBoard struct {
	All      []Application
	Filtered []Application
	Stats    ApplicationStats
	Filter   ApplicationFilter
	Error    string
}

// ApplicationQuery narrows the server-side application listing.
type ApplicationQuery struct {
	JobID  int64
	Status string
}

// ApplicationRepository defines API access for applications
type ApplicationRepository interface {
	List(ctx context.Context, session *Session, q ApplicationQuery) ([]Application, error)
	GetByID(ctx context.Context, session *Session, id int64) (*Application, error)
	Create(ctx context.Context, form *ApplicationForm, cv *CVFile) (*Application, error)
	UpdateStatus(ctx context.Context, session *Session, id int64, status string) (*Application, error)
	Delete(ctx context.Context, session *Session, id int64) error
}

// ApplicationDetail is an application with its interview schedule
type ApplicationDetail struct {
	Application *Application
	Interviews  []Interview
	CVURL       string
}

// ApplicationUsecase defines application flows
type ApplicationUsecase interface {
	Submit(ctx context.Context, form *ApplicationForm, cv *CVFile) (*Application, error)
	AdminBoard(ctx context.Context, session *Session, filter ApplicationFilter) *ApplicationBoard
	GetDetail(ctx context.Context, session *Session, id int64) (*ApplicationDetail, error)
	UpdateStatus(ctx context.Context, session *Session, id int64, status string) error
	Delete(ctx context.Context, session *Session, id int64) error
}
