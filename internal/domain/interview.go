package domain

import "context"

// Interview status and type constants
const (
	InterviewTypePhone      = "phone"
	InterviewTypeVideo      = "video"
	InterviewTypeInPerson   = "in_person"
	InterviewTypeAssignment = "assignment"

	InterviewStatusScheduled   = "scheduled"
	InterviewStatusCompleted   = "completed"
	InterviewStatusCancelled   = "cancelled"
	InterviewStatusRescheduled = "rescheduled"
)

type Interview struct {
	ID              int64   `json:"id"`
	Application     int64   `json:"application"`
	InterviewType   string  `json:"interview_type"`
	ScheduledAt     string  `json:"scheduled_at"`
	DurationMinutes int     `json:"duration_minutes"`
	InterviewerName string  `json:"interviewer_name"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	Rating          *int    `json:"rating,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// SavedJob is a bookmark keyed by candidate email
type SavedJob struct {
	ID             int64  `json:"id"`
	Job            JobRef `json:"job"`
	CandidateEmail string `json:"candidate_email"`
	SavedAt        string `json:"saved_at"`
}

type InterviewRepository interface {
	ListByApplication(ctx context.Context, session *Session, applicationID int64) ([]Interview, error)
}

type SavedJobRepository interface {
	List(ctx context.Context, email string) ([]SavedJob, error)
	Save(ctx context.Context, jobID int64, email string) (*SavedJob, error)
	Delete(ctx context.Context, id int64) error
}

// SaveJobRequest is the bookmark form
type SaveJobRequest struct {
	Email string `form:"candidate_email" validate:"required,email"`
}

type SavedJobUsecase interface {
	Save(ctx context.Context, jobID int64, req *SaveJobRequest) (*SavedJob, error)
	List(ctx context.Context, email string) ListResult[SavedJob]
	Remove(ctx context.Context, id int64) error
}
