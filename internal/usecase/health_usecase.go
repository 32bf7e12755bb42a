package usecase

import "context"

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// HealthCheck probes one dependency. A nil error means healthy.
type HealthCheck func(ctx context.Context) error

type healthUsecase struct {
	checks map[string]HealthCheck
}

// NewHealthUsecase reports "ok" plus one entry per named check.
func NewHealthUsecase(checks map[string]HealthCheck) HealthUsecase {
	return &healthUsecase{checks: checks}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	out := map[string]string{
		"status": "ok",
	}
	for name, check := range u.checks {
		if err := check(ctx); err != nil {
			out[name] = "unavailable"
			out["status"] = "degraded"
			continue
		}
		out[name] = "ok"
	}
	return out
}
