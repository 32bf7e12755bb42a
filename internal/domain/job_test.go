package domain_test

import (
	"encoding/json"
	"testing"

	"go-jobboard-web/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount(t *testing.T) {
	t.Run("Decodes numbers and numeric strings alike", func(t *testing.T) {
		var job domain.Job
		require.NoError(t, json.Unmarshal([]byte(`{"salary_min":"55000.00","salary_max":80000}`), &job))
		require.NotNil(t, job.SalaryMin)
		require.NotNil(t, job.SalaryMax)
		assert.Equal(t, domain.Amount(55000), *job.SalaryMin)
		assert.Equal(t, domain.Amount(80000), *job.SalaryMax)
	})

	t.Run("Rejects garbage", func(t *testing.T) {
		var a domain.Amount
		assert.Error(t, json.Unmarshal([]byte(`"lots"`), &a))
	})

	t.Run("Formats with thousands separators", func(t *testing.T) {
		assert.Equal(t, "0", domain.Amount(0).String())
		assert.Equal(t, "999", domain.Amount(999).String())
		assert.Equal(t, "55,000", domain.Amount(55000).String())
		assert.Equal(t, "1,250,000", domain.Amount(1250000.75).String())
		assert.Equal(t, "-1,000", domain.Amount(-1000).String())
	})
}

func TestJobSalaryRange(t *testing.T) {
	min, max := domain.Amount(50000), domain.Amount(70000)
	zero := domain.Amount(0)

	assert.Equal(t, "$50,000 - $70,000", (&domain.Job{SalaryMin: &min, SalaryMax: &max}).SalaryRange())
	assert.Equal(t, "$50,000", (&domain.Job{SalaryMin: &min}).SalaryRange())
	assert.Equal(t, "$50,000", (&domain.Job{SalaryMin: &min, SalaryMax: &zero}).SalaryRange())
	assert.Equal(t, "", (&domain.Job{SalaryMax: &max}).SalaryRange())
	assert.Equal(t, "", (&domain.Job{SalaryMin: &zero}).SalaryRange())
}

func TestCompanyDecode(t *testing.T) {
	t.Run("Expanded company", func(t *testing.T) {
		var job domain.Job
		require.NoError(t, json.Unmarshal([]byte(`{"id":1,"company":{"id":4,"name":"Acme"}}`), &job))
		require.NotNil(t, job.Company)
		assert.Equal(t, int64(4), job.Company.ID)
		assert.Equal(t, "Acme", job.CompanyName())
	})

	t.Run("Bare company id", func(t *testing.T) {
		var job domain.Job
		require.NoError(t, json.Unmarshal([]byte(`{"id":1,"company":4}`), &job))
		require.NotNil(t, job.Company)
		assert.Equal(t, int64(4), job.Company.ID)
		assert.Equal(t, "", job.CompanyName())
	})

	t.Run("Missing company", func(t *testing.T) {
		var job domain.Job
		require.NoError(t, json.Unmarshal([]byte(`{"id":1}`), &job))
		assert.Equal(t, "", job.CompanyName())
	})
}

func TestComputeDashboardStats(t *testing.T) {
	jobs := []domain.Job{
		{ID: 1, Status: domain.JobStatusOpen, ApplicationsCount: 3},
		{ID: 2, Status: domain.JobStatusClosed, ApplicationsCount: 5},
		{ID: 3, Status: domain.JobStatusOpen},
	}
	stats := domain.ComputeDashboardStats(jobs)
	assert.Equal(t, 3, stats.TotalJobs)
	assert.Equal(t, 2, stats.ActiveJobs)
	assert.Equal(t, 8, stats.TotalApplications)
	assert.Len(t, stats.Jobs, 3)
}

func TestListResultState(t *testing.T) {
	loading := domain.Pending[domain.Job]()
	assert.True(t, loading.IsLoading())
	assert.Equal(t, "loading", loading.State().String())

	// A result is still loading until the fetch completes, even with items.
	partial := domain.ListResult[domain.Job]{Items: []domain.Job{{ID: 1}}}
	assert.Equal(t, domain.ResultLoading, partial.State())

	empty := domain.Loaded[domain.Job](nil)
	assert.True(t, empty.IsEmpty())
	assert.NotNil(t, empty.Items)

	populated := domain.Loaded([]domain.Job{{ID: 1}, {ID: 2}})
	assert.True(t, populated.IsPopulated())
	assert.Equal(t, 2, populated.Count())

	failed := domain.Failed[domain.Job]("Could not load jobs")
	assert.True(t, failed.IsEmpty())
	assert.Equal(t, "Could not load jobs", failed.Notice)
}
