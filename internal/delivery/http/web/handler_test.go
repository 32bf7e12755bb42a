package web_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go-jobboard-web/config"
	"go-jobboard-web/internal/delivery/http/middleware"
	"go-jobboard-web/internal/delivery/http/web"
	"go-jobboard-web/internal/domain"
	"go-jobboard-web/internal/repository/session"
	"go-jobboard-web/pkg/apperror"
	"go-jobboard-web/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mocks ---

type MockJobUC struct{ mock.Mock }

func (m *MockJobUC) HomePage(ctx context.Context) *domain.HomePage {
	return m.Called(ctx).Get(0).(*domain.HomePage)
}
func (m *MockJobUC) SearchJobs(ctx context.Context, f domain.JobFilter) domain.ListResult[domain.Job] {
	return m.Called(ctx, f).Get(0).(domain.ListResult[domain.Job])
}
func (m *MockJobUC) SearchPage(ctx context.Context, f domain.JobFilter) *domain.SearchPage {
	return m.Called(ctx, f).Get(0).(*domain.SearchPage)
}
func (m *MockJobUC) Categories(ctx context.Context) []domain.JobCategory {
	return m.Called(ctx).Get(0).([]domain.JobCategory)
}
func (m *MockJobUC) GetJobPage(ctx context.Context, id int64) (*domain.JobPage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobPage), args.Error(1)
}
func (m *MockJobUC) CategoryPage(ctx context.Context, id int64) (*domain.CategoryPage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryPage), args.Error(1)
}

type MockApplicationUC struct{ mock.Mock }

func (m *MockApplicationUC) Submit(ctx context.Context, form *domain.ApplicationForm, cv *domain.CVFile) (*domain.Application, error) {
	args := m.Called(ctx, form, cv)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationUC) AdminBoard(ctx context.Context, s *domain.Session, f domain.ApplicationFilter) *domain.ApplicationBoard {
	return m.Called(ctx, s, f).Get(0).(*domain.ApplicationBoard)
}
func (m *MockApplicationUC) GetDetail(ctx context.Context, s *domain.Session, id int64) (*domain.ApplicationDetail, error) {
	args := m.Called(ctx, s, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationDetail), args.Error(1)
}
func (m *MockApplicationUC) UpdateStatus(ctx context.Context, s *domain.Session, id int64, status string) error {
	return m.Called(ctx, s, id, status).Error(0)
}
func (m *MockApplicationUC) Delete(ctx context.Context, s *domain.Session, id int64) error {
	return m.Called(ctx, s, id).Error(0)
}

type MockCompanyUC struct{ mock.Mock }

func (m *MockCompanyUC) Login(ctx context.Context, creds *domain.CompanyCredentials) (*domain.Session, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockCompanyUC) Register(ctx context.Context, reg *domain.CompanyRegistration) (*domain.Session, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockCompanyUC) Logout(ctx context.Context, s *domain.Session) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockCompanyUC) Dashboard(ctx context.Context, s *domain.Session) (*domain.DashboardStats, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}
func (m *MockCompanyUC) PostJob(ctx context.Context, s *domain.Session, p *domain.JobPosting) (*domain.Job, error) {
	args := m.Called(ctx, s, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

type MockSavedJobUC struct{ mock.Mock }

func (m *MockSavedJobUC) Save(ctx context.Context, jobID int64, req *domain.SaveJobRequest) (*domain.SavedJob, error) {
	args := m.Called(ctx, jobID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedJob), args.Error(1)
}
func (m *MockSavedJobUC) List(ctx context.Context, email string) domain.ListResult[domain.SavedJob] {
	return m.Called(ctx, email).Get(0).(domain.ListResult[domain.SavedJob])
}
func (m *MockSavedJobUC) Remove(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockContactUC struct{ mock.Mock }

func (m *MockContactUC) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	return m.Called(ctx, req).Error(0)
}

// --- Harness ---

const csrfToken = "test-csrf-token"

type harness struct {
	router  *gin.Engine
	jobs    *MockJobUC
	apps    *MockApplicationUC
	company *MockCompanyUC
	saved   *MockSavedJobUC
	contact *MockContactUC
	store   *session.MemoryStore
	codec   *session.TokenCodec
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithGuard(t, nil)
}

func newHarnessWithGuard(t *testing.T, guard web.LoginGuard) *harness {
	t.Helper()
	h := &harness{
		jobs:    new(MockJobUC),
		apps:    new(MockApplicationUC),
		company: new(MockCompanyUC),
		saved:   new(MockSavedJobUC),
		contact: new(MockContactUC),
		store:   session.NewMemoryStore(),
		codec:   session.NewTokenCodec("test-secret", time.Hour),
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorHandler())
	r.Use(middleware.SessionLoader(h.codec, h.store, false))
	r.NoRoute(func(c *gin.Context) { _ = c.Error(apperror.NotFound("Page not found")) })
	web.Register(r, web.Deps{
		JobUC:         h.jobs,
		ApplicationUC: h.apps,
		CompanyUC:     h.company,
		SavedJobUC:    h.saved,
		ContactUC:     h.contact,
		Sessions:      h.codec,
		Logins:        guard,
		Config:        &config.Config{},
	})
	h.router = r
	return h
}

func (h *harness) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	form.Set(middleware.CSRFTokenFormField, csrfToken)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: middleware.CSRFTokenCookieName, Value: csrfToken})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) signIn(t *testing.T) (*domain.Session, *http.Cookie) {
	t.Helper()
	sess := &domain.Session{ID: "s-1", Token: "api-token", CompanyID: 4, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, h.store.Save(context.Background(), sess))
	token, err := h.codec.Encode(sess.ID)
	require.NoError(t, err)
	return sess, &http.Cookie{Name: middleware.SessionCookieName, Value: token}
}

func sampleJob() *domain.Job {
	pay := domain.Amount(60000)
	return &domain.Job{
		ID:          7,
		Title:       "Backend Developer",
		Company:     &domain.Company{ID: 4, Name: "Acme"},
		Location:    "Berlin",
		Description: "Build APIs.",
		JobType:     domain.JobTypeFullTime,
		SalaryMin:   &pay,
		Status:      domain.JobStatusOpen,
	}
}

// --- Tests ---

func TestTemplatesParse(t *testing.T) {
	tmpl, err := web.LoadTemplates()
	require.NoError(t, err)
	for _, name := range []string{
		"home.html", "jobs.html", "job_detail.html", "category.html", "saved_jobs.html",
		"admin_applications.html", "admin_application.html", "company_login.html",
		"company_signup.html", "company_dashboard.html", "post_job.html",
		"about.html", "contact.html", "error.html", "job_results",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestJobsPage(t *testing.T) {
	h := newHarness(t)
	h.jobs.On("SearchPage", mock.Anything, mock.MatchedBy(func(f domain.JobFilter) bool {
		return f.Query() == "search=engineer&job_type=Full-time"
	})).Return(&domain.SearchPage{
		Filter:     domain.NewJobFilter(map[string]string{"search": "engineer", "job_type": "Full-time"}),
		Categories: []domain.JobCategory{{ID: 2, Name: "Engineering"}},
		Results:    domain.Loaded([]domain.Job{*sampleJob()}),
	})

	w := h.get("/jobs?job_type=Full-time&search=engineer")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `data-state="populated"`)
	assert.Contains(t, body, "Backend Developer")
	assert.Contains(t, body, "$60,000")
	assert.Contains(t, body, `value="engineer"`)
	assert.Contains(t, body, `id="results-loading"`)
	h.jobs.AssertExpectations(t)
}

func TestJobResultsStates(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		h := newHarness(t)
		h.jobs.On("SearchJobs", mock.Anything, mock.Anything).Return(domain.Loaded[domain.Job](nil))

		w := h.get("/jobs/results?search=nothing")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `data-state="empty"`)
		assert.Contains(t, w.Body.String(), "No jobs found")
		assert.NotContains(t, w.Body.String(), "<html", "only the result fragment is rendered")
	})

	t.Run("Failed fetch shows a notice", func(t *testing.T) {
		h := newHarness(t)
		h.jobs.On("SearchJobs", mock.Anything, mock.Anything).Return(domain.Failed[domain.Job]("We could not load jobs right now."))

		w := h.get("/jobs/results")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `data-state="empty"`)
		assert.Contains(t, w.Body.String(), "We could not load jobs right now.")
	})

	t.Run("Populated", func(t *testing.T) {
		h := newHarness(t)
		h.jobs.On("SearchJobs", mock.Anything, mock.Anything).Return(domain.Loaded([]domain.Job{*sampleJob(), {ID: 8, Title: "SRE"}}))

		w := h.get("/jobs/results")
		assert.Contains(t, w.Body.String(), `data-state="populated"`)
		assert.Contains(t, w.Body.String(), "2 jobs found")
	})
}

func TestJobDetail(t *testing.T) {
	h := newHarness(t)
	h.jobs.On("GetJobPage", mock.Anything, int64(7)).Return(&domain.JobPage{
		Job:     sampleJob(),
		Similar: []domain.Job{{ID: 8, Title: "Platform Engineer"}},
	}, nil)
	h.jobs.On("GetJobPage", mock.Anything, int64(99)).Return(nil, apperror.NotFound("Job not found"))

	w := h.get("/jobs/7")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Backend Developer")
	assert.Contains(t, w.Body.String(), "Platform Engineer")

	w = h.get("/jobs/7?applied=1")
	assert.Contains(t, w.Body.String(), web.MsgApplied)

	w = h.get("/jobs/99")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Job not found")

	w = h.get("/jobs/abc")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func multipartApply(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField(middleware.CSRFTokenFormField, csrfToken))
	require.NoError(t, mw.WriteField("candidate_name", "Jane Doe"))
	require.NoError(t, mw.WriteField("candidate_email", "jane@example.com"))
	if filename != "" {
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{`form-data; name="cv"; filename="` + filename + `"`}
		header["Content-Type"] = []string{contentType}
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestApply(t *testing.T) {
	send := func(h *harness, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/jobs/7/apply", body)
		req.Header.Set("Content-Type", contentType)
		req.AddCookie(&http.Cookie{Name: middleware.CSRFTokenCookieName, Value: csrfToken})
		w := httptest.NewRecorder()
		h.router.ServeHTTP(w, req)
		return w
	}

	t.Run("Success redirects back to the job", func(t *testing.T) {
		h := newHarness(t)
		h.apps.On("Submit", mock.Anything, mock.MatchedBy(func(f *domain.ApplicationForm) bool {
			return f.JobID == 7 && f.CandidateName == "Jane Doe"
		}), mock.MatchedBy(func(cv *domain.CVFile) bool {
			return cv != nil && cv.Filename == "cv.pdf" && cv.ContentType == "application/pdf"
		})).Return(&domain.Application{ID: 1}, nil)

		body, ct := multipartApply(t, "cv.pdf", "application/pdf", []byte("%PDF-1.4 test"))
		w := send(h, body, ct)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/jobs/7?applied=1#apply", w.Header().Get("Location"))
		h.apps.AssertExpectations(t)
	})

	t.Run("Rejected CV re-renders the form with the message", func(t *testing.T) {
		h := newHarness(t)
		h.apps.On("Submit", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperror.Validation(security.ErrCVType.Error(), security.ErrCVType))
		h.jobs.On("GetJobPage", mock.Anything, int64(7)).Return(&domain.JobPage{Job: sampleJob(), Similar: []domain.Job{}}, nil)

		body, ct := multipartApply(t, "photo.png", "image/png", []byte("\x89PNG\r\n\x1a\n"))
		w := send(h, body, ct)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Please upload a PDF or Word document")
		assert.Contains(t, w.Body.String(), `value="Jane Doe"`)
	})

	t.Run("Missing CSRF token is refused", func(t *testing.T) {
		h := newHarness(t)
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("candidate_name", "Jane Doe"))
		require.NoError(t, mw.Close())

		w := send(h, &buf, mw.FormDataContentType())
		assert.Equal(t, http.StatusForbidden, w.Code)
		h.apps.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAdminApplications(t *testing.T) {
	h := newHarness(t)
	all := []domain.Application{
		{ID: 1, CandidateName: "Jane Roe", CandidateEmail: "jr@x.io", Status: domain.ApplicationStatusAccepted},
		{ID: 2, CandidateName: "Bob", CandidateEmail: "bob@x.io", Status: domain.ApplicationStatusRejected},
		{ID: 3, CandidateName: "Max", CandidateEmail: "JANE.m@x.io", Status: domain.ApplicationStatusAccepted},
	}
	filter := domain.ApplicationFilter{Status: domain.ApplicationStatusAccepted, Search: "jane"}
	h.apps.On("AdminBoard", mock.Anything, (*domain.Session)(nil), filter).Return(&domain.ApplicationBoard{
		All:      all,
		Filtered: filter.Apply(all),
		Stats:    domain.CountApplications(all),
		Filter:   filter,
	})

	w := h.get("/admin/applications?status=accepted&search=+jane+")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	h.apps.AssertNumberOfCalls(t, "AdminBoard", 1)

	t.Run("Every fetched row is rendered for in-page filtering", func(t *testing.T) {
		assert.Equal(t, len(all), strings.Count(body, "<tr data-application"))
		assert.Contains(t, body, `data-status="accepted" data-name="Jane Roe" data-email="jr@x.io">`)
		assert.Contains(t, body, `data-status="accepted" data-name="Max" data-email="JANE.m@x.io">`)
		assert.Contains(t, body, `data-status="rejected" data-name="Bob" data-email="bob@x.io" hidden>`)
		assert.Contains(t, body, `id="application-filters"`)
	})

	t.Run("Initial render reflects the query filter", func(t *testing.T) {
		assert.Contains(t, body, `Showing <span data-visible>2</span> of 3`)
		assert.Contains(t, body, `id="applications-empty" hidden`)
		assert.Contains(t, body, `name="return" value="/admin/applications?search=jane&amp;status=accepted"`)
	})
}

func TestAdminApplicationsNoMatches(t *testing.T) {
	h := newHarness(t)
	all := []domain.Application{{ID: 1, CandidateName: "Bob", CandidateEmail: "bob@x.io", Status: domain.ApplicationStatusSubmitted}}
	filter := domain.ApplicationFilter{Status: domain.ApplicationStatusInterview}
	h.apps.On("AdminBoard", mock.Anything, mock.Anything, filter).Return(&domain.ApplicationBoard{
		All:      all,
		Filtered: filter.Apply(all),
		Filter:   filter,
	})

	w := h.get("/admin/applications?status=interview")

	body := w.Body.String()
	assert.Contains(t, body, `<div class="empty" id="applications-empty">`)
	assert.Contains(t, body, `data-name="Bob" data-email="bob@x.io" hidden>`)
}

func TestUpdateApplicationStatus(t *testing.T) {
	h := newHarness(t)
	h.apps.On("UpdateStatus", mock.Anything, (*domain.Session)(nil), int64(3), domain.ApplicationStatusInterview).Return(nil)

	w := h.postForm("/admin/applications/3/status", url.Values{
		"status": {domain.ApplicationStatusInterview},
		"return": {"/admin/applications?status=submitted"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/applications?status=submitted&updated=1", w.Header().Get("Location"))

	t.Run("Foreign return paths are ignored", func(t *testing.T) {
		w := h.postForm("/admin/applications/3/status", url.Values{
			"status": {domain.ApplicationStatusInterview},
			"return": {"//evil.example.com/admin/"},
		})
		assert.Equal(t, "/admin/applications/3?updated=1", w.Header().Get("Location"))
	})
}

func TestCompanyPages(t *testing.T) {
	t.Run("Dashboard requires login", func(t *testing.T) {
		h := newHarness(t)
		w := h.get("/company/dashboard")
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/company/login?next=%2Fcompany%2Fdashboard", w.Header().Get("Location"))
	})

	t.Run("Dashboard renders for a signed-in company", func(t *testing.T) {
		h := newHarness(t)
		sess, cookie := h.signIn(t)
		stats := domain.ComputeDashboardStats([]domain.Job{*sampleJob()})
		h.company.On("Dashboard", mock.Anything, mock.MatchedBy(func(s *domain.Session) bool { return s.ID == sess.ID })).Return(&stats, nil)

		w := h.get("/company/dashboard?posted=1", cookie)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Backend Developer")
		assert.Contains(t, w.Body.String(), web.MsgJobPosted)
		assert.Contains(t, w.Body.String(), "Log out")
	})

	t.Run("Login sets the session cookie and redirects", func(t *testing.T) {
		h := newHarness(t)
		h.company.On("Login", mock.Anything, &domain.CompanyCredentials{Email: "hr@acme.io", Password: "pw"}).
			Return(&domain.Session{ID: "new", Token: "t", CompanyID: 4}, nil)

		w := h.postForm("/company/login", url.Values{"email": {"hr@acme.io"}, "password": {"pw"}, "next": {"/company/jobs/post"}})
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/company/jobs/post", w.Header().Get("Location"))

		var found bool
		for _, c := range w.Result().Cookies() {
			if c.Name == middleware.SessionCookieName {
				id, err := h.codec.Decode(c.Value)
				require.NoError(t, err)
				assert.Equal(t, "new", id)
				assert.True(t, c.HttpOnly)
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("Failed login re-renders with the message", func(t *testing.T) {
		h := newHarness(t)
		h.company.On("Login", mock.Anything, mock.Anything).Return(nil, apperror.Validation("Invalid credentials", nil))

		w := h.postForm("/company/login", url.Values{"email": {"hr@acme.io"}, "password": {"bad"}, "next": {"https://evil.example.com"}})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
		assert.Contains(t, w.Body.String(), `value="hr@acme.io"`)
	})

	t.Run("Post job parses blank salaries as absent", func(t *testing.T) {
		h := newHarness(t)
		_, cookie := h.signIn(t)
		h.company.On("PostJob", mock.Anything, mock.Anything, mock.MatchedBy(func(p *domain.JobPosting) bool {
			return p.Title == "Go Engineer" && p.SalaryMin != nil && *p.SalaryMin == 70000 && p.SalaryMax == nil
		})).Return(&domain.Job{ID: 12}, nil)

		w := h.postForm("/company/jobs/post", url.Values{
			"title":      {"Go Engineer"},
			"location":   {"Remote"},
			"category":   {"2"},
			"salary_min": {"70,000"},
			"salary_max": {""},
		}, cookie)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/company/dashboard?posted=1", w.Header().Get("Location"))
	})
}

type fakeGuard struct {
	blocked  map[string]bool
	failures map[string]int
	limit    int
	cleared  []string
}

func newFakeGuard(limit int) *fakeGuard {
	return &fakeGuard{blocked: map[string]bool{}, failures: map[string]int{}, limit: limit}
}

func (g *fakeGuard) IsBlocked(_ context.Context, email string) (bool, error) {
	return g.blocked[email], nil
}

func (g *fakeGuard) RecordFailure(_ context.Context, email, _ string) (bool, error) {
	g.failures[email]++
	if g.failures[email] >= g.limit {
		g.blocked[email] = true
	}
	return g.blocked[email], nil
}

func (g *fakeGuard) Clear(_ context.Context, email string) error {
	delete(g.failures, email)
	g.cleared = append(g.cleared, email)
	return nil
}

func TestLoginLockout(t *testing.T) {
	guard := newFakeGuard(2)
	h := newHarnessWithGuard(t, guard)
	h.company.On("Login", mock.Anything, mock.Anything).Return(nil, apperror.Validation("Invalid credentials", nil))
	form := url.Values{"email": {"hr@acme.io"}, "password": {"bad"}}

	w := h.postForm("/company/login", form)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	w = h.postForm("/company/login", form)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many failed login attempts")

	w = h.postForm("/company/login", form)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	h.company.AssertNumberOfCalls(t, "Login", 2)
}

func TestLoginOutageIsNotAFailedAttempt(t *testing.T) {
	guard := newFakeGuard(1)
	h := newHarnessWithGuard(t, guard)
	h.company.On("Login", mock.Anything, mock.Anything).
		Return(nil, apperror.Unavailable("Sign-in is temporarily unavailable. Please try again later.", nil))

	w := h.postForm("/company/login", url.Values{"email": {"hr@acme.io"}, "password": {"pw"}})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Sign-in is temporarily unavailable.")
	assert.Empty(t, guard.failures)
	assert.False(t, guard.blocked["hr@acme.io"])
}

func TestLoginClearsFailures(t *testing.T) {
	guard := newFakeGuard(5)
	guard.failures["hr@acme.io"] = 3
	h := newHarnessWithGuard(t, guard)
	h.company.On("Login", mock.Anything, mock.Anything).Return(&domain.Session{ID: "s", Token: "t"}, nil)

	w := h.postForm("/company/login", url.Values{"email": {"hr@acme.io"}, "password": {"pw"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/company/dashboard", w.Header().Get("Location"))
	assert.Equal(t, []string{"hr@acme.io"}, guard.cleared)
	assert.NotContains(t, guard.failures, "hr@acme.io")
}

func TestContactPage(t *testing.T) {
	h := newHarness(t)
	h.contact.On("SendContactMessage", mock.Anything, mock.MatchedBy(func(r *domain.ContactRequest) bool {
		return r.Email == "a@b.io"
	})).Return(nil)
	h.contact.On("SendContactMessage", mock.Anything, mock.Anything).Return(apperror.Validation("Email must be a valid email address", nil))

	w := h.postForm("/contact", url.Values{"name": {"A"}, "email": {"a@b.io"}, "subject": {"Hi"}, "message": {"Hello"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thank you for your message!")

	w = h.postForm("/contact", url.Values{"name": {"A"}, "email": {"nope"}, "subject": {"Hi"}, "message": {"Hello"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Email must be a valid email address")
}

func TestNotFoundPage(t *testing.T) {
	h := newHarness(t)
	w := h.get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}

func TestStaticAssets(t *testing.T) {
	h := newHarness(t)
	w := h.get("/static/app.js")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "experience")
	assert.Contains(t, body, "function queryEscape")
	assert.Contains(t, body, "function initApplicationFilter")
}
