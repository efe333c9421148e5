package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fadilmartias/job-portal/internal/cache"
	"github.com/fadilmartias/job-portal/internal/dto"
	"github.com/fadilmartias/job-portal/internal/repository/repotest"
	"github.com/fadilmartias/job-portal/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) (*fiber.App, *repotest.JobRepository) {
	t.Helper()
	repo := repotest.NewJobRepository()
	repo.Seed()
	uc := usecase.NewJobUsecase(repo, cache.NewMemory(), zap.NewNop())

	app := fiber.New()
	NewHealthHandler().RegisterRoutes(app)
	NewJobHandler(uc, zap.NewNop(), 1000, time.Minute).RegisterRoutes(app)
	return app, repo
}

func do(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func errorOf(t *testing.T, data []byte) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(data, &body))
	return body["error"]
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)

	resp, data := do(t, app, fiber.MethodGet, "/api/health", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.HealthResponse
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "Backend is running successfully!", body.Message)
	_, err := time.Parse(time.RFC3339, body.Timestamp)
	assert.NoError(t, err)
}

func TestListJobs(t *testing.T) {
	app, _ := newTestApp(t)

	resp, data := do(t, app, fiber.MethodGet, "/api/jobs", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var jobs []dto.JobPostingDTO
	require.NoError(t, json.Unmarshal(data, &jobs))
	require.Len(t, jobs, 4)
	assert.Equal(t, "Google", jobs[0].CompanyName)
	require.NotNil(t, jobs[0].Salary)
	assert.Equal(t, 70, jobs[0].Salary.Min)
	assert.Equal(t, 100, jobs[0].Salary.Max)
}

func TestListJobsFilters(t *testing.T) {
	app, _ := newTestApp(t)

	_, data := do(t, app, fiber.MethodGet, "/api/jobs?job_title=Developer&location=bang", "")
	var jobs []dto.JobPostingDTO
	require.NoError(t, json.Unmarshal(data, &jobs))
	require.Len(t, jobs, 1)
	assert.Equal(t, "Tesla", jobs[0].CompanyName)

	resp, data := do(t, app, fiber.MethodGet, "/api/jobs?job_type=Freelance", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(data))
}

func TestGetJob(t *testing.T) {
	app, _ := newTestApp(t)

	resp, data := do(t, app, fiber.MethodGet, "/api/jobs/3", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var job dto.JobPostingDTO
	require.NoError(t, json.Unmarshal(data, &job))
	assert.Equal(t, uint(3), job.ID)
	assert.Equal(t, "UX/UI Designer", job.JobTitle)
}

func TestGetJobNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	for _, target := range []string{"/api/jobs/999", "/api/jobs/abc", "/api/jobs/0"} {
		resp, data := do(t, app, fiber.MethodGet, target, "")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, target)
		assert.Equal(t, "Job not found", errorOf(t, data), target)
	}
}

func TestCreateJob(t *testing.T) {
	app, repo := newTestApp(t)

	body := `{"job_title":"Go Engineer","company_name":"Acme","location":"Pune","job_type":"Internship","salary_range":"₹20k - ₹30k","application_deadline":"2024-12-01"}`
	resp, data := do(t, app, fiber.MethodPost, "/api/jobs", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created dto.CreateJobResponse
	require.NoError(t, json.Unmarshal(data, &created))
	assert.Equal(t, "Job created successfully", created.Message)
	assert.Equal(t, uint(5), created.JobID)
	assert.Equal(t, 5, repo.Len())

	_, data = do(t, app, fiber.MethodGet, "/api/jobs/5", "")
	var job dto.JobPostingDTO
	require.NoError(t, json.Unmarshal(data, &job))
	assert.Equal(t, "Go Engineer", job.JobTitle)
	require.NotNil(t, job.ApplicationDeadline)
	assert.Equal(t, "2024-12-01", *job.ApplicationDeadline)
	assert.Nil(t, job.JobDescription)
}

func TestCreateJobRejectedByStore(t *testing.T) {
	app, repo := newTestApp(t)

	bodies := []string{
		`{"company_name":"Acme","location":"Pune","job_type":"Full-time"}`,
		`{"job_title":"A","company_name":"B","location":"C","job_type":"Freelance"}`,
	}
	for _, body := range bodies {
		resp, data := do(t, app, fiber.MethodPost, "/api/jobs", body)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Internal server error", errorOf(t, data))
	}
	assert.Equal(t, 4, repo.Len())
}

func TestCreateJobMalformedBody(t *testing.T) {
	app, _ := newTestApp(t)

	resp, data := do(t, app, fiber.MethodPost, "/api/jobs", `{"job_title":`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid JSON body", errorOf(t, data))
}

func TestUpdateJob(t *testing.T) {
	app, _ := newTestApp(t)

	body := `{"job_title":"Lead Designer","company_name":"Meta","location":"Mumbai","job_type":"Full-time"}`
	resp, data := do(t, app, fiber.MethodPut, "/api/jobs/3", body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Job updated successfully"}`, string(data))

	_, data = do(t, app, fiber.MethodGet, "/api/jobs/3", "")
	var job dto.JobPostingDTO
	require.NoError(t, json.Unmarshal(data, &job))
	assert.Equal(t, "Lead Designer", job.JobTitle)
	assert.Nil(t, job.SalaryRange)
	assert.Nil(t, job.Salary)
}

func TestUpdateJobNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	body := `{"job_title":"X","company_name":"Y","location":"Z","job_type":"Contract"}`
	resp, data := do(t, app, fiber.MethodPut, "/api/jobs/999", body)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Job not found", errorOf(t, data))
}

func TestDeleteJob(t *testing.T) {
	app, repo := newTestApp(t)

	resp, data := do(t, app, fiber.MethodDelete, "/api/jobs/1", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Job deleted successfully"}`, string(data))
	assert.Equal(t, 3, repo.Len())

	resp, _ = do(t, app, fiber.MethodDelete, "/api/jobs/1", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 3, repo.Len())
}

func TestStoreFailureIsGeneric500(t *testing.T) {
	app, repo := newTestApp(t)
	repo.Err = errors.New("pq: password authentication failed")

	resp, data := do(t, app, fiber.MethodGet, "/api/jobs", "")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", errorOf(t, data))
	assert.NotContains(t, string(data), "password")
}
