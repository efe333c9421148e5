package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/job-portal/internal/model"
	"github.com/fadilmartias/job-portal/internal/salary"
	"gorm.io/datatypes"
)

// DateLayout is the wire format of application_deadline.
const DateLayout = "2006-01-02"

// JobPostingRequest is the body of create and update. Nothing is validated
// here; the store enforces required columns and the job_type enum.
type JobPostingRequest struct {
	JobTitle            string  `json:"job_title"`
	CompanyName         string  `json:"company_name"`
	Location            string  `json:"location"`
	JobType             string  `json:"job_type"`
	SalaryRange         *string `json:"salary_range"`
	JobDescription      *string `json:"job_description"`
	Requirements        *string `json:"requirements"`
	Responsibilities    *string `json:"responsibilities"`
	ApplicationDeadline *string `json:"application_deadline"`
}

type JobPostingDTO struct {
	ID                  uint          `json:"id"`
	JobTitle            string        `json:"job_title"`
	CompanyName         string        `json:"company_name"`
	Location            string        `json:"location"`
	JobType             string        `json:"job_type"`
	SalaryRange         *string       `json:"salary_range"`
	Salary              *salary.Range `json:"salary,omitempty"`
	JobDescription      *string       `json:"job_description"`
	Requirements        *string       `json:"requirements"`
	Responsibilities    *string       `json:"responsibilities"`
	ApplicationDeadline *string       `json:"application_deadline"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// JobFilter holds the optional query-string filters of the list operation.
type JobFilter struct {
	JobTitle  string `query:"job_title"`
	Location  string `query:"location"`
	JobType   string `query:"job_type"`
	SalaryMin string `query:"salary_min"`
	SalaryMax string `query:"salary_max"`
}

// HasSalaryBounds is true only when both salary bounds were supplied.
func (f JobFilter) HasSalaryBounds() bool {
	return f.SalaryMin != "" && f.SalaryMax != ""
}

type CreateJobResponse struct {
	Message string `json:"message"`
	JobID   uint   `json:"jobId"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// ToModel maps the request onto a new posting, deriving the structured
// salary from the free-text range.
func (r JobPostingRequest) ToModel() (model.JobPosting, error) {
	job := model.JobPosting{
		JobTitle:         r.JobTitle,
		CompanyName:      r.CompanyName,
		Location:         r.Location,
		JobType:          model.JobType(r.JobType),
		SalaryRange:      r.SalaryRange,
		JobDescription:   r.JobDescription,
		Requirements:     r.Requirements,
		Responsibilities: r.Responsibilities,
	}

	deadline, err := ParseDate(r.ApplicationDeadline)
	if err != nil {
		return model.JobPosting{}, err
	}
	job.ApplicationDeadline = deadline

	if r.SalaryRange != nil {
		if rng, ok := salary.Parse(*r.SalaryRange); ok {
			job.SalaryMin = &rng.Min
			job.SalaryMax = &rng.Max
			if rng.Currency != "" {
				job.SalaryCurrency = &rng.Currency
			}
		}
	}
	return job, nil
}

// ParseDate accepts YYYY-MM-DD or RFC 3339. Nil and blank input yield nil.
func ParseDate(value *string) (*datatypes.Date, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	s := strings.TrimSpace(*value)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("invalid application_deadline %q: %w", s, err)
		}
	}
	d := datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
	return &d, nil
}

func FromModel(job model.JobPosting) JobPostingDTO {
	out := JobPostingDTO{
		ID:               job.ID,
		JobTitle:         job.JobTitle,
		CompanyName:      job.CompanyName,
		Location:         job.Location,
		JobType:          string(job.JobType),
		SalaryRange:      job.SalaryRange,
		JobDescription:   job.JobDescription,
		Requirements:     job.Requirements,
		Responsibilities: job.Responsibilities,
		CreatedAt:        job.CreatedAt,
		UpdatedAt:        job.UpdatedAt,
	}
	if job.ApplicationDeadline != nil {
		s := time.Time(*job.ApplicationDeadline).Format(DateLayout)
		out.ApplicationDeadline = &s
	}
	if job.SalaryMin != nil && job.SalaryMax != nil {
		rng := salary.Range{Min: *job.SalaryMin, Max: *job.SalaryMax}
		if job.SalaryCurrency != nil {
			rng.Currency = *job.SalaryCurrency
		}
		out.Salary = &rng
	}
	return out
}

func FromModels(jobs []model.JobPosting) []JobPostingDTO {
	out := make([]JobPostingDTO, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, FromModel(j))
	}
	return out
}
