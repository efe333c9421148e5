package creation

import (
	"strings"

	"github.com/fadilmartias/job-portal/internal/dto"
)

// Form mirrors the inputs of the job creation screen. Every field is kept as
// typed; empty optional fields are sent as null.
type Form struct {
	JobTitle            string `json:"job_title" validate:"required"`
	CompanyName         string `json:"company_name" validate:"required"`
	Location            string `json:"location" validate:"required"`
	JobType             string `json:"job_type" validate:"omitempty,oneof=Full-time Part-time Contract Internship"`
	SalaryRange         string `json:"salary_range"`
	JobDescription      string `json:"job_description" validate:"required"`
	Requirements        string `json:"requirements"`
	Responsibilities    string `json:"responsibilities"`
	ApplicationDeadline string `json:"application_deadline" validate:"omitempty,datetime=2006-01-02"`
}

func (f Form) IsZero() bool {
	return f == Form{}
}

func (f Form) Request() dto.JobPostingRequest {
	return dto.JobPostingRequest{
		JobTitle:            f.JobTitle,
		CompanyName:         f.CompanyName,
		Location:            f.Location,
		JobType:             f.JobType,
		SalaryRange:         optional(f.SalaryRange),
		JobDescription:      optional(f.JobDescription),
		Requirements:        optional(f.Requirements),
		Responsibilities:    optional(f.Responsibilities),
		ApplicationDeadline: optional(f.ApplicationDeadline),
	}
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
