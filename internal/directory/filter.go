package directory

import (
	"strings"

	"github.com/fadilmartias/job-portal/internal/dto"
	"github.com/fadilmartias/job-portal/internal/salary"
)

// Filters narrows the fetched postings. Zero values disable a filter.
type Filters struct {
	Title    string
	Location string
	JobType  string
	// Salary, when positive, keeps only postings whose range contains it.
	Salary int
}

func (f Filters) IsZero() bool {
	return f == Filters{}
}

func (f Filters) Match(job dto.JobPostingDTO) bool {
	if f.Title != "" && !containsFold(job.JobTitle, f.Title) {
		return false
	}
	if f.Location != "" && !containsFold(job.Location, f.Location) {
		return false
	}
	if f.JobType != "" && job.JobType != f.JobType {
		return false
	}
	if f.Salary > 0 {
		rng, ok := salaryOf(job)
		if !ok || !rng.Contains(f.Salary) {
			return false
		}
	}
	return true
}

// Apply returns the postings matching f in fetched order.
func (f Filters) Apply(jobs []dto.JobPostingDTO) []dto.JobPostingDTO {
	out := make([]dto.JobPostingDTO, 0, len(jobs))
	for _, j := range jobs {
		if f.Match(j) {
			out = append(out, j)
		}
	}
	return out
}

// salaryOf prefers the range stored by the server and falls back to parsing
// the free text, for postings written before the range was stored.
func salaryOf(job dto.JobPostingDTO) (salary.Range, bool) {
	if job.Salary != nil {
		return *job.Salary, true
	}
	if job.SalaryRange == nil {
		return salary.Range{}, false
	}
	return salary.Parse(*job.SalaryRange)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
