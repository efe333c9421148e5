// Package repotest provides an in-memory JobRepositoryInterface that
// behaves like the PostgreSQL table: NOT NULL and job_type CHECK
// violations are rejected, ids are never reused.
package repotest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/job-portal/internal/dto"
	"github.com/fadilmartias/job-portal/internal/model"
	"github.com/fadilmartias/job-portal/internal/repository"
)

var ErrConstraint = errors.New("constraint violation")

type JobRepository struct {
	mu     sync.Mutex
	nextID uint
	jobs   map[uint]model.JobPosting
	clock  func() time.Time

	// Err, when set, is returned by every operation.
	Err error
}

func NewJobRepository() *JobRepository {
	start := time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	return &JobRepository{
		nextID: 1,
		jobs:   make(map[uint]model.JobPosting),
		clock: func() time.Time {
			tick++
			return start.Add(time.Duration(tick) * time.Second)
		},
	}
}

// Seed inserts the sample postings.
func (r *JobRepository) Seed() {
	for _, j := range repository.SampleJobs() {
		j := j
		_ = r.CreateJob(context.Background(), &j)
	}
}

func (r *JobRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}

func (r *JobRepository) FindJobs(_ context.Context, filter dto.JobFilter) ([]model.JobPosting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	out := []model.JobPosting{}
	for _, j := range r.jobs {
		if filter.JobTitle != "" && !containsFold(j.JobTitle, filter.JobTitle) {
			continue
		}
		if filter.Location != "" && !containsFold(j.Location, filter.Location) {
			continue
		}
		if filter.JobType != "" && string(j.JobType) != filter.JobType {
			continue
		}
		if filter.HasSalaryBounds() && j.SalaryRange == nil {
			continue
		}
		out = append(out, j)
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].CreatedAt.After(out[b].CreatedAt)
		}
		return out[a].ID > out[b].ID
	})
	return out, nil
}

func (r *JobRepository) FindJobByID(_ context.Context, id uint) (*model.JobPosting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	j, ok := r.jobs[id]
	if !ok {
		return nil, repository.ErrJobNotFound
	}
	return &j, nil
}

func (r *JobRepository) CreateJob(_ context.Context, job *model.JobPosting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if err := check(job); err != nil {
		return err
	}
	now := r.clock()
	job.ID = r.nextID
	job.CreatedAt = now
	job.UpdatedAt = now
	r.nextID++
	r.jobs[job.ID] = *job
	return nil
}

func (r *JobRepository) UpdateJob(_ context.Context, id uint, job *model.JobPosting) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	current, ok := r.jobs[id]
	if !ok {
		return 0, nil
	}
	if err := check(job); err != nil {
		return 0, err
	}
	updated := *job
	updated.ID = id
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = r.clock()
	r.jobs[id] = updated
	return 1, nil
}

func (r *JobRepository) DeleteJob(_ context.Context, id uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	if _, ok := r.jobs[id]; !ok {
		return 0, nil
	}
	delete(r.jobs, id)
	return 1, nil
}

func (r *JobRepository) Ping(context.Context) error {
	return r.Err
}

func check(job *model.JobPosting) error {
	if job.JobTitle == "" || job.CompanyName == "" || job.Location == "" || !job.JobType.Valid() {
		return ErrConstraint
	}
	return nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
