package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fadilmartias/job-portal/internal/dto"
	"github.com/fadilmartias/job-portal/internal/model"
	"gorm.io/gorm"
)

type seedJob struct {
	title, company, location string
	jobType                  model.JobType
	salaryRange              string
	description              string
	requirements             string
	responsibilities         string
	deadline                 string
}

var sampleJobs = []seedJob{
	{"Full Stack Developer", "Amazon", "Chennai", model.JobTypeFullTime, "₹50k - ₹80k", "A user-friendly interface lets you browse stunning photos and videos", "React, Node.js, MySQL", "Develop web applications", "2024-08-30"},
	{"Node Js Developer", "Tesla", "Bangalore", model.JobTypeFullTime, "₹60k - ₹90k", "Backend development with Node.js", "Node.js, Express, MongoDB", "Build APIs and services", "2024-08-25"},
	{"UX/UI Designer", "Meta", "Mumbai", model.JobTypePartTime, "₹40k - ₹70k", "Design user interfaces and experiences", "Figma, Adobe XD, Sketch", "Create wireframes and prototypes", "2024-09-15"},
	{"Full Stack Developer", "Google", "Hyderabad", model.JobTypeContract, "₹70k - ₹100k", "Full stack web development", "React, Python, PostgreSQL", "End-to-end development", "2024-09-01"},
}

// SampleJobs returns the postings inserted into an empty table.
func SampleJobs() []model.JobPosting {
	jobs := make([]model.JobPosting, 0, len(sampleJobs))
	for _, s := range sampleJobs {
		s := s
		req := dto.JobPostingRequest{
			JobTitle:            s.title,
			CompanyName:         s.company,
			Location:            s.location,
			JobType:             string(s.jobType),
			SalaryRange:         &s.salaryRange,
			JobDescription:      &s.description,
			Requirements:        &s.requirements,
			Responsibilities:    &s.responsibilities,
			ApplicationDeadline: &s.deadline,
		}
		job, err := req.ToModel()
		if err != nil {
			panic(fmt.Sprintf("invalid sample job %q: %v", s.title, err))
		}
		jobs = append(jobs, job)
	}
	return jobs
}

// EnsureSchema creates the jobs table when absent and seeds it when empty.
// After one successful run further calls return immediately; a failed run
// may be retried.
func (r *JobRepository) EnsureSchema(ctx context.Context) error {
	r.schemaMu.Lock()
	defer r.schemaMu.Unlock()
	if r.schemaReady {
		return nil
	}

	db := r.db.WithContext(ctx)
	if err := r.migrate(db); err != nil {
		return fmt.Errorf("migrate jobs table: %w", err)
	}
	if err := seed(db); err != nil {
		return err
	}

	r.schemaReady = true
	return nil
}

func migrateJobs(db *gorm.DB) error {
	return db.AutoMigrate(&model.JobPosting{})
}

func seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.JobPosting{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count jobs: %w", err)
	}
	if count > 0 {
		return nil
	}

	jobs := SampleJobs()
	now := time.Now()
	for i := range jobs {
		jobs[i].CreatedAt = now
		jobs[i].UpdatedAt = now
	}
	if err := db.Create(&jobs).Error; err != nil {
		return fmt.Errorf("insert sample jobs: %w", err)
	}
	return nil
}
