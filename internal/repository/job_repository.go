package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/fadilmartias/job-portal/internal/database"
	"github.com/fadilmartias/job-portal/internal/dto"
	"github.com/fadilmartias/job-portal/internal/model"
	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepositoryInterface interface {
	FindJobs(ctx context.Context, filter dto.JobFilter) ([]model.JobPosting, error)
	FindJobByID(ctx context.Context, id uint) (*model.JobPosting, error)
	CreateJob(ctx context.Context, job *model.JobPosting) error
	UpdateJob(ctx context.Context, id uint, job *model.JobPosting) (int64, error)
	DeleteJob(ctx context.Context, id uint) (int64, error)
	Ping(ctx context.Context) error
}

// updatableColumns are rewritten by UpdateJob; every column except id and created_at.
var updatableColumns = []string{
	"job_title",
	"company_name",
	"location",
	"job_type",
	"salary_range",
	"salary_min",
	"salary_max",
	"salary_currency",
	"job_description",
	"requirements",
	"responsibilities",
	"application_deadline",
	"updated_at",
}

type JobRepository struct {
	db      *gorm.DB
	migrate func(*gorm.DB) error

	schemaMu    sync.Mutex
	schemaReady bool
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db, migrate: migrateJobs}
}

func (r *JobRepository) FindJobs(ctx context.Context, filter dto.JobFilter) ([]model.JobPosting, error) {
	var jobs []model.JobPosting
	err := listQuery(r.db.WithContext(ctx), filter).Find(&jobs).Error
	return jobs, err
}

// listQuery ANDs the supplied filters. Salary bounds only require a
// salary_range to be present; no numeric comparison is made.
func listQuery(tx *gorm.DB, filter dto.JobFilter) *gorm.DB {
	q := tx.Model(&model.JobPosting{})
	if filter.JobTitle != "" {
		q = q.Where("job_title ILIKE ?", "%"+filter.JobTitle+"%")
	}
	if filter.Location != "" {
		q = q.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.JobType != "" {
		q = q.Where("job_type = ?", filter.JobType)
	}
	if filter.HasSalaryBounds() {
		q = q.Where("salary_range IS NOT NULL")
	}
	return q.Order("created_at DESC").Order("id DESC")
}

func (r *JobRepository) FindJobByID(ctx context.Context, id uint) (*model.JobPosting, error) {
	var j model.JobPosting
	err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobRepository) CreateJob(ctx context.Context, job *model.JobPosting) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// UpdateJob replaces every mutable column of row id and reports how many rows matched.
func (r *JobRepository) UpdateJob(ctx context.Context, id uint, job *model.JobPosting) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.JobPosting{}).
		Where("id = ?", id).
		Select(updatableColumns).
		Updates(job)
	return res.RowsAffected, res.Error
}

func (r *JobRepository) DeleteJob(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.JobPosting{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *JobRepository) Ping(ctx context.Context) error {
	return database.Ping(ctx, r.db)
}
