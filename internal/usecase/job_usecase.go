package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fadilmartias/job-portal/internal/cache"
	"github.com/fadilmartias/job-portal/internal/dto"
	apperrors "github.com/fadilmartias/job-portal/internal/errors"
	"github.com/fadilmartias/job-portal/internal/model"
	"github.com/fadilmartias/job-portal/internal/repository"
	"github.com/fadilmartias/job-portal/internal/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const jobNotFoundMessage = "Job not found"

type JobUsecase struct {
	jobRepo repository.JobRepositoryInterface
	cache   cache.Cache
	logger  *zap.Logger
	tracer  trace.Tracer

	// fillMu orders cache fills against invalidations. A write bumps the
	// id's generation; a read only fills the cache if the generation it saw
	// before querying is still current.
	fillMu      sync.Mutex
	generations map[uint]uint64
}

func NewJobUsecase(jobRepo repository.JobRepositoryInterface, c cache.Cache, logger *zap.Logger) *JobUsecase {
	return &JobUsecase{
		jobRepo:     jobRepo,
		cache:       c,
		logger:      logger,
		tracer:      telemetry.GetTracer("job-portal/usecase"),
		generations: make(map[uint]uint64),
	}
}

func jobCacheKey(id uint) string {
	return fmt.Sprintf("job:%d", id)
}

func (uc *JobUsecase) ListJobs(ctx context.Context, filter dto.JobFilter) ([]model.JobPosting, error) {
	ctx, span := uc.tracer.Start(ctx, "JobUsecase.ListJobs")
	defer span.End()

	jobs, err := uc.jobRepo.FindJobs(ctx, filter)
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Internal("fetching jobs", err)
	}
	span.SetAttributes(telemetry.Int("jobs.count", len(jobs)))
	uc.logger.Debug("listed jobs", zap.Int("count", len(jobs)), zap.Any("filter", filter))
	return jobs, nil
}

func (uc *JobUsecase) GetJob(ctx context.Context, id uint) (*model.JobPosting, error) {
	ctx, span := uc.tracer.Start(ctx, "JobUsecase.GetJob")
	defer span.End()
	span.SetAttributes(telemetry.Int("job.id", int(id)))

	gen := uc.generation(id)

	var cached model.JobPosting
	err := uc.cache.Get(ctx, jobCacheKey(id), &cached)
	if err == nil {
		span.SetAttributes(telemetry.String("cache.result", "hit"))
		return &cached, nil
	} else if !errors.Is(err, cache.ErrNotFound) {
		span.SetAttributes(telemetry.String("cache.result", "error"))
		uc.logger.Warn("cache error", zap.Uint("id", id), zap.Error(err))
	} else {
		span.SetAttributes(telemetry.String("cache.result", "miss"))
	}

	job, err := uc.jobRepo.FindJobByID(ctx, id)
	if errors.Is(err, repository.ErrJobNotFound) {
		return nil, apperrors.NotFound(jobNotFoundMessage, err)
	}
	if err != nil {
		span.RecordError(err)
		return nil, apperrors.Internal("fetching job", err)
	}

	uc.fill(ctx, id, gen, job)
	return job, nil
}

// CreateJob stores the posting as submitted. Required fields and the
// job_type enum are enforced by the store, not here.
func (uc *JobUsecase) CreateJob(ctx context.Context, req dto.JobPostingRequest) (uint, error) {
	ctx, span := uc.tracer.Start(ctx, "JobUsecase.CreateJob")
	defer span.End()

	job, err := req.ToModel()
	if err != nil {
		span.RecordError(err)
		return 0, apperrors.Internal("creating job", err)
	}
	if err := uc.jobRepo.CreateJob(ctx, &job); err != nil {
		span.RecordError(err)
		return 0, apperrors.Internal("creating job", err)
	}

	span.SetAttributes(telemetry.Int("job.id", int(job.ID)))
	uc.logger.Info("job created", zap.Uint("id", job.ID), zap.String("job_title", job.JobTitle))
	return job.ID, nil
}

// UpdateJob replaces every field of the posting except its id.
func (uc *JobUsecase) UpdateJob(ctx context.Context, id uint, req dto.JobPostingRequest) error {
	ctx, span := uc.tracer.Start(ctx, "JobUsecase.UpdateJob")
	defer span.End()
	span.SetAttributes(telemetry.Int("job.id", int(id)))

	job, err := req.ToModel()
	if err != nil {
		span.RecordError(err)
		return apperrors.Internal("updating job", err)
	}
	affected, err := uc.jobRepo.UpdateJob(ctx, id, &job)
	if err != nil {
		span.RecordError(err)
		return apperrors.Internal("updating job", err)
	}
	if affected == 0 {
		return apperrors.NotFound(jobNotFoundMessage, nil)
	}

	uc.evict(ctx, id)
	uc.logger.Info("job updated", zap.Uint("id", id))
	return nil
}

func (uc *JobUsecase) DeleteJob(ctx context.Context, id uint) error {
	ctx, span := uc.tracer.Start(ctx, "JobUsecase.DeleteJob")
	defer span.End()
	span.SetAttributes(telemetry.Int("job.id", int(id)))

	affected, err := uc.jobRepo.DeleteJob(ctx, id)
	if err != nil {
		span.RecordError(err)
		return apperrors.Internal("deleting job", err)
	}
	if affected == 0 {
		return apperrors.NotFound(jobNotFoundMessage, nil)
	}

	uc.evict(ctx, id)
	uc.logger.Info("job deleted", zap.Uint("id", id))
	return nil
}

// Ready reports whether the store answers.
func (uc *JobUsecase) Ready(ctx context.Context) error {
	if err := uc.jobRepo.Ping(ctx); err != nil {
		return apperrors.Unavailable("database unreachable", err)
	}
	return nil
}

func (uc *JobUsecase) generation(id uint) uint64 {
	uc.fillMu.Lock()
	defer uc.fillMu.Unlock()
	return uc.generations[id]
}

// fill caches job unless the id was written since gen was read.
func (uc *JobUsecase) fill(ctx context.Context, id uint, gen uint64, job *model.JobPosting) {
	uc.fillMu.Lock()
	defer uc.fillMu.Unlock()
	if uc.generations[id] != gen {
		uc.logger.Debug("skipping stale cache fill", zap.Uint("id", id))
		return
	}
	if err := uc.cache.Set(ctx, jobCacheKey(id), job, 0); err != nil {
		uc.logger.Warn("failed to cache job", zap.Uint("id", id), zap.Error(err))
	}
}

// evict runs after a committed write. Bumping the generation under fillMu
// first means any read that started before the write can no longer fill.
func (uc *JobUsecase) evict(ctx context.Context, id uint) {
	uc.fillMu.Lock()
	uc.generations[id]++
	uc.fillMu.Unlock()

	if err := uc.cache.Delete(ctx, jobCacheKey(id)); err != nil {
		uc.logger.Warn("failed to evict cached job", zap.Uint("id", id), zap.Error(err))
	}
}
