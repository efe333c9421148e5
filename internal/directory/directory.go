// Package directory keeps the fetched job collection and the filtered view
// of it shown to the user.
package directory

import (
	"context"
	"errors"
	"sync"

	"github.com/fadilmartias/job-portal/internal/client"
	"github.com/fadilmartias/job-portal/internal/dto"
	"go.uber.org/zap"
)

type State string

const (
	StateLoading State = "loading"
	StateError   State = "error"
	StateReady   State = "ready"
)

// API is the part of client.Client the directory needs.
type API interface {
	Health(ctx context.Context) (dto.HealthResponse, error)
	ListJobs(ctx context.Context, filter dto.JobFilter) ([]dto.JobPostingDTO, error)
}

type Directory struct {
	api    API
	logger *zap.Logger

	mu      sync.RWMutex
	state   State
	err     *client.Error
	jobs    []dto.JobPostingDTO
	filters Filters
	visible []dto.JobPostingDTO
}

func New(api API, logger *zap.Logger) *Directory {
	return &Directory{api: api, logger: logger, state: StateLoading}
}

// Load checks the backend is up, then fetches every posting. Filtering
// happens locally, so the list is requested without filters.
func (d *Directory) Load(ctx context.Context) error {
	d.mu.Lock()
	d.state = StateLoading
	d.err = nil
	d.mu.Unlock()

	jobs, err := d.fetch(ctx)
	if err != nil {
		ce := asClientError(err)
		d.logger.Warn("loading jobs failed", zap.String("kind", string(ce.Kind)), zap.Error(err))

		d.mu.Lock()
		d.state = StateError
		d.err = ce
		d.mu.Unlock()
		return ce
	}

	d.mu.Lock()
	d.state = StateReady
	d.jobs = jobs
	d.visible = d.filters.Apply(jobs)
	d.mu.Unlock()
	d.logger.Debug("jobs loaded", zap.Int("count", len(jobs)))
	return nil
}

// Retry reruns the health check and the fetch.
func (d *Directory) Retry(ctx context.Context) error {
	return d.Load(ctx)
}

func (d *Directory) fetch(ctx context.Context) ([]dto.JobPostingDTO, error) {
	if _, err := d.api.Health(ctx); err != nil {
		return nil, err
	}
	return d.api.ListJobs(ctx, dto.JobFilter{})
}

func (d *Directory) SetFilters(f Filters) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filters = f
	d.visible = f.Apply(d.jobs)
}

func (d *Directory) ClearFilters() {
	d.SetFilters(Filters{})
}

func (d *Directory) State() State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Err is the classified failure of the last load, nil unless State is StateError.
func (d *Directory) Err() *client.Error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.err
}

func (d *Directory) Filters() Filters {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.filters
}

// Jobs returns every fetched posting.
func (d *Directory) Jobs() []dto.JobPostingDTO {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]dto.JobPostingDTO(nil), d.jobs...)
}

// Visible returns the postings matching the current filters.
func (d *Directory) Visible() []dto.JobPostingDTO {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]dto.JobPostingDTO(nil), d.visible...)
}

func asClientError(err error) *client.Error {
	var ce *client.Error
	if errors.As(err, &ce) {
		return ce
	}
	return &client.Error{Kind: client.KindUnknown, Message: "An unexpected error occurred.", Err: err}
}
