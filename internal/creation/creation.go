// Package creation holds the state of the job creation form: its inputs,
// submission to the API and the local draft.
package creation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/job-portal/internal/client"
	"github.com/fadilmartias/job-portal/internal/dto"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// SubmitTimeout bounds a single create request.
const SubmitTimeout = 10 * time.Second

const unknownSubmitMessage = "An unexpected error occurred while creating the job."

var ErrSubmitting = errors.New("a submission is already in progress")

// API is the part of client.Client the form needs.
type API interface {
	CreateJob(ctx context.Context, req dto.JobPostingRequest) (dto.CreateJobResponse, error)
}

// MissingFieldsError lists the form inputs that failed validation.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "Please fill in the required fields: " + strings.Join(e.Fields, ", ")
}

type Creator struct {
	api      API
	drafts   *DraftStore
	validate *validator.Validate
	logger   *zap.Logger

	mu           sync.Mutex
	form         Form
	submitting   bool
	err          error
	confirmation string
}

func NewCreator(api API, drafts *DraftStore, logger *zap.Logger) *Creator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return &Creator{api: api, drafts: drafts, validate: v, logger: logger}
}

func (c *Creator) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

func (c *Creator) SetForm(f Form) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = f
}

// Err is the error of the last submission, nil after a success.
func (c *Creator) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Confirmation is the message shown after the last successful submission.
func (c *Creator) Confirmation() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirmation
}

func (c *Creator) Validate(f Form) error {
	err := c.validate.Struct(f)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return &MissingFieldsError{Fields: fields}
	}
	return err
}

// Submit posts the current form. On success the form is reset and a
// confirmation is recorded; on failure the form is kept along with the
// classified error.
func (c *Creator) Submit(ctx context.Context) (dto.CreateJobResponse, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return dto.CreateJobResponse{}, ErrSubmitting
	}
	form := c.form
	c.submitting = true
	c.err = nil
	c.confirmation = ""
	c.mu.Unlock()

	resp, err := c.submit(ctx, form)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if err != nil {
		c.err = err
		c.logger.Warn("creating job failed", zap.Error(err))
		return dto.CreateJobResponse{}, err
	}
	c.form = Form{}
	c.confirmation = fmt.Sprintf("Your job posting for %q at %s has been created successfully.", form.JobTitle, form.CompanyName)
	c.logger.Info("job created", zap.Uint("id", resp.JobID))
	return resp, nil
}

func (c *Creator) submit(ctx context.Context, form Form) (dto.CreateJobResponse, error) {
	if err := c.Validate(form); err != nil {
		return dto.CreateJobResponse{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, SubmitTimeout)
	defer cancel()

	resp, err := c.api.CreateJob(ctx, form.Request())
	if err == nil {
		return resp, nil
	}
	var ce *client.Error
	if errors.As(err, &ce) && ce.Kind != client.KindUnknown {
		return dto.CreateJobResponse{}, ce
	}
	return dto.CreateJobResponse{}, &client.Error{Kind: client.KindUnknown, Message: unknownSubmitMessage, Err: err}
}

// SaveDraft stores the current form locally.
func (c *Creator) SaveDraft() error {
	if err := c.drafts.Save(c.Form()); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// LoadDraft replaces the form with the saved draft, if there is one.
func (c *Creator) LoadDraft() (bool, error) {
	form, ok, err := c.drafts.Load()
	if err != nil || !ok {
		return false, err
	}
	c.SetForm(form)
	return true, nil
}
