package creation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fadilmartias/job-portal/internal/client"
	"github.com/fadilmartias/job-portal/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAPI struct {
	err      error
	got      []dto.JobPostingRequest
	deadline time.Time
}

func (f *fakeAPI) CreateJob(ctx context.Context, req dto.JobPostingRequest) (dto.CreateJobResponse, error) {
	f.got = append(f.got, req)
	f.deadline, _ = ctx.Deadline()
	if f.err != nil {
		return dto.CreateJobResponse{}, f.err
	}
	return dto.CreateJobResponse{Message: "Job created successfully", JobID: 9}, nil
}

func validForm() Form {
	return Form{
		JobTitle:            "Go Engineer",
		CompanyName:         "Acme",
		Location:            "Pune",
		JobType:             "Internship",
		SalaryRange:         "₹20k - ₹30k",
		JobDescription:      "Build services",
		ApplicationDeadline: "2024-12-01",
	}
}

func newCreator(t *testing.T, api API) *Creator {
	t.Helper()
	return NewCreator(api, NewDraftStore(t.TempDir()), zap.NewNop())
}

func TestSubmitSuccessResetsForm(t *testing.T) {
	api := &fakeAPI{}
	c := newCreator(t, api)
	c.SetForm(validForm())

	resp, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint(9), resp.JobID)
	assert.True(t, c.Form().IsZero())
	assert.Nil(t, c.Err())
	assert.Equal(t, `Your job posting for "Go Engineer" at Acme has been created successfully.`, c.Confirmation())

	require.Len(t, api.got, 1)
	sent := api.got[0]
	assert.Equal(t, "Go Engineer", sent.JobTitle)
	require.NotNil(t, sent.SalaryRange)
	assert.Equal(t, "₹20k - ₹30k", *sent.SalaryRange)
	assert.Nil(t, sent.Requirements)
	assert.False(t, api.deadline.IsZero())
	assert.WithinDuration(t, time.Now().Add(SubmitTimeout), api.deadline, time.Second)
}

func TestSubmitFailureKeepsFormAndClassifiedError(t *testing.T) {
	serverErr := &client.Error{Kind: client.KindServer, Status: 500, Message: "Server error: 500 - Internal server error"}
	c := newCreator(t, &fakeAPI{err: serverErr})
	c.SetForm(validForm())

	_, err := c.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, validForm(), c.Form())
	assert.Equal(t, "Server error: 500 - Internal server error", c.Err().Error())
	assert.Empty(t, c.Confirmation())
}

func TestSubmitUnknownErrorMessage(t *testing.T) {
	c := newCreator(t, &fakeAPI{err: errors.New("boom")})
	c.SetForm(validForm())

	_, err := c.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, client.KindUnknown, client.KindOf(err))
	assert.Equal(t, "An unexpected error occurred while creating the job.", err.Error())
}

func TestSubmitValidatesBeforeSending(t *testing.T) {
	api := &fakeAPI{}
	c := newCreator(t, api)
	c.SetForm(Form{JobTitle: "Go Engineer", JobType: "Gig", ApplicationDeadline: "01/12/2024"})

	_, err := c.Submit(context.Background())
	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"company_name", "location", "job_type", "job_description", "application_deadline"}, missing.Fields)
	assert.Empty(t, api.got)
	assert.Equal(t, "Go Engineer", c.Form().JobTitle)
}

func TestDraftRoundTrip(t *testing.T) {
	c := newCreator(t, &fakeAPI{})

	ok, err := c.LoadDraft()
	require.NoError(t, err)
	assert.False(t, ok)

	draft := Form{JobTitle: "Half done", Location: "Goa"}
	c.SetForm(draft)
	require.NoError(t, c.SaveDraft())

	c.SetForm(Form{})
	ok, err = c.LoadDraft()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, draft, c.Form())
}

func TestDraftIsNotLoadedAutomatically(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewDraftStore(dir).Save(validForm()))

	c := NewCreator(&fakeAPI{}, NewDraftStore(dir), zap.NewNop())
	assert.True(t, c.Form().IsZero())
}

func TestDraftStoreKeepsOtherEntries(t *testing.T) {
	store := NewDraftStore(t.TempDir())
	require.NoError(t, store.Save(Form{JobTitle: "first"}))
	require.NoError(t, store.Save(Form{JobTitle: "second"}))

	form, ok, err := store.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", form.JobTitle)
}

func TestFormRequestDropsEmptyOptionals(t *testing.T) {
	req := Form{JobTitle: "A", CompanyName: "B", Location: "C", JobType: "Contract", SalaryRange: "  "}.Request()
	assert.Nil(t, req.SalaryRange)
	assert.Nil(t, req.ApplicationDeadline)
	assert.Equal(t, "Contract", req.JobType)
}
