package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorMessage(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Internal("fetching jobs", cause)

	assert.Equal(t, "INTERNAL: fetching jobs: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.NotEmpty(t, err.StackTrace())
}

func TestTypeOf(t *testing.T) {
	wrapped := fmt.Errorf("get job: %w", NotFound("Job not found", nil))

	assert.Equal(t, ErrTypeNotFound, TypeOf(wrapped))
	assert.Equal(t, ErrTypeInternal, TypeOf(stderrors.New("plain")))
}
