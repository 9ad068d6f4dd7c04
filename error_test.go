package nps_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/nps"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := nps.Errorf(nps.EINCOMPLETE, "site page %q: missing name", "https://example.com/isro/")

	assert.Equal(t, nps.EINCOMPLETE, nps.ErrorCode(err))
	assert.Equal(t, "site page \"https://example.com/isro/\": missing name", nps.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, nps.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, nps.ErrorMessage(nil))
}

func TestErrorCode_UnwrapsWrappedErrors(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetch site: %w", nps.Errorf(nps.EUPSTREAM, "HTTP 503"))

	assert.Equal(t, nps.EUPSTREAM, nps.ErrorCode(err))
	assert.Equal(t, "HTTP 503", nps.ErrorMessage(err))
}

func TestErrorCode_PlainErrorIsInternal(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, nps.EINTERNAL, nps.ErrorCode(err))
	assert.Equal(t, "Internal error.", nps.ErrorMessage(err))
}
