package contactx_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/contactx"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := contactx.Errorf(contactx.EUNAUTHORIZED, "API key %q rejected", "abc")

	assert.Equal(t, contactx.EUNAUTHORIZED, contactx.ErrorCode(err))
	assert.Equal(t, "API key \"abc\" rejected", contactx.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, contactx.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, contactx.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("extract: %w", contactx.Errorf(contactx.EUNAVAILABLE, "service down"))

	assert.Equal(t, contactx.EUNAVAILABLE, contactx.ErrorCode(err))
	assert.Equal(t, "service down", contactx.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, contactx.EINTERNAL, contactx.ErrorCode(err))
	assert.Equal(t, "Internal error.", contactx.ErrorMessage(err))
}
