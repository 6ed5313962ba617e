package arenadl_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/arenadl"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := arenadl.Errorf(arenadl.ENOTFOUND, "channel %q not found", "test")

	assert.Equal(t, arenadl.ENOTFOUND, arenadl.ErrorCode(err))
	assert.Equal(t, "channel \"test\" not found", arenadl.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, arenadl.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, arenadl.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("page 3: %w", arenadl.Errorf(arenadl.EUNAUTHORIZED, "token rejected"))

	assert.Equal(t, arenadl.EUNAUTHORIZED, arenadl.ErrorCode(err))
	assert.Equal(t, "token rejected", arenadl.ErrorMessage(err))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("connection reset")

	assert.Equal(t, arenadl.EINTERNAL, arenadl.ErrorCode(err))
	assert.Equal(t, "Internal error.", arenadl.ErrorMessage(err))
}

func TestErrorDetail(t *testing.T) {
	t.Parallel()

	assert.Empty(t, arenadl.ErrorDetail(nil))
	assert.Equal(t, "page 2: HTTP 502", arenadl.ErrorDetail(errors.New("page 2: HTTP 502")))
	assert.Equal(t, "token rejected", arenadl.ErrorDetail(fmt.Errorf("page 1: %w", arenadl.Errorf(arenadl.EUNAUTHORIZED, "token rejected"))))
}
