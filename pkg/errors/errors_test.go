package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedwiki/wikikit/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "download_error",
			code:    errors.ErrDownload,
			message: "GET failed",
			wantStr: "[DOWNLOAD] GET failed",
		},
		{
			name:    "parse_error",
			code:    errors.ErrBranchSpecParse,
			message: "missing repo",
			wantStr: "[BRANCH_SPEC_PARSE] missing repo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil_error_stays_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrFileAccess, "ignored"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrFileAccess, "ignored %d", 1))
	})

	t.Run("message_includes_cause", func(t *testing.T) {
		cause := fmt.Errorf("connection refused")
		err := errors.Wrapf(cause, errors.ErrDownload, "fetch %s", "http://x")
		assert.Equal(t, "[DOWNLOAD] fetch http://x: connection refused", err.Error())
		assert.True(t, stderrors.Is(err, cause))
	})
}

func TestDetails(t *testing.T) {
	err := errors.New(errors.ErrSubprocess, "npm failed").
		WithDetail("exitCode", 2).
		WithDetail("dir", "/tmp/wiki")

	details := errors.GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, 2, details["exitCode"])
	assert.Equal(t, "/tmp/wiki", details["dir"])

	assert.Nil(t, errors.GetErrorDetails(fmt.Errorf("plain")))
}

func TestCodes(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", errors.New(errors.ErrMissingArtifact, "no archive"))

	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrMissingArtifact))
	assert.False(t, errors.IsErrorCode(wrapped, errors.ErrDownload))
	assert.Equal(t, errors.ErrMissingArtifact, errors.GetErrorCode(wrapped))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(fmt.Errorf("plain")))

	// Is compares codes, not messages
	assert.True(t, stderrors.Is(wrapped, errors.New(errors.ErrMissingArtifact, "other text")))
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileAccess, "cannot read file")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load config")

	assert.True(t, errors.IsErrorCode(configErr, errors.ErrConfigLoad))

	var inner *errors.WikiError
	require.True(t, stderrors.As(configErr.Unwrap(), &inner))
	assert.Equal(t, errors.ErrFileAccess, inner.Code)

	assert.True(t, stderrors.Is(configErr, rootCause))
}
