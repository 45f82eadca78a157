package errors

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewError tests the basic creation of errors.
func TestNewError(t *testing.T) {
	tests := []struct {
		name    string
		code    ErrorCode
		message string
	}{
		{
			name:    "ValidationFailed",
			code:    ValidationFailed,
			message: "validation failed",
		},
		{
			name:    "EvaluationFailed",
			code:    EvaluationFailed,
			message: "evaluation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message)

			customErr, ok := err.(*Error)

			assert.True(t, ok, "should be a custom *Error")
			assert.Equal(t, tt.code, customErr.Code())
			assert.Equal(t, tt.message, customErr.Error())

			// Test nil original error for new errors
			assert.Nil(t, customErr.Unwrap())
		})
	}
}

// TestWrapError tests error wrapping functionality.
func TestWrapError(t *testing.T) {
	originalErr := stderrors.New("original error")

	err := Wrap(originalErr, StorageFailed, "recording generation")
	require.NotNil(t, err)

	customErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, StorageFailed, customErr.Code())
	assert.Equal(t, "recording generation: original error", customErr.Error())
	assert.Equal(t, originalErr, customErr.Unwrap())
	assert.True(t, stderrors.Is(err, originalErr))

	// Wrapping nil stays nil.
	assert.Nil(t, Wrap(nil, StorageFailed, "nothing happened"))
}

// TestWithFields tests attaching structured context to errors.
func TestWithFields(t *testing.T) {
	err := New(EvaluationFailed, "evaluating individual")
	err = WithFields(err, Fields{"generation": 3})
	require.NotNil(t, err)

	customErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, EvaluationFailed, customErr.Code())
	assert.Contains(t, customErr.Error(), "generation=3")

	// Foreign errors are adopted with code Unknown.
	foreign := WithFields(stderrors.New("boom"), Fields{"worker": 1})
	assert.Equal(t, Unknown, Code(foreign))
	assert.Contains(t, foreign.Error(), "worker=1")

	assert.Nil(t, WithFields(nil, Fields{"x": 1}))
}

// TestCheckContext tests context cancellation wrapping.
func TestCheckContext(t *testing.T) {
	assert.NoError(t, CheckContext(context.Background(), "simulate"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := CheckContext(ctx, "simulate")
	require.Error(t, err)
	assert.Equal(t, Canceled, Code(err))
	assert.Contains(t, err.Error(), "simulate canceled")
}
