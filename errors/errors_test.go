package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "operation only",
			err:  NewError("cutoff", errors.New("boom")),
			want: "recursor.cutoff: boom",
		},
		{
			name: "with prefix",
			err:  NewListError("logs/date=20190415/", errors.New("timeout")),
			want: `recursor.list prefix "logs/date=20190415/": timeout`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("cutoff", "min %d must be < max %d", 2, 1)

	assert.True(t, IsInvalidConfig(err))
	assert.Equal(t, CodeInvalidConfig, err.Code)
	assert.Equal(t, CodeInvalidConfig, CodeOf(fmt.Errorf("wrapped: %w", err)))
	assert.Contains(t, err.Error(), "min 2 must be < max 1")
}

func TestNewListError_Codes(t *testing.T) {
	cause := errors.New("connection reset")

	err := NewListError("a/", cause)
	assert.Equal(t, CodeListFailed, err.Code)
	require.ErrorIs(t, err, cause)

	notFound := NewListError("a/", fmt.Errorf("NoSuchBucket: %w", ErrBucketNotFound))
	assert.Equal(t, CodeNotFound, notFound.Code)
	assert.True(t, IsBucketNotFound(notFound))

	denied := NewListError("a/", ErrAccessDenied)
	assert.Equal(t, CodeForbidden, denied.Code)
	assert.True(t, IsAccessDenied(denied))
}

func TestError_Helpers(t *testing.T) {
	err := NewError("list", errors.New("x")).
		WithPrefix("p/").
		WithCode(CodeForbidden).
		WithMessage("listing children")

	assert.Equal(t, "p/", err.Prefix)
	assert.Equal(t, CodeForbidden, err.Code)
	assert.Equal(t, `recursor.list prefix "p/": listing children: x`, err.Error())
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("plain")))
	assert.Equal(t, "FORBIDDEN", CodeForbidden.String())
}
