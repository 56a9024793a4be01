package app

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/deploymenttheory/go-cerealstore/internal/storage"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "common error", err: NewError(ErrCodeConfigLoad, "load", nil), want: ErrCodeConfigLoad},
		{name: "wrapped common error", err: fmt.Errorf("outer: %w", NewError(ErrCodeInvalidInput, "bad", nil)), want: ErrCodeInvalidInput},
		{name: "invalid argument", err: &storage.Error{Kind: storage.KindInvalidArgument}, want: ErrCodeInvalidInput},
		{name: "invalid configuration", err: &storage.Error{Kind: storage.KindInvalidConfiguration}, want: ErrCodeInvalidConfiguration},
		{name: "capacity exceeded", err: fmt.Errorf("step 3: %w", storage.ErrCapacityExceeded), want: ErrCodeCapacityExceeded},
		{name: "unknown", err: errors.New("boom"), want: ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}

func TestCommonError(t *testing.T) {
	cause := errors.New("disk on fire")
	err := NewError(ErrCodeConfigLoad, "failed to load config", cause)

	assert.Equal(t, "failed to load config: disk on fire", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "plain", NewError(ErrCodeInvalidInput, "plain", nil).Error())

	wrapped := fmt.Errorf("exec: %w", NewError(ErrCodeCapacityExceeded, "plan stopped at step 2", nil))
	assert.ErrorIs(t, wrapped, &CommonError{Code: ErrCodeCapacityExceeded})
	assert.NotErrorIs(t, wrapped, &CommonError{Code: ErrCodeInvalidInput})
}

func TestContext_Log(t *testing.T) {
	tests := []struct {
		name     string
		verbose  bool
		quiet    bool
		wantLog  bool
		wantErrs bool
	}{
		{name: "default", wantErrs: true},
		{name: "verbose", verbose: true, wantLog: true, wantErrs: true},
		{name: "quiet wins over verbose", verbose: true, quiet: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := NewContext()
			ctx.SetLogOutput(&buf)
			ctx.Verbose = tt.verbose
			ctx.Quiet = tt.quiet

			ctx.Logf("hello %s", "rice")
			ctx.Errorf("step %d failed", 3)

			assert.Equal(t, tt.wantLog, bytes.Contains(buf.Bytes(), []byte("hello rice\n")))
			assert.Equal(t, tt.wantErrs, bytes.Contains(buf.Bytes(), []byte("Error: step 3 failed\n")))
		})
	}
}

func TestContext_Output(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext()
	ctx.SetOutput(&buf)

	fmt.Fprint(ctx.Output(), "shown")
	ctx.Quiet = true
	fmt.Fprint(ctx.Output(), "hidden")

	assert.Equal(t, "shown", buf.String())
}

func TestContext_WithTimeout(t *testing.T) {
	ctx := NewContext()
	ctx.OutputFormat = "json"

	derived, cancel := ctx.WithTimeout(time.Minute)
	defer cancel()

	_, ok := derived.Deadline()
	assert.True(t, ok)
	_, ok = ctx.Deadline()
	assert.False(t, ok)
	assert.Equal(t, "json", derived.OutputFormat)

	cancel()
	assert.Error(t, derived.Err())
	assert.NoError(t, ctx.Err())
}

func TestContext_Progress(t *testing.T) {
	ctx := NewContext()
	ctx.Progress("ignored", 10)

	var got []int
	ctx.SetProgress(func(_ string, percent int) {
		got = append(got, percent)
	})
	ctx.Progress("a", 50)
	ctx.Progress("b", 100)
	assert.Equal(t, []int{50, 100}, got)
}
