//go:build unix

package mmap

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sys/unix"

	"github.com/srediag/plugin-mmap/pkg/mmap/flags"
)

type recordingTracer struct {
	noop.Tracer
	mu    sync.Mutex
	spans []string
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	r.mu.Lock()
	r.spans = append(r.spans, name)
	r.mu.Unlock()
	return r.Tracer.Start(ctx, name, opts...)
}

func retryOpener(t *testing.T, retries uint64) *Opener {
	t.Helper()
	config := DefaultConfig()
	config.SharedMemoryDir = t.TempDir()
	config.CheckFreeSpace = false
	config.CreateRetries = retries
	config.RetryInterval = time.Millisecond
	o, err := NewOpener(config)
	require.NoError(t, err)
	return o
}

func TestCreateRetriesTransientErrors(t *testing.T) {
	o := retryOpener(t, 3)
	attempts := 0
	err := o.create(context.Background(), fileKind, "open", "x", func() error {
		attempts++
		if attempts < 3 {
			return unix.EINTR
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestCreateGivesUpAfterRetries(t *testing.T) {
	o := retryOpener(t, 2)
	attempts := 0
	err := o.create(context.Background(), fileKind, "open", "x", func() error {
		attempts++
		return unix.EAGAIN
	})
	assert.Equal(t, 3, attempts)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, unix.EAGAIN, perr.Code)
}

func TestCreateDoesNotRetryPermanentErrors(t *testing.T) {
	o := retryOpener(t, 3)
	attempts := 0
	err := o.create(context.Background(), fileKind, "open", "x", func() error {
		attempts++
		return unix.EACCES
	})
	assert.Equal(t, 1, attempts)
	assert.ErrorIs(t, err, unix.EACCES)
}

func TestCreateWithoutRetries(t *testing.T) {
	o := retryOpener(t, 0)
	attempts := 0
	err := o.create(context.Background(), fileKind, "open", "x", func() error {
		attempts++
		return unix.EINTR
	})
	assert.Equal(t, 1, attempts)
	assert.ErrorIs(t, err, unix.EINTR)
}

func TestCreateCountsFailures(t *testing.T) {
	o := retryOpener(t, 0)
	before := counterValue(createErrors.WithLabelValues(fileKind))
	_ = o.create(context.Background(), fileKind, "open", "x", func() error { return errors.New("nope") })
	assert.Equal(t, before+1, counterValue(createErrors.WithLabelValues(fileKind)))
}

func TestCreateRecordsSpan(t *testing.T) {
	tracer := &recordingTracer{}
	config := DefaultConfig()
	config.SharedMemoryDir = t.TempDir()
	config.CheckFreeSpace = false
	config.Tracer = tracer
	o, err := NewOpener(config)
	require.NoError(t, err)

	h, err := o.OpenFile(context.Background(), filepath.Join(t.TempDir(), "f"),
		flags.NewFile(flags.ReadWrite, flags.OpenOrCreate, flags.NoHints, 0)).Get()
	require.NoError(t, err)
	h.Close()
	assert.Equal(t, []string{"mmap.open"}, tracer.spans)
}
