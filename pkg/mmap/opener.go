package mmap

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/cenkalti/backoff/v4"
	cmap "github.com/orcaman/concurrent-map/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Opener creates handles according to a Config. It is safe for concurrent use.
type Opener struct {
	config  *Config
	tracer  trace.Tracer
	created cmap.ConcurrentMap[string, struct{}]
}

var (
	defaultOpener     *Opener
	defaultOpenerOnce sync.Once
)

// NewOpener verifies config and returns an Opener using it. A nil config means
// DefaultConfig.
func NewOpener(config *Config) (*Opener, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := VerifyConfig(config); err != nil {
		return nil, err
	}
	return &Opener{
		config:  config,
		tracer:  config.tracer(),
		created: cmap.New[struct{}](),
	}, nil
}

// Default returns the Opener used by the package-level functions.
func Default() *Opener {
	defaultOpenerOnce.Do(func() {
		o, err := NewOpener(nil)
		if err != nil {
			internalLogger.warnf("invalid default config, falling back to built-in defaults: %v", err)
			config := DefaultConfig()
			config.SharedMemoryDir = defaultSharedMemoryDir()
			if o, err = NewOpener(config); err != nil {
				internalLogger.errorf("built-in config is unusable too, opens will fail: %v", err)
				o = &Opener{config: config, tracer: config.tracer(), created: cmap.New[struct{}]()}
			}
		}
		defaultOpener = o
	})
	return defaultOpener
}

// Config returns the opener's config. It must not be modified.
func (o *Opener) Config() *Config { return o.config }

// Created returns the names of shared-memory segments this opener created and has not
// removed, sorted.
func (o *Opener) Created() []string {
	names := o.created.Keys()
	sort.Strings(names)
	return names
}

// RemoveCreated removes every named segment this opener created.
func (o *Opener) RemoveCreated() error {
	var errs []error
	for _, name := range o.Created() {
		if err := o.RemoveSharedMemory(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// create runs a native create-call inside a span, retrying transient failures.
func (o *Opener) create(ctx context.Context, kind, op, name string, call func() error) error {
	ctx, span := o.tracer.Start(ctx, "mmap."+op, trace.WithAttributes(
		attribute.String("mmap.kind", kind),
		attribute.String("mmap.name", name),
	))
	defer span.End()

	attempts := 0
	operation := func() error {
		attempts++
		err := call()
		if err == nil {
			return nil
		}
		if isTransient(err) {
			internalLogger.debugf("%s %s attempt %d: transient error: %v", op, name, attempts, err)
			return err
		}
		return backoff.Permanent(err)
	}

	err := ctx.Err()
	if err == nil {
		err = backoff.Retry(operation, o.backoff(ctx))
	}
	span.SetAttributes(attribute.Int("mmap.attempts", attempts))
	if err != nil {
		err = newError(op, name, err)
		createErrors.WithLabelValues(kind).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		internalLogger.debugf("%s %s failed: %v", op, name, err)
		return err
	}
	return nil
}

func (o *Opener) backoff(ctx context.Context) backoff.BackOff {
	if o.config.CreateRetries == 0 {
		return backoff.WithContext(&backoff.StopBackOff{}, ctx)
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = o.config.RetryInterval
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, o.config.CreateRetries), ctx)
}
