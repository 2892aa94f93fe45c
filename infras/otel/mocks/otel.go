package mocks

import (
	"clinic/infras/otel"
	"context"
	"sync"
)

type otelImpl struct {
	mu     sync.Mutex
	scopes map[string]*Recorder
}

// NewScope implements otel.Otel. Every span gets its own Recorder, kept by
// span name.
func (o *otelImpl) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	recorder := &Recorder{}

	o.mu.Lock()
	o.scopes[spanName] = recorder
	o.mu.Unlock()

	return ctx, recorder
}

// Scope returns the recorder of the last span opened under spanName.
func (o *otelImpl) Scope(spanName string) *Recorder {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.scopes[spanName]
}

// RecordingOtel is an otel.Otel whose spans can be inspected.
type RecordingOtel interface {
	otel.Otel
	Scope(spanName string) *Recorder
}

func NewOtel() RecordingOtel {
	return &otelImpl{scopes: map[string]*Recorder{}}
}
