package mocks

import (
	"clinic/infras/otel"
	"sync"
)

// Recorder is a scope that keeps what was written to it so tests can assert
// on traced errors and attributes.
type Recorder struct {
	mu         sync.Mutex
	Errors     []error
	Events     []string
	Attributes map[string]any
	Ended      int
}

func (r *Recorder) End() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Ended++
}

func (r *Recorder) TraceError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Errors = append(r.Errors, err)
}

func (r *Recorder) TraceIfError(err error) {
	if err != nil {
		r.TraceError(err)
	}
}

func (r *Recorder) AddEvent(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Events = append(r.Events, name)
}

func (r *Recorder) SetAttribute(key string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Attributes == nil {
		r.Attributes = map[string]any{}
	}

	r.Attributes[key] = value
}

func (r *Recorder) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		r.SetAttribute(key, value)
	}
}

// Attribute returns a recorded attribute.
func (r *Recorder) Attribute(key string) any {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.Attributes[key]
}

func NewScope() otel.Scope {
	return &Recorder{}
}
