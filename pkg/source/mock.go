package source

import (
	"context"
	"sync"

	"github.com/openlightgun/go-lightgun/pkg/gun"
)

// Mock is a scripted source for testing. Queued steps are returned in
// order; once the script runs out every poll reports StatusSessionEnding.
type Mock struct {
	mu     sync.Mutex
	steps  []mockStep
	idx    int
	closed bool
}

type mockStep struct {
	sample Sample
	status Status
	err    error
}

var _ Source = (*Mock)(nil)

// NewMock creates an empty scripted source.
func NewMock() *Mock {
	return &Mock{}
}

// QueueSample appends a valid sample to the script.
func (m *Mock) QueueSample(pose gun.Pose, buttons gun.ButtonSample) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps = append(m.steps, mockStep{
		sample: Sample{Pose: pose, Buttons: buttons},
		status: StatusOK,
	})
	return m
}

// QueueStatus appends a status-only tick to the script.
func (m *Mock) QueueStatus(status Status) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps = append(m.steps, mockStep{status: status})
	return m
}

// QueueError appends a fatal poll failure to the script.
func (m *Mock) QueueError(err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps = append(m.steps, mockStep{status: StatusSessionEnding, err: err})
	return m
}

// Poll returns the next scripted step.
func (m *Mock) Poll(ctx context.Context) (Sample, Status, error) {
	if err := ctx.Err(); err != nil {
		return Sample{}, StatusSessionEnding, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.idx >= len(m.steps) {
		return Sample{}, StatusSessionEnding, nil
	}
	step := m.steps[m.idx]
	m.idx++
	return step.sample, step.status, step.err
}

// Close marks the mock closed.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
