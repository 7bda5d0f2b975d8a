package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) IncUserCreated() {}

func (n *NoopRecorder) IncUserUpdated() {}

func (n *NoopRecorder) IncUserDeleted() {}

func (n *NoopRecorder) IncPostCreated() {}

func (n *NoopRecorder) IncPostUpdated() {}

func (n *NoopRecorder) IncPostDeleted() {}

func (n *NoopRecorder) IncStoreFailure(op string) {}

func (n *NoopRecorder) ObserveStoreDuration(duration time.Duration) {}
