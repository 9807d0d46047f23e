package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncProductCreated is a no-op.
func (n *NoopRecorder) IncProductCreated() {}

// IncProductUpdated is a no-op.
func (n *NoopRecorder) IncProductUpdated() {}

// IncProductDeleted is a no-op.
func (n *NoopRecorder) IncProductDeleted() {}

// IncCartItemAdded is a no-op.
func (n *NoopRecorder) IncCartItemAdded() {}

// IncCartItemRemoved is a no-op.
func (n *NoopRecorder) IncCartItemRemoved() {}

// IncLoginSuccess is a no-op.
func (n *NoopRecorder) IncLoginSuccess() {}

// IncLoginFailure is a no-op.
func (n *NoopRecorder) IncLoginFailure() {}
