package consensus

import "context"

// Recorder receives exactly one cost observation per completed native
// operation, successful or failed. Implementations must be safe for
// concurrent use and must never fail the observed operation: recording is a
// pure side effect.
type Recorder interface {
	// ObserveCost records the outcome of one native operation. cost is the
	// assessed amount in tinybars, 0 when unknown or when the operation was
	// free.
	ObserveCost(ctx context.Context, mode ObservationMode, operation OperationType, status string, cost int64)
}

// nopRecorder drops every observation. It is the default when no Recorder is
// injected, keeping metrics strictly optional.
type nopRecorder struct{}

var _ Recorder = nopRecorder{}

func (nopRecorder) ObserveCost(context.Context, ObservationMode, OperationType, string, int64) {}
