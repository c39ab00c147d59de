// Package metrics implements the cost instrumentation fed by the consensus
// adapter: a histogram of per-operation cost and a pull-based operator
// balance gauge. Failures inside this package are logged and contained; they
// never propagate to the operations being observed.
package metrics

import (
	"context"

	"github.com/spalladino/hedera-json-rpc-relay/internal/consensus"
	"github.com/spalladino/hedera-json-rpc-relay/internal/pkg/logger"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names exported to the metrics backend.
const (
	costMetricName    = "rpc_relay_consensusnode_response"
	balanceMetricName = "rpc_relay_operator_balance"
)

// BalanceSource provides the operator account balance sampled by the gauge.
// The consensus service satisfies it.
type BalanceSource interface {
	OperatorBalanceTinybars(ctx context.Context) (int64, error)
}

// Recorder records one histogram sample per completed native operation,
// keyed only by (mode, operation type, status) so series cardinality stays
// bounded, and exposes the operator balance as an observable gauge refreshed
// at collection time.
//
// Build it once at process start and Close it at exit. Instrument creation is
// idempotent per meter: constructing a Recorder twice against the same meter
// reuses the existing instruments instead of duplicating series.
type Recorder struct {
	meter metric.Meter
	cost  metric.Int64Histogram

	balanceRegistration metric.Registration
}

var _ consensus.Recorder = (*Recorder)(nil)

// New creates the cost histogram on the given meter.
func New(meter metric.Meter) (*Recorder, error) {
	cost, err := meter.Int64Histogram(costMetricName,
		metric.WithDescription("Cost of consensus network calls by mode, operation type, and status"),
		metric.WithUnit("{tinybar}"),
	)
	if err != nil {
		return nil, err
	}

	return &Recorder{
		meter: meter,
		cost:  cost,
	}, nil
}

// ObserveCost implements consensus.Recorder. It is safe for concurrent use:
// the underlying instrument handles synchronization.
func (r *Recorder) ObserveCost(ctx context.Context, mode consensus.ObservationMode, operation consensus.OperationType, status string, cost int64) {
	r.cost.Record(ctx, cost, metric.WithAttributes(
		attribute.String("mode", string(mode)),
		attribute.String("type", string(operation)),
		attribute.String("status", status),
	))
}

// RegisterOperatorBalance wires the operator balance gauge to the given
// source. The gauge is pull-based: the balance query runs when the metrics
// backend collects. A failed refresh reports 0 and logs the failure; metrics
// collection itself never fails because of it.
func (r *Recorder) RegisterOperatorBalance(source BalanceSource) error {
	gauge, err := r.meter.Int64ObservableGauge(balanceMetricName,
		metric.WithDescription("Operator account balance in tinybars"),
		metric.WithUnit("{tinybar}"),
	)
	if err != nil {
		return err
	}

	registration, err := r.meter.RegisterCallback(func(ctx context.Context, observer metric.Observer) error {
		balance, err := source.OperatorBalanceTinybars(ctx)
		if err != nil {
			logger.Error(ctx, "operator balance refresh failed", "error", err)
			balance = 0
		}

		observer.ObserveInt64(gauge, balance)
		return nil
	}, gauge)
	if err != nil {
		return err
	}

	r.balanceRegistration = registration
	return nil
}

// Close unregisters the balance callback. Safe to call when the gauge was
// never registered.
func (r *Recorder) Close() error {
	if r.balanceRegistration == nil {
		return nil
	}

	return r.balanceRegistration.Unregister()
}
