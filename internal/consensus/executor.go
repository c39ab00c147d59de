package consensus

import (
	"context"
	"errors"
	"fmt"

	"github.com/spalladino/hedera-json-rpc-relay/internal/pkg/logger"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// statusSuccess is the native status name reported for successful calls.
const statusSuccess = "SUCCESS"

// executor runs exactly one native query or transaction against the bound
// client, records a cost observation for every terminal outcome, and
// normalizes failures into the adapter error taxonomy.
//
// There is no retry state and no adapter-level deadline: a single execution
// attempt is made per call. Consensus failures are not reliably safe to
// blindly retry (a transaction may have been accepted even though the local
// call observed a timeout), so retries are left to the caller.
type executor struct {
	client  *hedera.Client
	metrics Recorder
}

// transactionSubmitter is the subset of the SDK transaction surface the
// executor needs to submit a prepared transaction.
type transactionSubmitter interface {
	Execute(*hedera.Client) (hedera.TransactionResponse, error)
}

// recordSource is the capability a submission response must expose for the
// executor to retrieve the full execution record.
type recordSource interface {
	GetRecord(*hedera.Client) (hedera.TransactionRecord, error)
}

// normalizeError classifies a native failure into the adapter taxonomy,
// keeping only the native status name and message. Failures without a native
// status are tagged with the UNKNOWN sentinel.
func normalizeError(err error) *NativeOperationError {
	var precheck hedera.ErrHederaPreCheckStatus
	if errors.As(err, &precheck) {
		return &NativeOperationError{Status: precheck.Status.String(), Message: err.Error()}
	}

	var receipt hedera.ErrHederaReceiptStatus
	if errors.As(err, &receipt) {
		return &NativeOperationError{Status: receipt.Status.String(), Message: err.Error()}
	}

	return &NativeOperationError{Status: statusUnknown, Message: err.Error()}
}

// execQuery executes a single query attempt through run. On success it
// records an observation with the query's already-assessed payment as cost
// (pass hedera.ZeroHbar for free queries). On failure it records an
// observation with the native status and cost 0, then returns the normalized
// error.
func execQuery[T any](ctx context.Context, x *executor, op Operation, payment hedera.Hbar, run func(*hedera.Client) (T, error)) (T, error) {
	result, err := run(x.client)
	if err != nil {
		native := normalizeError(err)
		x.metrics.ObserveCost(ctx, op.Mode, op.Type, native.Status, 0)

		var zero T
		return zero, native
	}

	x.metrics.ObserveCost(ctx, op.Mode, op.Type, statusSuccess, payment.AsTinybar())
	return result, nil
}

// execTransaction submits a prepared transaction once. Successful submissions
// are logged but not metered here: submission and settlement are distinct
// round-trips, and only the record reveals the true assessed fee (see
// transactionRecord). Failed submissions are metered with cost 0 and
// normalized.
func (x *executor) execTransaction(ctx context.Context, op Operation, tx transactionSubmitter) (hedera.TransactionResponse, error) {
	resp, err := tx.Execute(x.client)
	if err != nil {
		native := normalizeError(err)
		x.metrics.ObserveCost(ctx, op.Mode, op.Type, native.Status, 0)
		return hedera.TransactionResponse{}, native
	}

	logger.Info(ctx, "transaction submitted",
		"transaction.id", resp.TransactionID.String(),
		"transaction.type", string(op.Type),
	)

	return resp, nil
}

// execTransactionAndGetReceipt composes submission and receipt retrieval.
// Failures from either stage are metered and normalized identically; the
// receipt stage does not meter success, since only the record carries the
// assessed fee.
func (x *executor) execTransactionAndGetReceipt(ctx context.Context, op Operation, tx transactionSubmitter) (hedera.TransactionReceipt, error) {
	resp, err := x.execTransaction(ctx, op, tx)
	if err != nil {
		return hedera.TransactionReceipt{}, err
	}

	receipt, err := resp.GetReceipt(x.client)
	if err != nil {
		native := normalizeError(err)
		x.metrics.ObserveCost(ctx, op.Mode, op.Type, native.Status, 0)
		return hedera.TransactionReceipt{}, native
	}

	return receipt, nil
}

// transactionRecord retrieves the full execution record of an already
// submitted transaction. This is where a TRANSACTION-mode observation is
// recorded, using the record's actual assessed fee.
//
// resp must support record retrieval; anything else is a programming-contract
// violation reported as ErrInvalidResponseFormat, distinct from any
// network-reported failure and never metered.
func (x *executor) transactionRecord(ctx context.Context, op Operation, resp any) (hedera.TransactionRecord, error) {
	src, ok := resp.(recordSource)
	if !ok {
		return hedera.TransactionRecord{}, fmt.Errorf("%w: got %T", ErrInvalidResponseFormat, resp)
	}

	record, err := src.GetRecord(x.client)
	if err != nil {
		native := normalizeError(err)
		x.metrics.ObserveCost(ctx, op.Mode, op.Type, native.Status, 0)
		return hedera.TransactionRecord{}, native
	}

	x.metrics.ObserveCost(ctx, op.Mode, op.Type, record.Receipt.Status.String(), record.TransactionFee.AsTinybar())
	return record, nil
}
