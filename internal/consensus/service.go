// Package consensus adapts Ethereum-semantics requests onto the Hedera
// consensus network: it translates between the two unit systems and fee
// models, meters the cost of every native call, and normalizes native
// failures into a uniform error contract for the upstream RPC layer.
package consensus

import (
	"context"
	"math/big"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// Well-known file ids publishing the network fee schedule and exchange rate.
// These are constants of the target network, not configurable per call.
var (
	feeScheduleFileID  = hedera.FileID{File: 111}
	exchangeRateFileID = hedera.FileID{File: 112}
)

// Service exposes the adapter operations consumed by the upstream JSON-RPC
// dispatcher. Every operation either returns a fully-formed value or exactly
// one normalized error; native failures are never masked with defaults.
type Service interface {
	// AccountBalanceTinybars returns the balance of an account, addressed by
	// native id or EVM address, in tinybars.
	AccountBalanceTinybars(ctx context.Context, account string) (int64, error)

	// AccountBalanceWei is AccountBalanceTinybars converted to the smallest
	// Ethereum unit.
	AccountBalanceWei(ctx context.Context, account string) (*big.Int, error)

	// ContractBalanceTinybars returns the balance of a contract in tinybars.
	ContractBalanceTinybars(ctx context.Context, contract string) (int64, error)

	// ContractBalanceWei is ContractBalanceTinybars converted to the smallest
	// Ethereum unit.
	ContractBalanceWei(ctx context.Context, contract string) (*big.Int, error)

	// AccountInfo fetches native account information for an address.
	AccountInfo(ctx context.Context, address string) (hedera.AccountInfo, error)

	// ContractBytecode fetches the bytecode of the contract identified by the
	// (shard, realm, evmAddress) triple.
	ContractBytecode(ctx context.Context, shard, realm uint64, evmAddress string) ([]byte, error)

	// GasPriceInTinybars derives the current gas price from the network's
	// published fee schedule and exchange rate files.
	GasPriceInTinybars(ctx context.Context) (int64, error)

	// SubmitRawTransaction wraps a raw signed Ethereum transaction into the
	// native envelope, submits it, and returns the full execution record.
	SubmitRawTransaction(ctx context.Context, raw []byte) (hedera.TransactionRecord, error)

	// CallContract executes a read-only contract call with the given call
	// data and gas limit, paying the network-quoted query cost.
	CallContract(ctx context.Context, to string, data []byte, gas int64) (hedera.ContractFunctionResult, error)

	// OperatorBalanceTinybars returns the balance of the operator account
	// paying for all adapter-initiated operations.
	OperatorBalanceTinybars(ctx context.Context) (int64, error)
}

type service struct {
	client *hedera.Client
	exec   *executor

	// The fee data pipeline and the contract call round-trips are indirected
	// so they can be exercised without a live network: fetch pulls the raw
	// file bytes, the decoders turn them into usable structures, and the call
	// pair covers cost estimation and execution.
	fetchFile          func(ctx context.Context, id hedera.FileID) ([]byte, error)
	decodeFeeSchedules func(data []byte) (hedera.FeeSchedules, error)
	decodeExchangeRate func(data []byte) (exchangeRate, error)
	estimateCallCost   func(q *hedera.ContractCallQuery) (hedera.Hbar, error)
	executeCall        func(c *hedera.Client, q *hedera.ContractCallQuery) (hedera.ContractFunctionResult, error)
}

var _ Service = (*service)(nil)

type config struct {
	metrics Recorder
}

// Option configures the service.
type Option func(*config)

// WithMetrics injects the Recorder fed by every executed native operation.
// Without it, observations are dropped.
func WithMetrics(r Recorder) Option {
	return func(c *config) {
		c.metrics = r
	}
}

// New builds the adapter around an already-configured network client. The
// client is owned by the adapter for the process lifetime.
func New(client *hedera.Client, opts ...Option) *service {
	cfg := config{
		metrics: nopRecorder{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &service{
		client: client,
		exec: &executor{
			client:  client,
			metrics: cfg.metrics,
		},
		decodeFeeSchedules: hedera.FeeSchedulesFromBytes,
		decodeExchangeRate: exchangeRateFromBytes,
		executeCall: func(c *hedera.Client, q *hedera.ContractCallQuery) (hedera.ContractFunctionResult, error) {
			return q.Execute(c)
		},
	}
	s.fetchFile = s.fileContents
	s.estimateCallCost = func(q *hedera.ContractCallQuery) (hedera.Hbar, error) {
		return q.GetCost(s.client)
	}

	return s
}

// fileContents reads the full contents of a well-known file from the network.
func (s *service) fileContents(ctx context.Context, id hedera.FileID) ([]byte, error) {
	q := hedera.NewFileContentsQuery().SetFileID(id)

	return execQuery(ctx, s.exec, query(OpFileContentsQuery), hedera.ZeroHbar,
		func(c *hedera.Client) ([]byte, error) {
			return q.Execute(c)
		})
}
