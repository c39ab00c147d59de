package rpc

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math/big"

	"github.com/spalladino/hedera-json-rpc-relay/internal/consensus"
	"github.com/spalladino/hedera-json-rpc-relay/internal/mirror"
	"github.com/spalladino/hedera-json-rpc-relay/internal/pkg/logger"
	"github.com/spalladino/hedera-json-rpc-relay/internal/pkg/types"

	ethtypes "github.com/ethereum/go-ethereum/core/types"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// defaultCallGas is the gas limit attached to eth_call executions when the
// caller does not provide one, and the fixed value served by
// eth_estimateGas. Fee assessment on the consensus network does not depend
// on a caller-side estimation pass.
const defaultCallGas int64 = 400_000

// Consensus is the slice of the adapter the RPC methods consume.
type Consensus interface {
	AccountBalanceWei(ctx context.Context, account string) (*big.Int, error)
	ContractBytecode(ctx context.Context, shard, realm uint64, evmAddress string) ([]byte, error)
	GasPriceInTinybars(ctx context.Context) (int64, error)
	SubmitRawTransaction(ctx context.Context, raw []byte) (hedera.TransactionRecord, error)
	CallContract(ctx context.Context, to string, data []byte, gas int64) (hedera.ContractFunctionResult, error)
}

// Mirror is the slice of the mirror node client the RPC methods consume.
type Mirror interface {
	LatestBlockNumber(ctx context.Context) (int64, error)
	ContractResult(ctx context.Context, transactionHash string) (mirror.ContractResult, error)
}

// GasPriceCache caches the derived gas price, in tinybars, between
// eth_gasPrice calls. Implementations decide the expiry policy.
type GasPriceCache interface {
	// Get returns the cached price and whether a live entry was present.
	Get(ctx context.Context) (int64, bool, error)

	// Set stores the price.
	Set(ctx context.Context, tinybars int64) error
}

// nopGasPriceCache never hits. It is the default when no cache is wired.
type nopGasPriceCache struct{}

func (nopGasPriceCache) Get(context.Context) (int64, bool, error) { return 0, false, nil }
func (nopGasPriceCache) Set(context.Context, int64) error         { return nil }

// Handlers implements the supported eth_/net_ methods on top of the
// consensus adapter and the mirror node.
type Handlers struct {
	chainID   types.Hex
	consensus Consensus
	mirror    Mirror
	cache     GasPriceCache
}

// HandlerOption configures the method handlers.
type HandlerOption func(*Handlers)

// WithGasPriceCache wires a cache consulted before deriving the gas price
// from the network fee files.
func WithGasPriceCache(cache GasPriceCache) HandlerOption {
	return func(h *Handlers) {
		h.cache = cache
	}
}

// NewHandlers builds the method handlers for the given chain id.
func NewHandlers(chainID types.Hex, consensus Consensus, mirror Mirror, opts ...HandlerOption) *Handlers {
	h := &Handlers{
		chainID:   chainID,
		consensus: consensus,
		mirror:    mirror,
		cache:     nopGasPriceCache{},
	}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

type methodFunc func(ctx context.Context, params json.RawMessage) (any, error)

// methods returns the dispatch table.
func (h *Handlers) methods() map[string]methodFunc {
	return map[string]methodFunc{
		"eth_chainId":               h.ethChainID,
		"net_version":               h.netVersion,
		"net_listening":             h.netListening,
		"eth_gasPrice":              h.ethGasPrice,
		"eth_getBalance":            h.ethGetBalance,
		"eth_getCode":               h.ethGetCode,
		"eth_call":                  h.ethCall,
		"eth_estimateGas":           h.ethEstimateGas,
		"eth_sendRawTransaction":    h.ethSendRawTransaction,
		"eth_blockNumber":           h.ethBlockNumber,
		"eth_getTransactionReceipt": h.ethGetTransactionReceipt,
	}
}

func (h *Handlers) ethChainID(context.Context, json.RawMessage) (any, error) {
	return h.chainID, nil
}

func (h *Handlers) netVersion(context.Context, json.RawMessage) (any, error) {
	return h.chainID.Big().String(), nil
}

func (h *Handlers) netListening(context.Context, json.RawMessage) (any, error) {
	return false, nil
}

// ethGasPrice serves the cached price when one is live and otherwise derives
// it from the network fee files. Cache failures are logged and treated as
// misses so a degraded cache never takes the method down.
func (h *Handlers) ethGasPrice(ctx context.Context, _ json.RawMessage) (any, error) {
	tinybars, hit, err := h.cache.Get(ctx)
	if err != nil {
		logger.Warn(ctx, "gas price cache read failed", "error", err)
	} else if hit {
		return types.HexFromBig(consensus.TinybarsToWei(tinybars)), nil
	}

	tinybars, err = h.consensus.GasPriceInTinybars(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.cache.Set(ctx, tinybars); err != nil {
		logger.Warn(ctx, "gas price cache write failed", "error", err)
	}

	return types.HexFromBig(consensus.TinybarsToWei(tinybars)), nil
}

func (h *Handlers) ethGetBalance(ctx context.Context, params json.RawMessage) (any, error) {
	args, err := parseParams(params, 1)
	if err != nil {
		return nil, err
	}

	address, err := stringParam(args, 0)
	if err != nil {
		return nil, err
	}

	balance, err := h.consensus.AccountBalanceWei(ctx, address)
	if err != nil {
		return nil, err
	}

	return types.HexFromBig(balance), nil
}

func (h *Handlers) ethGetCode(ctx context.Context, params json.RawMessage) (any, error) {
	args, err := parseParams(params, 1)
	if err != nil {
		return nil, err
	}

	address, err := stringParam(args, 0)
	if err != nil {
		return nil, err
	}

	code, err := h.consensus.ContractBytecode(ctx, 0, 0, address)
	if err != nil {
		return nil, err
	}

	return types.Prepend0x(hex.EncodeToString(code)), nil
}

// callObject is the transaction-shaped first parameter of eth_call.
type callObject struct {
	To   string    `json:"to"`
	Data types.Hex `json:"data"`
	Gas  types.Hex `json:"gas"`
}

func (h *Handlers) ethCall(ctx context.Context, params json.RawMessage) (any, error) {
	args, err := parseParams(params, 1)
	if err != nil {
		return nil, err
	}

	var call callObject
	if err := json.Unmarshal(args[0], &call); err != nil {
		return nil, invalidParams("param 0 must be a call object: %v", err)
	}
	if call.To == "" {
		return nil, invalidParams("call object requires a to address")
	}

	data, err := hex.DecodeString(types.Prune0x(string(call.Data)))
	if err != nil {
		return nil, invalidParams("call data is not valid hex")
	}

	gas := call.Gas.Int()
	if gas == 0 {
		gas = defaultCallGas
	}

	result, err := h.consensus.CallContract(ctx, call.To, data, gas)
	if err != nil {
		return nil, err
	}

	return types.Prepend0x(hex.EncodeToString(result.ContractCallResult)), nil
}

func (h *Handlers) ethEstimateGas(context.Context, json.RawMessage) (any, error) {
	return types.HexFromInt(defaultCallGas), nil
}

// ethSendRawTransaction submits the signed payload and returns its Ethereum
// transaction hash. The hash is computed locally from the payload, so it is
// available even though the network assigns its own native transaction id.
func (h *Handlers) ethSendRawTransaction(ctx context.Context, params json.RawMessage) (any, error) {
	args, err := parseParams(params, 1)
	if err != nil {
		return nil, err
	}

	rawHex, err := stringParam(args, 0)
	if err != nil {
		return nil, err
	}

	raw, err := hex.DecodeString(types.Prune0x(rawHex))
	if err != nil {
		return nil, invalidParams("raw transaction is not valid hex")
	}

	var tx ethtypes.Transaction
	if err := tx.UnmarshalBinary(raw); err != nil {
		return nil, invalidParams("raw transaction is not a valid rlp payload: %v", err)
	}

	record, err := h.consensus.SubmitRawTransaction(ctx, raw)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "raw transaction executed",
		"hash", tx.Hash().Hex(),
		"status", record.Receipt.Status.String(),
		"fee_tinybars", record.TransactionFee.AsTinybar(),
	)

	return tx.Hash().Hex(), nil
}

func (h *Handlers) ethBlockNumber(ctx context.Context, _ json.RawMessage) (any, error) {
	number, err := h.mirror.LatestBlockNumber(ctx)
	if err != nil {
		return nil, err
	}

	return types.HexFromInt(number), nil
}

// transactionReceipt is the wire shape of an eth_getTransactionReceipt
// result.
type transactionReceipt struct {
	TransactionHash   string       `json:"transactionHash"`
	TransactionIndex  types.Hex    `json:"transactionIndex"`
	BlockHash         string       `json:"blockHash"`
	BlockNumber       types.Hex    `json:"blockNumber"`
	From              string       `json:"from"`
	To                string       `json:"to,omitempty"`
	ContractAddress   string       `json:"contractAddress,omitempty"`
	CumulativeGasUsed types.Hex    `json:"cumulativeGasUsed"`
	GasUsed           types.Hex    `json:"gasUsed"`
	Logs              []receiptLog `json:"logs"`
	LogsBloom         string       `json:"logsBloom"`
	Status            string       `json:"status"`
}

type receiptLog struct {
	Address          string    `json:"address"`
	BlockHash        string    `json:"blockHash"`
	BlockNumber      types.Hex `json:"blockNumber"`
	Data             string    `json:"data"`
	LogIndex         types.Hex `json:"logIndex"`
	Removed          bool      `json:"removed"`
	Topics           []string  `json:"topics"`
	TransactionHash  string    `json:"transactionHash"`
	TransactionIndex types.Hex `json:"transactionIndex"`
}

// ethGetTransactionReceipt resolves the receipt from the mirror node record.
// An unknown hash yields a null result, matching how Ethereum nodes answer
// for pending or nonexistent transactions.
func (h *Handlers) ethGetTransactionReceipt(ctx context.Context, params json.RawMessage) (any, error) {
	args, err := parseParams(params, 1)
	if err != nil {
		return nil, err
	}

	hash, err := stringParam(args, 0)
	if err != nil {
		return nil, err
	}

	result, err := h.mirror.ContractResult(ctx, hash)
	if err != nil {
		if errors.Is(err, mirror.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	receipt := transactionReceipt{
		TransactionHash:   result.Hash,
		TransactionIndex:  types.HexFromInt(result.TransactionIndex),
		BlockHash:         result.BlockHash,
		BlockNumber:       types.HexFromInt(result.BlockNumber),
		From:              result.From,
		To:                result.To,
		CumulativeGasUsed: types.HexFromInt(result.GasUsed),
		GasUsed:           types.HexFromInt(result.GasUsed),
		Logs:              make([]receiptLog, 0, len(result.Logs)),
		LogsBloom:         result.Bloom,
		Status:            result.Status,
	}
	if len(result.CreatedContractIDs) > 0 {
		receipt.ContractAddress = result.Address
	}

	for _, l := range result.Logs {
		receipt.Logs = append(receipt.Logs, receiptLog{
			Address:          l.Address,
			BlockHash:        result.BlockHash,
			BlockNumber:      types.HexFromInt(result.BlockNumber),
			Data:             l.Data,
			LogIndex:         types.HexFromInt(l.Index),
			Topics:           l.Topics,
			TransactionHash:  result.Hash,
			TransactionIndex: types.HexFromInt(result.TransactionIndex),
		})
	}

	return receipt, nil
}
