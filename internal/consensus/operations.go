package consensus

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/spalladino/hedera-json-rpc-relay/internal/pkg/types"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// AccountBalanceTinybars returns the balance of the given account in
// tinybars. The account may be referenced by native id ("0.0.1234") or by
// EVM address.
func (s *service) AccountBalanceTinybars(ctx context.Context, account string) (int64, error) {
	id, err := accountIDFromAddress(account)
	if err != nil {
		return 0, err
	}

	q := hedera.NewAccountBalanceQuery().SetAccountID(id)

	balance, err := execQuery(ctx, s.exec, query(OpAccountBalanceQuery), hedera.ZeroHbar,
		func(c *hedera.Client) (hedera.AccountBalance, error) {
			return q.Execute(c)
		})
	if err != nil {
		return 0, err
	}

	return balance.Hbars.AsTinybar(), nil
}

// AccountBalanceWei returns the account balance converted to the smallest
// Ethereum unit.
func (s *service) AccountBalanceWei(ctx context.Context, account string) (*big.Int, error) {
	tinybars, err := s.AccountBalanceTinybars(ctx, account)
	if err != nil {
		return nil, err
	}

	return TinybarsToWei(tinybars), nil
}

// ContractBalanceTinybars returns the balance of the given contract id in
// tinybars.
func (s *service) ContractBalanceTinybars(ctx context.Context, contract string) (int64, error) {
	id, err := hedera.ContractIDFromString(contract)
	if err != nil {
		return 0, err
	}

	q := hedera.NewAccountBalanceQuery().SetContractID(id)

	balance, err := execQuery(ctx, s.exec, query(OpAccountBalanceQuery), hedera.ZeroHbar,
		func(c *hedera.Client) (hedera.AccountBalance, error) {
			return q.Execute(c)
		})
	if err != nil {
		return 0, err
	}

	return balance.Hbars.AsTinybar(), nil
}

// ContractBalanceWei returns the contract balance converted to the smallest
// Ethereum unit.
func (s *service) ContractBalanceWei(ctx context.Context, contract string) (*big.Int, error) {
	tinybars, err := s.ContractBalanceTinybars(ctx, contract)
	if err != nil {
		return nil, err
	}

	return TinybarsToWei(tinybars), nil
}

// AccountInfo fetches the native account information for an address.
func (s *service) AccountInfo(ctx context.Context, address string) (hedera.AccountInfo, error) {
	id, err := accountIDFromAddress(address)
	if err != nil {
		return hedera.AccountInfo{}, err
	}

	q := hedera.NewAccountInfoQuery().SetAccountID(id)

	return execQuery(ctx, s.exec, query(OpAccountInfoQuery), hedera.ZeroHbar,
		func(c *hedera.Client) (hedera.AccountInfo, error) {
			return q.Execute(c)
		})
}

// ContractBytecode fetches the deployed bytecode of the contract identified
// by the (shard, realm, evmAddress) triple.
func (s *service) ContractBytecode(ctx context.Context, shard, realm uint64, evmAddress string) ([]byte, error) {
	id, err := hedera.ContractIDFromEvmAddress(shard, realm, types.Prune0x(evmAddress))
	if err != nil {
		return nil, err
	}

	q := hedera.NewContractBytecodeQuery().SetContractID(id)

	return execQuery(ctx, s.exec, query(OpContractBytecodeQuery), hedera.ZeroHbar,
		func(c *hedera.Client) ([]byte, error) {
			return q.Execute(c)
		})
}

// GasPriceInTinybars fetches the fee schedule and exchange rate files from
// their well-known addresses, decodes both, and derives the gas price in
// tinybars. Only the current sections of either file are consulted.
func (s *service) GasPriceInTinybars(ctx context.Context) (int64, error) {
	feeBytes, err := s.fetchFile(ctx, feeScheduleFileID)
	if err != nil {
		return 0, err
	}

	rateBytes, err := s.fetchFile(ctx, exchangeRateFileID)
	if err != nil {
		return 0, err
	}

	schedules, err := s.decodeFeeSchedules(feeBytes)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFeeScheduleFormat, err)
	}
	if schedules.Current == nil {
		return 0, fmt.Errorf("%w: missing current fee schedule", ErrInvalidFeeScheduleFormat)
	}

	rate, err := s.decodeExchangeRate(rateBytes)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFeeScheduleFormat, err)
	}

	price, err := gasPriceInTinybars(schedules.Current, rate)
	if err != nil {
		if errors.Is(err, ErrGasComponentNotFound) {
			return 0, fmt.Errorf("%w: %v", ErrFunctionalityNotFound, err)
		}
		return 0, err
	}

	return price, nil
}

// SubmitRawTransaction wraps raw signed Ethereum transaction bytes in the
// native envelope, submits it, and follows up with the record so the actual
// assessed fee is captured.
func (s *service) SubmitRawTransaction(ctx context.Context, raw []byte) (hedera.TransactionRecord, error) {
	op := transaction(OpEthereumTransaction)

	tx := hedera.NewEthereumTransaction().SetEthereumData(raw)

	resp, err := s.exec.execTransaction(ctx, op, tx)
	if err != nil {
		return hedera.TransactionRecord{}, err
	}

	return s.exec.transactionRecord(ctx, op, resp)
}

// CallContract executes a read-only contract call. The target is resolved by
// address shape, the query's required payment is obtained via a
// cost-estimation round-trip, and that exact amount is attached as the query
// payment before execution.
func (s *service) CallContract(ctx context.Context, to string, data []byte, gas int64) (hedera.ContractFunctionResult, error) {
	id, err := contractIDFromAddress(to)
	if err != nil {
		return hedera.ContractFunctionResult{}, err
	}

	q := hedera.NewContractCallQuery().
		SetContractID(id).
		SetGas(uint64(gas)).
		SetFunctionParameters(data)

	cost, err := s.estimateCallCost(q)
	if err != nil {
		return hedera.ContractFunctionResult{}, normalizeError(err)
	}

	q.SetQueryPayment(cost)

	return execQuery(ctx, s.exec, query(OpContractCallQuery), cost,
		func(c *hedera.Client) (hedera.ContractFunctionResult, error) {
			return s.executeCall(c, q)
		})
}

// OperatorBalanceTinybars returns the operator account's balance in tinybars.
// The metrics recorder samples it through this operation when the balance
// gauge is collected.
func (s *service) OperatorBalanceTinybars(ctx context.Context) (int64, error) {
	operator := s.client.GetOperatorAccountID()
	return s.AccountBalanceTinybars(ctx, operator.String())
}
