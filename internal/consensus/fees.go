package consensus

import (
	"errors"
	"math/big"

	"github.com/hashgraph/hedera-protobufs-go/services"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	protobuf "google.golang.org/protobuf/proto"
)

// tinybarToWeiCoef is the fixed tinybar to wei ratio: one whole hbar is 10^8
// tinybars and is mapped to 10^18 wei, so one tinybar is 10^10 wei.
var tinybarToWeiCoef = big.NewInt(10_000_000_000)

// TinybarsToWei converts a native tinybar amount into its smallest-Ethereum-
// unit equivalent. The result is arbitrary precision: no balance the network
// can represent loses precision in the conversion.
func TinybarsToWei(tinybars int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(tinybars), tinybarToWeiCoef)
}

// exchangeRate is the hbar-to-cents quote published in the network exchange
// rate file. The SDK type keeps its cents side unexported, so the adapter
// decodes the file into its own pair.
type exchangeRate struct {
	Hbars int32
	Cents int32
}

// exchangeRateFromBytes decodes the exchange rate file contents. The file
// carries a current and a next rate; only the current one is kept.
func exchangeRateFromBytes(data []byte) (exchangeRate, error) {
	var set services.ExchangeRateSet
	if err := protobuf.Unmarshal(data, &set); err != nil {
		return exchangeRate{}, err
	}

	current := set.GetCurrentRate()
	if current == nil {
		return exchangeRate{}, errors.New("missing current exchange rate")
	}

	return exchangeRate{Hbars: current.HbarEquiv, Cents: current.CentEquiv}, nil
}

// contractCallGasComponent looks up the service gas component of the
// contract-call functionality in the given fee schedule. The entry being
// absent is an error: quoting a zero fee would produce transactions the
// network rejects as underpaid.
func contractCallGasComponent(schedule *hedera.FeeSchedule) (int64, error) {
	for _, tfs := range schedule.TransactionFeeSchedules {
		if tfs.RequestType != hedera.RequestTypeContractCall {
			continue
		}

		for _, fee := range tfs.Fees {
			if fee != nil && fee.ServiceData != nil {
				return fee.ServiceData.ContractTransactionGas, nil
			}
		}
	}

	return 0, ErrGasComponentNotFound
}

// gasPriceInTinybars derives the network gas price from the current fee
// schedule and the current exchange rate:
//
//	ceil((gasComponent / 1000) * (rate.Hbars / rate.Cents))
//
// The /1000 divisor matches the schedule's fee granularity, and rounding is
// always up: rounding down would quote a gas price the network rejects as
// insufficient. Pure function, deterministic for identical inputs.
func gasPriceInTinybars(current *hedera.FeeSchedule, rate exchangeRate) (int64, error) {
	gas, err := contractCallGasComponent(current)
	if err != nil {
		return 0, err
	}

	num := new(big.Int).Mul(big.NewInt(gas), big.NewInt(int64(rate.Hbars)))
	den := new(big.Int).Mul(big.NewInt(1000), big.NewInt(int64(rate.Cents)))

	// Integer ceiling: (num + den - 1) / den.
	num.Add(num, new(big.Int).Sub(den, big.NewInt(1)))
	return num.Div(num, den).Int64(), nil
}
