package consensus

import (
	"math/big"
	"testing"

	"github.com/hashgraph/hedera-protobufs-go/services"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protobuf "google.golang.org/protobuf/proto"
)

// feeScheduleWithGas builds a fee schedule carrying a single contract-call
// entry with the given service gas component.
func feeScheduleWithGas(gas int64) *hedera.FeeSchedule {
	return &hedera.FeeSchedule{
		TransactionFeeSchedules: []hedera.TransactionFeeSchedule{
			{
				RequestType: hedera.RequestTypeContractCall,
				Fees: []*hedera.FeeData{
					{ServiceData: &hedera.FeeComponents{ContractTransactionGas: gas}},
				},
			},
		},
	}
}

func TestTinybarsToWei(t *testing.T) {
	t.Run("converts 500000000 tinybars without precision loss", func(t *testing.T) {
		wei := TinybarsToWei(500_000_000)

		expected, ok := new(big.Int).SetString("5000000000000000000", 10)
		require.True(t, ok)
		assert.Zero(t, expected.Cmp(wei))
	})

	t.Run("converts zero", func(t *testing.T) {
		assert.Zero(t, big.NewInt(0).Cmp(TinybarsToWei(0)))
	})

	t.Run("handles balances near the int64 limit", func(t *testing.T) {
		tinybars := int64(1) << 62
		wei := TinybarsToWei(tinybars)

		expected := new(big.Int).Mul(big.NewInt(tinybars), big.NewInt(10_000_000_000))
		assert.Zero(t, expected.Cmp(wei))
	})
}

func TestExchangeRateFromBytes(t *testing.T) {
	t.Run("keeps the current rate and drops the next one", func(t *testing.T) {
		data, err := protobuf.Marshal(&services.ExchangeRateSet{
			CurrentRate: &services.ExchangeRate{HbarEquiv: 30, CentEquiv: 7},
			NextRate:    &services.ExchangeRate{HbarEquiv: 31, CentEquiv: 8},
		})
		require.NoError(t, err)

		rate, err := exchangeRateFromBytes(data)
		require.NoError(t, err)
		assert.Equal(t, exchangeRate{Hbars: 30, Cents: 7}, rate)
	})

	t.Run("set without a current rate fails", func(t *testing.T) {
		data, err := protobuf.Marshal(&services.ExchangeRateSet{
			NextRate: &services.ExchangeRate{HbarEquiv: 31, CentEquiv: 8},
		})
		require.NoError(t, err)

		_, err = exchangeRateFromBytes(data)
		require.Error(t, err)
	})

	t.Run("undecodable bytes fail", func(t *testing.T) {
		_, err := exchangeRateFromBytes([]byte{0xff, 0xff, 0xff})
		require.Error(t, err)
	})
}

func TestGasPriceInTinybars(t *testing.T) {
	t.Run("documented scenario: gas 853000 at 1 hbar per 12 cents", func(t *testing.T) {
		schedule := feeScheduleWithGas(853_000)
		rate := exchangeRate{Hbars: 1, Cents: 12}

		// ceil(853000/1000 * 1/12) = ceil(71.08) = 72
		price, err := gasPriceInTinybars(schedule, rate)
		require.NoError(t, err)
		assert.Equal(t, int64(72), price)
	})

	t.Run("always rounds up", func(t *testing.T) {
		schedule := feeScheduleWithGas(1_000)
		rate := exchangeRate{Hbars: 1, Cents: 3}

		// ceil(1 * 1/3) = 1, never 0
		price, err := gasPriceInTinybars(schedule, rate)
		require.NoError(t, err)
		assert.Equal(t, int64(1), price)
	})

	t.Run("exact divisions are not rounded", func(t *testing.T) {
		schedule := feeScheduleWithGas(12_000)
		rate := exchangeRate{Hbars: 1, Cents: 12}

		price, err := gasPriceInTinybars(schedule, rate)
		require.NoError(t, err)
		assert.Equal(t, int64(1), price)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		schedule := feeScheduleWithGas(853_000)
		rate := exchangeRate{Hbars: 30, Cents: 7}

		first, err := gasPriceInTinybars(schedule, rate)
		require.NoError(t, err)

		second, err := gasPriceInTinybars(schedule, rate)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("missing contract call entry fails, never defaults to zero", func(t *testing.T) {
		schedule := &hedera.FeeSchedule{
			TransactionFeeSchedules: []hedera.TransactionFeeSchedule{
				{RequestType: hedera.RequestTypeCryptoTransfer, Fees: []*hedera.FeeData{
					{ServiceData: &hedera.FeeComponents{ContractTransactionGas: 853_000}},
				}},
			},
		}
		rate := exchangeRate{Hbars: 1, Cents: 12}

		_, err := gasPriceInTinybars(schedule, rate)
		require.ErrorIs(t, err, ErrGasComponentNotFound)
	})

	t.Run("entry without service data is skipped", func(t *testing.T) {
		schedule := &hedera.FeeSchedule{
			TransactionFeeSchedules: []hedera.TransactionFeeSchedule{
				{RequestType: hedera.RequestTypeContractCall, Fees: []*hedera.FeeData{nil}},
			},
		}
		rate := exchangeRate{Hbars: 1, Cents: 12}

		_, err := gasPriceInTinybars(schedule, rate)
		require.ErrorIs(t, err, ErrGasComponentNotFound)
	})
}
