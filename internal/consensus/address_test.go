package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContractIDFromAddress(t *testing.T) {
	t.Run("eleven leading zeros resolve through the solidity path", func(t *testing.T) {
		id, err := contractIDFromAddress("0x00000000000000000000000000000000000004d2")
		require.NoError(t, err)

		assert.Equal(t, uint64(1234), id.Contract)
	})

	t.Run("prefix-less input takes the same path", func(t *testing.T) {
		id, err := contractIDFromAddress("00000000000000000000000000000000000004d2")
		require.NoError(t, err)

		assert.Equal(t, uint64(1234), id.Contract)
	})

	t.Run("other addresses resolve through the evm path", func(t *testing.T) {
		id, err := contractIDFromAddress("0x67d8d32e9bf1a9968a5ff53b87d777aa8ebbee69")
		require.NoError(t, err)

		assert.Zero(t, id.Contract)
		assert.NotEmpty(t, id.EvmAddress)
	})

	t.Run("malformed address fails", func(t *testing.T) {
		_, err := contractIDFromAddress("0xnot-an-address")
		require.Error(t, err)
	})
}

func TestAccountIDFromAddress(t *testing.T) {
	t.Run("native id form", func(t *testing.T) {
		id, err := accountIDFromAddress("0.0.1234")
		require.NoError(t, err)

		assert.Equal(t, uint64(1234), id.Account)
	})

	t.Run("evm address form", func(t *testing.T) {
		_, err := accountIDFromAddress("0x67d8d32e9bf1a9968a5ff53b87d777aa8ebbee69")
		require.NoError(t, err)
	})

	t.Run("garbage fails", func(t *testing.T) {
		_, err := accountIDFromAddress("definitely-not-an-account")
		require.Error(t, err)
	})
}

func TestLongZeroAddressRoundTrip(t *testing.T) {
	cases := []struct {
		name              string
		shard, realm, num uint64
	}{
		{name: "entity in shard zero", shard: 0, realm: 0, num: 1234},
		{name: "nonzero shard and realm", shard: 1, realm: 2, num: 3},
		{name: "large entity number", shard: 0, realm: 0, num: 1<<40 + 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			address := longZeroAddress(tc.shard, tc.realm, tc.num)
			assert.Len(t, address, 40)

			shard, realm, num, err := splitLongZeroAddress(address)
			require.NoError(t, err)
			assert.Equal(t, tc.shard, shard)
			assert.Equal(t, tc.realm, realm)
			assert.Equal(t, tc.num, num)
		})
	}

	t.Run("accepts the 0x prefix", func(t *testing.T) {
		shard, realm, num, err := splitLongZeroAddress("0x" + longZeroAddress(0, 0, 1234))
		require.NoError(t, err)
		assert.Equal(t, uint64(0), shard)
		assert.Equal(t, uint64(0), realm)
		assert.Equal(t, uint64(1234), num)
	})

	t.Run("rejects wrong lengths", func(t *testing.T) {
		_, _, _, err := splitLongZeroAddress("0x1234")
		require.Error(t, err)
	})
}
