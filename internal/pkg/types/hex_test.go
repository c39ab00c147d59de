package types

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHex_UnmarshalJSON(t *testing.T) {
	t.Run("valid lowercase hex", func(t *testing.T) {
		input := `"0x1a"`
		var h Hex

		err := json.Unmarshal([]byte(input), &h)
		require.NoError(t, err)
		assert.Equal(t, Hex("0x1a"), h)
	})

	t.Run("valid uppercase hex", func(t *testing.T) {
		input := `"0X2F"`
		var h Hex

		err := json.Unmarshal([]byte(input), &h)
		require.NoError(t, err)
		assert.Equal(t, Hex("0X2F"), h)
	})

	t.Run("missing 0x prefix", func(t *testing.T) {
		input := `"1a"`
		var h Hex

		err := json.Unmarshal([]byte(input), &h)
		require.Error(t, err)
	})

	t.Run("invalid hex characters", func(t *testing.T) {
		input := `"0xZZZ"`
		var h Hex

		err := json.Unmarshal([]byte(input), &h)
		require.Error(t, err)
	})

	t.Run("not a string", func(t *testing.T) {
		input := `42`
		var h Hex

		err := json.Unmarshal([]byte(input), &h)
		require.Error(t, err)
	})
}

func TestHex_Int(t *testing.T) {
	t.Run("0x0a should be 10", func(t *testing.T) {
		var h Hex = "0x0a"
		assert.Equal(t, int64(10), h.Int())
	})

	t.Run("0xff should be 255", func(t *testing.T) {
		var h Hex = "0xff"
		assert.Equal(t, int64(255), h.Int())
	})

	t.Run("invalid hex returns 0", func(t *testing.T) {
		var h Hex = "0xZZZ"
		assert.Equal(t, int64(0), h.Int())
	})
}

func TestHex_Big(t *testing.T) {
	t.Run("decodes values beyond int64 range", func(t *testing.T) {
		// 2^70
		var h Hex = "0x400000000000000000"

		expected := new(big.Int).Lsh(big.NewInt(1), 70)
		assert.Zero(t, expected.Cmp(h.Big()))
	})

	t.Run("invalid hex returns 0", func(t *testing.T) {
		var h Hex = "0xNOPE"
		assert.Zero(t, big.NewInt(0).Cmp(h.Big()))
	})
}

func TestHexFromInt(t *testing.T) {
	t.Run("encodes small values", func(t *testing.T) {
		assert.Equal(t, Hex("0x48"), HexFromInt(72))
	})

	t.Run("encodes zero", func(t *testing.T) {
		assert.Equal(t, Hex("0x0"), HexFromInt(0))
	})
}

func TestHexFromBig(t *testing.T) {
	t.Run("encodes big values", func(t *testing.T) {
		v := new(big.Int).Lsh(big.NewInt(1), 70)
		assert.Equal(t, Hex("0x400000000000000000"), HexFromBig(v))
	})

	t.Run("nil encodes as zero", func(t *testing.T) {
		assert.Equal(t, Hex("0x0"), HexFromBig(nil))
	})
}

func TestPrune0x(t *testing.T) {
	t.Run("strips lowercase prefix", func(t *testing.T) {
		assert.Equal(t, "abc123", Prune0x("0xabc123"))
	})

	t.Run("strips uppercase prefix", func(t *testing.T) {
		assert.Equal(t, "ABC123", Prune0x("0XABC123"))
	})

	t.Run("leaves bare strings untouched", func(t *testing.T) {
		assert.Equal(t, "abc123", Prune0x("abc123"))
	})
}

func TestPrepend0x(t *testing.T) {
	t.Run("adds prefix to bare strings", func(t *testing.T) {
		assert.Equal(t, "0xabc123", Prepend0x("abc123"))
	})

	t.Run("leaves prefixed strings untouched", func(t *testing.T) {
		assert.Equal(t, "0xabc123", Prepend0x("0xabc123"))
	})
}

func TestPrefixRoundTrip(t *testing.T) {
	inputs := []string{"abc123", "0xabc123", "00000000000abcdef", ""}

	for _, in := range inputs {
		t.Run("round trip for "+in, func(t *testing.T) {
			assert.Equal(t, Prepend0x(in), Prepend0x(Prune0x(in)))
			assert.Equal(t, Prune0x(in), Prune0x(Prepend0x(in)))
		})
	}
}
