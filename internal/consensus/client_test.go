package consensus

import (
	"testing"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientForTarget(t *testing.T) {
	t.Run("resolves a well-known network name", func(t *testing.T) {
		client, err := clientForTarget("testnet")
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("builds a custom network from a node map", func(t *testing.T) {
		client, err := clientForTarget(`{"127.0.0.1:50211": "0.0.3"}`)
		require.NoError(t, err)
		require.NotNil(t, client)

		network := client.GetNetwork()
		node, ok := network["127.0.0.1:50211"]
		require.True(t, ok)
		assert.Equal(t, uint64(3), node.Account)
	})

	t.Run("rejects an unknown network name", func(t *testing.T) {
		_, err := clientForTarget("devnet")
		require.Error(t, err)
	})

	t.Run("rejects a malformed node map", func(t *testing.T) {
		_, err := clientForTarget(`{"127.0.0.1:50211": `)
		require.Error(t, err)
	})

	t.Run("rejects an invalid node account id", func(t *testing.T) {
		_, err := clientForTarget(`{"127.0.0.1:50211": "not-an-id"}`)
		require.Error(t, err)
	})
}

func TestNewNetworkClient(t *testing.T) {
	t.Run("sets the operator identity", func(t *testing.T) {
		key, err := hedera.PrivateKeyGenerateEd25519()
		require.NoError(t, err)

		client, err := NewNetworkClient("testnet", "0.0.2", key.String())
		require.NoError(t, err)
		require.NotNil(t, client)

		assert.Equal(t, uint64(2), client.GetOperatorAccountID().Account)
	})

	t.Run("rejects an invalid operator account id", func(t *testing.T) {
		key, err := hedera.PrivateKeyGenerateEd25519()
		require.NoError(t, err)

		_, err = NewNetworkClient("testnet", "not-an-id", key.String())
		require.Error(t, err)
	})

	t.Run("rejects an invalid operator key", func(t *testing.T) {
		_, err := NewNetworkClient("testnet", "0.0.2", "not-a-key")
		require.Error(t, err)
	})
}
