package consensus

import (
	"encoding/json"
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// NewNetworkClient builds the long-lived SDK client bound to the target
// network, with the single operator identity that signs and pays for every
// adapter-initiated operation. The client is constructed once at process
// start and shared for the process lifetime; it is never rebuilt per request.
//
// network is either a well-known network name ("mainnet", "testnet",
// "previewnet") or a JSON object mapping node addresses to node account ids,
// e.g. {"127.0.0.1:50211": "0.0.3"}.
func NewNetworkClient(network, operatorID, operatorKey string) (*hedera.Client, error) {
	client, err := clientForTarget(network)
	if err != nil {
		return nil, err
	}

	operator, err := hedera.AccountIDFromString(operatorID)
	if err != nil {
		return nil, fmt.Errorf("invalid operator account id: %w", err)
	}

	key, err := hedera.PrivateKeyFromString(operatorKey)
	if err != nil {
		return nil, fmt.Errorf("invalid operator private key: %w", err)
	}

	client.SetOperator(operator, key)
	return client, nil
}

// clientForTarget resolves the network argument into an SDK client: a JSON
// node map yields an explicit custom network, anything else is treated as a
// well-known network name.
func clientForTarget(network string) (*hedera.Client, error) {
	if !strings.HasPrefix(strings.TrimSpace(network), "{") {
		return hedera.ClientForName(network)
	}

	var addresses map[string]string
	if err := json.Unmarshal([]byte(network), &addresses); err != nil {
		return nil, fmt.Errorf("invalid network node map: %w", err)
	}

	nodes := make(map[string]hedera.AccountID, len(addresses))
	for address, node := range addresses {
		id, err := hedera.AccountIDFromString(node)
		if err != nil {
			return nil, fmt.Errorf("invalid node account id %q: %w", node, err)
		}
		nodes[address] = id
	}

	return hedera.ClientForNetwork(nodes), nil
}
