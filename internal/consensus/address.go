package consensus

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spalladino/hedera-json-rpc-relay/internal/pkg/types"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// longZeroPrefix marks solidity-style addresses that encode a numeric
// (shard, realm, num) entity id rather than an EVM alias: the shard and the
// top of the realm render as at least eleven leading zero characters.
const longZeroPrefix = "00000000000"

// contractIDFromAddress resolves a target address into a contract id. A
// pruned address starting with the long-zero prefix is decoded as a numeric
// solidity-style id; anything else is treated as an EVM address alias in
// shard 0, realm 0.
func contractIDFromAddress(to string) (hedera.ContractID, error) {
	pruned := types.Prune0x(to)
	if strings.HasPrefix(pruned, longZeroPrefix) {
		return hedera.ContractIDFromSolidityAddress(pruned)
	}

	return hedera.ContractIDFromEvmAddress(0, 0, pruned)
}

// accountIDFromAddress resolves an account reference that may be either a
// native "shard.realm.num" id or a hex EVM address, with or without the 0x
// prefix.
func accountIDFromAddress(account string) (hedera.AccountID, error) {
	pruned := types.Prune0x(account)
	if len(pruned) == 40 {
		return hedera.AccountIDFromEvmAddress(0, 0, pruned)
	}

	return hedera.AccountIDFromString(account)
}

// longZeroAddress encodes a (shard, realm, num) triple into the 20-byte
// solidity-style hex form: 4 bytes of shard, 8 of realm, 8 of entity number.
func longZeroAddress(shard, realm, num uint64) string {
	return fmt.Sprintf("%08x%016x%016x", shard, realm, num)
}

// splitLongZeroAddress decodes a solidity-style hex address (with or without
// the 0x prefix) back into its (shard, realm, num) triple. It is the exact
// inverse of longZeroAddress.
func splitLongZeroAddress(address string) (shard, realm, num uint64, err error) {
	pruned := types.Prune0x(address)
	if len(pruned) != 40 {
		return 0, 0, 0, fmt.Errorf("solidity address must be 40 hex characters, got %d", len(pruned))
	}

	shard, err = strconv.ParseUint(pruned[:8], 16, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid shard segment: %w", err)
	}

	realm, err = strconv.ParseUint(pruned[8:24], 16, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid realm segment: %w", err)
	}

	num, err = strconv.ParseUint(pruned[24:], 16, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid entity number segment: %w", err)
	}

	return shard, realm, num, nil
}
