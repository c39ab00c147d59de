package redis

import (
	"context"
	"errors"

	"github.com/spalladino/hedera-json-rpc-relay/internal/handlers/rpc"

	redis "github.com/redis/go-redis/v9"
)

// gasPriceKey is the key under which the derived gas price, in tinybars, is
// cached. The network republishes its fee files on the order of hours, so a
// single shared entry is enough.
const gasPriceKey = "relay:gasprice:tinybars"

// Get implements the rpc.GasPriceCache interface. A missing or expired entry
// is reported as a miss, not an error.
func (c *client) Get(ctx context.Context) (int64, bool, error) {
	tinybars, err := c.conn.Get(ctx, gasPriceKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}

	return tinybars, true, nil
}

// Set implements the rpc.GasPriceCache interface, storing the price with the
// configured TTL.
func (c *client) Set(ctx context.Context, tinybars int64) error {
	return c.conn.Set(ctx, gasPriceKey, tinybars, c.gasPriceTTL).Err()
}

// Compile-time assertion that *client satisfies the rpc.GasPriceCache interface
var _ rpc.GasPriceCache = new(client)
