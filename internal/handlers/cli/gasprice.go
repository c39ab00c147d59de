package cli

import (
	"context"
	"fmt"

	"github.com/spalladino/hedera-json-rpc-relay/internal/consensus"

	"github.com/urfave/cli/v3"
)

// gasPriceCommand returns a CLI command that derives the current gas price
// from the network's published fee files and prints it.
//
// Usage example:
//
//	relay gas-price
func gasPriceCommand(prices GasPriceSource) *cli.Command {
	return &cli.Command{
		Name:        "gas-price",
		Description: "Derives the current gas price from the network fee schedule and exchange rate files.",
		Usage:       "Prints the gas price in tinybars and wei.",
		Action: func(ctx context.Context, c *cli.Command) error {
			tinybars, err := prices.GasPriceInTinybars(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("gas price: %d tinybars (%s wei)\n", tinybars, consensus.TinybarsToWei(tinybars))
			return nil
		},
	}
}
