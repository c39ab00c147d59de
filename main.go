package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spalladino/hedera-json-rpc-relay/internal/config"
	"github.com/spalladino/hedera-json-rpc-relay/internal/consensus"
	"github.com/spalladino/hedera-json-rpc-relay/internal/handlers/cli"
	"github.com/spalladino/hedera-json-rpc-relay/internal/handlers/rpc"
	"github.com/spalladino/hedera-json-rpc-relay/internal/infra/storage/redis"
	"github.com/spalladino/hedera-json-rpc-relay/internal/metrics"
	"github.com/spalladino/hedera-json-rpc-relay/internal/mirror"
	"github.com/spalladino/hedera-json-rpc-relay/internal/pkg/logger"
	"github.com/spalladino/hedera-json-rpc-relay/internal/pkg/telemetry"
	transporthttp "github.com/spalladino/hedera-json-rpc-relay/internal/pkg/transport/http"
	"github.com/spalladino/hedera-json-rpc-relay/internal/pkg/types"
)

const serviceName = "hedera-json-rpc-relay"

// fatalf reports startup failures that happen before the logger is usable.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fatalf("invalid configuration: %v", err)
	}

	telemetryShutdown, err := telemetry.Init(ctx, serviceName)
	if err != nil {
		fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		_ = telemetryShutdown(ctx)
	}()

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	chainID, err := types.HexFromString(types.Prepend0x(cfg.ChainID))
	if err != nil {
		logger.Fatal(ctx, "invalid chain id", "chain_id", cfg.ChainID, "error", err)
	}

	client, err := consensus.NewNetworkClient(cfg.HederaNetwork, cfg.OperatorID, cfg.OperatorKey)
	if err != nil {
		logger.Fatal(ctx, "failed to build consensus network client", "network", cfg.HederaNetwork, "error", err)
	}
	defer func() {
		_ = client.Close()
	}()

	recorder, err := metrics.New(telemetry.Meter(serviceName))
	if err != nil {
		logger.Fatal(ctx, "failed to build metrics recorder", "error", err)
	}
	defer func() {
		_ = recorder.Close()
	}()

	adapter := consensus.New(client, consensus.WithMetrics(recorder))

	if err := recorder.RegisterOperatorBalance(adapter); err != nil {
		logger.Fatal(ctx, "failed to register operator balance gauge", "error", err)
	}

	mirrorClient := mirror.NewClient(transporthttp.NewClient().StandardClient(), cfg.MirrorNodeURL)

	handlerOpts := make([]rpc.HandlerOption, 0, 1)
	if cfg.RedisAddr != "" {
		cache, err := redis.NewClient(ctx, cfg.RedisAddr, "", cfg.RedisPassword, cfg.RedisDB,
			redis.WithGasPriceTTL(cfg.GasPriceTTL))
		if err != nil {
			logger.Fatal(ctx, "failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
		}
		defer func() {
			_ = cache.Close()
		}()

		handlerOpts = append(handlerOpts, rpc.WithGasPriceCache(cache))
	}

	server := rpc.NewServer(cfg.ServerAddr(), rpc.NewHandlers(chainID, adapter, mirrorClient, handlerOpts...))

	if err := cli.Run(ctx, server, adapter); err != nil {
		logger.Fatal(ctx, "relay terminated", "error", err)
	}
}
