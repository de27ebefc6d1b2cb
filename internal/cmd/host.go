package cmd

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"
	"github.com/vvatanabe/shiptracker"
	"github.com/vvatanabe/shiptracker/internal/config"
	"go.uber.org/zap"
)

// resolveConfig loads the file named by --config and overrides it with every flag set on c.
func resolveConfig(c *cobra.Command, flgs *Flags) (config.Config, error) {
	cfg, err := config.Load(flgs.ConfigPath)
	if err != nil {
		return cfg, err
	}
	overrides := []struct {
		name string
		dst  *string
		v    string
	}{
		{flagMap.Ledger.Name, &cfg.Ledger, flgs.Ledger},
		{flagMap.Backend.Name, &cfg.Backend, flgs.Backend},
		{flagMap.TableName.Name, &cfg.TableName, flgs.TableName},
		{flagMap.EndpointURL.Name, &cfg.EndpointURL, flgs.EndpointURL},
		{flagMap.SQLitePath.Name, &cfg.SQLitePath, flgs.SQLitePath},
		{flagMap.ListenAddr.Name, &cfg.ListenAddr, flgs.ListenAddr},
		{flagMap.LogLevel.Name, &cfg.LogLevel, flgs.LogLevel},
	}
	for _, o := range overrides {
		if c.Flags().Changed(o.name) {
			*o.dst = o.v
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func createHost(ctx context.Context, cfg config.Config, logger *zap.Logger, publisher shiptracker.Publisher) (*shiptracker.Host, func(), error) {
	var (
		store   shiptracker.Store
		cleanup = func() {}
	)
	switch cfg.Backend {
	case config.BackendMemory:
		store = shiptracker.NewMemoryStore()
	case config.BackendDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load aws config: %s", err)
		}
		s, err := shiptracker.NewDynamoDBStoreFromConfig(awsCfg,
			shiptracker.WithLedgerName(cfg.Ledger),
			shiptracker.WithTableName(cfg.TableName),
			shiptracker.WithAWSBaseEndpoint(cfg.EndpointURL))
		if err != nil {
			return nil, nil, fmt.Errorf("AWS session could not be established!: %v", err)
		}
		store = s
	case config.BackendSQLite:
		s, err := shiptracker.NewSQLiteStore(ctx, cfg.SQLitePath, shiptracker.WithLedgerName(cfg.Ledger))
		if err != nil {
			return nil, nil, fmt.Errorf("SQLite database could not be opened!: %v", err)
		}
		store = s
		cleanup = func() {
			if err := s.Close(); err != nil {
				logger.Warn("failed to close sqlite store", zap.Error(err))
			}
		}
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	optFns := []func(*shiptracker.HostOptions){shiptracker.WithHostLogger(logger)}
	if publisher != nil {
		optFns = append(optFns, shiptracker.WithPublisher(publisher))
	}
	return shiptracker.NewHost(store, optFns...), cleanup, nil
}
