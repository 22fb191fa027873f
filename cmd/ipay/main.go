// Command ipay builds a hosted-payment redirect URL for one transaction, or
// decodes a gateway callback. It is a thin demonstration wrapper around the
// library; real integrations embed the gateway client directly.
//
// Usage:
//
//	ipay                  print the redirect URL for the configured purchase
//	ipay -parse QUERY     decode a callback query string into its fields
//
// Configuration comes from the environment (a .env file is honored).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fsspay/ipay-go/internal/adapters/keystore"
	"github.com/fsspay/ipay-go/internal/config"
	"github.com/fsspay/ipay-go/internal/domain/ports"
	"github.com/fsspay/ipay-go/internal/gateway"
)

func main() {
	parseQuery := flag.String("parse", "", "decode a callback query string instead of generating a request")
	flag.Parse()

	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	logger := initLogger()
	defer logger.Sync()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	keys, err := buildKeyLoader(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize keystore", zap.Error(err))
	}

	amount, err := decimal.NewFromString(cfg.Gateway.Amount)
	if err != nil && *parseQuery == "" {
		logger.Fatal("IPAY_AMOUNT is not a valid decimal", zap.Error(err))
	}

	client, err := gateway.New(ctx, gateway.Options{
		Keys:       keys,
		KeyName:    cfg.Keystore.KeyName,
		BundlePath: cfg.Gateway.BundlePath,
		Alias:      cfg.Gateway.Alias,
		Amount:     amount,
		Language:   cfg.Gateway.Language,
		Currency:   cfg.Gateway.Currency,
		TrackingID: cfg.Gateway.TrackingID,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("failed to construct gateway client", zap.Error(err))
	}

	if *parseQuery != "" {
		result, err := client.ParseResult(*parseQuery)
		if err != nil {
			logger.Fatal("failed to parse callback", zap.Error(err))
		}
		names := make([]string, 0, len(result))
		for k := range result {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			fmt.Printf("%s=%s\n", k, result[k])
		}
		return
	}

	if err := client.SetResponseURL(cfg.Gateway.ResponseURL); err != nil {
		logger.Fatal("invalid response URL", zap.Error(err))
	}
	if err := client.SetErrorURL(cfg.Gateway.ErrorURL); err != nil {
		logger.Fatal("invalid error URL", zap.Error(err))
	}

	redirectURL, err := client.GeneratePurchaseRequest()
	if err != nil {
		logger.Fatal("failed to generate purchase request", zap.Error(err))
	}

	logger.Info("purchase request generated",
		zap.String("track_id", client.TrackingID()),
	)
	fmt.Println(redirectURL)
}

func buildKeyLoader(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.KeyLoader, error) {
	switch cfg.Keystore.Backend {
	case "vault":
		vc := keystore.DefaultVaultConfig(cfg.Keystore.VaultAddress)
		vc.Token = cfg.Keystore.VaultToken
		vc.MountPath = cfg.Keystore.VaultMount
		vc.KVVersion = cfg.Keystore.VaultKVVersion
		vc.PathPrefix = cfg.Keystore.VaultPrefix
		return keystore.NewVaultKeyLoader(ctx, vc, logger)
	case "aws":
		return keystore.NewAWSKeyLoader(ctx, &keystore.AWSConfig{
			Region:       cfg.Keystore.AWSRegion,
			Profile:      cfg.Keystore.AWSProfile,
			SecretPrefix: cfg.Keystore.AWSPrefix,
		}, logger)
	default:
		return keystore.NewFileKeyLoader(cfg.Keystore.Path, logger), nil
	}
}

func initLogger() *zap.Logger {
	env := os.Getenv("ENVIRONMENT")

	if env == "production" {
		zapCfg := zap.NewProductionConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		logger, _ := zapCfg.Build()
		return logger
	}

	logger, _ := zap.NewDevelopment()
	return logger
}
