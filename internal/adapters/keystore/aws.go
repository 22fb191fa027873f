package keystore

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	secretsmanagertypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"go.uber.org/zap"

	"github.com/fsspay/ipay-go/internal/domain"
	"github.com/fsspay/ipay-go/internal/domain/ports"
)

// AWSConfig contains configuration for the AWS Secrets Manager key loader.
type AWSConfig struct {
	// AWS Region (e.g. "eu-west-1")
	Region string

	// Optional: AWS profile name (for local development)
	Profile string

	// Optional: custom endpoint (for LocalStack testing)
	Endpoint string

	// Secret name prefix the terminal keys live under, e.g. "ipay/terminals/"
	SecretPrefix string
}

// awsKeyLoader implements the KeyLoader port for AWS Secrets Manager.
type awsKeyLoader struct {
	client *secretsmanager.Client
	config *AWSConfig
	logger *zap.Logger
}

// NewAWSKeyLoader creates a Secrets Manager backed key loader using the
// default credentials chain (or the configured profile).
func NewAWSKeyLoader(ctx context.Context, cfg *AWSConfig, logger *zap.Logger) (ports.KeyLoader, error) {
	var awsCfg aws.Config
	var err error

	if cfg.Profile != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithSharedConfigProfile(cfg.Profile),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	clientOptions := []func(*secretsmanager.Options){}
	if cfg.Endpoint != "" {
		clientOptions = append(clientOptions, func(o *secretsmanager.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	client := secretsmanager.NewFromConfig(awsCfg, clientOptions...)

	logger.Info("AWS Secrets Manager key loader initialized",
		zap.String("region", cfg.Region),
	)

	return &awsKeyLoader{
		client: client,
		config: cfg,
		logger: logger,
	}, nil
}

// LoadKey retrieves the named key from Secrets Manager. Binary secrets are
// returned as-is; string secrets may be hex-encoded or raw.
func (l *awsKeyLoader) LoadKey(ctx context.Context, name string) ([]byte, error) {
	secretID := l.config.SecretPrefix + name

	l.logger.Debug("reading key from AWS Secrets Manager",
		zap.String("secret_id", secretID),
	)

	out, err := l.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		var notFound *secretsmanagertypes.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return nil, domain.NewDomainError(domain.ErrorCodeKeyNotFound,
				fmt.Sprintf("key %q not found in Secrets Manager", name))
		}
		return nil, domain.WrapError(domain.ErrorCodeResourceRead, "reading key from Secrets Manager", err)
	}

	if out.SecretBinary != nil {
		return out.SecretBinary, nil
	}
	if out.SecretString != nil && *out.SecretString != "" {
		return decodeKeyMaterial([]byte(*out.SecretString)), nil
	}
	return nil, domain.NewDomainError(domain.ErrorCodeKeyNotFound,
		fmt.Sprintf("key %q is empty", name))
}
