package keystore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/fsspay/ipay-go/internal/domain"
	"github.com/fsspay/ipay-go/internal/domain/ports"
)

// fileKeyLoader implements KeyLoader against the local filesystem: one file
// per key name under a base directory. Intended for development and tests;
// use the Vault or AWS loaders in production.
type fileKeyLoader struct {
	basePath string
	logger   *zap.Logger
}

// NewFileKeyLoader creates a filesystem-backed key loader rooted at basePath.
func NewFileKeyLoader(basePath string, logger *zap.Logger) ports.KeyLoader {
	return &fileKeyLoader{
		basePath: basePath,
		logger:   logger,
	}
}

// LoadKey reads the named key file. File contents may be hex-encoded or raw
// key bytes.
func (l *fileKeyLoader) LoadKey(ctx context.Context, name string) ([]byte, error) {
	filePath := filepath.Join(l.basePath, name)

	l.logger.Debug("reading key from filesystem",
		zap.String("name", name),
	)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewDomainError(domain.ErrorCodeKeyNotFound,
				fmt.Sprintf("key %q not found in keystore directory", name))
		}
		return nil, domain.WrapError(domain.ErrorCodeResourceRead, "reading key file", err)
	}

	key := decodeKeyMaterial(data)
	if len(key) == 0 {
		return nil, domain.NewDomainError(domain.ErrorCodeKeyNotFound,
			fmt.Sprintf("key %q is empty", name))
	}
	return key, nil
}
