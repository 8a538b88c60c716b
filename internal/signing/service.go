// Package signing implements the document-signing service: it receives a
// PDF, verifies it is not encrypted, stamps every page with a signature
// block and returns the signed bytes.
package signing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inkstamp/sign-portal/internal/config"
)

// ErrEncrypted marks documents that cannot be stamped because they are
// encrypted or password protected.
var ErrEncrypted = errors.New("document is encrypted")

// Service signs one uploaded document per call.
type Service interface {
	// SignDocument stamps the PDF at inputPath and returns the path of the
	// signed temp file. The caller owns removal of both files.
	SignDocument(ctx context.Context, inputPath, originalName string) (string, error)
}

type signingService struct {
	cfg     config.SigningConfig
	stamper *Stamper
	logger  *zap.Logger
}

// NewService creates the signing service.
func NewService(cfg config.SigningConfig, stamper *Stamper, logger *zap.Logger) Service {
	return &signingService{
		cfg:     cfg,
		stamper: stamper,
		logger:  logger,
	}
}

func (s *signingService) SignDocument(ctx context.Context, inputPath, originalName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	outputPath := TempFilePath(s.cfg.TempDir, "signed", originalName)
	start := time.Now()

	if err := s.stamper.Stamp(inputPath, outputPath, start); err != nil {
		// The stamper may have left a partial output file behind.
		os.Remove(outputPath)
		return "", err
	}

	s.logger.Info("document signed",
		zap.String("name", originalName),
		zap.Duration("took", time.Since(start)))
	return outputPath, nil
}

// TempFilePath builds a collision-free temp path from a per-request
// nanosecond timestamp, a uuid and the sanitized original name. Two
// concurrent requests with the same original filename cannot collide.
func TempFilePath(dir, prefix, originalName string) string {
	name := fmt.Sprintf("%s_%d_%s_%s",
		prefix, time.Now().UnixNano(), uuid.NewString(), sanitizeName(originalName))
	return filepath.Join(dir, name)
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "document.pdf"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "document.pdf"
	}
	return b.String()
}
