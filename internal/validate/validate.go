// Package validate decides whether a selected file may enter the signing
// flow. Cheap declared-metadata checks run before the structural parse so
// obviously-invalid files never pay the parse cost.
package validate

import (
	"bytes"

	"github.com/inkstamp/sign-portal/internal/pdfinspect"
)

// MediaTypePDF is the only accepted declared media type.
const MediaTypePDF = "application/pdf"

// Reason classifies a rejection.
type Reason string

const (
	ReasonNotPDF     Reason = "not-a-pdf"
	ReasonTooLarge   Reason = "too-large"
	ReasonEncrypted  Reason = "encrypted-or-password-protected"
	ReasonUnreadable Reason = "unreadable"
)

// Outcome is the result of a validation attempt.
type Outcome struct {
	Accepted bool
	Reason   Reason
	Detail   string // underlying parser message for unreadable rejections
}

// Accepted builds a passing outcome.
func Accepted() Outcome {
	return Outcome{Accepted: true}
}

// Rejected builds a failing outcome.
func Rejected(reason Reason, detail string) Outcome {
	return Outcome{Reason: reason, Detail: detail}
}

// Config holds the validation limits. Injected at construction so tests can
// override them.
type Config struct {
	MaxFileSize       int64
	AcceptedMediaType string
}

// DefaultConfig matches the portal's client-facing constants.
func DefaultConfig() Config {
	return Config{
		MaxFileSize:       10 << 20,
		AcceptedMediaType: MediaTypePDF,
	}
}

// Validator checks selected files against the configured limits.
type Validator struct {
	cfg Config
}

// New creates a Validator. Zero config fields fall back to defaults.
func New(cfg Config) *Validator {
	def := DefaultConfig()
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = def.MaxFileSize
	}
	if cfg.AcceptedMediaType == "" {
		cfg.AcceptedMediaType = def.AcceptedMediaType
	}
	return &Validator{cfg: cfg}
}

// Validate decides accept/reject for a file with the given declared media
// type and size. It is pure apart from reading data and is safe to call
// repeatedly on the same file.
func (v *Validator) Validate(mediaType string, size int64, data []byte) Outcome {
	if mediaType != v.cfg.AcceptedMediaType {
		return Rejected(ReasonNotPDF, "")
	}
	if size > v.cfg.MaxFileSize {
		return Rejected(ReasonTooLarge, "")
	}

	info, err := pdfinspect.Inspect(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Rejected(ReasonUnreadable, err.Error())
	}
	if info.Encrypted {
		return Rejected(ReasonEncrypted, "")
	}
	return Accepted()
}
