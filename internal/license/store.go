// Package license verifies the single-use keys that unlock the application.
package license

import (
	"context"
	"errors"
	"strings"

	"github.com/tartampluch/showtime/internal/config"
)

// Sentinel errors returned by the gate and the stores.
var (
	ErrDenied      = errors.New(config.ErrLicenseDenied)
	ErrUnavailable = errors.New(config.ErrLicenseUnavailable)
	ErrInvalidKey  = errors.New(config.ErrLicenseKeyInvalid)
)

// Record is the value stored under a license key.
type Record struct {
	Active bool `json:"isActive"`
}

// Store is a remote key-value lookup for license keys.
// Lookup reports found=false when the key does not exist.
type Store interface {
	Lookup(ctx context.Context, key string) (rec Record, found bool, err error)
	Delete(ctx context.Context, key string) error
}

// ValidateKey rejects keys that are empty or that cannot be used as a single
// path segment of the key-value store.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if strings.ContainsAny(key, config.LicenseKeyForbidden) {
		return ErrInvalidKey
	}
	for _, r := range key {
		if r < 0x20 || r == 0x7f {
			return ErrInvalidKey
		}
	}
	return nil
}
