package license

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tartampluch/showtime/internal/config"
)

// Mode selects how keys are honoured.
type Mode string

const (
	// ModeSingleUse deletes a key the first time it is accepted.
	ModeSingleUse Mode = config.LicenseModeSingleUse
	// ModeDevice keeps the key and remembers the device in an AccessCache.
	ModeDevice Mode = config.LicenseModeDevice
)

// ParseMode validates a mode name. Empty selects ModeSingleUse.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeSingleUse:
		return ModeSingleUse, nil
	case ModeDevice:
		return ModeDevice, nil
	default:
		return "", fmt.Errorf("%s: %q", config.ErrLicenseModeUnknown, s)
	}
}

// Gate decides whether the application may start.
type Gate struct {
	Store  Store
	Access AccessCache
	Mode   Mode
}

// Verify checks key. It returns nil when access is granted, an error
// wrapping ErrDenied when the key is missing or invalid, and one wrapping
// ErrUnavailable when the store cannot be reached.
func (g *Gate) Verify(ctx context.Context, key string) error {
	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompLicense),
		slog.String(config.LogKeyMode, string(g.Mode)),
	)

	if g.Mode == ModeDevice && key == "" && g.Access != nil {
		ok, err := g.Access.Granted()
		if err != nil {
			log.Warn(config.ErrAccessPersist, slog.Any(config.LogKeyError, err))
		}
		if ok {
			log.Info(config.MsgLicenseRemember)
			return nil
		}
	}

	if key == "" {
		log.Warn(config.MsgLicenseDenied, slog.String(config.LogKeyError, config.ErrLicenseKeyMissing))
		return fmt.Errorf("%s: %w", config.ErrLicenseKeyMissing, ErrDenied)
	}
	if err := ValidateKey(key); err != nil {
		log.Warn(config.MsgLicenseDenied, slog.Any(config.LogKeyError, err))
		return fmt.Errorf("%w: %w", ErrDenied, err)
	}
	if g.Store == nil {
		return fmt.Errorf("%s: %w", config.ErrStoreMissing, ErrUnavailable)
	}

	log.Info(config.MsgLicenseCheck)
	rec, found, err := g.Store.Lookup(ctx, key)
	if err != nil {
		log.Error(config.ErrLicenseLookup, slog.Any(config.LogKeyError, err))
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if !found {
		log.Warn(config.MsgLicenseDenied)
		return ErrDenied
	}

	switch g.Mode {
	case ModeDevice:
		if !rec.Active {
			log.Warn(config.MsgLicenseDenied, slog.String(config.LogKeyError, config.ErrLicenseInactive))
			return fmt.Errorf("%s: %w", config.ErrLicenseInactive, ErrDenied)
		}
		if g.Access != nil {
			if err := g.Access.Grant(); err != nil {
				// Access is still granted for this run.
				log.Warn(config.ErrAccessPersist, slog.Any(config.LogKeyError, err))
			}
		}
		log.Info(config.MsgLicenseGranted)
		return nil
	default:
		if err := g.Store.Delete(ctx, key); err != nil {
			log.Error(config.ErrLicenseDelete, slog.Any(config.LogKeyError, err))
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		log.Info(config.MsgLicenseConsumed)
		return nil
	}
}

// Denied reports whether err means the key itself was rejected (as opposed
// to the server being unreachable).
func Denied(err error) bool {
	return errors.Is(err, ErrDenied)
}
