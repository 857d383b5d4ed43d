package license

import (
	"errors"
	"fmt"

	"github.com/tartampluch/showtime/internal/config"
	"github.com/zalando/go-keyring"
)

// AccessCache remembers that this device has already presented a valid key.
type AccessCache interface {
	Granted() (bool, error)
	Grant() error
}

// KeyringAccess stores the access flag in the OS secret store.
type KeyringAccess struct {
	Service string
	User    string
}

// NewKeyringAccess returns the cache used by the application.
func NewKeyringAccess() *KeyringAccess {
	return &KeyringAccess{Service: config.KeyringService, User: config.KeyringAccessUser}
}

// Granted reports whether the flag is set. A missing entry is not an error.
func (k *KeyringAccess) Granted() (bool, error) {
	v, err := keyring.Get(k.Service, k.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v == config.KeyringAccessFlag, nil
}

// Grant persists the flag.
func (k *KeyringAccess) Grant() error {
	if err := keyring.Set(k.Service, k.User, config.KeyringAccessFlag); err != nil {
		return fmt.Errorf("%s: %w", config.ErrAccessPersist, err)
	}
	return nil
}
