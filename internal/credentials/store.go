// internal/credentials/store.go

// Package credentials proxies passwords to the operating system keyring.
// Nothing is cached or encrypted locally.
package credentials

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	apperrors "acsLauncher/internal/error"
)

// ServiceName identifies the launcher's entries in the keyring.
const ServiceName = "rm-acs-launcher"

// Store is the credential collaborator used by the launch orchestrator.
type Store interface {
	// Lookup returns the stored password. A missing entry is not an error.
	Lookup(system, user string) (password string, found bool, err error)
	Store(system, user, password string) error
	// Clear removes the entry and reports whether one existed.
	Clear(system, user string) (bool, error)
	Exists(system, user string) (bool, error)
}

// KeyringStore keeps one keyring entry per (system, user) pair.
type KeyringStore struct {
	Service string
}

// NewKeyringStore returns a store using the launcher's service name.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{Service: ServiceName}
}

// Account returns the keyring account name for a pair.
func Account(system, user string) string {
	return user + "@" + system
}

func (k *KeyringStore) service() string {
	if k.Service == "" {
		return ServiceName
	}
	return k.Service
}

func (k *KeyringStore) Lookup(system, user string) (string, bool, error) {
	password, err := keyring.Get(k.service(), Account(system, user))
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.New(apperrors.CredentialError,
			fmt.Sprintf("cannot read password for %s", Account(system, user)), err)
	}
	return password, true, nil
}

func (k *KeyringStore) Store(system, user, password string) error {
	if err := keyring.Set(k.service(), Account(system, user), password); err != nil {
		return apperrors.New(apperrors.CredentialError,
			fmt.Sprintf("cannot store password for %s", Account(system, user)), err)
	}
	return nil
}

func (k *KeyringStore) Clear(system, user string) (bool, error) {
	err := keyring.Delete(k.service(), Account(system, user))
	if errors.Is(err, keyring.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.New(apperrors.CredentialError,
			fmt.Sprintf("cannot remove password for %s", Account(system, user)), err)
	}
	return true, nil
}

func (k *KeyringStore) Exists(system, user string) (bool, error) {
	_, found, err := k.Lookup(system, user)
	return found, err
}
