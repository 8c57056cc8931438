//go:build darwin

package crypto

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

type darwinKeyring struct{}

func newPlatformKeyring() Keyring {
	return &darwinKeyring{}
}

// GetKey reads the invoice database key from the macOS Keychain
func (k *darwinKeyring) GetKey() (string, error) {
	key, err := keyring.Get(ServiceName, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("database key not found in keychain: %w", err)
		}
		return "", fmt.Errorf("failed to read key from keychain: %w", err)
	}
	if key == "" {
		return "", errors.New("database key is empty")
	}
	return key, nil
}

// SetKey stores the invoice database key in the macOS Keychain
func (k *darwinKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if err := keyring.Set(ServiceName, KeyName, password); err != nil {
		return fmt.Errorf("failed to store key in keychain: %w", err)
	}
	return nil
}

// DeleteKey removes the invoice database key from the macOS Keychain
func (k *darwinKeyring) DeleteKey() error {
	if err := keyring.Delete(ServiceName, KeyName); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("database key not found in keychain: %w", err)
		}
		return fmt.Errorf("failed to delete key from keychain: %w", err)
	}
	return nil
}

// IsAvailable writes and deletes a throwaway entry. Keychain access can be
// denied per-app, so a real write is the only reliable check.
func (k *darwinKeyring) IsAvailable() bool {
	testKey := "__invoicepro_availability_test__"
	if err := keyring.Set(ServiceName, testKey, "test"); err != nil {
		return false
	}
	_ = keyring.Delete(ServiceName, testKey)
	return true
}
