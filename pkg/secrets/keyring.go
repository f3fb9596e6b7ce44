package secrets

import (
	"context"
	"errors"

	"github.com/zalando/go-keyring"
)

var _ Service = (*KeyringSecretStore)(nil)

// KeyringSecretStore stores entries in the OS keyring: Keychain on macOS,
// Secret Service over D-Bus on Linux, Credential Manager on Windows. The
// namespace maps to the keyring service and the key to the account.
//
// go-keyring only exposes set-or-replace, so Add and Modify check for the
// entry first. The check and the write are two separate keyring calls.
type KeyringSecretStore struct{}

func (k *KeyringSecretStore) Add(_ context.Context, namespace, key string, data []byte) error {
	_, err := keyring.Get(namespace, key)
	switch {
	case err == nil:
		return ErrDuplicateItem
	case !errors.Is(err, keyring.ErrNotFound):
		return err
	}
	logger.Debugf("Adding keyring entry %s/%s", namespace, key)
	return keyring.Set(namespace, key, string(data))
}

func (k *KeyringSecretStore) Modify(_ context.Context, namespace, key string, data []byte) error {
	if _, err := keyring.Get(namespace, key); err != nil {
		return translateKeyringError(err)
	}
	logger.Debugf("Replacing keyring entry %s/%s", namespace, key)
	return keyring.Set(namespace, key, string(data))
}

func (k *KeyringSecretStore) FindOne(_ context.Context, namespace, key string) ([]byte, error) {
	val, err := keyring.Get(namespace, key)
	if err != nil {
		return nil, translateKeyringError(err)
	}
	return []byte(val), nil
}

func (k *KeyringSecretStore) Remove(_ context.Context, namespace, key string) error {
	logger.Debugf("Deleting keyring entry %s/%s", namespace, key)
	return translateKeyringError(keyring.Delete(namespace, key))
}

func translateKeyringError(err error) error {
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrItemNotFound
	}
	return err
}
