// Package keychain stores string values under string keys in a secret-storage
// service, scoped to a fixed namespace.
//
// A Keychain translates Save, Update, Retrieve and Delete into single requests
// against a secrets.Service and reports failures as *Error values of one of
// five kinds. It never retries and never recovers failures itself.
package keychain

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/alapierre/itrust-keychain/pkg/logging"
	"github.com/alapierre/itrust-keychain/pkg/secrets"
)

var logger = logging.Component("pkg/keychain")

// Keychain is safe for concurrent use. Individual operations are atomic only
// as far as the underlying service makes single requests atomic.
type Keychain struct {
	namespace string
	service   secrets.Service
}

// New returns a Keychain bound to namespace. Use ResolveNamespace to derive
// the namespace from configuration.
func New(namespace string, service secrets.Service) *Keychain {
	return &Keychain{
		namespace: namespace,
		service:   service,
	}
}

func (k *Keychain) Namespace() string {
	return k.namespace
}

// Save stores value under key, creating the entry when the key is unoccupied
// and updating it otherwise. A key is unoccupied when Retrieve reports that
// the entry does not exist or returns an empty string. Any other Retrieve
// failure, including stored data that does not decode, is returned as is.
//
// Save reads and then writes in two requests. A concurrent writer between the
// two can make the create fail with SaveError or have its own update lost.
func (k *Keychain) Save(ctx context.Context, value, key string) error {
	current, err := k.Retrieve(ctx, key)
	switch {
	case err == nil && current != "":
		logger.Debugf("Key %s is occupied, updating", key)
		return k.Update(ctx, value, key)
	case err != nil && !errors.Is(err, secrets.ErrItemNotFound):
		return err
	}

	data, err := encode(value, key)
	if err != nil {
		return err
	}

	logger.Debugf("Creating entry for key %s", key)
	if err := k.service.Add(ctx, k.namespace, key, data); err != nil {
		return newError(SaveError, key, err)
	}
	return nil
}

// Update replaces the value of an existing entry. It fails with UpdateError
// when the entry does not exist.
func (k *Keychain) Update(ctx context.Context, value, key string) error {
	data, err := encode(value, key)
	if err != nil {
		return err
	}

	if err := k.service.Modify(ctx, k.namespace, key, data); err != nil {
		return newError(UpdateError, key, err)
	}
	return nil
}

// Retrieve returns the value stored under key. A missing entry and a service
// failure both yield RetrieveError; errors.Is(err, secrets.ErrItemNotFound)
// tells them apart.
func (k *Keychain) Retrieve(ctx context.Context, key string) (string, error) {
	data, err := k.service.FindOne(ctx, k.namespace, key)
	if err != nil {
		return "", newError(RetrieveError, key, err)
	}
	if data == nil {
		return "", newError(RetrieveError, key, errNoData)
	}
	if !utf8.Valid(data) {
		return "", newError(RetrieveError, key, errUndecodable)
	}
	return string(data), nil
}

// Delete removes the entry under key. Deleting a missing entry fails with
// DeleteError.
func (k *Keychain) Delete(ctx context.Context, key string) error {
	if err := k.service.Remove(ctx, k.namespace, key); err != nil {
		return newError(DeleteError, key, err)
	}
	return nil
}

var (
	errNoData      = errors.New("service returned no data")
	errUndecodable = errors.New("stored data is not valid UTF-8")
	errInvalidText = errors.New("value is not valid UTF-8")
)

func encode(value, key string) ([]byte, error) {
	if !utf8.ValidString(value) {
		return nil, newError(EncodingError, key, errInvalidText)
	}
	return []byte(value), nil
}
