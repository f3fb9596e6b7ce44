// Package secrets contains the secret-storage services a keychain talks to.
//
// Every Service addresses entries by (namespace, key) and reports the two
// conditions callers need to branch on as ErrItemNotFound and ErrDuplicateItem.
// Any other error is a generic failure.
package secrets

import (
	"context"
	"errors"

	"github.com/alapierre/itrust-keychain/pkg/logging"
)

var logger = logging.Component("pkg/secrets")

var (
	ErrItemNotFound  = errors.New("secret not found")
	ErrDuplicateItem = errors.New("secret already exists")
)

type Service interface {
	// Add creates a new entry. It fails with ErrDuplicateItem if one exists.
	Add(ctx context.Context, namespace, key string, data []byte) error
	// Modify replaces the data of an existing entry. It never creates one.
	Modify(ctx context.Context, namespace, key string, data []byte) error
	// FindOne returns the data of the single entry matching namespace and key.
	FindOne(ctx context.Context, namespace, key string) ([]byte, error)
	Remove(ctx context.Context, namespace, key string) error
}
