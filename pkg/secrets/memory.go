package secrets

import (
	"context"
	"sync"
)

var _ Service = (*InMemorySecretStore)(nil)

// InMemorySecretStore keeps entries in process memory. Its data does not
// survive the process; it backs tests and embedders without an OS keychain.
type InMemorySecretStore struct {
	mu      sync.RWMutex
	secrets map[string][]byte
}

func NewInMemorySecretStore() *InMemorySecretStore {
	return &InMemorySecretStore{
		secrets: make(map[string][]byte),
	}
}

func entryID(namespace, key string) string {
	return namespace + ":" + key
}

func (i *InMemorySecretStore) Add(_ context.Context, namespace, key string, data []byte) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	id := entryID(namespace, key)
	if _, ok := i.secrets[id]; ok {
		return ErrDuplicateItem
	}
	i.secrets[id] = clone(data)
	return nil
}

func (i *InMemorySecretStore) Modify(_ context.Context, namespace, key string, data []byte) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	id := entryID(namespace, key)
	if _, ok := i.secrets[id]; !ok {
		return ErrItemNotFound
	}
	i.secrets[id] = clone(data)
	return nil
}

func (i *InMemorySecretStore) FindOne(_ context.Context, namespace, key string) ([]byte, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	val, ok := i.secrets[entryID(namespace, key)]
	if !ok {
		return nil, ErrItemNotFound
	}
	return clone(val), nil
}

func (i *InMemorySecretStore) Remove(_ context.Context, namespace, key string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	id := entryID(namespace, key)
	if _, ok := i.secrets[id]; !ok {
		return ErrItemNotFound
	}
	delete(i.secrets, id)
	return nil
}

// Len reports the number of stored entries across all namespaces.
func (i *InMemorySecretStore) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.secrets)
}

func clone(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
