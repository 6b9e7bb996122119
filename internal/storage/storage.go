// Package storage holds the string-keyed persistent stores the cart is
// written through to: an in-process map, Redis, and a key namespace
// wrapper that gives each user their own key space.
package storage

import (
	"context"
	"sync"

	inErrors "github.com/Alturino/tgcart/internal/errors"
)

// KeyValue is the persistent store capability the cart needs. Get returns
// errors.ErrNotFound for absent keys.
type KeyValue interface {
	Get(c context.Context, key string) (string, error)
	Set(c context.Context, key string, value string) error
	Delete(c context.Context, key string) error
}

type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", inErrors.ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

type namespaced struct {
	prefix string
	kv     KeyValue
}

// Namespace prefixes every key with prefix and a colon.
func Namespace(kv KeyValue, prefix string) KeyValue {
	return namespaced{prefix: prefix + ":", kv: kv}
}

func (n namespaced) Get(c context.Context, key string) (string, error) {
	return n.kv.Get(c, n.prefix+key)
}

func (n namespaced) Set(c context.Context, key string, value string) error {
	return n.kv.Set(c, n.prefix+key, value)
}

func (n namespaced) Delete(c context.Context, key string) error {
	return n.kv.Delete(c, n.prefix+key)
}
