package repository

import (
	"context"
)

// NamespacedRepository prefixes every key with "<namespace>:".
type NamespacedRepository struct {
	inner     KVRepositoryInterface
	namespace string
}

// Namespaced scopes repo to a namespace, so several sessions can share one
// backend without their "cart" keys colliding.
func Namespaced(repo KVRepositoryInterface, namespace string) *NamespacedRepository {
	return &NamespacedRepository{inner: repo, namespace: namespace}
}

// Namespace returns the namespace.
func (r *NamespacedRepository) Namespace() string {
	return r.namespace
}

func (r *NamespacedRepository) key(key string) string {
	return r.namespace + ":" + key
}

// Get returns the value stored under the namespaced key.
func (r *NamespacedRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	return r.inner.Get(ctx, r.key(key))
}

// Set stores value under the namespaced key.
func (r *NamespacedRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return r.inner.Set(ctx, r.key(key), value)
}

// Delete removes the namespaced key.
func (r *NamespacedRepository) Delete(ctx context.Context, key string) error {
	return r.inner.Delete(ctx, r.key(key))
}
