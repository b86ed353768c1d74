package repos

import "context"

// Prefixed scopes a shared Store to the keys starting with prefix.
type Prefixed struct {
	Store  Store
	Prefix string
}

func NewPrefixed(s Store, prefix string) Prefixed { return Prefixed{Store: s, Prefix: prefix} }

func (p Prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.Store.Get(ctx, p.Prefix+key)
}

func (p Prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.Store.Set(ctx, p.Prefix+key, value)
}

func (p Prefixed) Delete(ctx context.Context, key string) error {
	return p.Store.Delete(ctx, p.Prefix+key)
}
