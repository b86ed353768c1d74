package repos

import (
	"context"

	"audiotech/internal/domain"
)

const (
	KeyUserRemembered = "audiotech_user"
	KeyUserSession    = "audiotech_user_session"
)

// SessionRepo holds the logged-in user record of one storage scope.
type SessionRepo struct {
	store Store
	key   string
}

// NewRememberedSessionRepo binds to the persistent scope.
func NewRememberedSessionRepo(s Store) *SessionRepo {
	return &SessionRepo{store: s, key: KeyUserRemembered}
}

// NewSessionRepo binds to the per-session scope.
func NewSessionRepo(s Store) *SessionRepo {
	return &SessionRepo{store: s, key: KeyUserSession}
}

// User returns the stored record, or nil when the scope holds none.
func (r *SessionRepo) User(ctx context.Context) (*domain.User, error) {
	var u domain.User
	ok, err := GetJSON(ctx, r.store, r.key, &u)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

func (r *SessionRepo) Put(ctx context.Context, u domain.User) error {
	return PutJSON(ctx, r.store, r.key, u)
}

func (r *SessionRepo) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, r.key)
}
