package repos

import (
	"context"
	"strings"

	"audiotech/internal/domain"
)

const KeyUsersDB = "audiotech_users_db"

// UserRepo holds the registered-user credential list.
type UserRepo struct{ store Store }

func NewUserRepo(s Store) *UserRepo { return &UserRepo{store: s} }

func (r *UserRepo) All(ctx context.Context) ([]domain.Credential, error) {
	var out []domain.Credential
	if _, err := GetJSON(ctx, r.store, KeyUsersDB, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepo) SaveAll(ctx context.Context, creds []domain.Credential) error {
	if creds == nil {
		creds = []domain.Credential{}
	}
	return PutJSON(ctx, r.store, KeyUsersDB, creds)
}

func IndexByEmail(creds []domain.Credential, email string) int {
	want := NormalizeEmail(email)
	for i, c := range creds {
		if NormalizeEmail(c.Email) == want {
			return i
		}
	}
	return -1
}

func NormalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
