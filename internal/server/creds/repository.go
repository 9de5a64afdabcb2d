// Package creds holds the credential store: registered identities keyed by
// username.
package creds

import "context"

// Repository is the credential store contract.
//
// Create must behave as an atomic check-and-insert: of two concurrent calls
// for the same username exactly one succeeds and the other sees
// common.ErrDuplicateUsername. Username comparison is exact (case-sensitive).
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetUserByLogin(ctx context.Context, login string) (*User, error)
}
