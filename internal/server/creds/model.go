package creds

import "time"

// User is a registered identity. PasswordHash is opaque output of the
// password hasher; the plaintext never reaches this package. Records are
// immutable once created.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
