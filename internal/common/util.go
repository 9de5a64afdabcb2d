package common

import "crypto/rand"

// RandBytes returns size cryptographically random bytes. A failing system
// random source is not recoverable, so it panics instead of returning an error.
func RandBytes(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeBytes overwrites the contents of the provided byte slice with zeros.
// Used to remove plaintext passwords from memory after use.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
