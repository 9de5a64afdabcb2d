// Package passhash implements one-way salted password hashing with argon2id.
//
// Digests are self-describing PHC-style strings
// ($argon2id$v=19$m=...,t=...,p=...$salt$hash), so every parameter needed for
// verification travels inside the digest and stored credentials survive work
// factor changes.
package passhash

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/authkeep/authkeep/internal/common"
)

// Params controls the cost of the argon2id transform. Higher values make
// offline guessing slower; verification latency grows with them, which is the
// point, not a problem.
type Params struct {
	TimeCost    uint32
	MemoryKiB   uint32
	Parallelism uint8
	KeyLength   uint32
}

const saltLength = 16

type Hasher struct {
	params Params
}

func New(params Params) *Hasher {
	return &Hasher{params: params}
}

// Hash derives a digest from plaintext with a fresh random salt. Two calls
// with the same plaintext produce different digests; both verify.
func (h *Hasher) Hash(plaintext []byte) (string, error) {
	if h.params.TimeCost == 0 || h.params.MemoryKiB == 0 || h.params.Parallelism == 0 || h.params.KeyLength == 0 {
		return "", fmt.Errorf("passhash: invalid params: %+v", h.params)
	}
	salt := common.RandBytes(saltLength)
	key := argon2.IDKey(plaintext, salt, h.params.TimeCost, h.params.MemoryKiB, h.params.Parallelism, h.params.KeyLength)

	digest := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.params.MemoryKiB, h.params.TimeCost, h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
	return digest, nil
}

// Verify recomputes the transform with the salt and parameters embedded in
// the digest and compares in constant time. A digest that cannot be decoded
// (corrupted storage) verifies false rather than failing loudly.
func (h *Hasher) Verify(plaintext []byte, digest string) bool {
	salt, key, params, err := decodeDigest(digest)
	if err != nil {
		return false
	}
	candidate := argon2.IDKey(plaintext, salt, params.TimeCost, params.MemoryKiB, params.Parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(candidate, key) == 1
}

func decodeDigest(digest string) (salt, key []byte, params Params, err error) {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		err = fmt.Errorf("passhash: not an argon2id digest")
		return
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return
	}
	if version != argon2.Version {
		err = fmt.Errorf("passhash: unsupported argon2 version %d", version)
		return
	}

	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.MemoryKiB, &params.TimeCost, &params.Parallelism); err != nil {
		return
	}
	if params.TimeCost == 0 || params.MemoryKiB == 0 || params.Parallelism == 0 {
		err = fmt.Errorf("passhash: zero-cost digest parameters")
		return
	}

	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return
	}
	if key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return
	}
	if len(key) == 0 {
		err = fmt.Errorf("passhash: empty key")
	}
	return
}
