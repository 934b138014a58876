// Package cryptox implements password hashing for stored credentials.
//
// New digests use argon2id and are encoded as PHC strings:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
//
// where salt and key are unpadded standard base64. Digests produced by
// bcrypt ($2a$, $2b$, $2y$) are still accepted by VerifyPassword so records
// imported from older deployments keep working.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophfav/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Argon2Params controls the cost of HashPassword.
type Argon2Params struct {
	Memory  uint32 // KiB
	Time    uint32
	Threads uint8
	SaltLen int
	KeyLen  uint32
}

// DefaultArgon2Params matches the key derivation settings used elsewhere in
// the project: one pass over 64 MiB with 4 lanes.
var DefaultArgon2Params = Argon2Params{
	Memory:  64 * 1024,
	Time:    1,
	Threads: 4,
	SaltLen: 16,
	KeyLen:  32,
}

// Hasher hashes and verifies passwords. It holds no mutable state and is safe
// for concurrent use.
type Hasher struct {
	params Argon2Params
}

func NewHasher(p Argon2Params) *Hasher {
	return &Hasher{params: p}
}

// HashPassword returns a salted argon2id digest of password.
func (h *Hasher) HashPassword(password string) (string, error) {
	if h.params.SaltLen <= 0 || h.params.KeyLen == 0 || h.params.Threads == 0 {
		return "", fmt.Errorf("invalid argon2 parameters")
	}

	salt := common.GenerateRandByteArray(h.params.SaltLen)
	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.params.Memory, h.params.Time, h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword reports whether password matches digest. A malformed digest
// yields false.
func (h *Hasher) VerifyPassword(password, digest string) bool {
	if isBcrypt(digest) {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	}

	p, salt, key, ok := decodeArgon2id(digest)
	if !ok {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

func isBcrypt(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") || strings.HasPrefix(digest, "$2b$") || strings.HasPrefix(digest, "$2y$")
}

// Stored parameters above these are treated as a corrupt digest rather than
// verified, since argon2 allocates Memory KiB up front.
const (
	maxArgon2Memory = 1 << 21 // 2 GiB
	maxArgon2Time   = 16
)

// decodeArgon2id splits a PHC string. The leading "$" makes parts[0] empty.
func decodeArgon2id(digest string) (Argon2Params, []byte, []byte, bool) {
	var p Argon2Params

	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, false
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, false
	}
	if p.Memory == 0 || p.Time == 0 || p.Threads == 0 {
		return p, nil, nil, false
	}
	if p.Memory > maxArgon2Memory || p.Time > maxArgon2Time {
		return p, nil, nil, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, false
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, false
	}

	return p, salt, key, true
}
