package common

import (
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

var HashSalt = []byte("agora")

func MakeHash(b []byte) []byte {
	return argon2.Key(b, HashSalt, 3, 32*1024, 4, 32)
}

// MakeFingerprint returns the hex-encoded hash of a document body. The
// governance core stores only this fingerprint, never the document itself.
func MakeFingerprint(b []byte) string {
	return hex.EncodeToString(MakeHash(b))
}
