package secret

import (
	"crypto/sha256"
	"encoding/hex"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Derive expands the key into n bytes bound to purpose. Distinct purposes
// yield unrelated subkeys.
func (k Key) Derive(purpose string, n int) []byte {
	r := hkdf.New(sha256.New, []byte(k.Value), nil, []byte("gokey/"+purpose))
	out := make([]byte, n)
	if _, err := io.ReadFull(r, out); err != nil {
		panic("hkdf: " + err.Error())
	}
	return out
}

// Fingerprint is a short public identifier for the key.
func (k Key) Fingerprint() string {
	sum := sha256.Sum256(k.Derive("fingerprint", sha256.Size))
	return hex.EncodeToString(sum[:])[:12]
}
