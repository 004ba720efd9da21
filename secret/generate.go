package secret

import (
	"crypto/rand"
	"math/big"
)

const (
	// Alphabet is the character set of generated keys.
	Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*(-_=+)"
	// DefaultLength is the length of generated keys.
	DefaultLength = 50
)

// GenerateSecretKey returns a fresh DefaultLength key drawn from Alphabet.
func GenerateSecretKey() string {
	return RandomString(DefaultLength, Alphabet)
}

// RandomString draws length characters uniformly from alphabet using the OS
// random source. It panics if that source fails.
func RandomString(length int, alphabet string) string {
	if length <= 0 || alphabet == "" {
		return ""
	}
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("random is broken: " + err.Error())
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b)
}
