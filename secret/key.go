// Package secret resolves the process secret key used to sign sessions and
// tokens.
//
// The key comes from the environment when set. Otherwise a random key is
// generated and held for the lifetime of the process only, so anything signed
// with it stops verifying after a restart.
package secret

import (
	"fmt"
	"os"
	"sync"

	"github.com/extremtechniker/gokey/logger"
)

type Source string

const (
	SourceEnv       Source = "env"
	SourceGenerated Source = "generated"
)

const (
	EnvSecretKey = "SECRET_KEY"
	// EnvSecretKeyLegacy is the opaque variable name older deployments set.
	EnvSecretKeyLegacy = "d3d411f23ba7be8d9700fb20072bac6c"
)

// DefaultEnvNames lists the variables FromEnv checks, in order.
var DefaultEnvNames = []string{EnvSecretKey, EnvSecretKeyLegacy}

type Key struct {
	Value   string
	Source  Source
	EnvName string
}

// String describes the key without revealing it.
func (k Key) String() string {
	if k.Source == SourceEnv {
		return fmt.Sprintf("secret key from $%s (%s)", k.EnvName, k.Fingerprint())
	}
	return fmt.Sprintf("generated secret key (%s)", k.Fingerprint())
}

// LookupFunc has the shape of os.LookupEnv.
type LookupFunc func(name string) (string, bool)

// Resolve returns the value of the first name that lookup reports as set and
// non-empty, unmodified. With no such name it generates a new key.
func Resolve(lookup LookupFunc, names ...string) Key {
	for _, name := range names {
		if v, ok := lookup(name); ok && v != "" {
			return Key{Value: v, Source: SourceEnv, EnvName: name}
		}
	}
	return Key{Value: GenerateSecretKey(), Source: SourceGenerated}
}

func FromEnv() Key {
	return Resolve(os.LookupEnv, DefaultEnvNames...)
}

var process = sync.OnceValue(func() Key {
	k := FromEnv()
	if k.Source == SourceGenerated {
		logger.Logger.Warnf("%s is not set, using a random key for this process; sessions and tokens will not survive a restart", EnvSecretKey)
	} else {
		logger.Logger.Debugf("using %s", k)
	}
	return k
})

// Process returns the key for this process. The environment is read on the
// first call only.
func Process() Key {
	return process()
}
