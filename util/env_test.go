package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustGetenv(t *testing.T) {
	t.Setenv("GOKEY_TEST_VAR", "")
	assert.Equal(t, "def", MustGetenv("GOKEY_TEST_VAR", "def"))

	t.Setenv("GOKEY_TEST_VAR", "set")
	assert.Equal(t, "set", MustGetenv("GOKEY_TEST_VAR", "def"))
}

func TestGetenvDuration(t *testing.T) {
	t.Setenv("GOKEY_TEST_TTL", "90m")
	assert.Equal(t, 90*time.Minute, GetenvDuration("GOKEY_TEST_TTL", time.Hour))

	t.Setenv("GOKEY_TEST_TTL", "soon")
	assert.Equal(t, time.Hour, GetenvDuration("GOKEY_TEST_TTL", time.Hour))
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GOKEY_FROM_FILE=file\nGOKEY_PRESET=file\n"), 0o600))

	t.Setenv("GOKEY_FROM_FILE", "")
	os.Unsetenv("GOKEY_FROM_FILE")
	t.Setenv("GOKEY_PRESET", "env")

	require.NoError(t, LoadEnvFile(path, true))
	assert.Equal(t, "file", os.Getenv("GOKEY_FROM_FILE"))
	assert.Equal(t, "env", os.Getenv("GOKEY_PRESET"))
	os.Unsetenv("GOKEY_FROM_FILE")
}

func TestLoadEnvFile_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.env")
	assert.NoError(t, LoadEnvFile(missing, false))
	assert.Error(t, LoadEnvFile(missing, true))
}

func TestGetenvDuration_NonPositive(t *testing.T) {
	for _, v := range []string{"0s", "-1m"} {
		t.Setenv("GOKEY_TEST_TTL", v)
		assert.Equal(t, time.Hour, GetenvDuration("GOKEY_TEST_TTL", time.Hour), v)
	}
}
