package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

func MustGetenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetenvDuration parses key as a positive time.Duration, falling back to def
// when the variable is unset, malformed, zero or negative.
func GetenvDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(MustGetenv(key, ""))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// LoadEnvFile loads variables from path without overriding ones already set.
// A missing file is ignored unless required.
func LoadEnvFile(path string, required bool) error {
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !required && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}
