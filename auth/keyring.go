// Package auth stores the catalog API key in the system keyring.
package auth

import (
	"errors"
	"os"
	"strings"

	"github.com/bedtime-cli/bedtime/constant"
	"github.com/zalando/go-keyring"
)

const user = "catalog-api-key"

// EnvAPIKey overrides the keyring, useful on headless machines.
const EnvAPIKey = "BEDTIME_API_KEY"

// SetAPIKey persists the catalog API key.
func SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("empty api key")
	}
	return keyring.Set(constant.Bedtime, user, key)
}

// APIKey returns the catalog API key. A missing key is not an error, the
// catalog decides whether it needs one.
func APIKey() (string, error) {
	if key := os.Getenv(EnvAPIKey); key != "" {
		return key, nil
	}

	key, err := keyring.Get(constant.Bedtime, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return key, err
}

// DeleteAPIKey removes the stored key. Deleting a missing key succeeds.
func DeleteAPIKey() error {
	err := keyring.Delete(constant.Bedtime, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
