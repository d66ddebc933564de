package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/icon"
	"github.com/bedtime-cli/bedtime/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Validate checks the active configuration values and joins every problem found.
func Validate() error {
	var errs []error

	if v := viper.GetFloat64(key.AudioVolume); v < constant.MinVolume || v > constant.MaxVolume {
		errs = append(errs, fmt.Errorf("%s must be between %.1f and %.1f, got %v", key.AudioVolume, constant.MinVolume, constant.MaxVolume, v))
	}

	if r := viper.GetFloat64(key.AudioRate); r < constant.MinPlaybackRate || r > constant.MaxPlaybackRate {
		errs = append(errs, fmt.Errorf("%s must be between %.1f and %.1f, got %v", key.AudioRate, constant.MinPlaybackRate, constant.MaxPlaybackRate, r))
	}

	if b := viper.GetString(key.AudioBackend); !lo.Contains([]string{constant.BackendNative, constant.BackendMPV}, b) {
		errs = append(errs, fmt.Errorf("%s: unknown backend %q", key.AudioBackend, b))
	}

	if m := viper.GetInt(key.SleepDefaultMinutes); m <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", key.SleepDefaultMinutes))
	}

	switch viper.GetString(key.CatalogSource) {
	case constant.CatalogMock:
	case constant.CatalogRemote:
		endpoint := viper.GetString(key.CatalogEndpoint)
		if endpoint == "" {
			errs = append(errs, fmt.Errorf("%s is required for the remote catalog", key.CatalogEndpoint))
		} else if u, err := url.Parse(endpoint); err != nil || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s: invalid url %q", key.CatalogEndpoint, endpoint))
		}
	default:
		errs = append(errs, fmt.Errorf("%s: unknown source %q", key.CatalogSource, viper.GetString(key.CatalogSource)))
	}

	if lang := viper.GetString(key.CatalogLanguage); !lo.Contains([]string{constant.English, constant.Polish, constant.Russian}, lang) {
		errs = append(errs, fmt.Errorf("%s: unsupported language %q", key.CatalogLanguage, lang))
	}

	if viper.GetInt(key.CatalogRetryAttempts) < 1 {
		errs = append(errs, errors.New(key.CatalogRetryAttempts+" must be at least 1"))
	}

	if v := viper.GetString(key.IconsVariant); !icon.ValidVariant(v) {
		errs = append(errs, fmt.Errorf("%s: unknown variant %q, expected one of %v", key.IconsVariant, v, icon.AvailableVariants()))
	}

	if viper.GetInt(key.CatalogPageSize) < 1 {
		errs = append(errs, errors.New(key.CatalogPageSize+" must be at least 1"))
	}

	return errors.Join(errs...)
}
