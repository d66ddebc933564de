// Package config registers every setting with viper, reads bedtime.toml
// and binds the BEDTIME_ environment variables.
package config

import (
	"errors"
	"strings"

	"github.com/bedtime-cli/bedtime/constant"
	"github.com/bedtime-cli/bedtime/filesystem"
	"github.com/bedtime-cli/bedtime/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps a config key to its environment variable suffix.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup layers the environment over the config file over the defaults,
// then validates the result. A missing config file is not an error.
func Setup() error {
	viper.SetFs(filesystem.API())
	viper.SetConfigName(constant.Bedtime)
	viper.SetConfigType("toml")
	viper.AddConfigPath(where.Config())

	viper.SetTypeByDefaultValue(true)
	for _, f := range fields {
		viper.SetDefault(f.Key, f.Value)
	}

	viper.SetEnvPrefix(constant.Bedtime)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, k := range EnvExposed {
		viper.MustBindEnv(k)
	}

	var notFound viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return err
	}

	return Validate()
}
