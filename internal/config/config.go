// Package config holds the configuration of the namelookup command.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// EnvPrefix is the prefix of environment variables overriding configuration values.
// NAMELOOKUP_LOG_LEVEL sets log.level.
const EnvPrefix = "NAMELOOKUP_"

// Draw formats.
const (
	DrawText = "text"
	DrawDot  = "dot"
)

type LoggingConfig struct {
	Level string `koanf:"level"`
}

type DrawConfig struct {
	Format string `koanf:"format"`
}

// Config is the configuration of namelookup.
type Config struct {
	Data string        `koanf:"data"`
	Log  LoggingConfig `koanf:"log"`
	Draw DrawConfig    `koanf:"draw"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Data: "names.txt",
		Log:  LoggingConfig{Level: "warn"},
		Draw: DrawConfig{Format: DrawText},
	}
}

// Load merges, in this order, the defaults, the YAML file at configFile (if
// configFile is not empty) and environment variables prefixed with EnvPrefix.
func Load(configFile string) (Config, error) {
	parser := koanf.New(".")
	if err := parser.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, err
	}
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return Config{}, errors.Wrap(err, "reading config file")
		}
		if err = parser.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
			return Config{}, errors.Wrapf(err, "failed to read yaml config from %s", configFile)
		}
	}
	err := parser.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
			return strings.ReplaceAll(k, "_", "."), v
		},
	}), nil)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to parse environment variables")
	}
	var conf Config
	if err = parser.UnmarshalWithConf("", &conf, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, err
	}
	return conf, conf.Validate()
}

// Validate checks configuration values for consistency.
func (conf Config) Validate() error {
	switch conf.Draw.Format {
	case DrawText, DrawDot:
	default:
		return errors.Errorf("unknown draw format %q", conf.Draw.Format)
	}
	return nil
}
