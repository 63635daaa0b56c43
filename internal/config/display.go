package config

import (
	"fmt"

	"lingo/internal/domain"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes display option overrides, e.g. LINGO_NATIVE_TIMEOUT
const EnvPrefix = "LINGO"

// LoadDisplay reads display options from an optional config file and LINGO_* environment variables.
// Keys missing from both keep their defaults.
func LoadDisplay(v *viper.Viper, path string) (domain.DisplayConfig, error) {
	defaults := domain.DefaultDisplayConfig()

	v.SetDefault("native_timeout", defaults.NativeTimeout)
	v.SetDefault("foreign_timeout", defaults.ForeignTimeout)
	v.SetDefault("show_time_left", defaults.ShowTimeLeft)
	v.SetDefault("revert", defaults.Revert)
	v.SetDefault("color", defaults.Color)
	v.SetDefault("width", defaults.Width)
	v.SetDefault("provider", defaults.Provider)
	v.SetDefault("update_interval", defaults.UpdateInterval)
	v.SetDefault("initial_word", string(defaults.InitialWord))
	v.SetDefault("reveal_mode", string(defaults.RevealMode))

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return domain.DisplayConfig{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := domain.DisplayConfig{
		NativeTimeout:  v.GetInt("native_timeout"),
		ForeignTimeout: v.GetInt("foreign_timeout"),
		ShowTimeLeft:   v.GetBool("show_time_left"),
		Revert:         v.GetBool("revert"),
		Color:          v.GetBool("color"),
		Width:          v.GetString("width"),
		Provider:       v.GetString("provider"),
		UpdateInterval: v.GetInt("update_interval"),
		InitialWord:    domain.Side(v.GetString("initial_word")),
		RevealMode:     domain.RevealMode(v.GetString("reveal_mode")),
	}

	if err := cfg.Validate(); err != nil {
		return domain.DisplayConfig{}, err
	}
	return cfg, nil
}
