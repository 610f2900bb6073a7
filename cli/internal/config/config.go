// Package config resolves CLI settings from flags, config files and the
// environment.
package config

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem all commands read and write through. Tests swap
// it for an in-memory one.
var AppFs = afero.NewOsFs()

// Config holds the resolved settings.
type Config struct {
	// Provider is the target dialect.
	Provider string
	// PreviousPath and NextPath locate the snapshot JSON files.
	PreviousPath string
	NextPath     string
	// OutputPath receives the rendered migration script.
	OutputPath string
	// EngineVersion is the optional target server version.
	EngineVersion string
	// Force renders statements despite unexecutable diagnostics.
	Force bool
}

// Load reads the config file and .env files, then materializes the settings.
// Flags bound into viper by the commands take precedence.
func Load() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName(".sqlmorph")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "sqlmorph"))

	viper.SetEnvPrefix("SQLMORPH")
	viper.AutomaticEnv()

	viper.SetDefault("provider", "postgresql")
	viper.SetDefault("previous", "previous.json")
	viper.SetDefault("next", "next.json")

	// The config file is optional.
	_ = viper.ReadInConfig()

	// .env.local wins over .env.
	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	return &Config{
		Provider:      viper.GetString("provider"),
		PreviousPath:  viper.GetString("previous"),
		NextPath:      viper.GetString("next"),
		OutputPath:    viper.GetString("output"),
		EngineVersion: viper.GetString("engine_version"),
		Force:         viper.GetBool("force"),
	}, nil
}
