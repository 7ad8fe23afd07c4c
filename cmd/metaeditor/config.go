package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix       = "METAEDITOR"
	localConfigFile = ".metaeditor.yaml"
)

// loadSettings layers the command flags over METAEDITOR_* environment
// variables and an optional YAML config file. Config keys match the flag
// names, e.g. "log-level" or "metadata".
//
// Config lookup order:
//  1. --config
//  2. .metaeditor.yaml (current directory)
//  3. ~/.config/metaeditor/config.yaml
func loadSettings(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	switch {
	case cfgFile != "":
		v.SetConfigFile(cfgFile)
	case fileExists(localConfigFile):
		v.SetConfigFile(localConfigFile)
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return v, nil
		}
		v.AddConfigPath(filepath.Join(home, ".config", "metaeditor"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
