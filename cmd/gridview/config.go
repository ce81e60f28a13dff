package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/iw2rmb/datagrid/grid"
)

// Config holds gridview settings.
type Config struct {
	Grid GridConfig
	Log  LogConfig
}

// GridConfig maps onto grid.Config.
type GridConfig struct {
	PageSize           int  `mapstructure:"page_size"`
	SerialColumn       bool `mapstructure:"serial_column"`
	CheckboxColumn     bool `mapstructure:"checkbox_column"`
	DisableWindowing   bool `mapstructure:"disable_windowing"`
	TakeAvailableSpace bool `mapstructure:"take_available_space"`
}

// LogConfig enables the grid's debug log. An empty File keeps logging off.
type LogConfig struct {
	File string
}

// LoadConfig reads configuration from file and env. Env var overrides use
// prefix GRIDVIEW_, GRIDVIEW_CONFIG points at an explicit file.
func LoadConfig() (Config, error) {
	v := viper.New()

	v.SetDefault("grid.page_size", grid.DefaultPageSize)
	v.SetDefault("grid.serial_column", true)
	v.SetDefault("grid.checkbox_column", true)
	v.SetDefault("grid.disable_windowing", false)
	v.SetDefault("grid.take_available_space", true)
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("GRIDVIEW_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "gridview"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GRIDVIEW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit file must exist, the default location is optional.
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// apply copies the settings onto cfg.
func (c GridConfig) apply(cfg *grid.Config) {
	cfg.PageSize = c.PageSize
	cfg.SerialColumn = c.SerialColumn
	cfg.CheckboxColumn = c.CheckboxColumn
	cfg.DisableWindowing = c.DisableWindowing
	cfg.TakeAvailableSpace = c.TakeAvailableSpace
}
