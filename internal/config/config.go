// Package config loads firmdesk settings from firmdesk.yaml, FIRMDESK_*
// environment variables and built-in defaults, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/alexanderramin/firmdesk/internal/filter"
	"github.com/alexanderramin/firmdesk/internal/paging"
	"github.com/alexanderramin/firmdesk/internal/worker"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	envPrefix  = "FIRMDESK"
	configName = "firmdesk"
)

// Config is the resolved application configuration.
type Config struct {
	DBPath       string
	Batch        int
	Step         int
	OptionSample int
	RowHeight    int
	WorkerBuffer int
	LogLevel     string
	// LogFile is where logs go. Empty discards them; the TUI owns the terminal.
	LogFile string
	Catalog domain.Catalog
	// Source is the config file that was read, empty when none was found.
	Source string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		DBPath:       defaultDBPath(),
		Batch:        paging.DefaultBatch,
		Step:         paging.DefaultStep,
		OptionSample: filter.DefaultOptionSample,
		RowHeight:    1,
		WorkerBuffer: worker.DefaultBuffer,
		LogLevel:     "info",
		Catalog:      domain.DefaultCatalog(),
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".firmdesk", "firmdesk.db")
	}
	return filepath.Join(home, ".firmdesk", "firmdesk.db")
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("db.path", d.DBPath)
	v.SetDefault("paging.batch", d.Batch)
	v.SetDefault("paging.step", d.Step)
	v.SetDefault("options.sample", d.OptionSample)
	v.SetDefault("list.row_height", d.RowHeight)
	v.SetDefault("worker.buffer", d.WorkerBuffer)
	v.SetDefault("log.level", d.LogLevel)
	v.SetDefault("log.file", d.LogFile)
	v.SetDefault("catalog.services", d.Catalog.Services)
	v.SetDefault("catalog.partners", d.Catalog.Partners)
	v.SetDefault("catalog.statuses", d.Catalog.Statuses)
}

// Load resolves configuration. An explicit file must exist; otherwise
// firmdesk.yaml is looked up in the working directory and ~/.firmdesk and
// may be absent.
func Load(file string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// FIRMDESK_DB is the short form kept for scripts. Under AutomaticEnv it
	// shadows the whole db.* subtree, so it is applied as an override.
	if path, ok := os.LookupEnv(envPrefix + "_DB"); ok && path != "" {
		if long, ok := os.LookupEnv(envPrefix + "_DB_PATH"); ok && long != "" {
			path = long
		}
		v.Set("db.path", path)
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".firmdesk"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := Config{
		DBPath:       v.GetString("db.path"),
		Batch:        v.GetInt("paging.batch"),
		Step:         v.GetInt("paging.step"),
		OptionSample: v.GetInt("options.sample"),
		RowHeight:    v.GetInt("list.row_height"),
		WorkerBuffer: v.GetInt("worker.buffer"),
		LogLevel:     v.GetString("log.level"),
		LogFile:      v.GetString("log.file"),
		Catalog: domain.Catalog{
			Services: v.GetStringSlice("catalog.services"),
			Partners: v.GetStringSlice("catalog.partners"),
			Statuses: v.GetStringSlice("catalog.statuses"),
		},
		Source: v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db.path must not be empty")
	}
	if c.Batch <= 0 {
		return fmt.Errorf("paging.batch must be positive, got %d", c.Batch)
	}
	if c.Step <= 0 {
		return fmt.Errorf("paging.step must be positive, got %d", c.Step)
	}
	if c.OptionSample <= 0 {
		return fmt.Errorf("options.sample must be positive, got %d", c.OptionSample)
	}
	if c.RowHeight <= 0 {
		return fmt.Errorf("list.row_height must be positive, got %d", c.RowHeight)
	}
	if c.WorkerBuffer < 0 {
		return fmt.Errorf("worker.buffer must not be negative, got %d", c.WorkerBuffer)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
