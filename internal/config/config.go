package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Comment sources for the item command.
const (
	SourceFirebase = "firebase"
	SourceAlgolia  = "algolia"
)

type Config struct {
	CacheDir string
	DBPath   string
	LogPath  string
	ItemTTL  time.Duration
	UseCache bool

	Source string // firebase or algolia
	Width  int    // 0 = measure the terminal
	Color  string // auto, always or never
	Pager  bool
}

func Default() Config {
	cacheDir := filepath.Join(userConfigDir(), "threadtree")
	return Config{
		CacheDir: cacheDir,
		DBPath:   filepath.Join(cacheDir, "cache.db"),
		LogPath:  filepath.Join(cacheDir, "debug.log"),
		ItemTTL:  10 * time.Minute,
		UseCache: true,
		Source:   SourceFirebase,
		Color:    "auto",
	}
}

// Load resolves configuration with precedence: defaults < file < env < any
// flags already bound to v. A missing config file is not an error.
func Load(v *viper.Viper) (Config, error) {
	def := Default()
	v.SetDefault("cache_dir", def.CacheDir)
	v.SetDefault("item_ttl", def.ItemTTL)
	v.SetDefault("cache", def.UseCache)
	v.SetDefault("source", def.Source)
	v.SetDefault("width", def.Width)
	v.SetDefault("color", def.Color)
	v.SetDefault("pager", def.Pager)

	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "threadtree"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "threadtree"))
		}
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("threadtree")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	cfg := Config{
		CacheDir: v.GetString("cache_dir"),
		ItemTTL:  v.GetDuration("item_ttl"),
		UseCache: v.GetBool("cache"),
		Source:   strings.ToLower(strings.TrimSpace(v.GetString("source"))),
		Width:    v.GetInt("width"),
		Color:    strings.ToLower(strings.TrimSpace(v.GetString("color"))),
		Pager:    v.GetBool("pager"),
	}
	cfg.DBPath = filepath.Join(cfg.CacheDir, "cache.db")
	cfg.LogPath = filepath.Join(cfg.CacheDir, "debug.log")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid option at once.
func (c Config) Validate() error {
	var errs []error
	switch c.Source {
	case SourceFirebase, SourceAlgolia:
	default:
		errs = append(errs, fmt.Errorf("source must be %q or %q, got %q", SourceFirebase, SourceAlgolia, c.Source))
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		errs = append(errs, fmt.Errorf("color must be auto, always or never, got %q", c.Color))
	}
	if c.Width < 0 {
		errs = append(errs, fmt.Errorf("width must not be negative, got %d", c.Width))
	}
	if c.ItemTTL <= 0 {
		errs = append(errs, fmt.Errorf("item_ttl must be greater than 0, got %s", c.ItemTTL))
	}
	if c.CacheDir == "" {
		errs = append(errs, errors.New("cache_dir is required"))
	}
	return errors.Join(errs...)
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
