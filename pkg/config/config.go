/*
Package config manages TOML config for wordcheck.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/wordcheck/internal/utils"
	"github.com/charmbracelet/log"
)

// AppDir is the directory name used under the user's config dir.
const AppDir = "wordcheck"

// Config holds the entire config structure
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Query  QueryConfig  `toml:"query"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
}

// EngineConfig sizes the lookup structures.
type EngineConfig struct {
	CacheCapacity      int  `toml:"cache_capacity"`
	FilterBits         int  `toml:"filter_bits"`
	FilterHashes       int  `toml:"filter_hashes"`
	TableBuckets       int  `toml:"table_buckets"`
	InvalidateOnUpdate bool `toml:"invalidate_on_update"`
}

// QueryConfig bounds requests coming through the server.
type QueryConfig struct {
	DefaultLimit int `toml:"default_limit"`
	MaxLimit     int `toml:"max_limit"`
	MaxDistance  int `toml:"max_distance"`
	MinPrefix    int `toml:"min_prefix"`
	MaxPrefix    int `toml:"max_prefix"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path string `toml:"path"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int  `toml:"default_limit"`
	NoFilter     bool `toml:"no_filter"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", AppDir)
	if utils.WritableDir(primaryPath) {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", AppDir)
	if utils.WritableDir(macOSPath) {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordcheck/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			CacheCapacity:      100,
			FilterBits:         10000,
			FilterHashes:       4,
			TableBuckets:       1000,
			InvalidateOnUpdate: false,
		},
		Query: QueryConfig{
			DefaultLimit: 10,
			MaxLimit:     64,
			MaxDistance:  2,
			MinPrefix:    1,
			MaxPrefix:    60,
		},
		Dict: DictConfig{
			Path: "data/dictionary.txt",
		},
		CLI: CliConfig{
			DefaultLimit: 10,
			NoFilter:     false,
		},
	}
}

// Validate clamps values that would leave the engine unusable.
func (c *Config) Validate() {
	def := DefaultConfig()
	clampMin(&c.Engine.CacheCapacity, 1)
	clampMin(&c.Engine.FilterBits, 1)
	clampMin(&c.Engine.FilterHashes, 1)
	clampMin(&c.Engine.TableBuckets, 1)
	clampMin(&c.Query.DefaultLimit, 1)
	clampMin(&c.Query.MaxLimit, 1)
	clampMin(&c.Query.MaxDistance, 0)
	clampMin(&c.Query.MinPrefix, 1)
	clampMin(&c.CLI.DefaultLimit, 1)
	if c.Query.MaxPrefix < c.Query.MinPrefix {
		log.Warnf("max_prefix %d is below min_prefix %d, using %d", c.Query.MaxPrefix, c.Query.MinPrefix, c.Query.MinPrefix)
		c.Query.MaxPrefix = c.Query.MinPrefix
	}
	if c.Query.DefaultLimit > c.Query.MaxLimit {
		c.Query.DefaultLimit = c.Query.MaxLimit
	}
	if c.Dict.Path == "" {
		c.Dict.Path = def.Dict.Path
	}
}

func clampMin(v *int, lo int) {
	if *v < lo {
		*v = lo
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.Validate()
	return config, nil
}

// tryPartialParse keeps whatever sections still decode as plain TOML
// and fills the rest from defaults.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "engine"); ok {
		extractEngineConfig(section, &config.Engine)
	}
	if section, ok := utils.ExtractSection(tempConfig, "query"); ok {
		extractQueryConfig(section, &config.Query)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		if val, ok := utils.ExtractString(section, "path"); ok {
			config.Dict.Path = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		if val, ok := utils.ExtractInt64(section, "default_limit"); ok {
			config.CLI.DefaultLimit = val
		}
		if val, ok := utils.ExtractBool(section, "no_filter"); ok {
			config.CLI.NoFilter = val
		}
	}
	config.Validate()
	return config, nil
}

func extractEngineConfig(data map[string]any, engine *EngineConfig) {
	if val, ok := utils.ExtractInt64(data, "cache_capacity"); ok {
		engine.CacheCapacity = val
	}
	if val, ok := utils.ExtractInt64(data, "filter_bits"); ok {
		engine.FilterBits = val
	}
	if val, ok := utils.ExtractInt64(data, "filter_hashes"); ok {
		engine.FilterHashes = val
	}
	if val, ok := utils.ExtractInt64(data, "table_buckets"); ok {
		engine.TableBuckets = val
	}
	if val, ok := utils.ExtractBool(data, "invalidate_on_update"); ok {
		engine.InvalidateOnUpdate = val
	}
}

func extractQueryConfig(data map[string]any, query *QueryConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		query.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		query.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_distance"); ok {
		query.MaxDistance = val
	}
	if val, ok := utils.ExtractInt64(data, "min_prefix"); ok {
		query.MinPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "max_prefix"); ok {
		query.MaxPrefix = val
	}
}

// GetActiveConfigPath returns the absolute path of the loaded config file for display.
// An empty path means no file was loaded.
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
