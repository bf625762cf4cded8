package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	DBPath string `mapstructure:"db_path"`
	// Credentials used when --email/--password are not given
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`

	RedisURL        string `mapstructure:"redis_url"` // empty disables events
	LogLevel        string `mapstructure:"log_level"`
	ReportSchedule  string `mapstructure:"report_schedule"`
	MetricsTextfile string `mapstructure:"metrics_textfile"`
}

var AppConfig *Config

// secretKeys are never printed by Values
var secretKeys = map[string]bool{"password": true, "redis_url": true}

// Keys lists every setting that can be changed with Set
var Keys = []string{"db_path", "email", "password", "redis_url", "log_level", "report_schedule", "metrics_textfile"}

// Initialize loads or creates ~/.hireboard/config.yaml
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitializeAt(filepath.Join(homeDir, ".hireboard"))
}

// InitializeAt loads or creates config.yaml in configDir. A .env file in the
// working directory and HIREBOARD_* variables override the file.
func InitializeAt(configDir string) error {
	configFile := filepath.Join(configDir, "config.yaml")

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create default config if it doesn't exist
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := createDefaultConfig(configFile); err != nil {
			return err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	viper.Reset()
	viper.SetConfigFile(configFile)
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("HIREBOARD")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("db_path", filepath.Join(configDir, "hireboard.db"))
	viper.SetDefault("email", "")
	viper.SetDefault("password", "")
	viper.SetDefault("redis_url", "")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("report_schedule", "0 6 1 * *")
	viper.SetDefault("metrics_textfile", "")

	// Read config
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	// Unmarshal into struct
	AppConfig = &Config{}
	if err := viper.Unmarshal(AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# Hireboard Configuration
# db_path defaults to hireboard.db next to this file
log_level: info

# Monthly analytics report (cron spec)
report_schedule: "0 6 1 * *"

# Redis URL for publishing marketplace events, e.g. redis://localhost:6379/0
redis_url: ""

# Prometheus textfile written after each scheduled report
metrics_textfile: ""

# Default login (keep this file secure!)
email: ""
password: ""
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// Set updates a configuration value
func Set(key, value string) error {
	if !isKnownKey(key) {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys, ", "))
	}
	viper.Set(key, value)
	return viper.WriteConfig()
}

// Get retrieves a configuration value
func Get(key string) string {
	return viper.GetString(key)
}

// Values returns every setting, with secrets masked, sorted by key
func Values() [][2]string {
	keys := append([]string(nil), Keys...)
	sort.Strings(keys)

	values := make([][2]string, 0, len(keys))
	for _, key := range keys {
		v := viper.GetString(key)
		if secretKeys[key] && v != "" {
			v = "********"
		}
		values = append(values, [2]string{key, v})
	}
	return values
}

// GetConfigPath returns the path to the config file in use
func GetConfigPath() string {
	if f := viper.ConfigFileUsed(); f != "" {
		return f
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".hireboard", "config.yaml")
}

func isKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}
