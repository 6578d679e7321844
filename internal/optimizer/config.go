package optimizer

import "github.com/spesa/search-service/internal/types"

// Config holds the configuration for the shopping list optimizer.
// It is loaded from environment variables or a config file.
type Config struct {
	// Mode used when a request does not name one
	DefaultMode string `mapstructure:"default_mode" env:"DEFAULT_MODE" default:"comodita"`

	// Feature flags
	EnablePairs bool `mapstructure:"enable_pairs" env:"ENABLE_PAIRS" default:"true"`

	// Validation limits
	MaxItems int `mapstructure:"max_items" env:"MAX_ITEMS" default:"50"`
}

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		DefaultMode: string(types.ModeConvenience),
		EnablePairs: true,
		MaxItems:    50,
	}
}

// Mode returns the parsed default mode.
func (c *Config) Mode() types.Mode {
	mode, err := types.ParseMode(c.DefaultMode, types.ModeConvenience)
	if err != nil {
		return types.ModeConvenience
	}
	return mode
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if _, err := types.ParseMode(c.DefaultMode, types.ModeConvenience); err != nil {
		return ErrInvalidConfig{Field: "default_mode", Reason: "must be comodita or risparmio"}
	}
	if c.MaxItems < 1 {
		return ErrInvalidConfig{Field: "max_items", Reason: "must be at least 1"}
	}
	return nil
}

// ErrInvalidConfig is returned when the configuration is invalid.
type ErrInvalidConfig struct {
	Field  string
	Reason string
}

func (e ErrInvalidConfig) Error() string {
	return e.Field + ": " + e.Reason
}
