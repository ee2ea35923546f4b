// Package config loads the external Configuration map that
// the CLI collaborator builds and hands to the core's job constructor.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the typed form of the key/value map the CLI builds and passes
// to the core constructor.
type Config struct {
	Pins                   int                       `mapstructure:"pins"`
	PrintableAreaMarginsMM MarginsMM                 `mapstructure:"printable_area_margins_mm"`
	AutomaticLinefeed      bool                      `mapstructure:"automatic_linefeed"`
	PageSize               PageSizeConfig            `mapstructure:"page_size"`
	SingleSheets           bool                      `mapstructure:"single_sheets"`
	Renderer               string                    `mapstructure:"renderer" validate:"oneof=dots rectangles"`
	CondensedFallback      *bool                     `mapstructure:"condensed_fallback"`
	UserDefinedDBPath      string                    `mapstructure:"user_defined_db_path"`
	UserDefinedImagesPath  string                    `mapstructure:"user_defined_images_path"`
	Typefaces              map[string]TypefaceConfig `mapstructure:"typefaces"`
	Logging                LoggingConfig             `mapstructure:"logging"`
}

// MarginsMM are the mechanical printable-area limits, in millimetres.
type MarginsMM struct {
	Top    float64 `mapstructure:"top"`
	Bottom float64 `mapstructure:"bottom"`
	Left   float64 `mapstructure:"left"`
	Right  float64 `mapstructure:"right"`
}

// PageSizeConfig is either a named alias ("A4", "Letter", ...) or an
// explicit width/height in points.
type PageSizeConfig struct {
	Alias    string  `mapstructure:"alias"`
	WidthPt  float64 `mapstructure:"width_pt"`
	HeightPt float64 `mapstructure:"height_pt"`
}

// TypefaceConfig maps a typeface family to font files on the host
// filesystem, consumed by the font resolver contract.
type TypefaceConfig struct {
	Path             string `mapstructure:"path"`
	FixedName        string `mapstructure:"fixed_name"`
	ProportionalName string `mapstructure:"proportional_name"`
}

// LoggingConfig controls log level, encoding, and file rotation.
type LoggingConfig struct {
	Level      string `mapstructure:"level" validate:"required"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// Load reads configuration from the given file path (any format viper
// supports: yaml, json, toml) and environment variable overrides prefixed
// with ESCPRENDER_.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("ESCPRENDER")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("renderer", "dots")
	v.SetDefault("single_sheets", true)
	v.SetDefault("page_size.alias", "Letter")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
}
