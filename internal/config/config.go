// Package config resolves the effective wordgrid configuration from viper:
// defaults, the .wordgrid.yaml file, WORDGRID_* environment variables and
// bound command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeeftor/wordgrid/internal/constants"
	"github.com/jeeftor/wordgrid/internal/grid"
	"github.com/jeeftor/wordgrid/internal/recognize"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override (WORDGRID_LOG_LEVEL, ...)
	EnvPrefix = "WORDGRID"
	// FileName is the config file name searched for, without extension
	FileName = ".wordgrid"
	// SystemDir is the last directory searched for the config file
	SystemDir = "/etc/wordgrid"
)

// Config keys
const (
	KeyLogLevel         = "log_level"
	KeyCellSize         = "detect.cell_size"
	KeyCornerSize       = "detect.corner_size"
	KeyPadding          = "detect.padding"
	KeyCellMargin       = "detect.cell_margin"
	KeyOCRMode          = "ocr.mode"
	KeyOCRLanguage      = "ocr.language"
	KeyOCRTimeout       = "ocr.timeout"
	KeyOCRCellTimeout   = "ocr.cell_timeout"
	KeyOCRConcurrency   = "ocr.concurrency"
	KeyOCRMinConfidence = "ocr.min_confidence"
	KeyOCRScale         = "ocr.scale"
	KeyOCRTessConfig    = "ocr.tess_config"
)

// Config is the effective configuration of one run
type Config struct {
	LogLevel string      `mapstructure:"log_level" json:"logLevel"`
	Detect   grid.Params `mapstructure:"detect" json:"detect"`
	OCR      OCR         `mapstructure:"ocr" json:"ocr"`
}

// OCR configures text recognition
type OCR struct {
	Mode          string        `mapstructure:"mode" json:"mode"`
	Language      string        `mapstructure:"language" json:"language"`
	Timeout       time.Duration `mapstructure:"timeout" json:"timeout"`
	CellTimeout   time.Duration `mapstructure:"cell_timeout" json:"cellTimeout"`
	Concurrency   int           `mapstructure:"concurrency" json:"concurrency"`
	MinConfidence float64       `mapstructure:"min_confidence" json:"minConfidence"`
	Scale         float64       `mapstructure:"scale" json:"scale"`
	// TessConfig is a Tesseract config file read when the engine initializes
	TessConfig    string        `mapstructure:"tess_config" json:"tessConfig,omitempty"`
}

// Keys lists every recognized key in display order
func Keys() []string {
	return []string{
		KeyLogLevel,
		KeyCellSize, KeyCornerSize, KeyPadding, KeyCellMargin,
		KeyOCRMode, KeyOCRLanguage, KeyOCRTimeout, KeyOCRCellTimeout,
		KeyOCRConcurrency, KeyOCRMinConfidence, KeyOCRScale, KeyOCRTessConfig,
	}
}

// DefaultOCR returns the stock recognition settings
func DefaultOCR() OCR {
	return OCR{
		Mode:          string(recognize.ModeCells),
		Language:      "eng",
		Timeout:       constants.RegionRecognitionTimeout,
		CellTimeout:   constants.CellRecognitionTimeout,
		Concurrency:   constants.DefaultConcurrency,
		MinConfidence: 0,
		Scale:         2,
	}
}

// SetDefaults registers the default value of every key on v
func SetDefaults(v *viper.Viper) {
	p := grid.DefaultParams()
	o := DefaultOCR()
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyCellSize, p.CellSize)
	v.SetDefault(KeyCornerSize, p.CornerSize)
	v.SetDefault(KeyPadding, p.Padding)
	v.SetDefault(KeyCellMargin, p.CellMargin)
	v.SetDefault(KeyOCRMode, o.Mode)
	v.SetDefault(KeyOCRLanguage, o.Language)
	v.SetDefault(KeyOCRTimeout, o.Timeout)
	v.SetDefault(KeyOCRCellTimeout, o.CellTimeout)
	v.SetDefault(KeyOCRConcurrency, o.Concurrency)
	v.SetDefault(KeyOCRMinConfidence, o.MinConfidence)
	v.SetDefault(KeyOCRScale, o.Scale)
	v.SetDefault(KeyOCRTessConfig, o.TessConfig)
}

// Setup prepares v for reading: defaults, environment binding and the
// config file search path. cfgFile overrides the search when set.
func Setup(v *viper.Viper, cfgFile string) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		return
	}

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(SystemDir)
	v.SetConfigType("yaml")
	v.SetConfigName(FileName)
}

// LoadDotEnv loads a .env file into the process environment when present.
// Variables already set are left alone.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Read reads the config file. A missing file is not an error.
func Read(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Load decodes the effective configuration from v
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return &cfg, nil
}

// RecognitionMode parses the configured OCR mode
func (c *Config) RecognitionMode() (recognize.Mode, error) {
	return recognize.ParseMode(c.OCR.Mode)
}

// ExtractOptions converts the configuration into extractor options
func (c *Config) ExtractOptions() recognize.Options {
	return recognize.Options{
		CellTimeout:   c.OCR.CellTimeout,
		Timeout:       c.OCR.Timeout,
		Concurrency:   min(max(c.OCR.Concurrency, 1), constants.MaxConcurrency),
		MinConfidence: c.OCR.MinConfidence,
		CellMargin:    c.Detect.CellMargin,
	}
}

// flagNames maps config keys to the command-line flags bound to them
var flagNames = map[string]string{
	KeyLogLevel:         "log-level",
	KeyCellSize:         "cell-size",
	KeyCornerSize:       "corner-size",
	KeyPadding:          "padding",
	KeyCellMargin:       "cell-margin",
	KeyOCRMode:          "mode",
	KeyOCRLanguage:      "lang",
	KeyOCRTimeout:       "timeout",
	KeyOCRCellTimeout:   "cell-timeout",
	KeyOCRConcurrency:   "concurrency",
	KeyOCRMinConfidence: "min-confidence",
	KeyOCRScale:         "scale",
	KeyOCRTessConfig:    "tess-config",
}

// FlagName returns the flag bound to key, or "" when it has none
func FlagName(key string) string {
	return flagNames[key]
}

// Source reports where the value of key came from, following viper's
// precedence: flag, environment, config file, default. flags may be nil.
func Source(v *viper.Viper, key string, flags *pflag.FlagSet) string {
	if flags != nil {
		if f := flags.Lookup(FlagName(key)); f != nil && f.Changed {
			return "flag"
		}
	}

	envKey := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if _, ok := os.LookupEnv(envKey); ok {
		return "environment"
	}

	if file := v.ConfigFileUsed(); file != "" {
		fv := viper.New()
		fv.SetConfigFile(file)
		if err := fv.ReadInConfig(); err == nil && fv.IsSet(key) {
			return "config file"
		}
	}

	return "default"
}
