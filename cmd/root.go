package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jeeftor/wordgrid/internal/config"
	"github.com/jeeftor/wordgrid/internal/constants"
	"github.com/jeeftor/wordgrid/internal/grid"
	"github.com/jeeftor/wordgrid/internal/logging"
	"github.com/jeeftor/wordgrid/internal/pixel"
	"github.com/jeeftor/wordgrid/internal/resource"
	"github.com/jeeftor/wordgrid/internal/utils"
	"github.com/jeeftor/wordgrid/internal/validation"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	logLevel string

	// Effective configuration, loaded before every command runs
	appConfig *config.Config

	// Global context management
	contextManager *resource.ContextManager
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wordgrid",
	Short: "wordgrid finds a 4x4 word puzzle in a screenshot and reads its tiles",
	Long: `wordgrid locates the 4x4 tile grid of a word puzzle in a screenshot,
splits it into 16 cells in reading order and runs text recognition on them.

Configuration is read from .wordgrid.yaml (current directory, $HOME,
/etc/wordgrid), WORDGRID_* environment variables, a .env file and flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logLevel == "" {
			logLevel = viper.GetString(config.KeyLogLevel)
		}
		logging.InitWithLevel(logLevel)

		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return utils.WithCode(err, utils.ExitCodeValidation)
		}
		appConfig = cfg

		logging.Debug("Configuration loaded",
			"file", viper.ConfigFileUsed(),
			"detect", fmt.Sprintf("%+v", cfg.Detect),
			"ocrMode", cfg.OCR.Mode)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	defer func() {
		if contextManager != nil {
			contextManager.Shutdown()
		}
	}()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig, initResourceManagement)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.wordgrid.yaml or $HOME/.wordgrid.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	// Detection flags shared by every image command
	p := grid.DefaultParams()
	rootCmd.PersistentFlags().Int("cell-size", p.CellSize, "coarse scan cell size in pixels")
	rootCmd.PersistentFlags().Int("corner-size", p.CornerSize, "corner sample size for background estimation")
	rootCmd.PersistentFlags().Int("padding", p.Padding, "pixels added around the detected grid")
	rootCmd.PersistentFlags().Int("cell-margin", p.CellMargin, "pixels trimmed from each cell before recognition")

	// Bind flags to Viper
	viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag(config.KeyCellSize, rootCmd.PersistentFlags().Lookup("cell-size"))
	viper.BindPFlag(config.KeyCornerSize, rootCmd.PersistentFlags().Lookup("corner-size"))
	viper.BindPFlag(config.KeyPadding, rootCmd.PersistentFlags().Lookup("padding"))
	viper.BindPFlag(config.KeyCellMargin, rootCmd.PersistentFlags().Lookup("cell-margin"))
}

// initResourceManagement initializes the signal-aware root context
func initResourceManagement() {
	if contextManager == nil {
		contextManager = resource.NewContextManager()
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// .env values only fill variables that are not already set
	if err := config.LoadDotEnv(""); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading .env file: %v\n", err)
	}

	config.Setup(viper.GetViper(), cfgFile)

	// It's okay if no config file is found - we'll use defaults and env vars
	if err := config.Read(viper.GetViper()); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
}

// rootContext returns the shared cancellable context
func rootContext() context.Context {
	if contextManager == nil {
		return context.Background()
	}
	return contextManager.GetContext()
}

// validateConfig reports warnings and fails on configuration errors
func validateConfig() error {
	result := validation.NewConfigValidator().ValidateConfig(appConfig)
	for _, w := range result.Warnings {
		logging.UserWarnf("Warning: %s", w)
	}
	return utils.WithCode(result.Err(), utils.ExitCodeValidation)
}

// loadImage validates the path and decodes the image, bounded by the decode timeout
func loadImage(ctx context.Context, path string) (*pixel.Buffer, error) {
	check := validation.NewConfigValidator().ValidateImagePath(path)
	if err := check.Err(); err != nil {
		return nil, utils.WithCode(err, utils.ExitCodeFileSystem)
	}
	for _, w := range check.Warnings {
		logging.UserWarnf("Warning: %s", w)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, utils.WithCode(err, utils.ExitCodeFileSystem)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(ctx, constants.GetTimeout("decode"))
	defer cancel()

	res := <-pixel.DecodeAsync(ctx, f)
	switch {
	case res.Err == nil:
		return res.Buffer, nil
	case errors.Is(res.Err, pixel.ErrDecode):
		return nil, utils.WithCode(fmt.Errorf("%s: %w", path, res.Err), utils.ExitCodeDecode)
	case errors.Is(res.Err, context.DeadlineExceeded):
		return nil, utils.WithCode(fmt.Errorf("decoding %s: %w", path, res.Err), utils.ExitCodeTimeout)
	default:
		return nil, res.Err
	}
}
