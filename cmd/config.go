package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jeeftor/wordgrid/internal/config"
	"github.com/jeeftor/wordgrid/internal/filesystem"
	"github.com/jeeftor/wordgrid/internal/grid"
	"github.com/jeeftor/wordgrid/internal/logging"
	"github.com/jeeftor/wordgrid/internal/styles"
	"github.com/jeeftor/wordgrid/internal/utils"
	"github.com/jeeftor/wordgrid/internal/validation"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and create wordgrid configuration",
	Long: `Inspect the effective configuration and manage configuration files.

Configuration files are searched in this order:
1. ./.wordgrid.yaml (project config)
2. ~/.wordgrid.yaml (user config)
3. /etc/wordgrid/.wordgrid.yaml (system config)

Environment variables (WORDGRID_*) override config file values.
Command-line flags override both config files and environment variables.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// configShowCmd displays current configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration values and sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		displayCurrentConfiguration(cmd.Flags())

		result := validation.NewConfigValidator().ValidateConfig(appConfig)
		if !result.Valid {
			fmt.Print(validation.FormatValidationErrors(result))
			return utils.WithCode(fmt.Errorf("configuration is invalid"), utils.ExitCodeValidation)
		}
		for _, w := range result.Warnings {
			fmt.Printf("%s %s\n", styles.WarningStyle.Render("⚠"), w)
		}
		return nil
	},
}

// configPathCmd shows configuration file search paths
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Display configuration file search paths",
	Run: func(cmd *cobra.Command, args []string) {
		displayConfigPaths()
	},
}

// configInitCmd creates a sample configuration file
var configInitCmd = &cobra.Command{
	Use:   "init [config-file]",
	Short: "Create a sample configuration file",
	Long: `Generate a sample configuration file with every option and its default.

If no file is specified, creates ./.wordgrid.yaml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := config.FileName + ".yaml"
		if len(args) > 0 {
			configPath = args[0]
		}

		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return fmt.Errorf("could not resolve config path: %w", err)
		}

		if err := filesystem.CheckFileExists(absPath); err == nil {
			logging.UserInfof("Use 'wordgrid config show --config %s' to inspect the existing file", absPath)
			return utils.WithCode(fmt.Errorf("configuration file already exists: %s", absPath), utils.ExitCodeFileSystem)
		}

		if err := filesystemWrite(absPath, []byte(generateSampleConfig())); err != nil {
			return err
		}

		logging.Successf("Created configuration file: %s", absPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}

// generateSampleConfig renders a configuration file holding the defaults
func generateSampleConfig() string {
	p := grid.DefaultParams()
	o := config.DefaultOCR()
	return fmt.Sprintf(`# wordgrid configuration
# Every key can be overridden with a WORDGRID_* environment variable,
# e.g. WORDGRID_OCR_CELL_TIMEOUT=5s.

# trace, debug, info, warn, error
log_level: info

detect:
  # coarse scan lattice cell size in pixels
  cell_size: %d
  # corner square sampled for the background color
  corner_size: %d
  # pixels added around the detected grid
  padding: %d
  # pixels trimmed from each cell before recognition
  cell_margin: %d

ocr:
  # cells or region
  mode: %s
  language: %s
  timeout: %s
  cell_timeout: %s
  concurrency: %d
  min_confidence: %g
  scale: %g
  # Tesseract config file read at engine init, e.g. "load_system_dawg F"
  tess_config: %q
`,
		p.CellSize, p.CornerSize, p.Padding, p.CellMargin,
		o.Mode, o.Language, o.Timeout, o.CellTimeout, o.Concurrency, o.MinConfidence, o.Scale, o.TessConfig)
}

// displayCurrentConfiguration shows all current config values and sources
func displayCurrentConfiguration(flags *pflag.FlagSet) {
	fmt.Printf("%s\n", styles.HeaderStyle.Render("⚙️  Current Configuration"))

	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		fmt.Printf("📁 Active config file: %s\n", styles.SuccessStyle.Render(configFile))
	} else {
		fmt.Printf("📁 Active config file: %s\n", styles.MutedStyle.Render("none"))
	}

	sections := []struct {
		title  string
		prefix string
	}{
		{"Core", ""},
		{"Detection", "detect."},
		{"Recognition", "ocr."},
	}

	keys := config.Keys()
	for _, section := range sections {
		fmt.Printf("%s\n", styles.SectionStyle.Render(fmt.Sprintf("📂 %s", section.title)))
		for _, key := range keys {
			if !inSection(key, section.prefix) {
				continue
			}
			fmt.Printf("  %s: %s %s\n",
				styles.KeyStyle.Render(key),
				styles.ValueStyle.Render(fmt.Sprintf("%v", viper.Get(key))),
				styles.MutedStyle.Render(fmt.Sprintf("(%s)", config.Source(viper.GetViper(), key, flags))))
		}
	}

	// keys from the file that wordgrid does not know about
	known := make(map[string]bool, len(keys))
	for _, k := range keys {
		known[k] = true
	}
	var unknown []string
	for _, k := range viper.AllKeys() {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		fmt.Printf("%s\n", styles.SectionStyle.Render("📂 Other Settings"))
		for _, k := range unknown {
			fmt.Printf("  %s: %v\n", styles.KeyStyle.Render(k), viper.Get(k))
		}
	}
	fmt.Println()
}

func inSection(key, prefix string) bool {
	if prefix == "" {
		return !strings.Contains(key, ".")
	}
	return strings.HasPrefix(key, prefix)
}

// displayConfigPaths shows configuration file search paths
func displayConfigPaths() {
	fmt.Printf("%s\n", styles.HeaderStyle.Render("📁 Configuration File Paths"))

	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		fmt.Printf("🟢 Active: %s\n", styles.SuccessStyle.Render(configFile))
	} else {
		fmt.Printf("🔴 Active: %s\n", styles.MutedStyle.Render("none"))
	}

	fmt.Printf("%s\n", styles.SectionStyle.Render("🔍 Search Paths (in priority order)"))

	home, _ := os.UserHomeDir()
	searchPaths := []struct {
		path        string
		description string
	}{
		{filepath.Join(".", config.FileName+".yaml"), "Project configuration"},
		{filepath.Join(home, config.FileName+".yaml"), "User configuration"},
		{filepath.Join(config.SystemDir, config.FileName+".yaml"), "System configuration"},
	}

	for i, sp := range searchPaths {
		status := styles.MutedStyle.Render("missing")
		if filesystem.CheckFileExists(sp.path) == nil {
			status = styles.SuccessStyle.Render("found")
		}
		fmt.Printf("  %d. %s %s (%s)\n", i+1, sp.path, status, sp.description)
	}
	fmt.Println()
}
