package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/fatih/color"
	"github.com/jeeftor/wordgrid/internal/recognize/tesseract"
	"github.com/spf13/cobra"
)

// These variables will be set during the build using ldflags
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildTime    = "unknown"
)

var shortOutput bool

// GetFormattedBuildTime returns the build time in a readable format
func GetFormattedBuildTime() string {
	if buildTime == "unknown" {
		return buildTime
	}

	// First try to parse as RFC3339 format
	if t, err := time.Parse(time.RFC3339, buildTime); err == nil {
		return t.Format("2006-01-02 15:04:05 MST")
	}

	// Then try to parse as Unix timestamp
	var unixTime int64
	if _, err := fmt.Sscanf(buildTime, "%d", &unixTime); err == nil {
		return time.Unix(unixTime, 0).Format("2006-01-02 15:04:05 MST")
	}

	return buildTime
}

// GetDisplayVersion returns a formatted version string. Dev builds fall back
// to the module version and VCS revision recorded by the Go toolchain.
func GetDisplayVersion() string {
	if buildVersion != "dev" {
		return buildVersion
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return fmt.Sprintf("dev (%s)", v)
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return fmt.Sprintf("dev (%s)", s.Value[:7])
		}
	}
	return "dev"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// version must work without a valid configuration
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		if shortOutput {
			// For short output, just show the raw buildVersion for scripts
			fmt.Println(buildVersion)
			return
		}
		versionColor := color.New(color.FgCyan, color.Bold)
		buildColor := color.New(color.FgYellow)
		commitColor := color.New(color.FgGreen)
		osArchColor := color.New(color.FgMagenta)
		goVersionColor := color.New(color.FgRed)
		whiteColor := color.New(color.FgWhite)
		pathColor := color.New(color.FgBlue)

		whiteColor.Printf("Version:   ")
		versionColor.Printf("%s\n", GetDisplayVersion())

		whiteColor.Printf("Built:     ")
		buildColor.Printf("%s\n", GetFormattedBuildTime())

		whiteColor.Printf("Commit:    ")
		commitColor.Printf("%s\n", buildCommit)

		whiteColor.Printf("OS/Arch:   ")
		osArchColor.Printf("%s/%s\n", runtime.GOOS, runtime.GOARCH)

		whiteColor.Printf("Go:        ")
		goVersionColor.Printf("%s\n", runtime.Version())

		whiteColor.Printf("Tesseract: ")
		versionColor.Printf("%s\n", tesseract.Version())

		exe, err := os.Executable()
		exePath := "Unknown"
		if err == nil {
			exePath, _ = filepath.Abs(exe)
		}

		whiteColor.Printf("Binary:    ")
		pathColor.Printf("%s\n", exePath)
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&shortOutput, "short", "n", false, "Print only version number")
	rootCmd.AddCommand(versionCmd)
}
