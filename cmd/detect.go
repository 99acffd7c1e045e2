package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jeeftor/wordgrid/internal/grid"
	"github.com/jeeftor/wordgrid/internal/logging"
	"github.com/jeeftor/wordgrid/internal/params"
	"github.com/jeeftor/wordgrid/internal/pixel"
	"github.com/jeeftor/wordgrid/internal/render"
	"github.com/jeeftor/wordgrid/internal/styles"
	"github.com/jeeftor/wordgrid/internal/utils"
	"github.com/spf13/cobra"
)

var (
	detectJSON    bool
	detectMask    bool
	detectOverlay string
)

// detectionOutput is the JSON shape of a detection
type detectionOutput struct {
	Run       string         `json:"run"`
	Image     string         `json:"image"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Detection grid.Detection `json:"detection"`
}

// detectCmd locates the puzzle grid without running recognition
var detectCmd = &cobra.Command{
	Use:   "detect [image]",
	Short: "Locate the puzzle grid and its 16 cells",
	Long: `Find the 4x4 puzzle grid in a screenshot and print its bounding box and
the 16 cell rectangles in reading order.

The image can be given as an argument or via WORDGRID_IMAGE.

Examples:
  wordgrid detect screenshot.png
  wordgrid detect screenshot.png --json
  wordgrid detect screenshot.png --mask --overlay debug.png`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := params.NewParameterResolver(nil).ResolveImageFile(args, 0)
		if err != nil {
			return utils.WithCode(err, utils.ExitCodeValidation)
		}
		if err := validateConfig(); err != nil {
			return err
		}
		if detectJSON {
			logging.SetUserOutput(os.Stderr)
		}

		ce := utils.NewCommandExecutor("detect")
		var (
			buf *pixel.Buffer
			det grid.Detection
		)

		stages := []utils.CommandStage{
			utils.NewCommandStage("decode", func() error {
				logging.LoadFile(info.Value)
				buf, err = loadImage(rootContext(), info.Value)
				return err
			}, map[string]interface{}{"image": info.Value}),
			utils.NewCommandStage("detect", func() error {
				det = grid.Detect(buf, appConfig.Detect)
				return nil
			}, nil),
		}
		if detectOverlay != "" {
			stages = append(stages, utils.NewCommandStage("overlay", func() error {
				return writeOverlay(detectOverlay, buf, det)
			}, map[string]interface{}{"path": detectOverlay}))
		}

		if err := ce.ExecuteCommand(stages); err != nil {
			return err
		}

		if detectJSON {
			out := detectionOutput{
				Run:       ce.RunID,
				Image:     info.Value,
				Width:     buf.Width,
				Height:    buf.Height,
				Detection: det,
			}
			if err := writeJSON(out); err != nil {
				return err
			}
		} else {
			printDetection(det)
		}

		if detectMask {
			fmt.Println()
			if err := render.Mask(os.Stdout, det, render.TerminalWidth(os.Stdout), render.IsTerminal(os.Stdout)); err != nil {
				return err
			}
		}

		ce.FinishSuccess(map[string]interface{}{
			"filled":   det.Filled,
			"kept":     det.Kept,
			"fallback": det.BoundingBox.Fallback,
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().BoolVar(&detectJSON, "json", false, "print the detection as JSON")
	detectCmd.Flags().BoolVar(&detectMask, "mask", false, "print the filled-cell mask")
	detectCmd.Flags().StringVar(&detectOverlay, "overlay", "", "write a debug overlay PNG to this path")
}

// printDetection shows the detection for people
func printDetection(det grid.Detection) {
	box := det.BoundingBox
	if box.Fallback {
		logging.NoGridFound("using the whole image")
	} else {
		logging.DetectedGrid(box.Rect.String())
	}

	fmt.Printf("%s %s %s (%s)\n", styles.KeyStyle.Render("Background:"), det.Background,
		render.Swatch(det.Background, render.IsTerminal(os.Stdout)), det.Tier)
	fmt.Printf("%s %d filled, %d kept\n", styles.KeyStyle.Render("Lattice:   "), det.Filled, det.Kept)
	fmt.Printf("%s %s in %dx%d\n", styles.KeyStyle.Render("Grid:      "), box.Rect, box.ImageWidth, box.ImageHeight)

	fmt.Printf("\n%s\n", styles.SectionStyle.Render("Cells"))
	for _, c := range det.Cells {
		fmt.Printf("  %s %s\n",
			styles.KeyStyle.Render(fmt.Sprintf("[%2d] r%d c%d", c.Index, c.Row, c.Col)),
			styles.ValueStyle.Render(c.Rect.String()))
	}
}

// writeOverlay draws the detection over the image and saves it as PNG
func writeOverlay(path string, buf *pixel.Buffer, det grid.Detection) error {
	if err := filesystemValidateOutput(path); err != nil {
		return err
	}
	if err := filesystemWritePNG(path, render.Overlay(buf, det)); err != nil {
		return err
	}
	logging.SaveFile(path, "overlay")
	return nil
}

// writeJSON prints v as indented JSON on stdout
func writeJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
