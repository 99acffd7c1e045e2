package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/jeeftor/wordgrid/internal/config"
	"github.com/jeeftor/wordgrid/internal/crop"
	"github.com/jeeftor/wordgrid/internal/grid"
	"github.com/jeeftor/wordgrid/internal/logging"
	"github.com/jeeftor/wordgrid/internal/params"
	"github.com/jeeftor/wordgrid/internal/pixel"
	"github.com/jeeftor/wordgrid/internal/utils"
	"github.com/spf13/cobra"
)

var cropScale float64

// cropCmd writes the detected grid and its cells as PNG files
var cropCmd = &cobra.Command{
	Use:   "crop [image] [dir]",
	Short: "Save the detected grid and its 16 cells as PNG files",
	Long: `Detect the puzzle grid and write grid.png plus cell-00.png through
cell-15.png into dir (default "cells", or WORDGRID_CROP_DIR). Cells are
trimmed by the configured cell margin and scaled by ocr.scale, the same crops
recognition sees. --scale overrides the scale for this command only.

Examples:
  wordgrid crop screenshot.png
  wordgrid crop screenshot.png out/ --scale 2`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver := params.NewParameterResolver(nil)
		info, err := resolver.ResolveImageFile(args, 0)
		if err != nil {
			return utils.WithCode(err, utils.ExitCodeValidation)
		}
		dir := resolver.ResolveCropDir(args, 1).Value
		if err := validateConfig(); err != nil {
			return err
		}

		ce := utils.NewCommandExecutor("crop")
		var (
			buf     *pixel.Buffer
			det     grid.Detection
			written int
		)

		err = ce.ExecuteCommand([]utils.CommandStage{
			utils.NewCommandStage("decode", func() error {
				logging.LoadFile(info.Value)
				buf, err = loadImage(rootContext(), info.Value)
				return err
			}, map[string]interface{}{"image": info.Value}),
			utils.NewCommandStage("detect", func() error {
				det = grid.Detect(buf, appConfig.Detect)
				return nil
			}, nil),
			utils.NewCommandStage("write", func() error {
				written, err = writeCrops(dir, buf, det, crop.NewCropper(resolveCropScale(cmd, appConfig.OCR.Scale)), appConfig.Detect.CellMargin)
				return err
			}, map[string]interface{}{"dir": dir}),
		})
		if err != nil {
			return err
		}

		logging.SaveFile(dir, fmt.Sprintf("%d files", written))
		ce.FinishSuccess(map[string]interface{}{"files": written})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cropCmd)
	cropCmd.Flags().Float64Var(&cropScale, "scale", config.DefaultOCR().Scale,
		"upscale factor applied to the saved crops (default from ocr.scale)")
}

// resolveCropScale prefers an explicit --scale over the configured ocr.scale.
// The flag is not bound to viper because extract already binds ocr.scale.
func resolveCropScale(cmd *cobra.Command, configured float64) float64 {
	if f := cmd.Flags().Lookup("scale"); f != nil && f.Changed {
		return cropScale
	}
	return configured
}

// writeCrops saves the grid and every cell under dir and returns the file count
func writeCrops(dir string, buf *pixel.Buffer, det grid.Detection, c *crop.Cropper, margin int) (int, error) {
	img, err := c.Crop(buf, det.BoundingBox.Image())
	if err != nil {
		return 0, err
	}
	if err := filesystemWritePNG(filepath.Join(dir, "grid.png"), img); err != nil {
		return 0, err
	}
	written := 1

	for _, cell := range det.RecognitionRects(margin) {
		img, err := c.Crop(buf, cell.Image())
		if err != nil {
			return written, fmt.Errorf("cell %d: %w", cell.Index, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("cell-%02d.png", cell.Index))
		if err := filesystemWritePNG(path, img); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}
