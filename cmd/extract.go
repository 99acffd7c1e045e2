package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jeeftor/wordgrid/internal/config"
	"github.com/jeeftor/wordgrid/internal/constants"
	"github.com/jeeftor/wordgrid/internal/crop"
	"github.com/jeeftor/wordgrid/internal/grid"
	"github.com/jeeftor/wordgrid/internal/logging"
	"github.com/jeeftor/wordgrid/internal/params"
	"github.com/jeeftor/wordgrid/internal/pixel"
	"github.com/jeeftor/wordgrid/internal/recognize"
	"github.com/jeeftor/wordgrid/internal/recognize/tesseract"
	"github.com/jeeftor/wordgrid/internal/render"
	"github.com/jeeftor/wordgrid/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	extractJSON   bool
	extractOutput string
)

// extractionOutput is the JSON shape of an extraction
type extractionOutput struct {
	Run         string                   `json:"run"`
	Image       string                   `json:"image"`
	Mode        recognize.Mode           `json:"mode"`
	Tokens      [grid.PuzzleCells]string `json:"tokens"`
	BoundingBox grid.BoundingBox         `json:"boundingBox"`
	Cells       []recognize.CellResult   `json:"cells,omitempty"`
	Words       []recognize.Word         `json:"words,omitempty"`
	NoWords     bool                     `json:"noWords"`
}

// extractCmd detects the grid and reads its tiles
var extractCmd = &cobra.Command{
	Use:   "extract [image]",
	Short: "Read the 16 puzzle tokens from a screenshot",
	Long: `Detect the puzzle grid and run Tesseract on it.

In cells mode (the default) each of the 16 cells is recognized on its own,
concurrently, with a per-cell timeout. A cell that fails or times out becomes
its "WORD n" placeholder. In region mode the whole grid is recognized once and
the words are grouped into rows.

Examples:
  wordgrid extract screenshot.png
  wordgrid extract screenshot.png --mode region --json
  wordgrid extract screenshot.png --cell-timeout 5s --concurrency 8 --output tokens.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver := params.NewParameterResolver(nil)
		info, err := resolver.ResolveImageFile(args, 0)
		if err != nil {
			return utils.WithCode(err, utils.ExitCodeValidation)
		}
		if err := validateConfig(); err != nil {
			return err
		}
		mode, err := appConfig.RecognitionMode()
		if err != nil {
			return utils.WithCode(err, utils.ExitCodeValidation)
		}
		output := resolver.ResolveOutputFile(extractOutput).Value
		if output != "" {
			if err := filesystemValidateOutput(output); err != nil {
				return err
			}
		}
		if extractJSON {
			logging.SetUserOutput(os.Stderr)
		}

		ce := utils.NewCommandExecutor("extract")
		var (
			buf     *pixel.Buffer
			det     grid.Detection
			res     *recognize.Result
			noWords bool
		)

		err = contextManager.RunWithTimeout(constants.GetTimeout("default"), func(ctx context.Context) error {
			return ce.ExecuteCommand([]utils.CommandStage{
				utils.NewCommandStage("decode", func() error {
					logging.LoadFile(info.Value)
					buf, err = loadImage(ctx, info.Value)
					return err
				}, map[string]interface{}{"image": info.Value}),
				utils.NewCommandStage("detect", func() error {
					det = grid.Detect(buf, appConfig.Detect)
					if det.BoundingBox.Fallback {
						logging.NoGridFound("recognizing the whole image")
					}
					return nil
				}, nil),
				utils.NewCommandStage("recognize", func() error {
					res, err = recognizeGrid(ctx, ce, buf, det, mode)
					// no words still produces a placeholder grid
					if errors.Is(err, recognize.ErrNoWordsFound) {
						noWords = true
						return nil
					}
					return err
				}, map[string]interface{}{"mode": string(mode)}),
			})
		})
		if err != nil {
			return classifyRecognizeError(err)
		}

		if cellErrs := res.CellErrors(); cellErrs != nil {
			cellErrs.Warn()
		}

		if extractJSON {
			if err := writeJSON(extractionOutput{
				Run:         ce.RunID,
				Image:       info.Value,
				Mode:        res.Mode,
				Tokens:      res.Tokens,
				BoundingBox: det.BoundingBox,
				Cells:       res.Cells,
				Words:       res.Words,
				NoWords:     noWords,
			}); err != nil {
				return err
			}
		} else if render.IsTerminal(os.Stdout) {
			fmt.Println(render.TokenGrid(res.Tokens, render.TerminalWidth(os.Stdout)))
		} else {
			fmt.Print(render.TokenLines(res.Tokens))
		}

		if output != "" {
			if err := filesystemWrite(output, []byte(render.TokenLines(res.Tokens))); err != nil {
				return err
			}
			logging.SaveFile(output, "tokens")
		}

		ce.FinishSuccess(map[string]interface{}{"mode": string(res.Mode), "noWords": noWords})
		if noWords {
			return utils.WithCode(recognize.ErrNoWordsFound, utils.ExitCodeNoWords)
		}
		logging.Complete("extract")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	ocr := config.DefaultOCR()
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "print tokens and per-cell results as JSON")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "also write the tokens to this file")
	extractCmd.Flags().String("mode", ocr.Mode, "recognition mode: cells or region")
	extractCmd.Flags().String("lang", ocr.Language, "Tesseract language")
	extractCmd.Flags().Duration("timeout", ocr.Timeout, "timeout for region recognition")
	extractCmd.Flags().Duration("cell-timeout", ocr.CellTimeout, "timeout for each cell")
	extractCmd.Flags().Int("concurrency", ocr.Concurrency, "cells recognized at once")
	extractCmd.Flags().Float64("min-confidence", ocr.MinConfidence, "drop words below this confidence (0-1)")
	extractCmd.Flags().Float64("scale", ocr.Scale, "upscale factor applied to crops")
	extractCmd.Flags().String("tess-config", ocr.TessConfig, "Tesseract config file read at engine init")

	viper.BindPFlag(config.KeyOCRMode, extractCmd.Flags().Lookup("mode"))
	viper.BindPFlag(config.KeyOCRLanguage, extractCmd.Flags().Lookup("lang"))
	viper.BindPFlag(config.KeyOCRTimeout, extractCmd.Flags().Lookup("timeout"))
	viper.BindPFlag(config.KeyOCRCellTimeout, extractCmd.Flags().Lookup("cell-timeout"))
	viper.BindPFlag(config.KeyOCRConcurrency, extractCmd.Flags().Lookup("concurrency"))
	viper.BindPFlag(config.KeyOCRMinConfidence, extractCmd.Flags().Lookup("min-confidence"))
	viper.BindPFlag(config.KeyOCRScale, extractCmd.Flags().Lookup("scale"))
	viper.BindPFlag(config.KeyOCRTessConfig, extractCmd.Flags().Lookup("tess-config"))
}

// recognizeGrid runs the configured engine over det
func recognizeGrid(ctx context.Context, ce *utils.CommandExecutor, buf *pixel.Buffer, det grid.Detection, mode recognize.Mode) (*recognize.Result, error) {
	engine := tesseract.New(tesseract.Config{
		Language:   appConfig.OCR.Language,
		ConfigFile: appConfig.OCR.TessConfig,
	})
	extractor := recognize.NewExtractor(engine, crop.NewCropper(appConfig.OCR.Scale), appConfig.ExtractOptions())
	extractor.SetLogger(ce.Logger)

	regions := grid.PuzzleCells
	if mode == recognize.ModeRegion {
		regions = 1
	}
	logging.Recognize(string(mode), regions)

	start := time.Now()
	res, err := extractor.Extract(ctx, buf, det, mode)
	ce.Logger.Debug("Recognition finished", "mode", mode, "duration", time.Since(start), "error", err)
	return res, err
}

// classifyRecognizeError attaches the exit code matching err
func classifyRecognizeError(err error) error {
	switch {
	case errors.Is(err, recognize.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return utils.WithCode(err, utils.ExitCodeTimeout)
	default:
		return err
	}
}
