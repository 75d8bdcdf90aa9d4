package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"bucketcrop/internal/batch"
	"bucketcrop/internal/fill"
	"bucketcrop/internal/fitplan"
)

var (
	outputDir     string
	bucketNames   []string
	modeName      string
	fillName      string
	fillColorHex  string
	maxSide       int
	skipUnchanged bool
	quality       int
)

var processCmd = &cobra.Command{
	Use:   "process <folder>",
	Short: "Normalize a folder of images against the bucket catalog",
	Long: `Process every top-level image in the folder: select the best-fit aspect
bucket, crop or pad to its ratio, optionally clamp the longest side, and
write the result. Without --output the originals are overwritten in place.
Interrupt with Ctrl-C to stop at the next file boundary; files already
written are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Target folder (default: overwrite in place)")
	processCmd.Flags().StringSliceVarP(&bucketNames, "buckets", "b", nil, "Bucket names to consider (default: whole catalog)")
	processCmd.Flags().StringVarP(&modeName, "mode", "m", "crop", "Fit mode: crop or pad")
	processCmd.Flags().StringVar(&fillName, "fill", "solid", "Pad fill: solid, white, blur, or mirror")
	processCmd.Flags().StringVar(&fillColorHex, "fill-color", "#000000", "Solid fill color (#RRGGBB or #RRGGBBAA)")
	processCmd.Flags().IntVar(&maxSide, "max-side", 0, "Clamp the longest output side to this many pixels (0 = no clamp)")
	processCmd.Flags().BoolVar(&skipUnchanged, "skip-unchanged", false, "Skip files whose output is already up to date")
	processCmd.Flags().IntVarP(&quality, "quality", "q", 0, "Lossy encode quality (default 90)")
}

func runProcess(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions(args[0])
	if err != nil {
		return err
	}

	stats, err := batch.Scan(opts.SourceDir)
	if err != nil {
		return err
	}
	if stats.ImageFiles == 0 {
		color.Yellow("  No eligible images in %s\n", opts.SourceDir)
		return nil
	}

	color.New(color.FgCyan, color.Bold).Printf("\n  PROCESSING %d IMAGES (%s mode)\n", stats.ImageFiles, opts.Mode)
	fmt.Println("  " + strings.Repeat("─", 40))

	bar := progressbar.NewOptions(stats.ImageFiles,
		progressbar.OptionSetDescription("  Processing"),
		progressbar.OptionShowCount(),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	processor := batch.New(log.Logger)
	result, err := processor.Run(ctx, opts, func(p batch.Progress) {
		bar.Add(1)
	})
	if err != nil {
		return err
	}

	fmt.Println()
	if ctx.Err() != nil {
		color.Yellow("\n  Cancelled after %d of %d files\n", result.Total(), stats.ImageFiles)
	}

	fmt.Println()
	color.Green("  Succeeded: %d", result.Succeeded)
	if result.Failed > 0 {
		color.Red("  Failed:    %d", result.Failed)
	} else {
		fmt.Printf("  Failed:    %d\n", result.Failed)
	}
	fmt.Printf("  Skipped:   %d\n", result.Skipped)
	return nil
}

func buildOptions(sourceDir string) (batch.Options, error) {
	catalog, err := activeCatalog()
	if err != nil {
		return batch.Options{}, err
	}

	selected := catalog
	if len(bucketNames) > 0 {
		if selected, err = catalog.Select(bucketNames...); err != nil {
			return batch.Options{}, err
		}
	}

	var mode fitplan.Mode
	switch strings.ToLower(modeName) {
	case "crop":
		mode = fitplan.ModeCrop
	case "pad":
		mode = fitplan.ModePad
	default:
		return batch.Options{}, fmt.Errorf("unknown fit mode %q", modeName)
	}

	opts := batch.Options{
		SourceDir:      sourceDir,
		TargetDir:      outputDir,
		Buckets:        selected,
		Mode:           mode,
		MaxLongestSide: maxSide,
		SkipUnchanged:  skipUnchanged,
		Quality:        quality,
	}

	if mode == fitplan.ModePad {
		fillMode, err := fill.ParseMode(fillName)
		if err != nil {
			return batch.Options{}, err
		}
		fillColor, err := fill.ParseHexColor(fillColorHex)
		if err != nil {
			return batch.Options{}, err
		}
		opts.Fill = &fill.Options{Mode: fillMode, Color: fillColor}
	}

	return opts, nil
}
