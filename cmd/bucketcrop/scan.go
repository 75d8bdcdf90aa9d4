package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bucketcrop/internal/batch"
)

var scanCmd = &cobra.Command{
	Use:   "scan <folder>",
	Short: "Count eligible images in a folder",
	Long:  `Pre-flight count of top-level files and image-eligible files in a dataset folder. Generated thumbnails are excluded. No files are decoded.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	header := color.New(color.FgCyan, color.Bold)

	stats, err := batch.Scan(args[0])
	if err != nil {
		return err
	}

	header.Printf("\n  %s\n", args[0])
	fmt.Println("  " + strings.Repeat("─", 40))
	fmt.Printf("  Total files:  %d\n", stats.TotalFiles)
	fmt.Printf("  Images:       %d\n", stats.ImageFiles)
	fmt.Printf("  Other:        %d\n", stats.TotalFiles-stats.ImageFiles)
	return nil
}
