package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var bucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "List the active bucket catalog",
	Long:  `Show the aspect-ratio buckets available for processing, in selection-priority order.`,
	RunE:  runBuckets,
}

func init() {
	rootCmd.AddCommand(bucketsCmd)
}

func runBuckets(cmd *cobra.Command, args []string) error {
	catalog, err := activeCatalog()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "Width", "Height", "Ratio"})
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, b := range catalog {
		table.Append([]string{
			b.Name,
			fmt.Sprintf("%d", b.Width),
			fmt.Sprintf("%d", b.Height),
			fmt.Sprintf("%.4f", b.Ratio()),
		})
	}
	table.Render()
	return nil
}
