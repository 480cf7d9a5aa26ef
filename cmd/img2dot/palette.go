package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wbrown/img2dot"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "List the plotter inks and their matrix indices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for i, ink := range img2dot.DefaultPalette() {
			note := ""
			if i == img2dot.Background {
				note = "  (background, not printed)"
			}
			fmt.Fprintf(out, "%d %-7s #%02x%02x%02x%s\n", i, ink.Name,
				ink.Color.R, ink.Color.G, ink.Color.B, note)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(paletteCmd)
}
