package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wbrown/img2dot"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [matrix]",
	Short: "Validate a matrix file and show ink usage",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().String("ink", "", "Also list the cells printed with this ink (name or index)")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	m, err := img2dot.LoadMatrix(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	palette := img2dot.DefaultPalette()
	if err := m.Validate(palette); err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	total := m.Rows() * m.Cols()
	fmt.Fprintf(out, "File:        %s\n", path)
	fmt.Fprintf(out, "Grid:        %d x %d\n", m.Cols(), m.Rows())
	fmt.Fprintf(out, "Print cells: %d of %d\n", m.PrintCells(), total)

	counts := m.Counts()
	for i, ink := range palette {
		n := 0
		if i < len(counts) {
			n = counts[i]
		}
		fmt.Fprintf(out, "  %d %-7s %5d\n", i, ink.Name, n)
	}

	inkName, _ := cmd.Flags().GetString("ink")
	if inkName == "" {
		return nil
	}
	idx, err := inkIndex(palette, inkName)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Cells with %s:\n", palette[idx].Name)
	for y, row := range m {
		for x, v := range row {
			if int(v) == idx {
				fmt.Fprintf(out, "  row %d col %d\n", y, x)
			}
		}
	}
	return nil
}

// inkIndex accepts an ink name or its decimal index.
func inkIndex(p img2dot.Palette, s string) (int, error) {
	if i, ok := p.Index(s); ok {
		return i, nil
	}
	if i, err := strconv.Atoi(s); err == nil && i >= 0 && i < len(p) {
		return i, nil
	}
	return 0, fmt.Errorf("%w: unknown ink %q", img2dot.ErrInvalidPalette, s)
}
