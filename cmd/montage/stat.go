package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/montage-edit/montage/pkg/core"
)

var statCmd = &cobra.Command{
	Use:   "stat <file>",
	Short: "Print a timeline's tree with resolved placements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tl, err := readTimeline(args[0])
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		defer w.Flush()

		duration, err := tl.Duration()
		if err == nil {
			fmt.Fprintf(w, "Timeline\t%s\t%gs\n", tl.Name(), duration.ToSeconds())
		} else {
			fmt.Fprintf(w, "Timeline\t%s\t(no duration: %v)\n", tl.Name(), err)
		}

		return printTree(w, tl.Tracks(), 1)
	},
}

func printTree(w *tabwriter.Writer, container core.Container, depth int) error {
	for index := 0; index < container.Len(); index++ {
		child, err := container.At(index)
		if err != nil {
			return err
		}

		placement := "?"
		if r, err := container.RangeOfChildAtIndex(index); err == nil {
			placement = fmt.Sprintf("[%g, %g)", r.StartTime.ToSeconds(), r.EndTimeExclusive().ToSeconds())
		}
		trimmed := ""
		if container.SourceRange() != nil {
			switch r, err := container.TrimmedRangeOfChildAtIndex(index); {
			case err == nil && r == nil:
				trimmed = "trimmed out"
			case err == nil:
				trimmed = fmt.Sprintf("trimmed [%g, %g)", r.StartTime.ToSeconds(), r.EndTimeExclusive().ToSeconds())
			}
		}

		fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n",
			strings.Repeat("  ", depth), child.Kind(), child.Name(), placement, trimmed)

		if nested, ok := child.(core.Container); ok {
			if err := printTree(w, nested, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(statCmd)
}
