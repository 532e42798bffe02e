package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/montage-edit/montage"
	"github.com/montage-edit/montage/pkg/encoding"
	"github.com/montage-edit/montage/pkg/registry"
)

var catCmd = &cobra.Command{
	Use:   "cat <file>",
	Short: "Read a timeline document and re-emit it normalized",
	Long:  `Reads a timeline document (JSON or YAML, detected by extension) and prints it in the requested format.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		tl, err := readTimeline(args[0])
		if err != nil {
			return err
		}

		var out []byte
		switch format {
		case "json":
			out, err = encoding.Marshal(tl)
		case "yaml":
			out, err = encoding.MarshalYAML(tl)
		default:
			return fmt.Errorf("unknown format %q (want json or yaml)", format)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	},
}

// readTimeline loads and decodes a timeline file, picking the codec from the
// file extension.
func readTimeline(path string) (*montage.Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return encoding.UnmarshalYAML(data, registry.Default())
	default:
		return encoding.Unmarshal(data, registry.Default())
	}
}

func init() {
	catCmd.Flags().String("format", "json", "Output format: json or yaml")
	rootCmd.AddCommand(catCmd)
}
