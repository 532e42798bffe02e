package main

import (
	"fmt"
	"strings"

	"github.com/montage-edit/montage"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of montage",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("montage version %s\n", strings.TrimSpace(montage.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
