package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the contour version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("contour", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
