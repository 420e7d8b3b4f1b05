// Command matchd runs the talent matching service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const app = "matchd"

var rootCmd = &cobra.Command{
	Use:   app,
	Short: "matchd matches creative gigs with freelance talent",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
