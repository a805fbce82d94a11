package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stray-tracker",
	Short: "Campus stray animal tracker",
	Long: `Serves the public stray animal API: animal profiles, likes, trending animals,
sighting uploads and personality tag votes.

Tag votes are limited to one per address, animal and tag by an in memory bloom
filter. Other commands seed the animal store, check images against the upload
rules and estimate the false positive rate of a filter size.

Configuration is read from ST__ prefixed environment variables, e.g.
ST__VOTES__FILTER_CAPACITY=10000.
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
