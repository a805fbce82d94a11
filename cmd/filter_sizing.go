package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nsac-nust/stray-tracker/dedupe"
	st "github.com/nsac-nust/stray-tracker/settings"
)

var sizingCapacity uint64
var sizingHashCount uint
var sizingKeys uint64
var sizingProbes uint64

// runFilterSizing fills a real filter with keys and counts how many unseen probes it claims to contain.
func runFilterSizing(out io.Writer, capacity uint64, hashCount uint, keys uint64, probes uint64) error {
	if capacity == 0 || hashCount == 0 {
		return fmt.Errorf("capacity and hash count must be positive")
	}
	f := dedupe.New(capacity, hashCount)
	for i := uint64(0); i < keys; i++ {
		f.Insert(dedupe.Key("member", fmt.Sprint(i)))
	}
	hits := uint64(0)
	for i := uint64(0); i < probes; i++ {
		if f.Contains(dedupe.Key("probe", fmt.Sprint(i))) {
			hits++
		}
	}
	simulated := 0.0
	if probes > 0 {
		simulated = float64(hits) / float64(probes)
	}
	fmt.Fprintf(out, "capacity\t%d\n", capacity)
	fmt.Fprintf(out, "hash count\t%d\n", hashCount)
	fmt.Fprintf(out, "keys\t%d\n", keys)
	fmt.Fprintf(out, "bits set\t%d (%.1f%%)\n", f.SetBits(), 100*float64(f.SetBits())/float64(capacity))
	fmt.Fprintf(out, "theoretical false positive rate\t%.6f\n", dedupe.FalsePositiveRate(capacity, hashCount, keys))
	fmt.Fprintf(out, "simulated false positive rate\t%.6f (%d of %d probes)\n", simulated, hits, probes)
	if keys > 0 {
		fmt.Fprintf(out, "best hash count for this capacity\t%d\n", dedupe.OptimalHashCount(capacity, keys))
		fmt.Fprintf(out, "capacity for a 1%% rate\t%d\n", dedupe.OptimalCapacity(keys, 0.01))
	}
	return nil
}

var filterSizingCmd = &cobra.Command{
	Use:   "filter-sizing",
	Short: "Estimate the duplicate vote filter's false positive rate",
	Long: `Prints the theoretical false positive rate for a vote filter holding a number
of votes, and the rate observed by filling a real filter and probing it with unseen keys.
Defaults are taken from the current vote filter settings.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runFilterSizing(os.Stdout, sizingCapacity, sizingHashCount, sizingKeys, sizingProbes); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(filterSizingCmd)
	filterSizingCmd.Flags().Uint64Var(&sizingCapacity, "capacity", st.Votes.FilterCapacity, "Number of bits in the filter")
	filterSizingCmd.Flags().UintVar(&sizingHashCount, "hash-count", st.Votes.FilterHashCount, "Positions set per key")
	filterSizingCmd.Flags().Uint64Var(&sizingKeys, "keys", 1000, "Distinct votes inserted before probing")
	filterSizingCmd.Flags().Uint64Var(&sizingProbes, "probes", 10000, "Unseen keys to probe with")
}
