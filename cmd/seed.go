package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	st "github.com/nsac-nust/stray-tracker/settings"
)

var seedFile string
var seedDryRun bool

func runSeed(ctx context.Context) error {
	seed, err := loadSeed(seedFile)
	if err != nil {
		return err
	}
	if seedDryRun {
		for _, a := range seed {
			fmt.Printf("%s\t%s\t%s\t%v\n", a.Name, a.Sector, a.HealthStatus, a.PersonalityTags)
		}
		return nil
	}
	if st.Store.Backend == "memory" {
		st.Logger.Warn().Msg("seeding the memory store has no effect outside of this process")
	}
	store, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()
	if err := seedStore(ctx, store, seedFile); err != nil {
		return err
	}
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("store holds %d animals\n", count)
	return nil
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load seed animals into an empty store",
	Long: `Writes the seed animals into the configured store if it holds no animals yet.
Without --file the animals bundled with the binary are used.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSeed(cmd.Context()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVar(&seedFile, "file", st.Store.SeedFile, "Seed yaml to load")
	seedCmd.Flags().BoolVar(&seedDryRun, "dry-run", false, "Print the parsed animals without writing them")
}
