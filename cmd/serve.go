package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nsac-nust/stray-tracker/dedupe"
	"github.com/nsac-nust/stray-tracker/restapi"
	st "github.com/nsac-nust/stray-tracker/settings"
	"github.com/nsac-nust/stray-tracker/uploads"
)

// newVoteFilter builds the shared tag vote filter, rotating it when an interval is configured.
func newVoteFilter(ctx context.Context) dedupe.Membership {
	build := func() *dedupe.Filter {
		return dedupe.New(st.Votes.FilterCapacity, st.Votes.FilterHashCount)
	}
	if st.Votes.FilterRotateInterval <= 0 {
		return build()
	}
	rotating := dedupe.NewRotating(build)
	go rotating.Run(ctx, st.Votes.FilterRotateInterval)
	return rotating
}

func runServe(ctx context.Context) error {
	store, closeStore, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()
	if err := seedStore(ctx, store, st.Store.SeedFile); err != nil {
		return err
	}

	var recent *dedupe.Recent
	if st.Likes.RecentCacheBytes > 0 {
		recent = dedupe.NewRecent(uint64(st.Likes.RecentCacheBytes))
	}
	up := uploads.NewStore(st.Uploads.Path, int64(st.Uploads.MaxBytes), st.Uploads.AllowedExtensions)
	server, err := restapi.NewServer(ctx, store, newVoteFilter(ctx), recent, up)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              st.Settings.ListenAddr,
		Handler:           server.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()
	st.Logger.Info().
		Str("addr", st.Settings.ListenAddr).
		Uint64("filter_capacity", st.Votes.FilterCapacity).
		Uint("filter_hash_count", st.Votes.FilterHashCount).
		Dur("filter_rotate_interval", st.Votes.FilterRotateInterval).
		Str("store", st.Store.Backend).
		Msg("serving")

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	st.Logger.Info().Msg("shutting down, tag vote history will be lost")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Launch the stray tracker api",
	Long:  `Starts the HTTP server, seeding an empty animal store first.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := runServe(ctx); err != nil {
			st.Logger.Fatal().Err(err).Msg("serve failed")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
