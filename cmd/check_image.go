package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	st "github.com/nsac-nust/stray-tracker/settings"
	"github.com/nsac-nust/stray-tracker/uploads"
)

// printVerdict prints how a sighting upload of the named file would be treated.
func printVerdict(out io.Writer, checker *uploads.Store, name string) {
	f, err := os.Open(name)
	if err != nil {
		fmt.Fprintf(out, "*Unable to open: %s (%v)\n", name, err)
		return
	}
	defer f.Close()
	data, _, err := checker.Validate(filepath.Base(name), f)
	if err != nil {
		fmt.Fprintf(out, "%s\t\trejected\t%v\n", name, err)
		return
	}
	fmt.Fprintf(out, "%s\t\taccepted\t%s\n", name, mimetype.Detect(data).String())
}

// runCheckImage walks the directory tree, printing a verdict for each file encountered.
func runCheckImage(out io.Writer, args []string) {
	checker := uploads.NewStore(st.Uploads.Path, int64(st.Uploads.MaxBytes), st.Uploads.AllowedExtensions)
	for _, name := range args {
		fi, err := os.Stat(name)
		if err != nil {
			fmt.Fprintf(out, "*Unable to stat: %s (%v)\n", name, err)
			continue
		}
		if !fi.IsDir() {
			printVerdict(out, checker, name)
			continue
		}
		err = filepath.Walk(name, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.Mode().IsRegular() {
				printVerdict(out, checker, path)
			}
			return nil
		})
		if err != nil {
			fmt.Fprintf(out, "*Unable to walk dir: %s (%v)\n", name, err)
		}
	}
}

var checkImageCmd = &cobra.Command{
	Use:   "check-image <dir/path>...",
	Short: "Check files against the sighting upload rules",
	Long: `Scans one or more files or directories and prints whether each file would be
accepted as a sighting image, with the sniffed content type or the reason it was rejected.`,
	Args: cobra.MatchAll(cobra.MinimumNArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		runCheckImage(os.Stdout, args)
	},
}

func init() {
	rootCmd.AddCommand(checkImageCmd)
}
