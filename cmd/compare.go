package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"modpack-updater/core/diff"
	"modpack-updater/core/manifest"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	customCompare  bool
	statsCompare   bool
	excludeCompare []string
)

// compareCmd is the parent command for local comparisons.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare directories or manifest files",
	Long: `Compare two local directories or two manifest files and print the result as JSON.

By default the result is the change list turning the first argument into the second.
With --custom the first argument is treated as the customized copy and the result
reports custom, missing and edited files instead.`,
}

var compareDirsCmd = &cobra.Command{
	Use:   "dirs <left> <right>",
	Short: "Compare two directory trees",
	Long: `Compare two directory trees by size and content.

Examples:
  # Files to delete and add to turn ./live into ./pack
  compare dirs ./live ./pack

  # User customizations of a server install, ignoring logs
  compare dirs ./live ./pack --custom --exclude 'logs/**'

  # Raw diff entries and statistics
  compare dirs ./live ./pack --stats`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, l, err := compareOptions()
		if err != nil {
			return err
		}
		defer l.Sync()
		return runCompareDirs(cmd.OutOrStdout(), opts, args[0], args[1])
	},
}

var compareManifestsCmd = &cobra.Command{
	Use:   "manifests <left.json> <right.json>",
	Short: "Compare two manifest files",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, l, err := compareOptions()
		if err != nil {
			return err
		}
		defer l.Sync()
		return runCompareManifests(cmd.OutOrStdout(), opts, args[0], args[1])
	},
}

func init() {
	compareCmd.PersistentFlags().BoolVar(&customCompare, "custom", false, "Report customizations of the left side instead of a change list")
	compareDirsCmd.Flags().BoolVar(&statsCompare, "stats", false, "Print raw diff entries and statistics")
	compareDirsCmd.Flags().StringSliceVar(&excludeCompare, "exclude", nil, "Doublestar glob to ignore (repeatable)")

	compareCmd.AddCommand(compareDirsCmd)
	compareCmd.AddCommand(compareManifestsCmd)
	RootCmd.AddCommand(compareCmd)
}

// compareOptions builds engine options from configuration and flags.
func compareOptions() (diff.Options, *zap.Logger, error) {
	cfg, l, err := loadRuntime()
	if err != nil {
		return diff.Options{}, nil, err
	}
	opts := cfg.Compare.Options(l)
	opts.Exclude = append(opts.Exclude, excludeCompare...)
	return opts, l, nil
}

func runCompareDirs(out io.Writer, opts diff.Options, left, right string) error {
	c, err := diff.NewDirectoryComparator(opts)
	if err != nil {
		return err
	}

	var result any
	switch {
	case statsCompare:
		result, err = c.Diff(left, right)
	case customCompare:
		result, err = c.FindCustomChanges(left, right)
	default:
		result, err = c.Compare(left, right)
	}
	if err != nil {
		return err
	}
	return writeJSON(out, result)
}

func runCompareManifests(out io.Writer, opts diff.Options, leftPath, rightPath string) error {
	decoder := manifest.Decoder{Policy: opts.InvalidRecords, Logger: loggerOf(opts)}
	left, err := readManifest(decoder, leftPath)
	if err != nil {
		return err
	}
	right, err := readManifest(decoder, rightPath)
	if err != nil {
		return err
	}

	c, err := diff.NewManifestComparator(opts)
	if err != nil {
		return err
	}

	var result any
	if customCompare {
		result, err = c.FindCustomChanges(left, right)
	} else {
		result, err = c.FindChanges(left, right)
	}
	if err != nil {
		return err
	}
	return writeJSON(out, result)
}

func readManifest(decoder manifest.Decoder, path string) ([]diff.FileRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &diff.FileSystemError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()
	return decoder.Decode(f, path)
}

func loggerOf(opts diff.Options) *zap.Logger {
	if l, ok := opts.Logger.(*zap.Logger); ok {
		return l
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
