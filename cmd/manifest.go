package cmd

import (
	"context"
	"fmt"
	"os"

	"modpack-updater/core/config"
	"modpack-updater/core/diff"
	"modpack-updater/core/manifest"
	"modpack-updater/core/storage"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outputManifest  string
	excludeManifest []string
)

// manifestCmd is the parent command for manifest operations.
var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Build and publish pack manifests",
}

var manifestBuildCmd = &cobra.Command{
	Use:   "build <dir>",
	Short: "Generate a manifest from a directory",
	Long: `Walk a directory and write one record (path, name, sha1, size) per file.

Examples:
  manifest build ./pack -o atm9-0.2.2.json
  manifest build ./server --exclude 'logs/**' --exclude 'world/**'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := os.Stat(args[0])
		if err != nil {
			return &diff.FileSystemError{Op: "stat", Path: args[0], Err: err}
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", args[0])
		}

		records, err := manifest.Build(osfs.New(args[0]), manifest.BuildOptions{Exclude: excludeManifest})
		if err != nil {
			return err
		}

		if outputManifest == "" {
			return manifest.Encode(cmd.OutOrStdout(), records)
		}
		return writeManifestFile(outputManifest, records)
	},
}

// writeManifestFile encodes records into path, including close failures.
func writeManifestFile(path string, records []diff.FileRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := manifest.Encode(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

var manifestPushCmd = &cobra.Command{
	Use:   "push <file> <key>",
	Short: "Validate a manifest file and upload it to storage",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, l, err := openManifestStore()
		if err != nil {
			return err
		}
		defer l.Sync()

		records, err := readManifest(manifest.Decoder{Policy: diff.RejectInvalid}, args[0])
		if err != nil {
			return err
		}

		ctx := context.Background()
		if err := store.EnsureBucket(ctx); err != nil {
			return err
		}
		return store.Save(ctx, args[1], records)
	},
}

var manifestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored manifests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, l, err := openManifestStore()
		if err != nil {
			return err
		}
		defer l.Sync()

		keys, err := store.List(context.Background(), cfg.Manifest.Prefix)
		if err != nil {
			return err
		}
		l.Info("Stored manifests", zap.Int("count", len(keys)))
		return writeJSON(cmd.OutOrStdout(), keys)
	},
}

func init() {
	manifestBuildCmd.Flags().StringVarP(&outputManifest, "output", "o", "", "Write the manifest to a file instead of stdout")
	manifestBuildCmd.Flags().StringSliceVar(&excludeManifest, "exclude", nil, "Doublestar glob to ignore (repeatable)")

	manifestCmd.AddCommand(manifestBuildCmd)
	manifestCmd.AddCommand(manifestPushCmd)
	manifestCmd.AddCommand(manifestListCmd)
	RootCmd.AddCommand(manifestCmd)
}

func openManifestStore() (*config.Config, *manifest.Store, *zap.Logger, error) {
	cfg, l, err := loadRuntime()
	if err != nil {
		return nil, nil, nil, err
	}
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, nil, err
	}
	store := manifest.NewStore(client, cfg.Storage.Bucket, diff.RecordPolicy(cfg.Compare.InvalidRecords), l)
	return cfg, store, l, nil
}
