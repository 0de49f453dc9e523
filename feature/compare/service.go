package compare

import (
	"context"
	"errors"
	"fmt"

	"modpack-updater/core/diff"
	"modpack-updater/core/manifest"
	"modpack-updater/feature/servers"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrRegistryDisabled is returned by Server when no server registry is configured.
	ErrRegistryDisabled = errors.New("server registry is not enabled")
	// ErrNoManifest is returned when a server lacks a live or target manifest key.
	ErrNoManifest = errors.New("server has no manifest")
)

// ServerFinder looks up registered servers.
type ServerFinder interface {
	Get(ctx context.Context, id uint) (*servers.Server, error)
}

// UpdatePlan is what an update of one server has to do: the files to delete
// and add to reach the target version, and the user files that differ from it.
type UpdatePlan struct {
	Server         *servers.Server          `json:"server"`
	Changes        diff.ChangeList          `json:"changes"`
	Customizations diff.CustomizationReport `json:"customizations"`
}

// Service runs comparisons over stored manifests and local directories.
type Service struct {
	manifests ManifestLoader
	servers   ServerFinder
	manifest  *diff.ManifestComparator
	directory *diff.DirectoryComparator
	logger    *zap.Logger
}

// ManifestLoader loads manifests by object key.
type ManifestLoader = manifest.Loader

// NewService creates the compare service. finder may be nil when the registry is disabled.
func NewService(loader ManifestLoader, finder ServerFinder, opts diff.Options, logger *zap.Logger) (*Service, error) {
	mc, err := diff.NewManifestComparator(opts)
	if err != nil {
		return nil, err
	}
	dc, err := diff.NewDirectoryComparator(opts)
	if err != nil {
		return nil, err
	}
	return &Service{
		manifests: loader,
		servers:   finder,
		manifest:  mc,
		directory: dc,
		logger:    logger,
	}, nil
}

// Manifests returns the changes turning the left manifest into the right one.
func (s *Service) Manifests(ctx context.Context, leftKey, rightKey string) (*diff.ChangeList, error) {
	left, right, err := s.loadPair(ctx, leftKey, rightKey)
	if err != nil {
		return nil, err
	}
	return s.manifest.FindChanges(left, right)
}

// Customizations reports how the custom manifest departs from the original one.
func (s *Service) Customizations(ctx context.Context, customKey, originalKey string) (*diff.CustomizationReport, error) {
	custom, original, err := s.loadPair(ctx, customKey, originalKey)
	if err != nil {
		return nil, err
	}
	return s.manifest.FindCustomChanges(custom, original)
}

// Directories returns the changes turning the left tree into the right one.
func (s *Service) Directories(left, right string) (*diff.ChangeList, error) {
	return s.directory.Compare(left, right)
}

// DirectoryCustomizations reports how the custom tree departs from the original one.
func (s *Service) DirectoryCustomizations(custom, original string) (*diff.CustomizationReport, error) {
	return s.directory.FindCustomChanges(custom, original)
}

// Server plans the update of a registered server from its live manifest to its target manifest.
func (s *Service) Server(ctx context.Context, id uint) (*UpdatePlan, error) {
	if s.servers == nil {
		return nil, ErrRegistryDisabled
	}
	server, err := s.servers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if server.LiveManifest == "" || server.TargetManifest == "" {
		return nil, fmt.Errorf("%w: server %s needs both a live and a target manifest", ErrNoManifest, server.Name)
	}

	live, target, err := s.loadPair(ctx, server.LiveManifest, server.TargetManifest)
	if err != nil {
		return nil, err
	}
	d, err := s.manifest.Compare(live, target)
	if err != nil {
		return nil, fmt.Errorf("failed to compare manifests of server %s: %w", server.Name, err)
	}

	plan := &UpdatePlan{
		Server:         server,
		Changes:        diff.ManifestChanges(d),
		Customizations: diff.CustomManifestChanges(d),
	}
	s.logger.Info("Update planned",
		zap.String("server", server.Name),
		zap.Int("deletions", len(plan.Changes.Deletions)),
		zap.Int("additions", len(plan.Changes.Additions)),
		zap.Int("custom_files", len(plan.Customizations.CustomFiles)),
		zap.Int("edited_files", len(plan.Customizations.EditedFiles)),
	)
	return plan, nil
}

// loadPair fetches two manifests concurrently.
func (s *Service) loadPair(ctx context.Context, leftKey, rightKey string) ([]diff.FileRecord, []diff.FileRecord, error) {
	var left, right []diff.FileRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		left, err = s.manifests.Load(gctx, leftKey)
		return err
	})
	g.Go(func() error {
		var err error
		right, err = s.manifests.Load(gctx, rightKey)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return left, right, nil
}
