package servers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	repo        *Repository
	handler     *Handler
	autoMigrate bool
	logger      *zap.Logger
}

// NewFeature creates the server registry feature. A nil db disables it.
func NewFeature(db *gorm.DB, autoMigrate bool, logger *zap.Logger) *Feature {
	f := &Feature{autoMigrate: autoMigrate, logger: logger}
	if db != nil {
		f.repo = NewRepository(db)
		f.handler = NewHandler(f.repo, logger)
	}
	return f
}

// Repository returns the underlying repository, nil when the feature is disabled.
func (f *Feature) Repository() *Repository {
	return f.repo
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "servers"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.repo != nil
}

// Load prepares the schema and registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	if f.autoMigrate {
		if err := f.repo.Migrate(); err != nil {
			return err
		}
	} else if err := f.repo.CheckSchema(); err != nil {
		return err
	}
	f.handler.RegisterRoutes(app)
	return nil
}
