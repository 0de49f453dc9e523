package servers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"modpack-updater/core/database"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no server has the requested id.
var ErrNotFound = errors.New("server not found")

// Repository persists servers with GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the servers table.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&Server{}); err != nil {
		return fmt.Errorf("failed to migrate servers table: %w", err)
	}
	return nil
}

// CheckSchema verifies an externally managed servers table has the columns the updater reads.
func (r *Repository) CheckSchema() error {
	missing, err := database.MissingColumns(r.db, Server{}.TableName(), requiredColumns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("servers table is missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// List returns every server ordered by id.
func (r *Repository) List(ctx context.Context) ([]Server, error) {
	servers := make([]Server, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&servers).Error; err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}
	return servers, nil
}

// Get returns the server with id or ErrNotFound.
func (r *Repository) Get(ctx context.Context, id uint) (*Server, error) {
	var server Server
	err := r.db.WithContext(ctx).First(&server, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get server %d: %w", id, err)
	}
	return &server, nil
}

// Save inserts or updates server.
func (r *Repository) Save(ctx context.Context, server *Server) error {
	if err := r.db.WithContext(ctx).Save(server).Error; err != nil {
		return fmt.Errorf("failed to save server %s: %w", server.Name, err)
	}
	return nil
}
