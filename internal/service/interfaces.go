// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/lifecycle-profiles/internal/model"
)

// ProfileStore defines the contract for our persistence layer.
type ProfileStore interface {
	// Material operations
	SaveMaterials(ctx context.Context, materials []model.Material) error
	GetMaterials(ctx context.Context) ([]model.Material, error)

	// Profile operations
	SaveProfileRecords(ctx context.Context, records []model.ProfileRecord) error
	GetProfileRecord(ctx context.Context, materialID string) (*model.ProfileRecord, error)
	ProfileIDs(ctx context.Context) (map[string]bool, error)
	CountByCategory(ctx context.Context) (map[model.Category]int, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
