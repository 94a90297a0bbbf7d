package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Veraticus/lifecycle-profiles/internal/model"
)

// SaveMaterials upserts materials in a single transaction.
func (s *SQLiteStorage) SaveMaterials(ctx context.Context, materials []model.Material) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for i := range materials {
		if err := validateMaterial(&materials[i]); err != nil {
			return fmt.Errorf("material at index %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO materials (id, name, description, keywords, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			keywords = excluded.keywords,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, m := range materials {
		keywords := m.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		keywordsJSON, marshalErr := json.Marshal(keywords)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal keywords for %s: %w", m.ID, marshalErr)
		}

		if _, err := stmt.ExecContext(ctx, m.ID, m.Name, m.Description, string(keywordsJSON)); err != nil {
			return fmt.Errorf("failed to save material %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit materials: %w", err)
	}
	return nil
}

// GetMaterials returns every stored material ordered by ID.
func (s *SQLiteStorage) GetMaterials(ctx context.Context) ([]model.Material, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, keywords, updated_at
		FROM materials
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query materials: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var materials []model.Material
	for rows.Next() {
		var (
			m            model.Material
			keywordsJSON string
			updatedAt    time.Time
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &keywordsJSON, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		if err := json.Unmarshal([]byte(keywordsJSON), &m.Keywords); err != nil {
			return nil, fmt.Errorf("failed to unmarshal keywords for %s: %w", m.ID, err)
		}
		m.UpdatedAt = updatedAt
		materials = append(materials, m)
	}

	return materials, rows.Err()
}
