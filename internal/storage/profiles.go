package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/lifecycle-profiles/internal/model"
)

// ErrNotFound is returned when a profile does not exist.
var ErrNotFound = errors.New("not found")

// SaveProfileRecords upserts records in one transaction. An existing profile
// for the same material is replaced.
func (s *SQLiteStorage) SaveProfileRecords(ctx context.Context, records []model.ProfileRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for i := range records {
		if err := validateRecord(&records[i]); err != nil {
			return fmt.Errorf("record at index %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range records {
		if err := saveProfileRecordTx(ctx, tx, r); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit profiles: %w", err)
	}
	return nil
}

func saveProfileRecordTx(ctx context.Context, tx *sql.Tx, r model.ProfileRecord) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO lifecycle_profiles (material_id, category)
		VALUES (?, ?)
		ON CONFLICT(material_id) DO UPDATE SET
			category = excluded.category,
			updated_at = CURRENT_TIMESTAMP
	`, r.MaterialID, string(r.Category))
	if err != nil {
		return fmt.Errorf("failed to save profile %s: %w", r.MaterialID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM profile_phases WHERE material_id = ?`, r.MaterialID); err != nil {
		return fmt.Errorf("failed to clear phases for %s: %w", r.MaterialID, err)
	}

	for i, pr := range r.Phases {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO profile_phases (material_id, phase, position, impact, confidence)
			VALUES (?, ?, ?, ?, ?)
		`, r.MaterialID, string(pr.Phase), i, pr.Impact, string(pr.Confidence))
		if err != nil {
			return fmt.Errorf("failed to save phase %s for %s: %w", pr.Phase, r.MaterialID, err)
		}
	}

	return nil
}

// GetProfileRecord returns the stored record for materialID.
func (s *SQLiteStorage) GetProfileRecord(ctx context.Context, materialID string) (*model.ProfileRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(materialID, "materialID"); err != nil {
		return nil, err
	}

	record := model.ProfileRecord{MaterialID: materialID}
	var category string
	err := s.db.QueryRowContext(ctx,
		`SELECT category FROM lifecycle_profiles WHERE material_id = ?`,
		materialID).Scan(&category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", materialID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile %s: %w", materialID, err)
	}
	record.Category = model.Category(category)

	rows, err := s.db.QueryContext(ctx, `
		SELECT phase, impact, confidence
		FROM profile_phases
		WHERE material_id = ?
		ORDER BY position
	`, materialID)
	if err != nil {
		return nil, fmt.Errorf("failed to query phases for %s: %w", materialID, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			pr         model.PhaseRating
			phase      string
			confidence string
		)
		if err := rows.Scan(&phase, &pr.Impact, &confidence); err != nil {
			return nil, fmt.Errorf("failed to scan phase: %w", err)
		}
		pr.Phase = model.Phase(phase)
		pr.Confidence = model.Confidence(confidence)
		record.Phases = append(record.Phases, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &record, nil
}

// ProfileIDs returns the IDs of every material with a stored profile.
func (s *SQLiteStorage) ProfileIDs(ctx context.Context) (map[string]bool, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT material_id FROM lifecycle_profiles`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profile IDs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan profile ID: %w", err)
		}
		ids[id] = true
	}

	return ids, rows.Err()
}

// CountByCategory returns how many stored profiles fall in each category.
func (s *SQLiteStorage) CountByCategory(ctx context.Context) (map[model.Category]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*)
		FROM lifecycle_profiles
		GROUP BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[model.Category]int)
	for rows.Next() {
		var (
			category string
			n        int
		)
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[model.Category(category)] = n
	}

	return counts, rows.Err()
}
