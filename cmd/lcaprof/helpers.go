package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/lifecycle-profiles/internal/classification"
	"github.com/Veraticus/lifecycle-profiles/internal/common"
	"github.com/Veraticus/lifecycle-profiles/internal/config"
	"github.com/Veraticus/lifecycle-profiles/internal/profile"
	"github.com/Veraticus/lifecycle-profiles/internal/service"
	"github.com/Veraticus/lifecycle-profiles/internal/storage"
	"github.com/spf13/viper"
)

// loadConfig reads the profile settings from the global viper instance.
func loadConfig() (*config.ProfilesConfig, error) {
	return config.LoadProfilesConfig(viper.GetViper())
}

// initStorage opens and migrates the profile store.
func initStorage(ctx context.Context, dbPath string) (service.ProfileStore, error) {
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func closeStorage(store service.ProfileStore) {
	if err := store.Close(); err != nil {
		common.LogError(err, "Failed to close database", nil)
	}
}

// newPipeline builds the classifier and synthesizer, checking that the
// profile table covers every category the classifier can return.
func newPipeline() (*classification.Classifier, *profile.Synthesizer, error) {
	classifier, err := classification.NewDefaultClassifier()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build classifier: %w", err)
	}

	synthesizer, err := profile.NewSynthesizer(profile.DefaultTable(), classifier.Categories())
	if err != nil {
		return nil, nil, fmt.Errorf("profile table does not match classifier: %w", err)
	}

	return classifier, synthesizer, nil
}

// writeFileAtomic replaces path with data via a temporary file in the same
// directory, keeping the original permissions.
func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	return os.Rename(tmpName, path)
}
