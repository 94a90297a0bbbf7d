package config

import (
	"fmt"
	"strings"

	"github.com/Veraticus/lifecycle-profiles/internal/common"
	"github.com/spf13/viper"
)

// Defaults.
const (
	DefaultDatabasePath    = "$HOME/.local/share/lcaprof/lcaprof.db"
	DefaultAnchor          = "MATERIAL_LIFECYCLE_PROFILES"
	DefaultMaterialsAnchor = "MATERIAL_PALETTE"
)

// ProfilesConfig holds the settings for profile generation.
type ProfilesConfig struct {
	DatabasePath    string
	Anchor          string
	MaterialsAnchor string
	Target          string
	Materials       string
}

// LoadProfilesConfig reads profile settings from viper (config file or
// LCAPROF_ environment variables), falling back to defaults.
func LoadProfilesConfig(v *viper.Viper) (*ProfilesConfig, error) {
	if v == nil {
		v = viper.GetViper()
	}

	cfg := ProfilesConfig{
		DatabasePath:    DefaultDatabasePath,
		Anchor:          DefaultAnchor,
		MaterialsAnchor: DefaultMaterialsAnchor,
	}

	if s := v.GetString("database.path"); s != "" {
		cfg.DatabasePath = s
	}
	if s := v.GetString("profiles.anchor"); s != "" {
		cfg.Anchor = s
	}
	if s := v.GetString("profiles.materials_anchor"); s != "" {
		cfg.MaterialsAnchor = s
	}
	cfg.Target = v.GetString("profiles.target")
	cfg.Materials = v.GetString("profiles.materials")

	cfg.DatabasePath = ExpandPath(cfg.DatabasePath)
	cfg.Target = ExpandPath(cfg.Target)
	cfg.Materials = ExpandPath(cfg.Materials)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks both anchors are usable identifiers.
func (c ProfilesConfig) Validate() error {
	if err := validateIdentifier("profiles.anchor", c.Anchor); err != nil {
		return err
	}
	return validateIdentifier("profiles.materials_anchor", c.MaterialsAnchor)
}

func validateIdentifier(key, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is empty", common.ErrInvalidConfig, key)
	}
	for _, r := range value {
		if !(r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return fmt.Errorf("%w: %s %q is not an identifier", common.ErrInvalidConfig, key, value)
		}
	}
	return nil
}
