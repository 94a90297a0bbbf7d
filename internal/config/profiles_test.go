package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/lifecycle-profiles/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfilesConfig_Defaults(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("HOME", home)

	cfg, err := LoadProfilesConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "MATERIAL_LIFECYCLE_PROFILES", cfg.Anchor)
	assert.Equal(t, "MATERIAL_PALETTE", cfg.MaterialsAnchor)
	assert.Equal(t, filepath.Join(home, ".local/share/lcaprof/lcaprof.db"), cfg.DatabasePath)
	assert.Empty(t, cfg.Target)
}

func TestLoadProfilesConfig_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("database.path", "/tmp/profiles.db")
	v.Set("profiles.anchor", "MATERIAL_LCA")
	v.Set("profiles.materials_anchor", "SAMPLE_MATERIALS")
	v.Set("profiles.target", "~/app/src/constants.ts")

	cfg, err := LoadProfilesConfig(v)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/profiles.db", cfg.DatabasePath)
	assert.Equal(t, "MATERIAL_LCA", cfg.Anchor)
	assert.Equal(t, "SAMPLE_MATERIALS", cfg.MaterialsAnchor)
	assert.Equal(t, filepath.Join(home, "app/src/constants.ts"), cfg.Target)
}

func TestLoadProfilesConfig_Environment(t *testing.T) {
	t.Setenv("LCAPROF_PROFILES_ANCHOR", "FROM_ENV")

	v := viper.New()
	v.SetEnvPrefix("LCAPROF")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	cfg, err := LoadProfilesConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "FROM_ENV", cfg.Anchor)
}

func TestProfilesConfig_Validate(t *testing.T) {
	valid := ProfilesConfig{Anchor: DefaultAnchor, MaterialsAnchor: DefaultMaterialsAnchor}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		cfg  ProfilesConfig
	}{
		{name: "blank anchor", cfg: ProfilesConfig{Anchor: " ", MaterialsAnchor: DefaultMaterialsAnchor}},
		{name: "anchor with dash", cfg: ProfilesConfig{Anchor: "bad-name", MaterialsAnchor: DefaultMaterialsAnchor}},
		{name: "missing materials anchor", cfg: ProfilesConfig{Anchor: DefaultAnchor}},
		{name: "materials anchor with dot", cfg: ProfilesConfig{Anchor: DefaultAnchor, MaterialsAnchor: "palette.items"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.cfg.Validate(), common.ErrInvalidConfig)
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("LCAPROF_TEST_DIR", "/data")

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "x.db"), ExpandPath("~/x.db"))
	assert.Equal(t, "/data/x.db", ExpandPath("$LCAPROF_TEST_DIR/x.db"))
}
