package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subcommandNames(cmd *cobra.Command) []string {
	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	return names
}

func TestRootCmd(t *testing.T) {
	names := subcommandNames(rootCmd)
	for _, want := range []string{"classify", "generate", "materials", "profiles", "version"} {
		assert.Contains(t, names, want)
	}

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("db"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("log-level"))
}

func TestProfilesCmd(t *testing.T) {
	names := subcommandNames(profilesCmd())
	assert.ElementsMatch(t, []string{"get", "list", "show", "stats", "validate"}, names)
}

func TestMaterialsCmd(t *testing.T) {
	names := subcommandNames(materialsCmd())
	assert.ElementsMatch(t, []string{"import", "list"}, names)
}

func TestClassifyCmd(t *testing.T) {
	cmd := classifyCmd()
	for _, name := range []string{"name", "description", "keywords", "profile"} {
		assert.NotNil(t, cmd.Flag(name), "%s flag should exist", name)
	}
}

func TestVersionCmd(t *testing.T) {
	cmd := versionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)
	assert.Equal(t, "lcaprof dev\n", out.String())
}

func TestNewPipeline(t *testing.T) {
	classifier, synthesizer, err := newPipeline()
	require.NoError(t, err)

	for _, category := range classifier.Categories() {
		_, ok := synthesizer.Profile(category)
		assert.True(t, ok, "category %s must have a profile", category)
	}
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "constants.ts")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0640))

	require.NoError(t, writeFileAtomic(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must be cleaned up")
}
