package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talav/oasgen/config"
	"github.com/talav/oasgen/model"
)

func TestDefault(t *testing.T) {
	d := config.Default()
	assert.True(t, d.Generate.Has(config.TargetTypes))
	assert.True(t, d.Generate.Has(config.TargetClient))
	assert.True(t, d.Generate.Has(config.TargetServer))
	assert.Equal(t, config.Idiomatic, d.NamingStrategy)
	assert.Equal(t, config.AccessPublic, d.Access)
	assert.True(t, d.Filter.IsZero())
}

func TestLoad_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "oasgen.toml")
	contents := `
namingStrategy = "defensive"
access = "internal"
additionalImports = ["Foundation"]

[nameOverrides]
"Retry-After" = "retryAfter"

[typeOverrides]
"schemas:Money" = "Decimal.Money"

[filter]
tags = ["pets"]
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.Defensive, cfg.NamingStrategy)
	assert.Equal(t, config.AccessInternal, cfg.Access)
	assert.Equal(t, []string{"Foundation"}, cfg.AdditionalImports)
	assert.Equal(t, "retryAfter", cfg.NameOverrides["Retry-After"])
	assert.Equal(t, "Decimal.Money", cfg.TypeOverrides[model.Reference{Kind: model.KindSchemas, Name: "Money"}])
	assert.Equal(t, []string{"pets"}, cfg.Filter.Tags)
	// Fields not present in the file fall back to Default().
	assert.True(t, cfg.Generate.Has(config.TargetTypes))
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "oasgen.yaml")
	contents := "namingStrategy: idiomatic\ngenerate: [types]\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.Idiomatic, cfg.NamingStrategy)
	assert.True(t, cfg.Generate.Has(config.TargetTypes))
	assert.False(t, cfg.Generate.Has(config.TargetClient))
}

func TestLoad_UnrecognizedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "oasgen.ini")
	require.NoError(t, os.WriteFile(path, []byte("x=1"), 0o600))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestMerge_OverrideWins(t *testing.T) {
	base := config.Default()
	override := config.Config{NamingStrategy: config.Defensive}

	merged, err := config.Merge(base, override)
	require.NoError(t, err)
	assert.Equal(t, config.Defensive, merged.NamingStrategy)
	assert.Equal(t, config.AccessPublic, merged.Access, "fields absent from override keep the base value")
}
