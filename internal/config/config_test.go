package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_chunk_size: 1024\ntarget_pos_list_size: 512\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint32(1024), cfg.MaxChunkSize)
	require.Equal(t, uint32(512), cfg.TargetPosListSize)
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_chunk_size: 4096\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint32(4096), cfg.MaxChunkSize)
	require.Equal(t, uint32(65536), cfg.TargetPosListSize)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, uint32(65536), cfg.MaxChunkSize)
	require.Equal(t, uint32(65536), cfg.TargetPosListSize)
}
