package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/datagrid/grid"
)

func isolateConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GRIDVIEW_CONFIG", "")
	return home
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolateConfig(t)

	c, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, grid.DefaultPageSize, c.Grid.PageSize)
	require.True(t, c.Grid.SerialColumn)
	require.True(t, c.Grid.CheckboxColumn)
	require.True(t, c.Grid.TakeAvailableSpace)
	require.False(t, c.Grid.DisableWindowing)
	require.Empty(t, c.Log.File)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	home := isolateConfig(t)
	dir := filepath.Join(home, ".config", "gridview")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	body := "[grid]\npage_size = 50\nserial_column = false\n\n[log]\nfile = \"/tmp/gridview.log\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0o644))
	t.Setenv("GRIDVIEW_GRID_CHECKBOX_COLUMN", "false")

	c, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 50, c.Grid.PageSize)
	require.False(t, c.Grid.SerialColumn)
	require.False(t, c.Grid.CheckboxColumn)
	require.Equal(t, "/tmp/gridview.log", c.Log.File)
}

func TestLoadConfig_ExplicitFileMustExist(t *testing.T) {
	isolateConfig(t)
	t.Setenv("GRIDVIEW_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestGridConfigApply(t *testing.T) {
	var gc grid.Config
	GridConfig{PageSize: 7, CheckboxColumn: true, DisableWindowing: true}.apply(&gc)
	require.Equal(t, 7, gc.PageSize)
	require.True(t, gc.CheckboxColumn)
	require.False(t, gc.SerialColumn)
	require.True(t, gc.DisableWindowing)
}
