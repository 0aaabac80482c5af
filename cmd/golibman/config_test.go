package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drauger-os/golibman/pkg/types"
)

func TestLoadSettingsFirstRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "config")

	settings, err := loadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultCheckoutDays, settings.DefaultCheckoutDays)
	assert.Equal(t, types.DefaultLogLevel, settings.LogLevel)

	// First run materializes a default settings.json.
	_, err = os.Stat(filepath.Join(dir, "settings.json"))
	assert.NoError(t, err)
}

func TestLoadSettingsFromFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "settings.json"),
		[]byte(`{"default_checkout_days": 30, "data_dir": "/srv/library", "log_level": "debug"}`),
		0o644))

	settings, err := loadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, 30, settings.DefaultCheckoutDays)
	assert.Equal(t, "/srv/library", settings.DataDir)
	assert.Equal(t, "debug", settings.LogLevel)
}

func TestLoadSettingsRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "settings.json"),
		[]byte(`{"default_checkout_days": -1}`),
		0o644))

	_, err := loadSettings(dir)
	assert.ErrorIs(t, err, types.ErrCheckoutDaysInvalid)
}

func TestLoadSettingsRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "settings.json"),
		[]byte(`{not json`),
		0o644))

	_, err := loadSettings(dir)
	assert.Error(t, err)
}

func TestParseUID(t *testing.T) {
	uid, err := parseUID("1000")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), uid)

	_, err = parseUID("thousand")
	assert.Error(t, err)
}
