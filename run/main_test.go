package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaxiaoyunyl36/3PG-model/config"
	"github.com/xiaxiaoyunyl36/3PG-model/forcing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeClimate(t *testing.T, fp string, n int) {
	t.Helper()
	tab := forcing.Constant(forcing.Month{
		TMax: 25., TMin: 10., TAv: 17.5, VPD: 1.2, Rain: 80., SolarRad: 18.,
		RainDays: 10., CO2: 350., D13Catm: -8., D18Osrc: -5.,
	}, n)
	f, err := os.Create(fp)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, tab.Write(f))
}

func TestInitCheckRun(t *testing.T) {
	dir := t.TempDir()
	ctrl := filepath.Join(dir, "stand.yaml")
	writeClimate(t, filepath.Join(dir, "climate.txt"), 24)

	_, err := execute(t, "init", ctrl)
	require.NoError(t, err)
	_, err = execute(t, "init", ctrl)
	assert.Error(t, err)

	// shorten the run to fit the climate file
	c, err := config.Load(ctrl)
	require.NoError(t, err)
	c.TimeRange.EndAge = 2.
	c.IO.Input = "climate.txt"
	c.Output.Variables = []string{"stand_age", "stemno", "ws"}
	require.NoError(t, c.Write(ctrl))

	out, err := execute(t, "check", ctrl)
	require.NoError(t, err)
	assert.Contains(t, out, "24 months")

	out, err = execute(t, "run", "--summary", "--gob", ctrl)
	require.NoError(t, err)
	assert.Contains(t, out, "2001")

	f, err := os.Open(filepath.Join(dir, "stand.out.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 26)
	assert.Equal(t, []string{"stand_age", "stemno", "ws"}, rows[0])
	assert.FileExists(t, filepath.Join(dir, "stand.out.gob"))
}

func TestCheckShortClimate(t *testing.T) {
	dir := t.TempDir()
	ctrl := filepath.Join(dir, "stand.yaml")
	writeClimate(t, filepath.Join(dir, "climate.txt"), 6)
	c := config.Reference()
	c.TimeRange.EndAge = 1.
	c.IO.Input = "climate.txt"
	require.NoError(t, c.Write(ctrl))

	_, err := execute(t, "check", ctrl)
	assert.ErrorIs(t, err, forcing.ErrOutOfRange)
}

func TestClimateSummary(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, "climate.txt")
	writeClimate(t, fp, 24)
	gob := filepath.Join(dir, "climate.gob")

	out, err := execute(t, "climate", "--gob", gob, fp)
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	tab, err := forcing.Open(gob)
	require.NoError(t, err)
	assert.Equal(t, 24, tab.Len())
}

func TestCheckValidatesOnLoad(t *testing.T) {
	dir := t.TempDir()
	ctrl := filepath.Join(dir, "stand.yaml")
	c := config.Reference()
	c.CanopyProduction.TOpt = 40.
	require.NoError(t, c.Write(ctrl))

	_, err := execute(t, "check", ctrl)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestCheckClimateRowFromInitialMonth(t *testing.T) {
	dir := t.TempDir()
	ctrl := filepath.Join(dir, "stand.yaml")
	c := config.Reference()
	c.TimeRange.EndAge = 1.
	c.TimeRange.FirstRow = -1.
	c.IO.Input = "climate.txt"
	require.NoError(t, c.Write(ctrl))

	// month 12 reads row InitialMonth+12
	writeClimate(t, filepath.Join(dir, "climate.txt"), 13)
	_, err := execute(t, "check", ctrl)
	assert.ErrorIs(t, err, forcing.ErrOutOfRange)

	writeClimate(t, filepath.Join(dir, "climate.txt"), 14)
	_, err = execute(t, "check", ctrl)
	assert.NoError(t, err)
}
