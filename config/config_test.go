package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadControlFile(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "stand.yaml"))
	require.NoError(t, err)

	ref := Reference()
	ref.Output.Variables = []string{"stand_age", "stemno", "lai", "npp"}
	ref.IO = IO{
		Input:  filepath.Join("testdata", "climate.txt"),
		Output: filepath.Join("testdata", "out", "stand.csv"),
	}
	if diff := cmp.Diff(ref, c); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestReferenceIsValid(t *testing.T) {
	require.NoError(t, Reference().Validate())
}

func TestMissingKey(t *testing.T) {
	s := Reference().Sections()
	delete(s["StemMortality"], "thinpower")
	_, err := FromSections(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingKey))
	assert.Contains(t, err.Error(), "StemMortality.thinpower")
}

func TestMissingSection(t *testing.T) {
	s := Reference().Sections()
	delete(s, "WaterBalance")
	_, err := FromSections(s)
	assert.True(t, errors.Is(err, ErrMissingSection))
}

func TestOptionalKeysTakeDefaults(t *testing.T) {
	s := Reference().Sections()
	delete(s["WaterBalance"], "qa")
	delete(s["BiomassPartition"], "rgcgw")
	c, err := FromSections(s)
	require.NoError(t, err)
	assert.Equal(t, -90., c.WaterBalance.Qa)
	assert.Equal(t, 1.6, c.BiomassPartition.RGcGw)
}

func TestClimateRow(t *testing.T) {
	s := Reference().Sections()
	s["TimeRange"]["initialmonth"] = 3.
	delete(s["TimeRange"], "firstrow")
	c, err := FromSections(s)
	require.NoError(t, err)
	assert.Equal(t, -1., c.TimeRange.FirstRow)
	assert.Equal(t, 4, c.TimeRange.ClimateRow(1))
	assert.Equal(t, 15, c.TimeRange.ClimateRow(12))

	c.TimeRange.FirstRow = 5.
	assert.Equal(t, 5, c.TimeRange.ClimateRow(1))
	assert.Equal(t, 16, c.TimeRange.ClimateRow(12))
}

func TestMalformedValue(t *testing.T) {
	s := Reference().Sections()
	s["CanopyProduction"]["alpha"] = "fast"
	_, err := FromSections(s)
	assert.True(t, errors.Is(err, ErrMalformed))

	_, err = Parse([]byte("CanopyProduction: [1, 2"))
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestSectionNamesAreCaseInsensitive(t *testing.T) {
	s := Reference().Sections()
	s["canopyproduction"] = s["CanopyProduction"]
	delete(s, "CanopyProduction")
	s["canopyproduction"]["T_MIN"] = s["canopyproduction"]["t_min"]
	delete(s["canopyproduction"], "t_min")
	_, err := FromSections(s)
	require.NoError(t, err)
}

func TestValidationRejectsBadCalibration(t *testing.T) {
	for name, mod := range map[string]func(c *Config){
		"topt below tmin":   func(c *Config) { c.CanopyProduction.TOpt = 1. },
		"topt above tmax":   func(c *Config) { c.CanopyProduction.TOpt = 40. },
		"zero maxasw":       func(c *Config) { c.CanopyProduction.MaxASW = 0. },
		"shrub counter":     func(c *Config) { c.ShrubEffect.CounterForShrub = .5 },
		"initial asw > max": func(c *Config) { c.InitialState.ASW = 250. },
		"zero stocking":     func(c *Config) { c.InitialState.Stocking = 0. },
		"month 13":          func(c *Config) { c.TimeRange.InitialMonth = 13. },
	} {
		t.Run(name, func(t *testing.T) {
			c := Reference()
			mod(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestWriteThenLoad(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, "run.yaml")
	ref := Reference()
	ref.Output.Variables = []string{"wf", "ws"}
	require.NoError(t, ref.Write(fp))

	b, err := os.ReadFile(fp)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), "CanopyProduction:"))

	c, err := Load(fp)
	require.NoError(t, err)
	if diff := cmp.Diff(ref, c); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRuntime(t *testing.T) {
	t.Setenv("THREEPG_WORKERS", "3")
	t.Setenv("THREEPG_LOG_LEVEL", "debug")
	r, err := ParseRuntime()
	require.NoError(t, err)
	assert.Equal(t, 3, r.Workers)
	assert.Equal(t, "debug", r.LogLevel)
	assert.Empty(t, r.MetricsFile)
}
