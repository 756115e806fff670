package threepg

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiaxiaoyunyl36/3PG-model/canopy"
	"github.com/xiaxiaoyunyl36/3PG-model/forcing"
)

func TestHorizon(t *testing.T) {
	c := testConfig(10)
	age0, n, err := Horizon(c)
	require.NoError(t, err)
	assert.Equal(t, 0., age0)
	assert.Equal(t, 120, n)

	c.TimeRange.YearPlanted, c.TimeRange.MonthPlanted = 1998., 7.
	c.TimeRange.EndAge = 2.
	age0, n, err = Horizon(c)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, age0, 1e-12)
	assert.Equal(t, 6, n)

	// already past EndAge
	c.TimeRange.EndAge = 1.
	_, n, err = Horizon(c)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	c.TimeRange.YearPlanted = 2001.
	_, _, err = Horizon(c)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestRunZeroMonths(t *testing.T) {
	c := testConfig(0)
	recs, err := New(c, testClimate(0)).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)

	st, err := NewStand(c)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(st.record(0, 2000, 1), recs[0]))

	r := recs[0]
	assert.Equal(t, c.InitialState.Stocking, r.StemNo)
	assert.Equal(t, c.InitialState.WF, r.WF)
	assert.Equal(t, c.InitialState.WR, r.WR)
	assert.Equal(t, c.InitialState.WS, r.WS)
	assert.Equal(t, c.InitialState.ASW, r.ASW)
	assert.Equal(t, 0., r.StandAge)
	assert.InDelta(t, c.InitialState.WF*c.StemMortality.SLA0*.1, r.LAI, 1e-12)
}

func TestRunTwelveMonths(t *testing.T) {
	c := testConfig(1)
	recs, err := New(c, testClimate(12)).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 13)

	for k, r := range recs {
		assert.Equal(t, k, r.Step)
		assert.InDelta(t, float64(k)/12., r.StandAge, 1e-9)
		assert.GreaterOrEqual(t, r.ASW, 0.)
		assert.LessOrEqual(t, r.ASW, c.CanopyProduction.MaxASW)
		if k == 0 {
			continue
		}
		assert.LessOrEqual(t, r.StemNo, recs[k-1].StemNo)
		assert.Greater(t, r.NPP, 0.)
		assert.Equal(t, 80., r.Rain)
		for _, f := range []float64{r.Modifiers.Temperature, r.Modifiers.VPD, r.Modifiers.SoilWater, r.Modifiers.Nutrition, r.Modifiers.Age, r.Modifiers.Physiological} {
			assert.GreaterOrEqual(t, f, 0.)
			assert.LessOrEqual(t, f, 1.)
		}
	}

	// calendar starts one month after the initial state
	assert.Equal(t, 2, recs[1].Month)
	assert.Equal(t, 2000, recs[1].Year)
	assert.Equal(t, 12, recs[11].Month)
	assert.Equal(t, 1, recs[12].Month)
	assert.Equal(t, 2001, recs[12].Year)

	assert.Greater(t, recs[12].WS, recs[0].WS)
	assert.Greater(t, recs[12].TotalLitter, 0.)
}

func TestRunAgeAfterMonths(t *testing.T) {
	c := testConfig(3)
	c.TimeRange.YearPlanted, c.TimeRange.MonthPlanted = 1999., 4.
	age0, n, err := Horizon(c)
	require.NoError(t, err)

	recs, err := New(c, testClimate(n)).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, n+1)
	assert.InDelta(t, age0+float64(n)/12., recs[n].StandAge, 1e-9)
}

func TestRunClimateOutOfRange(t *testing.T) {
	c := testConfig(1)
	recs, err := New(c, testClimate(5)).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, forcing.ErrOutOfRange)

	var me *MonthError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, 6, me.Step)
	assert.Equal(t, "climate", me.Stage)
	assert.Equal(t, 2000, me.Year)
	assert.Equal(t, 7, me.Month)
	assert.Len(t, recs, 6)
}

func TestRunFirstRow(t *testing.T) {
	c := testConfig(1. / 12.)
	c.TimeRange.FirstRow = 3.
	clim := testClimate(4)
	clim.Rows[3].Rain = 123.

	recs, err := New(c, clim).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 123., recs[1].Rain)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	recs, err := New(testConfig(1), testClimate(12)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, recs, 1)
}

func TestRunInvalidConfig(t *testing.T) {
	c := testConfig(1)
	c.CanopyProduction.MaxASW = 0.
	_, err := New(c, testClimate(12)).Run(context.Background())
	assert.Error(t, err)

	_, err = New(nil, testClimate(12)).Run(context.Background())
	assert.ErrorIs(t, err, ErrConfig)
}

func TestRunShrubLatch(t *testing.T) {
	c := testConfig(1)
	c.ShrubEffect.CounterForShrub = 1.
	recs, err := New(c, testClimate(12)).Run(context.Background())
	require.NoError(t, err)
	for _, r := range recs {
		assert.Equal(t, canopy.ClosedCanopy, r.ShrubMode)
	}
}

func TestRunShrubNeverReopens(t *testing.T) {
	recs, err := New(testConfig(2), testClimate(24)).Run(context.Background())
	require.NoError(t, err)
	closed := false
	for _, r := range recs {
		if closed {
			assert.Equal(t, canopy.ClosedCanopy, r.ShrubMode)
		}
		closed = r.ShrubMode == canopy.ClosedCanopy
	}
}

type memSink struct{ recs []Record }

func (s *memSink) Write(r *Record) error {
	s.recs = append(s.recs, *r)
	return nil
}

type failSink struct{}

func (failSink) Write(*Record) error { return errors.New("disk full") }

func TestRunSink(t *testing.T) {
	s := &memSink{}
	recs, err := New(testConfig(1), testClimate(12), WithSink(s)).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(recs, s.recs))

	_, err = New(testConfig(1), testClimate(12), WithSink(failSink{})).Run(context.Background())
	assert.ErrorContains(t, err, "disk full")
}

func TestRunMetrics(t *testing.T) {
	met := NewMetrics()
	_, err := New(testConfig(1), testClimate(12), WithMetrics(met)).Run(context.Background())
	require.NoError(t, err)
	_, err = New(testConfig(1), testClimate(3), WithMetrics(met)).Run(context.Background())
	require.Error(t, err)

	assert.Equal(t, 15., testutil.ToFloat64(met.months))
	assert.Equal(t, 1., testutil.ToFloat64(met.runs.WithLabelValues("ok")))
	assert.Equal(t, 1., testutil.ToFloat64(met.runs.WithLabelValues("failed")))
	assert.Equal(t, 0., testutil.ToFloat64(met.nonConverged))
}

func TestRunLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	_, err := New(testConfig(1), testClimate(12), WithLogger(zap.New(core))).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("stand initialised").Len())
	assert.Equal(t, 12, logs.FilterMessage("month").FilterLevelExact(zapcore.DebugLevel).Len())
	// December and the final month
	assert.Equal(t, 2, logs.FilterMessage("year").Len())
}

func TestRunDeterministic(t *testing.T) {
	a, err := New(testConfig(2), testClimate(24)).Run(context.Background())
	require.NoError(t, err)
	b, err := New(testConfig(2), testClimate(24)).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(a, b))
	for _, r := range a {
		assert.False(t, math.IsNaN(r.D18OCellPeclet))
	}
}

func TestRunClimateRowFromInitialMonth(t *testing.T) {
	c := testConfig(1)
	c.TimeRange.InitialMonth = 3.
	c.TimeRange.FirstRow = -1.
	_, n, err := Horizon(c)
	require.NoError(t, err)
	require.Equal(t, 10, n)

	clim := testClimate(14)
	for i := range clim.Rows {
		clim.Rows[i].Rain = 100. + float64(i)
	}
	recs, err := New(c, clim).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, n+1)

	// April reads row 4, the last month row 13
	assert.Equal(t, 4, recs[1].Month)
	assert.Equal(t, 104., recs[1].Rain)
	assert.Equal(t, 113., recs[n].Rain)

	_, err = New(c, testClimate(13)).Run(context.Background())
	assert.ErrorIs(t, err, forcing.ErrOutOfRange)
}

func TestRunSelfThinning(t *testing.T) {
	c := testConfig(12)
	// start just under the self-thinning line
	c.InitialState.WS, c.InitialState.WF, c.InitialState.WR = 280., 5., 5.
	met := NewMetrics()
	recs, err := New(c, testClimate(144), WithMetrics(met)).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 145)

	var thinned, unconverged int
	for k, r := range recs {
		if k > 0 {
			assert.LessOrEqual(t, r.StemNo, recs[k-1].StemNo)
		}
		if r.ThinningIterations > 0 {
			thinned++
			assert.LessOrEqual(t, r.ThinningIterations, 5)
		}
		if !r.ThinningConverged {
			unconverged++
		}
	}
	assert.Greater(t, thinned, 0)
	assert.Less(t, recs[144].StemNo, recs[0].StemNo)
	assert.Equal(t, float64(thinned), testutil.ToFloat64(met.thinnings))
	assert.Equal(t, float64(unconverged), testutil.ToFloat64(met.nonConverged))
	assert.Equal(t, 0, unconverged)
}

func TestRunSelfThinningNotConverged(t *testing.T) {
	c := testConfig(1. / 12.)
	// 525 kg per stem at 1000 stems/ha is far above the line; the solve hits the iteration cap
	c.InitialState.WS = 525.
	met := NewMetrics()
	core, logs := observer.New(zapcore.WarnLevel)
	recs, err := New(c, testClimate(1), WithMetrics(met), WithLogger(zap.New(core))).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)

	r := recs[1]
	assert.False(t, r.ThinningConverged)
	assert.Equal(t, 5, r.ThinningIterations)
	assert.Less(t, r.StemNo, recs[0].StemNo)
	assert.Greater(t, r.StemNo, 0.)
	assert.Equal(t, 1., testutil.ToFloat64(met.nonConverged))
	assert.Equal(t, 1., testutil.ToFloat64(met.thinnings))

	warns := logs.FilterMessage("self-thinning did not converge")
	require.Equal(t, 1, warns.Len())
	assert.Equal(t, int64(1), warns.All()[0].ContextMap()["step"])
}
