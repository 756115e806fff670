package threepg

import (
	"testing"

	"github.com/xiaxiaoyunyl36/3PG-model/config"
	"github.com/xiaxiaoyunyl36/3PG-model/forcing"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testClimate(n int) *forcing.Table {
	return forcing.Constant(forcing.Month{
		TMax: 25., TMin: 10., TAv: 17.5,
		VPD: 1.2, Rain: 80., SolarRad: 18.,
		RainDays: 10., FrostDays: 0.,
		CO2: 350., D13Catm: -8., D18Osrc: -5.,
	}, n)
}

func testConfig(endAge float64) *config.Config {
	c := config.Reference()
	c.TimeRange.EndAge = endAge
	return c
}
