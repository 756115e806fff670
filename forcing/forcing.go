// Package forcing holds the monthly climate table that drives a stand run.
package forcing

import (
	"errors"
	"fmt"
)

// NumColumns columns expected per climate row
const NumColumns = 11

// ErrOutOfRange is returned when a run asks for a month beyond the climate table.
var ErrOutOfRange = errors.New("climate month out of range")

// Month one row of the climate table
type Month struct {
	TMax, TMin, TAv float64 // [°C]
	VPD             float64 // [kPa]
	Rain            float64 // [mm/month]
	SolarRad        float64 // [MJ/m²/day]
	RainDays        float64
	FrostDays       float64
	CO2             float64 // [ppm]
	D13Catm         float64 // [‰]
	D18Osrc         float64 // [‰]
}

// Table ordered monthly climate records, indexed by an absolute month counter
type Table struct {
	Rows []Month
}

// Len number of months available
func (t *Table) Len() int { return len(t.Rows) }

// At returns row i, or ErrOutOfRange.
func (t *Table) At(i int) (Month, error) {
	if i < 0 || i >= len(t.Rows) {
		return Month{}, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, i, len(t.Rows))
	}
	return t.Rows[i], nil
}

// FromColumns builds a Month from a positional row.
func FromColumns(v []float64) (Month, error) {
	if len(v) < NumColumns {
		return Month{}, fmt.Errorf("climate row has %d columns, %d required", len(v), NumColumns)
	}
	return Month{
		TMax:      v[0],
		TMin:      v[1],
		TAv:       v[2],
		VPD:       v[3],
		Rain:      v[4],
		SolarRad:  v[5],
		RainDays:  v[6],
		FrostDays: v[7],
		CO2:       v[8],
		D13Catm:   v[9],
		D18Osrc:   v[10],
	}, nil
}

// Columns returns m in file column order.
func (m Month) Columns() []float64 {
	return []float64{m.TMax, m.TMin, m.TAv, m.VPD, m.Rain, m.SolarRad, m.RainDays, m.FrostDays, m.CO2, m.D13Catm, m.D18Osrc}
}

// Constant builds an n-month table repeating m.
func Constant(m Month, n int) *Table {
	t := Table{Rows: make([]Month, n)}
	for i := range t.Rows {
		t.Rows[i] = m
	}
	return &t
}
