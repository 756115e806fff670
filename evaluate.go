// Package threepg simulates the monthly growth of an even-aged forest stand with the 3-PG model.
package threepg

import (
	"context"
	"fmt"
	"time"

	"github.com/xiaxiaoyunyl36/3PG-model/config"
	"github.com/xiaxiaoyunyl36/3PG-model/forcing"
	"go.uber.org/zap"
)

// Sink receives records as they are produced.
type Sink interface {
	Write(r *Record) error
}

// Model a single stand simulation. A Model is not safe for concurrent use; run separate stands through RunBatch.
type Model struct {
	cfg  *config.Config
	clim *forcing.Table
	log  *zap.Logger
	met  *Metrics
	sink Sink
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithMetrics records run counters into met.
func WithMetrics(met *Metrics) Option { return func(m *Model) { m.met = met } }

// WithSink streams each record to s as well as returning it.
func WithSink(s Sink) Option { return func(m *Model) { m.sink = s } }

func withName(name string) Option {
	return func(m *Model) { m.log = m.log.With(zap.String("stand", name)) }
}

// New constructor
func New(cfg *config.Config, clim *forcing.Table, opts ...Option) *Model {
	m := &Model{cfg: cfg, clim: clim, log: zap.NewNop()}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Run simulates the stand from its initial state to EndAge. The first record is the initial state.
// On error the records produced so far are returned alongside it.
func (m *Model) Run(ctx context.Context) ([]Record, error) {
	tt := time.Now()
	recs, err := m.run(ctx)
	status := "ok"
	if err != nil {
		status = "failed"
	}
	m.met.run(status, time.Since(tt))
	return recs, err
}

func (m *Model) run(ctx context.Context) ([]Record, error) {
	if m.cfg == nil || m.clim == nil {
		return nil, fmt.Errorf("%w: model needs both a configuration and a climate table", ErrConfig)
	}
	if err := m.cfg.Validate(); err != nil {
		return nil, err
	}
	age0, nmonths, err := Horizon(m.cfg)
	if err != nil {
		return nil, err
	}
	st, err := NewStand(m.cfg)
	if err != nil {
		return nil, err
	}

	recs := make([]Record, 0, nmonths+1)
	emit := func(r Record) error {
		recs = append(recs, r)
		if m.sink != nil {
			if err := m.sink.Write(&recs[len(recs)-1]); err != nil {
				return fmt.Errorf("write record %d: %w", r.Step, err)
			}
		}
		return nil
	}

	yr, mo := calendar(m.cfg, 0)
	m.log.Info("stand initialised",
		zap.Float64("stand_age", age0),
		zap.Int("months", nmonths),
		zap.Int("year", yr),
		zap.Int("month", mo),
		zap.Float64("stemno", st.StemNo),
	)
	if err := emit(st.record(0, yr, mo)); err != nil {
		return recs, err
	}

	for k := 1; k <= nmonths; k++ {
		if err := ctx.Err(); err != nil {
			return recs, err
		}
		r, err := m.month(&st, k)
		if err != nil {
			m.log.Error("run aborted", zap.Error(err))
			return recs, err
		}
		if r.Month == 12 || k == nmonths {
			m.log.Info("year",
				zap.Int("year", r.Year),
				zap.Float64("stand_age", r.StandAge),
				zap.Float64("stemno", r.StemNo),
				zap.Float64("lai", r.LAI),
				zap.Float64("standvol", r.StandVol),
			)
		}
		if err := emit(r); err != nil {
			return recs, err
		}
	}
	return recs, nil
}
