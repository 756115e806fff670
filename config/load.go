package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrMissingSection = errors.New("missing configuration section")
	ErrMissingKey     = errors.New("missing configuration key")
	ErrMalformed      = errors.New("malformed configuration value")
)

// Sections is the raw control file: section name -> parameter name -> value.
type Sections map[string]map[string]any

type param struct {
	key string
	v   *float64
	opt bool
	def float64
}

type section struct {
	name string
	ps   []param
}

func req(key string, v *float64) param { return param{key: key, v: v} }

func opt(key string, v *float64, def float64) param {
	return param{key: key, v: v, opt: true, def: def}
}

// table binds every numeric parameter to its control-file key.
func (c *Config) table() []section {
	cp, sh, bp, wb, sm := &c.CanopyProduction, &c.ShrubEffect, &c.BiomassPartition, &c.WaterBalance, &c.StemMortality
	st, tr, is := &c.SiteCharacteristics, &c.TimeRange, &c.InitialState
	return []section{
		{"CanopyProduction", []param{
			req("t_min", &cp.TMin), req("t_max", &cp.TMax), req("t_opt", &cp.TOpt),
			req("coeffcond", &cp.CoeffCond),
			req("maxasw", &cp.MaxASW), req("swconst0", &cp.SWconst), req("swpower0", &cp.SWpower),
			req("fr", &cp.FR), req("fn0", &cp.FN0),
			req("kf", &cp.KF),
			req("maxage", &cp.MaxAge), req("rage", &cp.RAge), req("nage", &cp.NAge),
			req("fullcanage", &cp.FullCanAge), req("canpower", &cp.CanPower), req("k", &cp.K),
			req("alpha", &cp.Alpha), req("y", &cp.Y),
		}},
		{"ShrubEffect", []param{
			req("counterforshrub", &sh.CounterForShrub), req("kl", &sh.KL), req("lsx", &sh.Lsx),
			opt("shrubcond", &sh.ShrubCond, .01),
		}},
		{"BiomassPartition", []param{
			req("tk2", &bp.TK2), req("tk3", &bp.TK3), req("maxcond", &bp.MaxCond), req("laigcx", &bp.LAIgcx),
			req("pfs2", &bp.PFS2), req("pfs20", &bp.PFS20), req("prx", &bp.PRx), req("prn", &bp.PRn),
			req("m0", &bp.M0),
			req("gammafx", &bp.GammaFx), req("gammaf0", &bp.GammaF0), req("tgammaf", &bp.TGammaF),
			req("gammar", &bp.GammaR),
			opt("afracdiffu", &bp.AFracDiffu, 4.4), opt("bfracrubi", &bp.BFracRubi, 27.),
			opt("rgcgw", &bp.RGcGw, 1.6),
			opt("ek", &bp.Ek, 28.), opt("ewc", &bp.Ewc, 27.), opt("pexpx", &bp.PexPx, .4),
			opt("lpeclet", &bp.LPeclet, .02),
		}},
		{"WaterBalance", []param{
			opt("qa", &wb.Qa, -90.), opt("qb", &wb.Qb, .8), req("blcond", &wb.BLcond),
			req("maxintcptn", &wb.MaxIntcptn), req("laimaxintcptn", &wb.LAImaxIntcptn),
			opt("minasw", &wb.MinASW, 0.), opt("irrig", &wb.Irrig, 0.),
		}},
		{"StemMortality", []param{
			req("wsx1000", &sm.WSx1000), req("thinpower", &sm.ThinPower),
			req("mf", &sm.MF), req("mr", &sm.MR), req("ms", &sm.MS),
			req("sla0", &sm.SLA0), req("sla1", &sm.SLA1), req("tsla", &sm.TSLA),
			req("fracbb0", &sm.FracBB0), req("fracbb1", &sm.FracBB1), req("tbb", &sm.TBB),
			req("stemconst", &sm.StemConst), req("stempower", &sm.StemPower), req("density", &sm.Density),
			req("htc0", &sm.HtC0), req("htc1", &sm.HtC1),
		}},
		{"SiteCharacteristics", []param{
			req("lat", &st.Lat), opt("elev", &st.Elev, 0.),
		}},
		{"TimeRange", []param{
			req("initialyear", &tr.InitialYear), req("initialmonth", &tr.InitialMonth),
			req("yearplanted", &tr.YearPlanted), req("monthplanted", &tr.MonthPlanted),
			opt("endyear", &tr.EndYear, 0.), req("endage", &tr.EndAge),
			opt("firstrow", &tr.FirstRow, -1.),
		}},
		{"InitialState", []param{
			req("initialws", &is.WS), req("initialwf", &is.WF), req("initialwr", &is.WR),
			req("initialstocking", &is.Stocking), req("initialasw", &is.ASW),
		}},
	}
}

// Load reads and validates a YAML control file. IO paths are resolved against its directory.
func Load(fp string) (*Config, error) {
	b, err := os.ReadFile(fp)
	if err != nil {
		return nil, fmt.Errorf(" config.Load %w", err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf(" config.Load %s: %w", fp, err)
	}
	dir := filepath.Dir(fp)
	c.IO.Input = resolve(dir, c.IO.Input)
	c.IO.Output = resolve(dir, c.IO.Output)
	return c, nil
}

func resolve(dir, fp string) string {
	if fp == "" || filepath.IsAbs(fp) {
		return fp
	}
	return filepath.Join(dir, fp)
}

// Parse decodes a YAML control file.
func Parse(b []byte) (*Config, error) {
	var raw Sections
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return FromSections(raw)
}

// FromSections converts every value once, then validates the whole set.
func FromSections(raw Sections) (*Config, error) {
	norm := make(map[string]map[string]any, len(raw))
	for s, kv := range raw {
		m := make(map[string]any, len(kv))
		for k, v := range kv {
			m[strings.ToLower(k)] = v
		}
		norm[strings.ToLower(s)] = m
	}

	var c Config
	for _, sec := range c.table() {
		kv, ok := norm[strings.ToLower(sec.name)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingSection, sec.name)
		}
		for _, p := range sec.ps {
			v, ok := kv[p.key]
			if !ok {
				if p.opt {
					*p.v = p.def
					continue
				}
				return nil, fmt.Errorf("%w: %s.%s", ErrMissingKey, sec.name, p.key)
			}
			f, err := toFloat(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %s.%s: %v", ErrMalformed, sec.name, p.key, err)
			}
			*p.v = f
		}
	}

	if kv, ok := norm["output"]; ok {
		vs, err := toStrings(kv["variables"])
		if err != nil {
			return nil, fmt.Errorf("%w: Output.variables: %v", ErrMalformed, err)
		}
		c.Output.Variables = vs
	}
	if kv, ok := norm["io"]; ok {
		c.IO.Input, _ = kv["input"].(string)
		c.IO.Output, _ = kv["output"].(string)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(x), 64)
	default:
		return 0., fmt.Errorf("unsupported type %T", v)
	}
}

func toStrings(v any) ([]string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		var o []string
		for _, s := range strings.FieldsFunc(x, func(r rune) bool { return r == ',' || r == ' ' }) {
			o = append(o, strings.ToLower(s))
		}
		return o, nil
	case []any:
		o := make([]string, 0, len(x))
		for _, e := range x {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("unsupported element %T", e)
			}
			o = append(o, strings.ToLower(s))
		}
		return o, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

// Sections returns the control-file form of c.
func (c *Config) Sections() Sections {
	out := make(Sections)
	for _, sec := range c.table() {
		kv := make(map[string]any, len(sec.ps))
		for _, p := range sec.ps {
			kv[p.key] = *p.v
		}
		out[sec.name] = kv
	}
	if len(c.Output.Variables) > 0 {
		vs := make([]any, len(c.Output.Variables))
		for i, s := range c.Output.Variables {
			vs[i] = s
		}
		out["Output"] = map[string]any{"variables": vs}
	}
	if c.IO.Input != "" || c.IO.Output != "" {
		out["IO"] = map[string]any{"input": c.IO.Input, "output": c.IO.Output}
	}
	return out
}

// Write saves c as a YAML control file.
func (c *Config) Write(fp string) error {
	b, err := yaml.Marshal(c.Sections())
	if err != nil {
		return fmt.Errorf(" config.Write %w", err)
	}
	if err := os.WriteFile(fp, b, 0644); err != nil {
		return fmt.Errorf(" config.Write %w", err)
	}
	return nil
}
