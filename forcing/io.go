package forcing

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Load reads a whitespace-delimited climate file with a single header line.
func Load(fp string) (*Table, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf(" forcing.Load %w", err)
	}
	defer f.Close()
	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf(" forcing.Load %s: %w", fp, err)
	}
	return t, nil
}

// Read parses a climate table from r; the first line is skipped.
func Read(r io.Reader) (*Table, error) {
	var t Table
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		if ln == 1 {
			continue // header
		}
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		flds := strings.Fields(s)
		v := make([]float64, len(flds))
		for i, fs := range flds {
			x, err := strconv.ParseFloat(fs, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %v", ln, i, err)
			}
			v[i] = x
		}
		m, err := FromColumns(v)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", ln, err)
		}
		t.Rows = append(t.Rows, m)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Write saves t in the format read by Load.
func (t *Table) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "Tmax Tmin Tav VPD Rain SolarRad RainDays FrostDays CO2 D13Catm D18Osrc")
	for _, m := range t.Rows {
		cs := m.Columns()
		ss := make([]string, len(cs))
		for i, c := range cs {
			ss[i] = strconv.FormatFloat(c, 'g', -1, 64)
		}
		fmt.Fprintln(bw, strings.Join(ss, " "))
	}
	return bw.Flush()
}

// SaveGob caches a parsed table.
func (t *Table) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" forcing.SaveGob %v", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(t); err != nil {
		return fmt.Errorf(" forcing.SaveGob %v", err)
	}
	return nil
}

// LoadGob reads a table written by SaveGob.
func LoadGob(fp string) (*Table, error) {
	var t Table
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Open loads fp, using the gob reader for ".gob" files.
func Open(fp string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(fp), ".gob") {
		return LoadGob(fp)
	}
	return Load(fp)
}
