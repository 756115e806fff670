package threepg

import (
	"bytes"
	"encoding/binary"
	"encoding/csv"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"strconv"
)

// CSVWriter a Sink writing one row per record
type CSVWriter struct {
	w      *csv.Writer
	cols   []Column
	header bool
}

// NewCSVWriter writes the selected columns to w. Call Flush when done.
func NewCSVWriter(w io.Writer, cols []Column) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w), cols: cols}
}

func (c *CSVWriter) Write(r *Record) error {
	if !c.header {
		h := make([]string, len(c.cols))
		for i, col := range c.cols {
			h[i] = col.Name
		}
		if err := c.w.Write(h); err != nil {
			return err
		}
		c.header = true
	}
	row := make([]string, len(c.cols))
	for i, v := range r.Values(c.cols) {
		row[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return c.w.Write(row)
}

// Flush writes any buffered rows and reports the first write error.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

// WriteCSV writes records to a new file at fp.
func WriteCSV(fp string, recs []Record, cols []Column) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf("WriteCSV: %v", err)
	}
	defer f.Close()
	w := NewCSVWriter(f, cols)
	for i := range recs {
		if err := w.Write(&recs[i]); err != nil {
			return fmt.Errorf("WriteCSV: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("WriteCSV: %v", err)
	}
	return f.Close()
}

type gobRecords struct {
	Version int
	Records []Record
}

// SaveGob dumps records with their version.
func SaveGob(fp string, recs []Record) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf("SaveGob: %v", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(gobRecords{RecordVersion, recs}); err != nil {
		return fmt.Errorf("SaveGob: %v", err)
	}
	return f.Close()
}

// LoadGob reads records written by SaveGob.
func LoadGob(fp string) ([]Record, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("LoadGob: %v", err)
	}
	defer f.Close()
	var g gobRecords
	if err := gob.NewDecoder(f).Decode(&g); err != nil {
		return nil, fmt.Errorf("LoadGob: %v", err)
	}
	if g.Version != RecordVersion {
		return nil, fmt.Errorf("LoadGob: record version %d, expected %d", g.Version, RecordVersion)
	}
	return g.Records, nil
}

// SaveBins writes each column as a little-endian float32 array to prfx+<name>.bin, one value per record.
func SaveBins(prfx string, recs []Record, cols []Column) error {
	v := make([]float32, len(recs))
	var buf bytes.Buffer
	for _, c := range cols {
		for i := range recs {
			v[i] = float32(c.Value(&recs[i]))
		}
		buf.Reset()
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("SaveBins %s: %v", c.Name, err)
		}
		if err := os.WriteFile(prfx+c.Name+".bin", buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("SaveBins %s: %v", c.Name, err)
		}
	}
	return nil
}
