package chart

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is a chart definition as stored on disk.
type File struct {
	Config Config
	Data   Data
}

// LoadFile reads a chart file, choosing the format by extension.
// Supported: .yaml, .yml, .json (same schema) and .csv (bar chart).
func LoadFile(path string) (*File, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return Parse(b)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		d, err := readCSV(csv.NewReader(f))
		if err != nil {
			return nil, err
		}
		cfg, err := Resolve(Config{Type: Bar})
		if err != nil {
			return nil, err
		}
		return &File{Config: cfg, Data: d}, nil
	}
	return nil, fmt.Errorf("chart file: unsupported format %q", filepath.Ext(path))
}

// Parse decodes a YAML or JSON chart document. Options are decoded directly
// over the defaults of the declared type, so explicit zero values are kept.
func Parse(b []byte) (*File, error) {
	var doc struct {
		Type    Type      `yaml:"type"`
		Options yaml.Node `yaml:"options"`
		Data    Data      `yaml:"data"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("chart file: %w", err)
	}
	if doc.Type == Unknown {
		return nil, errors.New("chart file: missing type")
	}
	cfg := Defaults(doc.Type)
	if doc.Options.Kind != 0 {
		if err := doc.Options.Decode(&cfg.Options); err != nil {
			return nil, fmt.Errorf("chart file: options: %w", err)
		}
	}
	return &File{Config: cfg, Data: doc.Data}, nil
}

// readCSV expects a header row: label column followed by one column per group.
func readCSV(r *csv.Reader) (Data, error) {
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return Data{}, err
	}
	if len(recs) < 2 {
		return Data{}, errors.New("csv: need a header and at least one row")
	}
	header := recs[0]
	if len(header) < 2 {
		return Data{}, errors.New("csv: need a label column and a value column")
	}
	d := Data{Groups: make([]ValueGroup, len(header)-1), Axes: [][]AxisLabel{nil}}
	for i := range d.Groups {
		d.Groups[i].GroupName = strings.TrimSpace(header[i+1])
	}
	for _, row := range recs[1:] {
		if len(row) < len(header) {
			continue
		}
		vals := make([]float64, len(header)-1)
		ok := true
		for i := range vals {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		d.Axes[0] = append(d.Axes[0], AxisLabel{Label: strings.TrimSpace(row[0])})
		for i, v := range vals {
			d.Groups[i].Values = append(d.Groups[i].Values, v)
		}
	}
	if len(d.Axes[0]) == 0 {
		return Data{}, errors.New("csv: no valid rows parsed")
	}
	return d, nil
}
