// Package costs provides the technology cost table used to parameterise new
// components. Values are keyed by technology and attribute, e.g.
// ("fuel cell", "efficiency").
package costs

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrMissingCost is returned when a (technology, attribute) pair is absent.
var ErrMissingCost = errors.New("missing cost entry")

// Common attribute names.
const (
	CapitalCost  = "capital_cost"
	MarginalCost = "marginal_cost"
	Efficiency   = "efficiency"
	StandingLoss = "standing_loss"
	CO2Emissions = "co2_emissions"
)

var requiredColumns = []string{"technology", "parameter", "value"}

// Table maps technology and attribute to a value.
type Table struct {
	values map[string]map[string]float64
}

// Options controls how a cost file is read.
type Options struct {
	// Years scales every capital cost to the modelled horizon. Zero means one year.
	Years float64
}

// New returns an empty table.
func New() *Table {
	return &Table{make(map[string]map[string]float64)}
}

// Set stores a value, replacing any previous one.
func (t *Table) Set(tech, attr string, v float64) {
	attrs, ok := t.values[tech]
	if !ok {
		attrs = make(map[string]float64)
		t.values[tech] = attrs
	}
	attrs[attr] = v
}

// Get returns the value for tech and attr.
func (t *Table) Get(tech, attr string) (float64, error) {
	v, ok := t.values[tech][attr]
	if !ok {
		return 0, fmt.Errorf("%q %q: %w", tech, attr, ErrMissingCost)
	}
	return v, nil
}

// Default returns the value for tech and attr, or d when absent.
func (t *Table) Default(tech, attr string, d float64) float64 {
	if v, ok := t.values[tech][attr]; ok {
		return v
	}
	return d
}

// Technologies returns the technology names in sorted order.
func (t *Table) Technologies() []string {
	techs := maps.Keys(t.values)
	slices.Sort(techs)
	return techs
}

// Load reads a cost CSV file.
func Load(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses long-format cost rows with the header
// technology,parameter,value[,unit,source...].
func Read(r io.Reader, opts Options) (*Table, error) {
	years := opts.Years
	if years == 0 {
		years = 1
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	t := New()
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)

		if len(record) < len(requiredColumns) {
			return nil, fmt.Errorf("line %d: expected at least %d fields", line, len(requiredColumns))
		}
		tech := record[cols["technology"]]
		attr := record[cols["parameter"]]
		v, err := strconv.ParseFloat(strings.TrimSpace(record[cols["value"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %q %q: %w", line, tech, attr, err)
		}
		if _, dup := t.values[tech][attr]; dup {
			return nil, fmt.Errorf("line %d: duplicate entry %q %q", line, tech, attr)
		}
		if attr == CapitalCost {
			v *= years
		}
		t.Set(tech, attr, v)
	}
	return t, nil
}
