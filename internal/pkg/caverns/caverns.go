// Package caverns loads the per-bus salt cavern storage potential used to cap
// compressed-air and hydrogen storage.
package caverns

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// HoursPerDay converts a cavern energy potential into a power cap: a cavern is
// assumed to discharge fully over one day.
const HoursPerDay = 24.

// Site is the storage potential available at one bus.
type Site struct {
	Bus    string
	Energy float64 // MWh
}

// Power is the power cap implied by the site's energy potential.
func (s Site) Power() float64 {
	return s.Energy / HoursPerDay
}

// Table holds sites in file order.
type Table struct {
	sites []Site
	index map[string]int
}

// New builds a table from sites. Later duplicates replace earlier ones.
func New(sites ...Site) *Table {
	t := &Table{index: make(map[string]int)}
	for _, s := range sites {
		if i, ok := t.index[s.Bus]; ok {
			t.sites[i] = s
			continue
		}
		t.index[s.Bus] = len(t.sites)
		t.sites = append(t.sites, s)
	}
	return t
}

// Sites returns every site in order, including those without potential.
func (t *Table) Sites() []Site {
	if t == nil {
		return nil
	}
	return append([]Site{}, t.sites...)
}

// Energy returns the energy potential at bus.
func (t *Table) Energy(bus string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	i, ok := t.index[bus]
	if !ok {
		return 0, false
	}
	return t.sites[i].Energy, true
}

// Power returns the power cap at bus.
func (t *Table) Power(bus string) (float64, bool) {
	e, ok := t.Energy(bus)
	return e / HoursPerDay, ok
}

// Load reads a cavern CSV file.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read parses rows with the header name,total.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if strings.TrimSpace(header[0]) != "name" || strings.TrimSpace(header[1]) != "total" {
		return nil, fmt.Errorf("unexpected header %q", header)
	}

	sites := make([]Site, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			line, _ := reader.FieldPos(1)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if v < 0 {
			line, _ := reader.FieldPos(1)
			return nil, fmt.Errorf("line %d: negative potential %v at %q", line, v, record[0])
		}
		sites = append(sites, Site{Bus: record[0], Energy: v})
	}
	return New(sites...), nil
}
