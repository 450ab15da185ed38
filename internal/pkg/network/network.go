// Package network holds the component tables of an energy-network model.
//
// Rows are only ever added through Apply. Foreign keys (Bus, Bus0, Bus1) are
// plain names and are not checked against the bus table.
package network

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrDuplicateName is returned when a row name already exists in its table.
var ErrDuplicateName = errors.New("duplicate component name")

const hoursPerYear = 8760.

type row interface {
	ID() string
}

type table[T row] struct {
	rows  []T
	index map[string]int
}

func newTable[T row]() table[T] {
	return table[T]{index: make(map[string]int)}
}

func (t *table[T]) add(r T) {
	t.index[r.ID()] = len(t.rows)
	t.rows = append(t.rows, r)
}

func (t table[T]) has(name string) bool {
	_, ok := t.index[name]
	return ok
}

func (t table[T]) get(name string) (T, bool) {
	i, ok := t.index[name]
	if !ok {
		var zero T
		return zero, false
	}
	return t.rows[i], true
}

func (t table[T]) all() []T {
	return append([]T{}, t.rows...)
}

func (t *table[T]) update(name string, fn func(*T)) bool {
	i, ok := t.index[name]
	if !ok {
		return false
	}
	fn(&t.rows[i])
	return true
}

// Network is a named collection of component tables.
type Network struct {
	name  string
	pid   uuid.UUID
	hours float64

	carriers     table[Carrier]
	buses        table[Bus]
	lines        table[Line]
	links        table[Link]
	storageUnits table[StorageUnit]
	stores       table[Store]
}

// New returns an empty network with a fresh PID.
func New(name string) (*Network, error) {
	pid, err := uuid.NewUUID()
	if err != nil {
		return nil, err
	}
	return Restore(name, pid, 0, Components{})
}

// Restore rebuilds a persisted network.
func Restore(name string, pid uuid.UUID, hours float64, c Components) (*Network, error) {
	n := &Network{
		name:         name,
		pid:          pid,
		hours:        hours,
		carriers:     newTable[Carrier](),
		buses:        newTable[Bus](),
		lines:        newTable[Line](),
		links:        newTable[Link](),
		storageUnits: newTable[StorageUnit](),
		stores:       newTable[Store](),
	}
	if err := n.Apply(c); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Network) Name() string {
	return n.name
}

func (n *Network) PID() uuid.UUID {
	return n.pid
}

// SnapshotHours is the total snapshot weighting of the modelled horizon.
func (n *Network) SnapshotHours() float64 {
	return n.hours
}

// SetSnapshotHours sets the total snapshot weighting of the modelled horizon.
func (n *Network) SetSnapshotHours(h float64) {
	n.hours = h
}

// Years is the modelled horizon in years. Networks without snapshot weightings
// count as one year.
func (n *Network) Years() float64 {
	if n.hours <= 0 {
		return 1
	}
	return n.hours / hoursPerYear
}

// Apply adds every row of c. Names are checked against the existing tables and
// within c first; on a duplicate nothing is added.
func (n *Network) Apply(c Components) error {
	if err := checkNames(CarrierComponent, n.carriers, c.Carriers); err != nil {
		return err
	}
	if err := checkNames(BusComponent, n.buses, c.Buses); err != nil {
		return err
	}
	if err := checkNames(LineComponent, n.lines, c.Lines); err != nil {
		return err
	}
	if err := checkNames(LinkComponent, n.links, c.Links); err != nil {
		return err
	}
	if err := checkNames(StorageUnitComponent, n.storageUnits, c.StorageUnits); err != nil {
		return err
	}
	if err := checkNames(StoreComponent, n.stores, c.Stores); err != nil {
		return err
	}

	for _, r := range c.Carriers {
		n.carriers.add(r)
	}
	for _, r := range c.Buses {
		n.buses.add(r)
	}
	for _, r := range c.Lines {
		n.lines.add(r)
	}
	for _, r := range c.Links {
		n.links.add(r)
	}
	for _, r := range c.StorageUnits {
		n.storageUnits.add(r)
	}
	for _, r := range c.Stores {
		n.stores.add(r)
	}
	return nil
}

func checkNames[T row](comp Component, t table[T], rows []T) error {
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		name := r.ID()
		if _, dup := seen[name]; dup || t.has(name) {
			return fmt.Errorf("%s %q: %w", comp, name, ErrDuplicateName)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// StyleCarrier sets the display name and color of an existing carrier.
func (n *Network) StyleCarrier(name, niceName, color string) bool {
	return n.carriers.update(name, func(c *Carrier) {
		c.NiceName = niceName
		c.Color = color
	})
}

// Components returns a copy of every table.
func (n *Network) Components() Components {
	return Components{
		Carriers:     n.carriers.all(),
		Buses:        n.buses.all(),
		Lines:        n.lines.all(),
		Links:        n.links.all(),
		StorageUnits: n.storageUnits.all(),
		Stores:       n.stores.all(),
	}
}

func (n *Network) Carriers() []Carrier         { return n.carriers.all() }
func (n *Network) Buses() []Bus                { return n.buses.all() }
func (n *Network) Lines() []Line               { return n.lines.all() }
func (n *Network) Links() []Link               { return n.links.all() }
func (n *Network) StorageUnits() []StorageUnit { return n.storageUnits.all() }
func (n *Network) Stores() []Store             { return n.stores.all() }

func (n *Network) HasCarrier(name string) bool { return n.carriers.has(name) }

func (n *Network) Carrier(name string) (Carrier, bool)         { return n.carriers.get(name) }
func (n *Network) Bus(name string) (Bus, bool)                 { return n.buses.get(name) }
func (n *Network) Line(name string) (Line, bool)               { return n.lines.get(name) }
func (n *Network) Link(name string) (Link, bool)               { return n.links.get(name) }
func (n *Network) StorageUnit(name string) (StorageUnit, bool) { return n.storageUnits.get(name) }
func (n *Network) Store(name string) (Store, bool)             { return n.stores.get(name) }

// Row returns a single row of a component table by name.
func (n *Network) Row(comp Component, name string) (interface{}, bool) {
	var (
		r  interface{}
		ok bool
	)
	switch comp {
	case CarrierComponent:
		r, ok = n.Carrier(name)
	case BusComponent:
		r, ok = n.Bus(name)
	case LineComponent:
		r, ok = n.Line(name)
	case LinkComponent:
		r, ok = n.Link(name)
	case StorageUnitComponent:
		r, ok = n.StorageUnit(name)
	case StoreComponent:
		r, ok = n.Store(name)
	}
	if !ok {
		return nil, false
	}
	return r, true
}
