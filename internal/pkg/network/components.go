package network

import (
	"encoding/json"
	"math"
)

// Component names a network component table.
type Component string

const (
	CarrierComponent     Component = "Carrier"
	BusComponent         Component = "Bus"
	LineComponent        Component = "Line"
	LinkComponent        Component = "Link"
	StorageUnitComponent Component = "StorageUnit"
	StoreComponent       Component = "Store"
)

// ComponentNames lists every component table in apply order.
var ComponentNames = []Component{
	CarrierComponent,
	BusComponent,
	LineComponent,
	LinkComponent,
	StorageUnitComponent,
	StoreComponent,
}

// Limit is an upper capacity bound. Unbounded is +Inf, encoded as null in JSON.
type Limit float64

// Unbounded marks a capacity without an upper bound.
var Unbounded = Limit(math.Inf(1))

// Bounded reports whether the limit is finite.
func (l Limit) Bounded() bool {
	return !math.IsInf(float64(l), 1)
}

func (l Limit) MarshalJSON() ([]byte, error) {
	if !l.Bounded() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(l))
}

func (l *Limit) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = Unbounded
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = Limit(v)
	return nil
}

// Carrier is an energy carrier or technology label.
type Carrier struct {
	Name         string  `json:"Name" bson:"name"`
	CO2Emissions float64 `json:"CO2Emissions" bson:"co2_emissions"`
	NiceName     string  `json:"NiceName,omitempty" bson:"nice_name,omitempty"`
	Color        string  `json:"Color,omitempty" bson:"color,omitempty"`
}

// Bus is an electrical or energy-carrier node.
type Bus struct {
	Name    string  `json:"Name" bson:"name"`
	X       float64 `json:"X" bson:"x"`
	Y       float64 `json:"Y" bson:"y"`
	Country string  `json:"Country" bson:"country"`
	Carrier string  `json:"Carrier" bson:"carrier"`
}

// Line is an AC transmission line.
type Line struct {
	Name    string  `json:"Name" bson:"name"`
	Bus0    string  `json:"Bus0" bson:"bus0"`
	Bus1    string  `json:"Bus1" bson:"bus1"`
	Length  float64 `json:"Length" bson:"length"`
	Carrier string  `json:"Carrier" bson:"carrier"`
}

// Link is a controllable directed branch between two buses.
type Link struct {
	Name           string  `json:"Name" bson:"name"`
	Bus0           string  `json:"Bus0" bson:"bus0"`
	Bus1           string  `json:"Bus1" bson:"bus1"`
	Carrier        string  `json:"Carrier" bson:"carrier"`
	Efficiency     float64 `json:"Efficiency" bson:"efficiency"`
	CapitalCost    float64 `json:"CapitalCost" bson:"capital_cost"`
	MarginalCost   float64 `json:"MarginalCost" bson:"marginal_cost"`
	Length         float64 `json:"Length" bson:"length"`
	PNom           float64 `json:"PNom" bson:"p_nom"`
	PNomExtendable bool    `json:"PNomExtendable" bson:"p_nom_extendable"`
	PMinPU         float64 `json:"PMinPU" bson:"p_min_pu"`
}

// StorageUnit couples power and energy capacity through MaxHours.
type StorageUnit struct {
	Name                string  `json:"Name" bson:"name"`
	Bus                 string  `json:"Bus" bson:"bus"`
	Carrier             string  `json:"Carrier" bson:"carrier"`
	PNom                float64 `json:"PNom" bson:"p_nom"`
	PNomExtendable      bool    `json:"PNomExtendable" bson:"p_nom_extendable"`
	PNomMax             Limit   `json:"PNomMax" bson:"p_nom_max"`
	CapitalCost         float64 `json:"CapitalCost" bson:"capital_cost"`
	MarginalCost        float64 `json:"MarginalCost" bson:"marginal_cost"`
	EfficiencyStore     float64 `json:"EfficiencyStore" bson:"efficiency_store"`
	EfficiencyDispatch  float64 `json:"EfficiencyDispatch" bson:"efficiency_dispatch"`
	StandingLoss        float64 `json:"StandingLoss" bson:"standing_loss"`
	MaxHours            float64 `json:"MaxHours" bson:"max_hours"`
	CyclicStateOfCharge bool    `json:"CyclicStateOfCharge" bson:"cyclic_state_of_charge"`
}

// Store holds energy on a single bus.
type Store struct {
	Name           string  `json:"Name" bson:"name"`
	Bus            string  `json:"Bus" bson:"bus"`
	Carrier        string  `json:"Carrier" bson:"carrier"`
	ENom           float64 `json:"ENom" bson:"e_nom"`
	ENomExtendable bool    `json:"ENomExtendable" bson:"e_nom_extendable"`
	ENomMax        Limit   `json:"ENomMax" bson:"e_nom_max"`
	ECyclic        bool    `json:"ECyclic" bson:"e_cyclic"`
	CapitalCost    float64 `json:"CapitalCost" bson:"capital_cost"`
	MarginalCost   float64 `json:"MarginalCost" bson:"marginal_cost"`
	StandingLoss   float64 `json:"StandingLoss" bson:"standing_loss"`
}

func (c Carrier) ID() string     { return c.Name }
func (b Bus) ID() string         { return b.Name }
func (l Line) ID() string        { return l.Name }
func (l Link) ID() string        { return l.Name }
func (s StorageUnit) ID() string { return s.Name }
func (s Store) ID() string       { return s.Name }

// Components is an ordered set of component rows. Attachers return the rows
// they add as Components; Network.Apply merges them.
type Components struct {
	Carriers     []Carrier     `json:"Carriers,omitempty" bson:"carriers,omitempty"`
	Buses        []Bus         `json:"Buses,omitempty" bson:"buses,omitempty"`
	Lines        []Line        `json:"Lines,omitempty" bson:"lines,omitempty"`
	Links        []Link        `json:"Links,omitempty" bson:"links,omitempty"`
	StorageUnits []StorageUnit `json:"StorageUnits,omitempty" bson:"storage_units,omitempty"`
	Stores       []Store       `json:"Stores,omitempty" bson:"stores,omitempty"`
}

// Len returns the total number of rows.
func (c Components) Len() int {
	return len(c.Carriers) + len(c.Buses) + len(c.Lines) + len(c.Links) + len(c.StorageUnits) + len(c.Stores)
}

// Merge appends the rows of other after the rows of c.
func (c Components) Merge(other Components) Components {
	return Components{
		Carriers:     append(append([]Carrier{}, c.Carriers...), other.Carriers...),
		Buses:        append(append([]Bus{}, c.Buses...), other.Buses...),
		Lines:        append(append([]Line{}, c.Lines...), other.Lines...),
		Links:        append(append([]Link{}, c.Links...), other.Links...),
		StorageUnits: append(append([]StorageUnit{}, c.StorageUnits...), other.StorageUnits...),
		Stores:       append(append([]Store{}, c.Stores...), other.Stores...),
	}
}

// CarrierCounts returns the number of rows per carrier for one component table.
func (c Components) CarrierCounts(comp Component) map[string]int {
	counts := make(map[string]int)
	switch comp {
	case CarrierComponent:
		for _, r := range c.Carriers {
			counts[r.Name]++
		}
	case BusComponent:
		for _, r := range c.Buses {
			counts[r.Carrier]++
		}
	case LineComponent:
		for _, r := range c.Lines {
			counts[r.Carrier]++
		}
	case LinkComponent:
		for _, r := range c.Links {
			counts[r.Carrier]++
		}
	case StorageUnitComponent:
		for _, r := range c.StorageUnits {
			counts[r.Carrier]++
		}
	case StoreComponent:
		for _, r := range c.Stores {
			counts[r.Carrier]++
		}
	}
	return counts
}

// Rows returns the rows of one component table as a slice value.
func (c Components) Rows(comp Component) (interface{}, bool) {
	switch comp {
	case CarrierComponent:
		return c.Carriers, true
	case BusComponent:
		return c.Buses, true
	case LineComponent:
		return c.Lines, true
	case LinkComponent:
		return c.Links, true
	case StorageUnitComponent:
		return c.StorageUnits, true
	case StoreComponent:
		return c.Stores, true
	}
	return nil, false
}
