// Package technology describes how each storage carrier is attached to a
// network: which cost-table technologies parameterise it, what the derived
// components are called and how its capacity is capped.
package technology

import (
	"errors"
	"fmt"
)

// ErrUnknownCarrier is returned for carriers without a registry entry.
var ErrUnknownCarrier = errors.New("unknown storage carrier")

// Carrier names.
const (
	Hydrogen      = "H2"
	Battery       = "battery"
	CompressedAir = "CAES"
	LiquidAir     = "LAES"
	Thermal       = "ETES"
	SodiumSulfur  = "NaS"
	IronFlow      = "FeFlow"
)

// Link carriers that are not storage media.
const (
	DC         = "DC"
	H2Pipeline = "H2 pipeline"
)

// CapPolicy decides how cavern potential caps a store's energy capacity.
type CapPolicy int

const (
	// CapNone leaves every store uncapped.
	CapNone CapPolicy = iota
	// CapListedSites caps stores at listed sites and leaves others uncapped.
	CapListedSites
	// CapSitesOnly caps stores at listed sites and gives others zero capacity.
	CapSitesOnly
)

func (p CapPolicy) String() string {
	switch p {
	case CapNone:
		return "none"
	case CapListedSites:
		return "listed-sites"
	case CapSitesOnly:
		return "sites-only"
	}
	return fmt.Sprintf("CapPolicy(%d)", int(p))
}

// LinkSpec describes one conversion link between a power bus and its storage bus.
type LinkSpec struct {
	Suffix  string // appended to the storage bus name
	Carrier string
	Cost    string // cost-table technology for efficiency, capital and marginal cost
	// CapitalShare is the fraction of the technology's capital cost charged to
	// this link. Zero means the link has no capital cost.
	CapitalShare float64
	// PerOutput charges capital cost per unit of output capacity, i.e.
	// multiplied by the link efficiency.
	PerOutput bool
}

// Unit parameterises the single-bus storage unit of a carrier.
type Unit struct {
	StoreEfficiency    string // technology for efficiency_store
	DispatchEfficiency string // technology for efficiency_dispatch
	StandingLoss       string // technology for standing_loss, empty for none
	SitesOnly          bool   // one unit per cavern site instead of per bus
}

// Storage parameterises the bus, store and link triple of a carrier.
type Storage struct {
	Suffix       string // appended to the power bus name
	Energy       string // technology for the store capital cost
	Marginal     string // technology for the store marginal cost, empty for none
	StandingLoss string // technology for standing_loss, empty for none
	Cap          CapPolicy
	Charge       LinkSpec
	Discharge    LinkSpec
}

// Technology is the registry entry for one storage carrier.
type Technology struct {
	Carrier string
	Unit    Unit
	Storage Storage
}

var (
	registry = make(map[string]Technology)
	order    = make([]string, 0)
)

func init() {
	for _, t := range defaults {
		if err := Register(t); err != nil {
			panic(err)
		}
	}
}

var defaults = []Technology{
	{
		Carrier: Hydrogen,
		Unit:    Unit{StoreEfficiency: "electrolysis", DispatchEfficiency: "fuel cell"},
		Storage: Storage{
			Suffix: " H2",
			Energy: "hydrogen storage",
			Cap:    CapListedSites,
			Charge: LinkSpec{Suffix: " Electrolysis", Carrier: "H2 electrolysis", Cost: "electrolysis", CapitalShare: 1},
			Discharge: LinkSpec{Suffix: " Fuel Cell", Carrier: "H2 fuel cell", Cost: "fuel cell",
				CapitalShare: 1, PerOutput: true},
		},
	},
	{
		Carrier: Battery,
		Unit:    Unit{StoreEfficiency: "battery inverter", DispatchEfficiency: "battery inverter"},
		Storage: Storage{
			Suffix:    " battery",
			Energy:    "battery storage",
			Marginal:  "battery",
			Charge:    LinkSpec{Suffix: " charger", Carrier: "battery charger", Cost: "battery inverter", CapitalShare: 1},
			Discharge: LinkSpec{Suffix: " discharger", Carrier: "battery discharger", Cost: "battery inverter"},
		},
	},
	{
		Carrier: CompressedAir,
		Unit:    Unit{StoreEfficiency: "CAES Compressor", DispatchEfficiency: "CAES Turbine", SitesOnly: true},
		Storage: Storage{
			Suffix:   " CAES",
			Energy:   "CAES Storage",
			Marginal: "CAES",
			Cap:      CapSitesOnly,
			Charge:   LinkSpec{Suffix: " Compressor", Carrier: "CAES compressor", Cost: "CAES Compressor", CapitalShare: 1},
			Discharge: LinkSpec{Suffix: " Turbine", Carrier: "CAES turbine", Cost: "CAES Turbine",
				CapitalShare: 1, PerOutput: true},
		},
	},
	{
		Carrier: LiquidAir,
		Unit:    Unit{StoreEfficiency: "LAES Power", DispatchEfficiency: "LAES Power", StandingLoss: "LAES Energy"},
		Storage: Storage{
			Suffix:       " LAES",
			Energy:       "LAES Energy",
			Marginal:     "LAES",
			StandingLoss: "LAES Energy",
			Charge:       LinkSpec{Suffix: " Compressor", Carrier: "LAES compressor", Cost: "LAES Power", CapitalShare: 0.5},
			Discharge: LinkSpec{Suffix: " Turbine", Carrier: "LAES turbine", Cost: "LAES Power",
				CapitalShare: 0.5, PerOutput: true},
		},
	},
	{
		Carrier: Thermal,
		Unit:    Unit{StoreEfficiency: "ETES Power", DispatchEfficiency: "ETES Power", StandingLoss: "ETES Energy"},
		Storage: Storage{
			Suffix:       " ETES",
			Energy:       "ETES Energy",
			Marginal:     "ETES",
			StandingLoss: "ETES Energy",
			Charge:       LinkSpec{Suffix: " Charger", Carrier: "ETES charger", Cost: "ETES Power", CapitalShare: 0.5},
			Discharge: LinkSpec{Suffix: " Turbine", Carrier: "ETES turbine", Cost: "ETES Power",
				CapitalShare: 0.5, PerOutput: true},
		},
	},
	{
		Carrier: SodiumSulfur,
		Unit:    Unit{StoreEfficiency: "NaS Inverter", DispatchEfficiency: "NaS Inverter"},
		Storage: Storage{
			Suffix:    " NaS",
			Energy:    "NaS Energy",
			Marginal:  "NaS",
			Charge:    LinkSpec{Suffix: " charger", Carrier: "NaS charger", Cost: "NaS Inverter", CapitalShare: 1},
			Discharge: LinkSpec{Suffix: " discharger", Carrier: "NaS discharger", Cost: "NaS Inverter"},
		},
	},
	{
		Carrier: IronFlow,
		Unit:    Unit{StoreEfficiency: "FeFlow Inverter", DispatchEfficiency: "FeFlow Inverter"},
		Storage: Storage{
			Suffix:    " FeFlow",
			Energy:    "FeFlow Energy",
			Marginal:  "FeFlow",
			Charge:    LinkSpec{Suffix: " charger", Carrier: "FeFlow charger", Cost: "FeFlow Inverter", CapitalShare: 1},
			Discharge: LinkSpec{Suffix: " discharger", Carrier: "FeFlow discharger", Cost: "FeFlow Inverter"},
		},
	},
}

// Register adds a storage carrier. Carriers can only be registered once.
func Register(t Technology) error {
	if t.Carrier == "" {
		return errors.New("technology without carrier")
	}
	if _, exists := registry[t.Carrier]; exists {
		return fmt.Errorf("carrier %q already registered", t.Carrier)
	}
	if t.Storage.Suffix == "" || t.Storage.Charge.Suffix == "" || t.Storage.Discharge.Suffix == "" {
		return fmt.Errorf("carrier %q: storage suffixes are required", t.Carrier)
	}
	registry[t.Carrier] = t
	order = append(order, t.Carrier)
	return nil
}

// Lookup returns the registry entry for carrier.
func Lookup(carrier string) (Technology, error) {
	t, ok := registry[carrier]
	if !ok {
		return Technology{}, fmt.Errorf("%q: %w", carrier, ErrUnknownCarrier)
	}
	return t, nil
}

// Known reports whether carrier has a registry entry.
func Known(carrier string) bool {
	_, ok := registry[carrier]
	return ok
}

// Carriers lists registered carriers in registration order.
func Carriers() []string {
	return append([]string{}, order...)
}

// BusName is the storage bus derived from a power bus.
func (t Technology) BusName(bus string) string {
	return bus + t.Storage.Suffix
}

// UnitName is the storage unit attached to a power bus.
func (t Technology) UnitName(bus string) string {
	return bus + " " + t.Carrier
}

// ChargeName is the charging link derived from a power bus.
func (t Technology) ChargeName(bus string) string {
	return t.BusName(bus) + t.Storage.Charge.Suffix
}

// DischargeName is the discharging link derived from a power bus.
func (t Technology) DischargeName(bus string) string {
	return t.BusName(bus) + t.Storage.Discharge.Suffix
}
