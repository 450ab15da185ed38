package augment

import (
	"fmt"
	"log"

	"github.com/ohowland/cgc_augment/internal/pkg/caverns"
	"github.com/ohowland/cgc_augment/internal/pkg/config"
	"github.com/ohowland/cgc_augment/internal/pkg/costs"
	"github.com/ohowland/cgc_augment/internal/pkg/network"
	"github.com/ohowland/cgc_augment/internal/pkg/technology"
)

// AttachStorageUnits returns one extendable storage unit per bus for every
// carrier in ExtendableCarriers.StorageUnit. Site-restricted carriers get one
// unit per cavern site with potential, capped at the site's power potential.
func AttachStorageUnits(t Topology, costTable CostLookup, sites *caverns.Table, elec config.Electricity) (network.Components, error) {
	selected := elec.ExtendableCarriers.StorageUnit
	added := network.Components{}

	added.Carriers = missingCarriers(t, costTable, selected)

	for _, carrier := range selected {
		tech, err := technology.Lookup(carrier)
		if err != nil {
			return network.Components{}, err
		}
		maxHours, ok := elec.MaxHours[carrier]
		if !ok {
			return network.Components{}, fmt.Errorf("storage unit %q: no max hours configured", carrier)
		}

		template, err := unitTemplate(tech, costTable, maxHours)
		if err != nil {
			return network.Components{}, fmt.Errorf("storage unit %q: %w", carrier, err)
		}

		if tech.Unit.SitesOnly {
			for _, site := range sites.Sites() {
				if site.Energy == 0 {
					log.Printf("[Storage Units] %s: skipping %q, no cavern potential\n", carrier, site.Bus)
					continue
				}
				u := template
				u.Name = tech.UnitName(site.Bus)
				u.Bus = site.Bus
				u.PNomMax = network.Limit(site.Power())
				added.StorageUnits = append(added.StorageUnits, u)
			}
			continue
		}

		for _, bus := range t.Buses() {
			u := template
			u.Name = tech.UnitName(bus.Name)
			u.Bus = bus.Name
			added.StorageUnits = append(added.StorageUnits, u)
		}
	}
	return added, nil
}

func unitTemplate(tech technology.Technology, costTable CostLookup, maxHours float64) (network.StorageUnit, error) {
	r := costReader{table: costTable}
	u := network.StorageUnit{
		Carrier:             tech.Carrier,
		PNomExtendable:      true,
		PNomMax:             network.Unbounded,
		CapitalCost:         r.get(tech.Carrier, costs.CapitalCost),
		MarginalCost:        r.get(tech.Carrier, costs.MarginalCost),
		EfficiencyStore:     r.get(tech.Unit.StoreEfficiency, costs.Efficiency),
		EfficiencyDispatch:  r.get(tech.Unit.DispatchEfficiency, costs.Efficiency),
		MaxHours:            maxHours,
		CyclicStateOfCharge: true,
	}
	if tech.Unit.StandingLoss != "" {
		u.StandingLoss = r.get(tech.Unit.StandingLoss, costs.StandingLoss)
	}
	return u, r.err
}

// costReader keeps the first failed lookup so a row can be filled in one pass.
type costReader struct {
	table CostLookup
	err   error
}

func (r *costReader) get(tech, attr string) float64 {
	if r.err != nil {
		return 0
	}
	v, err := r.table.Get(tech, attr)
	if err != nil {
		r.err = err
	}
	return v
}

// missingCarriers returns carrier rows for known selected carriers the network
// does not have yet.
func missingCarriers(t Topology, costTable CostLookup, selected []string) []network.Carrier {
	added := make([]network.Carrier, 0)
	for _, name := range selected {
		if t.HasCarrier(name) || !technology.Known(name) {
			continue
		}
		added = append(added, network.Carrier{
			Name:         name,
			CO2Emissions: costTable.Default(name, costs.CO2Emissions, 0),
		})
	}
	return added
}
