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

// AttachStores returns, for every carrier in ExtendableCarriers.Store and every
// bus, a storage bus, an extendable store on it, and a charge and discharge
// link between the power bus and the storage bus. Unknown carriers are skipped.
func AttachStores(t Topology, costTable CostLookup, sites *caverns.Table, elec config.Electricity) (network.Components, error) {
	selected := elec.ExtendableCarriers.Store
	added := network.Components{}
	added.Carriers = missingCarriers(t, costTable, selected)

	buses := t.Buses()
	for _, carrier := range selected {
		tech, err := technology.Lookup(carrier)
		if err != nil {
			log.Printf("[Stores] skipping %q: %v\n", carrier, err)
			continue
		}

		store, charge, discharge, err := storeTemplates(tech, costTable)
		if err != nil {
			return network.Components{}, fmt.Errorf("store %q: %w", carrier, err)
		}

		for _, bus := range buses {
			storageBus := tech.BusName(bus.Name)

			added.Buses = append(added.Buses, network.Bus{
				Name:    storageBus,
				X:       bus.X,
				Y:       bus.Y,
				Country: bus.Country,
				Carrier: carrier,
			})

			s := store
			s.Name = storageBus
			s.Bus = storageBus
			s.ENomMax = energyCap(tech.Storage.Cap, sites, bus.Name)
			added.Stores = append(added.Stores, s)

			c := charge
			c.Name = tech.ChargeName(bus.Name)
			c.Bus0 = bus.Name
			c.Bus1 = storageBus

			d := discharge
			d.Name = tech.DischargeName(bus.Name)
			d.Bus0 = storageBus
			d.Bus1 = bus.Name

			added.Links = append(added.Links, c, d)
		}
	}
	return added, nil
}

func storeTemplates(tech technology.Technology, costTable CostLookup) (network.Store, network.Link, network.Link, error) {
	r := costReader{table: costTable}
	spec := tech.Storage

	store := network.Store{
		Carrier:        tech.Carrier,
		ENomExtendable: true,
		ENomMax:        network.Unbounded,
		ECyclic:        true,
		CapitalCost:    r.get(spec.Energy, costs.CapitalCost),
	}
	if spec.Marginal != "" {
		store.MarginalCost = r.get(spec.Marginal, costs.MarginalCost)
	}
	if spec.StandingLoss != "" {
		store.StandingLoss = r.get(spec.StandingLoss, costs.StandingLoss)
	}

	charge := conversionLink(&r, spec.Charge)
	discharge := conversionLink(&r, spec.Discharge)
	return store, charge, discharge, r.err
}

// conversionLink prices one side of a store. Capital cost is the technology's
// capital cost times the link's share, times efficiency when charged per unit
// of output.
func conversionLink(r *costReader, spec technology.LinkSpec) network.Link {
	l := network.Link{
		Carrier:        spec.Carrier,
		PNomExtendable: true,
		Efficiency:     r.get(spec.Cost, costs.Efficiency),
		MarginalCost:   r.get(spec.Cost, costs.MarginalCost),
	}
	if spec.CapitalShare == 0 {
		return l
	}
	l.CapitalCost = r.get(spec.Cost, costs.CapitalCost) * spec.CapitalShare
	if spec.PerOutput {
		l.CapitalCost *= l.Efficiency
	}
	return l
}

func energyCap(policy technology.CapPolicy, sites *caverns.Table, bus string) network.Limit {
	switch policy {
	case technology.CapListedSites:
		if e, ok := sites.Energy(bus); ok {
			return network.Limit(e)
		}
	case technology.CapSitesOnly:
		e, _ := sites.Energy(bus)
		return network.Limit(e)
	}
	return network.Unbounded
}
