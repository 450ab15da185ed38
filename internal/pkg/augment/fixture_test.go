package augment

import (
	"testing"

	"github.com/ohowland/cgc_augment/internal/pkg/caverns"
	"github.com/ohowland/cgc_augment/internal/pkg/config"
	"github.com/ohowland/cgc_augment/internal/pkg/costs"
	"github.com/ohowland/cgc_augment/internal/pkg/network"
	"gotest.tools/v3/assert"
)

// newCosts returns a cost table covering every registered storage carrier.
func newCosts() *costs.Table {
	c := costs.New()
	set := func(tech string, capital, marginal, efficiency float64) {
		c.Set(tech, costs.CapitalCost, capital)
		c.Set(tech, costs.MarginalCost, marginal)
		c.Set(tech, costs.Efficiency, efficiency)
	}

	set("H2", 130000, 0, 0.5)
	set("battery", 90000, 0, 0.9)
	set("CAES", 50000, 1, 0.7)
	set("LAES", 60000, 2, 0.6)
	set("ETES", 40000, 3, 0.5)
	set("NaS", 70000, 4, 0.8)
	set("FeFlow", 80000, 5, 0.7)

	set("electrolysis", 60000, 0.1, 0.66)
	set("fuel cell", 110000, 0.2, 0.5)
	set("hydrogen storage", 1000, 0, 1)
	set("battery inverter", 20000, 0.3, 0.96)
	set("battery storage", 14000, 0, 1)
	set("CAES Compressor", 30000, 0.4, 0.8)
	set("CAES Turbine", 35000, 0.5, 0.6)
	set("CAES Storage", 20, 0, 1)
	set("LAES Power", 90000, 0.6, 0.7)
	set("LAES Energy", 300, 0, 1)
	set("ETES Power", 70000, 0.7, 0.45)
	set("ETES Energy", 25, 0, 1)
	set("NaS Inverter", 25000, 0.8, 0.92)
	set("NaS Energy", 30000, 0, 1)
	set("FeFlow Inverter", 26000, 0.9, 0.85)
	set("FeFlow Energy", 15000, 0, 1)
	set("H2 pipeline", 267, 0, 0.98)

	c.Set("LAES Energy", costs.StandingLoss, 0.001)
	c.Set("ETES Energy", costs.StandingLoss, 0.002)
	return c
}

func newSites() *caverns.Table {
	return caverns.New(
		caverns.Site{Bus: "A", Energy: 0},
		caverns.Site{Bus: "B", Energy: 2.4e6},
		caverns.Site{Bus: "C", Energy: 4.8e5},
	)
}

// newNetwork returns two buses joined by one AC line.
func newNetwork(t *testing.T) *network.Network {
	n, err := network.New("test")
	assert.NilError(t, err)

	err = n.Apply(network.Components{
		Carriers: []network.Carrier{{Name: "AC"}},
		Buses: []network.Bus{
			{Name: "A", X: -1.5, Y: 53, Country: "GB", Carrier: "AC"},
			{Name: "B", X: -3.2, Y: 56, Country: "GB", Carrier: "AC"},
		},
		Lines: []network.Line{{Name: "0", Bus0: "A", Bus1: "B", Length: 120, Carrier: "AC"}},
	})
	assert.NilError(t, err)
	return n
}

func electricity(storageUnits, stores, links []string) config.Electricity {
	return config.Electricity{
		ExtendableCarriers: config.ExtendableCarriers{
			StorageUnit: storageUnits,
			Store:       stores,
			Link:        links,
		},
		MaxHours: map[string]float64{
			"H2": 168, "battery": 6, "CAES": 24, "LAES": 12, "ETES": 10, "NaS": 7, "FeFlow": 8,
		},
	}
}

func cost(t *testing.T, c *costs.Table, tech, attr string) float64 {
	t.Helper()
	v, err := c.Get(tech, attr)
	assert.NilError(t, err)
	return v
}
