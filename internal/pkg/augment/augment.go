// Package augment attaches extendable storage and conversion components to a
// network.
//
// Each attacher reads the network and returns the rows it would add; Run
// applies them in order: storage units, stores, then hydrogen pipelines. A
// failed stage leaves earlier stages applied.
package augment

import (
	"log"

	"github.com/ohowland/cgc_augment/internal/pkg/caverns"
	"github.com/ohowland/cgc_augment/internal/pkg/config"
	"github.com/ohowland/cgc_augment/internal/pkg/network"
	"github.com/ohowland/cgc_augment/internal/pkg/report"
)

// CostLookup is the cost table as seen by the attachers.
type CostLookup interface {
	Get(tech, attr string) (float64, error)
	Default(tech, attr string, d float64) float64
}

// Topology is the read-only view of a network the attachers need.
type Topology interface {
	Buses() []network.Bus
	Lines() []network.Line
	Links() []network.Link
	HasCarrier(name string) bool
}

// Run attaches every configured component to n and styles the carriers.
func Run(n *network.Network, costs CostLookup, sites *caverns.Table, cfg config.Config) (report.Summary, error) {
	summary, err := report.NewSummary(n.Name())
	if err != nil {
		return report.Summary{}, err
	}

	stages := []struct {
		name   string
		attach func() (network.Components, error)
	}{
		{"Storage Units", func() (network.Components, error) {
			return AttachStorageUnits(n, costs, sites, cfg.Electricity)
		}},
		{"Stores", func() (network.Components, error) {
			return AttachStores(n, costs, sites, cfg.Electricity)
		}},
		{"H2 Pipelines", func() (network.Components, error) {
			return AttachHydrogenPipelines(n, costs, cfg.Electricity)
		}},
	}

	for _, stage := range stages {
		added, err := stage.attach()
		if err != nil {
			return summary, err
		}
		if err := n.Apply(added); err != nil {
			return summary, err
		}
		summary.Add(added)
		log.Printf("[%s] added %d components\n", stage.name, added.Len())
	}

	NameCarriers(n, cfg.Plotting)
	return summary, nil
}
