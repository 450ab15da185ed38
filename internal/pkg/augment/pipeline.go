package augment

import (
	"errors"
	"fmt"

	"github.com/ohowland/cgc_augment/internal/pkg/config"
	"github.com/ohowland/cgc_augment/internal/pkg/costs"
	"github.com/ohowland/cgc_augment/internal/pkg/network"
	"github.com/ohowland/cgc_augment/internal/pkg/technology"
)

// ErrPipelineRequiresHydrogen is returned when hydrogen pipelines are requested
// without hydrogen stores to connect.
var ErrPipelineRequiresHydrogen = errors.New("attaching hydrogen pipelines requires hydrogen " +
	"storage to be modelled as Store-Link-Bus combination, add H2 to " +
	"Electricity.ExtendableCarriers.Store")

// Candidate is a bus pair that may carry a pipeline.
type Candidate struct {
	Bus0   string
	Bus1   string
	Length float64
}

// PipelineName is the link name of the pipeline for c.
func (c Candidate) PipelineName() string {
	return fmt.Sprintf("%s %s-%s", technology.H2Pipeline, c.Bus0, c.Bus1)
}

type pair struct {
	a, b string
}

func (c Candidate) sortedPair() pair {
	if c.Bus1 < c.Bus0 {
		return pair{c.Bus1, c.Bus0}
	}
	return pair{c.Bus0, c.Bus1}
}

// Candidates lists all AC lines followed by all DC links.
func Candidates(t Topology) []Candidate {
	out := make([]Candidate, 0)
	for _, l := range t.Lines() {
		out = append(out, Candidate{l.Bus0, l.Bus1, l.Length})
	}
	for _, l := range t.Links() {
		if l.Carrier != technology.DC {
			continue
		}
		out = append(out, Candidate{l.Bus0, l.Bus1, l.Length})
	}
	return out
}

// UniquePairs drops every candidate whose bus pair, regardless of direction,
// appeared earlier in cs.
func UniquePairs(cs []Candidate) []Candidate {
	seen := make(map[pair]struct{}, len(cs))
	out := make([]Candidate, 0, len(cs))
	for _, c := range cs {
		p := c.sortedPair()
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, c)
	}
	return out
}

// AttachHydrogenPipelines returns one bidirectional, extendable hydrogen
// pipeline between the H2 buses of every distinct pair of buses connected by a
// line or DC link. It returns nothing unless H2 pipelines are selected as a link
// carrier.
func AttachHydrogenPipelines(t Topology, costTable CostLookup, elec config.Electricity) (network.Components, error) {
	ext := elec.ExtendableCarriers
	if !ext.Wants("Link", technology.H2Pipeline) {
		return network.Components{}, nil
	}
	if !ext.Wants("Store", technology.Hydrogen) {
		return network.Components{}, ErrPipelineRequiresHydrogen
	}

	h2, err := technology.Lookup(technology.Hydrogen)
	if err != nil {
		return network.Components{}, err
	}

	r := costReader{table: costTable}
	costPerLength := r.get(technology.H2Pipeline, costs.CapitalCost)
	efficiency := r.get(technology.H2Pipeline, costs.Efficiency)
	if r.err != nil {
		return network.Components{}, fmt.Errorf("pipeline: %w", r.err)
	}

	added := network.Components{}
	for _, c := range UniquePairs(Candidates(t)) {
		added.Links = append(added.Links, network.Link{
			Name:           c.PipelineName(),
			Bus0:           h2.BusName(c.Bus0),
			Bus1:           h2.BusName(c.Bus1),
			Carrier:        technology.H2Pipeline,
			PMinPU:         -1,
			PNomExtendable: true,
			Length:         c.Length,
			CapitalCost:    costPerLength * c.Length,
			Efficiency:     efficiency,
		})
	}
	return added, nil
}
