// Package report summarises the components added by an augmentation run.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/ohowland/cgc_augment/internal/pkg/network"
)

// Summary counts added components per table and carrier.
type Summary struct {
	PID     uuid.UUID                            `json:"PID"`
	Network string                               `json:"Network"`
	Created time.Time                            `json:"Created"`
	Added   map[network.Component]map[string]int `json:"Added"`
}

// NewSummary starts an empty summary for a run on the named network.
func NewSummary(networkName string) (Summary, error) {
	pid, err := uuid.NewUUID()
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		PID:     pid,
		Network: networkName,
		Created: time.Now().UTC(),
		Added:   make(map[network.Component]map[string]int),
	}, nil
}

// Add counts the rows of c.
func (s *Summary) Add(c network.Components) {
	for _, comp := range network.ComponentNames {
		for carrier, count := range c.CarrierCounts(comp) {
			if s.Added[comp] == nil {
				s.Added[comp] = make(map[string]int)
			}
			s.Added[comp][carrier] += count
		}
	}
}

// Count returns the number of added rows for one table and carrier.
func (s Summary) Count(comp network.Component, carrier string) int {
	return s.Added[comp][carrier]
}

// Total returns the number of added rows.
func (s Summary) Total() int {
	total := 0
	for _, byCarrier := range s.Added {
		for _, count := range byCarrier {
			total += count
		}
	}
	return total
}
