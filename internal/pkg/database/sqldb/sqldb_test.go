package sqldb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ohowland/cgc_augment/internal/pkg/network"
	"gotest.tools/v3/assert"
)

func newStore(t *testing.T) *Store {
	s, err := Open(context.Background(), SQLite, filepath.Join(t.TempDir(), "networks.db"))
	assert.NilError(t, err)
	t.Cleanup(func() { s.Close(context.Background()) })
	return s
}

func sampleNetwork(t *testing.T) *network.Network {
	n, err := network.New("elec")
	assert.NilError(t, err)
	n.SetSnapshotHours(4380)

	err = n.Apply(network.Components{
		Carriers: []network.Carrier{{Name: "AC"}, {Name: "H2", CO2Emissions: 0, NiceName: "Hydrogen", Color: "#bf13a0"}},
		Buses: []network.Bus{
			{Name: "B", X: 1, Y: 2, Country: "GB", Carrier: "AC"},
			{Name: "A", Carrier: "AC"},
			{Name: "A H2", Carrier: "H2"},
		},
		Lines: []network.Line{{Name: "0", Bus0: "A", Bus1: "B", Length: 12.5, Carrier: "AC"}},
		Links: []network.Link{{Name: "H2 pipeline A-B", Bus0: "A H2", Bus1: "B H2", Carrier: "H2 pipeline", PMinPU: -1}},
		StorageUnits: []network.StorageUnit{
			{Name: "A battery", Bus: "A", Carrier: "battery", PNomMax: network.Unbounded, MaxHours: 6},
			{Name: "A CAES", Bus: "A", Carrier: "CAES", PNomMax: 250},
		},
		Stores: []network.Store{{Name: "A H2", Bus: "A H2", Carrier: "H2", ENomMax: network.Unbounded}},
	})
	assert.NilError(t, err)
	return n
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	n := sampleNetwork(t)

	assert.NilError(t, s.Save(ctx, "elec-augmented", n))

	got, err := s.Load(ctx, "elec-augmented")
	assert.NilError(t, err)
	assert.Equal(t, got.Name(), "elec-augmented")
	assert.Equal(t, got.PID(), n.PID())
	assert.Equal(t, got.SnapshotHours(), 4380.)
	assert.DeepEqual(t, got.Components(), n.Components(), cmpopts.EquateEmpty())

	u, ok := got.StorageUnit("A battery")
	assert.Assert(t, ok)
	assert.Assert(t, !u.PNomMax.Bounded())
}

func TestSaveReplaces(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	assert.NilError(t, s.Save(ctx, "elec", sampleNetwork(t)))

	small, err := network.New("elec")
	assert.NilError(t, err)
	assert.NilError(t, small.Apply(network.Components{Buses: []network.Bus{{Name: "Z"}}}))
	assert.NilError(t, s.Save(ctx, "elec", small))

	got, err := s.Load(ctx, "elec")
	assert.NilError(t, err)
	assert.Equal(t, got.Components().Len(), 1)
	assert.Equal(t, got.PID(), small.PID())
}

func TestLoadMissing(t *testing.T) {
	_, err := newStore(t).Load(context.Background(), "nope")
	assert.Assert(t, errors.Is(err, ErrNotFound))
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "")
	assert.ErrorContains(t, err, `unsupported sql driver "oracle"`)
}

func TestRebindDollar(t *testing.T) {
	assert.Equal(t,
		rebindDollar(`INSERT INTO t (a, b, c) VALUES (?, ?, ?)`),
		`INSERT INTO t (a, b, c) VALUES ($1, $2, $3)`)

	s := &Store{driver: MySQL}
	assert.Equal(t, s.rebind(`WHERE name = ?`), `WHERE name = ?`)
}
