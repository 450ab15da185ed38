package codec

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ohowland/cgc_augment/internal/pkg/network"
	"gotest.tools/v3/assert"
)

func newNetwork(t *testing.T) *network.Network {
	n, err := network.New("elec_s_5")
	assert.NilError(t, err)
	n.SetSnapshotHours(8760)

	err = n.Apply(network.Components{
		Carriers: []network.Carrier{{Name: "AC"}},
		Buses: []network.Bus{
			{Name: "GB0 0", X: -1.5, Y: 53.1, Country: "GB", Carrier: "AC"},
			{Name: "GB0 1", X: -2.1, Y: 51.9, Country: "GB", Carrier: "AC"},
		},
		Lines: []network.Line{{Name: "1", Bus0: "GB0 0", Bus1: "GB0 1", Length: 212.5, Carrier: "AC"}},
		Links: []network.Link{{Name: "T1", Bus0: "GB0 1", Bus1: "GB0 0", Carrier: "DC", Length: 80, PNom: 1000, Efficiency: 1}},
		Stores: []network.Store{
			{Name: "GB0 0 H2", Bus: "GB0 0", Carrier: "H2", ENomMax: network.Unbounded},
			{Name: "GB0 1 H2", Bus: "GB0 1", Carrier: "H2", ENomMax: 1e6},
		},
	})
	assert.NilError(t, err)
	return n
}

func assertSameNetwork(t *testing.T, got, want *network.Network) {
	t.Helper()
	assert.Equal(t, got.Name(), want.Name())
	assert.Equal(t, got.PID(), want.PID())
	assert.Equal(t, got.SnapshotHours(), want.SnapshotHours())
	assert.DeepEqual(t, got.Components(), want.Components(), cmpopts.EquateEmpty())
}

func TestEncodeDecode(t *testing.T) {
	n := newNetwork(t)

	buf := &bytes.Buffer{}
	assert.NilError(t, Encode(buf, n))

	decoded, err := Decode(buf)
	assert.NilError(t, err)
	assertSameNetwork(t, decoded, n)

	s, _ := decoded.Store("GB0 0 H2")
	assert.Assert(t, !s.ENomMax.Bounded())
}

func TestWriteReadCompressed(t *testing.T) {
	n := newNetwork(t)
	dir := t.TempDir()

	plain := filepath.Join(dir, "elec.bson")
	packed := filepath.Join(dir, "elec.bson"+CompressedSuffix)

	assert.NilError(t, Write(plain, n))
	assert.NilError(t, Write(packed, n))

	fromPlain, err := Read(plain)
	assert.NilError(t, err)
	assertSameNetwork(t, fromPlain, n)

	fromPacked, err := Read(packed)
	assert.NilError(t, err)
	assertSameNetwork(t, fromPacked, n)
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	_, err := Unmarshal([]byte("not a network"), true)
	assert.ErrorContains(t, err, "decompress network")

	_, err = Unmarshal([]byte{0x01, 0x02}, false)
	assert.ErrorContains(t, err, "decode network")
}

func TestDocumentBadPID(t *testing.T) {
	_, err := Document{Name: "x", PID: "nope"}.Network()
	assert.ErrorContains(t, err, `network "x" pid`)
}
