// Package codec persists a network as a single BSON document. Files whose name
// ends in ".sz" are snappy block compressed.
package codec

import (
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/golang/snappy"
	"github.com/google/uuid"
	"github.com/ohowland/cgc_augment/internal/pkg/network"
	"go.mongodb.org/mongo-driver/bson"
)

// CompressedSuffix marks snappy compressed network files.
const CompressedSuffix = ".sz"

// Document is the persisted form of a network.
type Document struct {
	Name       string             `bson:"name"`
	PID        string             `bson:"pid"`
	Hours      float64            `bson:"snapshot_hours"`
	Components network.Components `bson:"components"`
}

// ToDocument captures every table of n.
func ToDocument(n *network.Network) Document {
	return Document{
		Name:       n.Name(),
		PID:        n.PID().String(),
		Hours:      n.SnapshotHours(),
		Components: n.Components(),
	}
}

// Network rebuilds the network described by d.
func (d Document) Network() (*network.Network, error) {
	pid, err := uuid.Parse(d.PID)
	if err != nil {
		return nil, fmt.Errorf("network %q pid: %w", d.Name, err)
	}
	return network.Restore(d.Name, pid, d.Hours, d.Components)
}

// Marshal encodes n, compressing when compress is set.
func Marshal(n *network.Network, compress bool) ([]byte, error) {
	data, err := bson.Marshal(ToDocument(n))
	if err != nil {
		return nil, err
	}
	if compress {
		return snappy.Encode(nil, data), nil
	}
	return data, nil
}

// Unmarshal decodes a network written by Marshal.
func Unmarshal(data []byte, compressed bool) (*network.Network, error) {
	if compressed {
		raw, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("decompress network: %w", err)
		}
		data = raw
	}
	doc := Document{}
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode network: %w", err)
	}
	return doc.Network()
}

// Encode writes an uncompressed network to w.
func Encode(w io.Writer, n *network.Network) error {
	data, err := Marshal(n, false)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Decode reads an uncompressed network from r.
func Decode(r io.Reader) (*network.Network, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data, false)
}

// Read loads a network file.
func Read(path string) (*network.Network, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data, isCompressed(path))
}

// Write stores n at path, replacing any existing file.
func Write(path string, n *network.Network) error {
	data, err := Marshal(n, isCompressed(path))
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, data, 0644)
}

func isCompressed(path string) bool {
	return strings.HasSuffix(path, CompressedSuffix)
}
