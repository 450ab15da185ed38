// Package database resolves network locations to a file or a network store.
//
// A location is one of
//
//	path/to/network.bson        BSON file, snappy compressed when ending in .sz
//	mongodb://host/db#name      network "name" in a MongoDB database
//	sql:<driver>:<dsn>#name     network "name" in a mysql, postgres or sqlite database
package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/ohowland/cgc_augment/internal/pkg/database/mongodb"
	"github.com/ohowland/cgc_augment/internal/pkg/database/sqldb"
	"github.com/ohowland/cgc_augment/internal/pkg/network"
	"github.com/ohowland/cgc_augment/internal/pkg/network/codec"
)

// Store persists networks by name.
type Store interface {
	Load(ctx context.Context, name string) (*network.Network, error)
	Save(ctx context.Context, name string, n *network.Network) error
	Close(ctx context.Context) error
}

// Kind is the backend of a location.
type Kind int

const (
	File Kind = iota
	Mongo
	SQL
)

// Location is a parsed network location.
type Location struct {
	Kind    Kind
	Path    string // file path or MongoDB URI
	Driver  string // sql driver
	DSN     string // sql data source name
	Network string // network name within a store
}

// ParseLocation parses a location string.
func ParseLocation(s string) (Location, error) {
	switch {
	case strings.HasPrefix(s, "mongodb://"), strings.HasPrefix(s, "mongodb+srv://"):
		uri, name, err := splitNetwork(s)
		if err != nil {
			return Location{}, err
		}
		return Location{Kind: Mongo, Path: uri, Network: name}, nil

	case strings.HasPrefix(s, "sql:"):
		rest, name, err := splitNetwork(strings.TrimPrefix(s, "sql:"))
		if err != nil {
			return Location{}, err
		}
		i := strings.Index(rest, ":")
		if i <= 0 {
			return Location{}, fmt.Errorf("location %q: expected sql:<driver>:<dsn>#<network>", s)
		}
		return Location{Kind: SQL, Driver: rest[:i], DSN: rest[i+1:], Network: name}, nil

	case s == "":
		return Location{}, fmt.Errorf("empty location")
	}
	return Location{Kind: File, Path: s}, nil
}

func splitNetwork(s string) (string, string, error) {
	i := strings.LastIndex(s, "#")
	if i < 0 || i == len(s)-1 {
		return "", "", fmt.Errorf("location %q: missing #<network>", s)
	}
	return s[:i], s[i+1:], nil
}

// Open connects to the store of a Mongo or SQL location.
func Open(ctx context.Context, loc Location) (Store, error) {
	switch loc.Kind {
	case Mongo:
		return mongodb.Open(ctx, loc.Path)
	case SQL:
		return sqldb.Open(ctx, loc.Driver, loc.DSN)
	}
	return nil, fmt.Errorf("location %q is not a store", loc.Path)
}

// Read loads the network at location.
func Read(ctx context.Context, location string) (*network.Network, error) {
	loc, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}
	if loc.Kind == File {
		return codec.Read(loc.Path)
	}

	s, err := Open(ctx, loc)
	if err != nil {
		return nil, err
	}
	defer s.Close(ctx)
	return s.Load(ctx, loc.Network)
}

// Write stores n at location. Networks in a store are saved under the
// location's network name.
func Write(ctx context.Context, location string, n *network.Network) error {
	loc, err := ParseLocation(location)
	if err != nil {
		return err
	}
	if loc.Kind == File {
		return codec.Write(loc.Path, n)
	}

	s, err := Open(ctx, loc)
	if err != nil {
		return err
	}
	defer s.Close(ctx)
	return s.Save(ctx, loc.Network, n)
}
