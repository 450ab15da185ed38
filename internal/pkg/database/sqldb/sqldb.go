// Package sqldb stores networks in a relational database. Each component row
// is kept as JSON next to its key columns.
package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/ohowland/cgc_augment/internal/pkg/network"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Load for unknown networks.
var ErrNotFound = errors.New("network not found")

// Drivers accepted by Open.
const (
	MySQL    = "mysql"
	Postgres = "postgres"
	SQLite   = "sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS networks (
		name VARCHAR(255) NOT NULL PRIMARY KEY,
		pid VARCHAR(36) NOT NULL,
		snapshot_hours DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS components (
		network VARCHAR(255) NOT NULL,
		component VARCHAR(32) NOT NULL,
		seq INTEGER NOT NULL,
		name VARCHAR(255) NOT NULL,
		carrier VARCHAR(255) NOT NULL,
		data TEXT NOT NULL,
		PRIMARY KEY (network, component, name)
	)`,
}

// Store is a network store backed by database/sql.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to dsn and creates the tables if needed.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	switch driver {
	case MySQL, Postgres, SQLite:
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == SQLite {
		// a single connection keeps in-memory databases alive between calls
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, driver: driver}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", driver, err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close(ctx context.Context) error {
	return s.db.Close()
}

// Save replaces the stored network called name with n in one transaction.
func (s *Store) Save(ctx context.Context, name string, n *network.Network) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM components WHERE network = ?`), name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM networks WHERE name = ?`), name); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		s.rebind(`INSERT INTO networks (name, pid, snapshot_hours) VALUES (?, ?, ?)`),
		name, n.PID().String(), n.SnapshotHours())
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, s.rebind(
		`INSERT INTO components (network, component, seq, name, carrier, data) VALUES (?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows(n.Components()) {
		data, err := json.Marshal(r.value)
		if err != nil {
			return fmt.Errorf("%s %q: %w", r.component, r.name, err)
		}
		_, err = stmt.ExecContext(ctx, name, string(r.component), r.seq, r.name, r.carrier, string(data))
		if err != nil {
			return fmt.Errorf("%s %q: %w", r.component, r.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Printf("[SQL] saved network %q to %s\n", name, s.driver)
	return nil
}

// Load reads the network called name.
func (s *Store) Load(ctx context.Context, name string) (*network.Network, error) {
	var (
		pid   string
		hours float64
	)
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT pid, snapshot_hours FROM networks WHERE name = ?`), name).Scan(&pid, &hours)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(pid)
	if err != nil {
		return nil, fmt.Errorf("network %q pid: %w", name, err)
	}

	result, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT component, data FROM components WHERE network = ? ORDER BY component, seq`), name)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	c := network.Components{}
	for result.Next() {
		var comp, data string
		if err := result.Scan(&comp, &data); err != nil {
			return nil, err
		}
		if err := decodeRow(&c, network.Component(comp), []byte(data)); err != nil {
			return nil, fmt.Errorf("network %q: %w", name, err)
		}
	}
	if err := result.Err(); err != nil {
		return nil, err
	}

	return network.Restore(name, id, hours, c)
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *Store) rebind(query string) string {
	if s.driver != Postgres {
		return query
	}
	return rebindDollar(query)
}

func rebindDollar(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type row struct {
	component network.Component
	seq       int
	name      string
	carrier   string
	value     interface{}
}

func rows(c network.Components) []row {
	out := make([]row, 0, c.Len())
	for i, r := range c.Carriers {
		out = append(out, row{network.CarrierComponent, i, r.Name, "", r})
	}
	for i, r := range c.Buses {
		out = append(out, row{network.BusComponent, i, r.Name, r.Carrier, r})
	}
	for i, r := range c.Lines {
		out = append(out, row{network.LineComponent, i, r.Name, r.Carrier, r})
	}
	for i, r := range c.Links {
		out = append(out, row{network.LinkComponent, i, r.Name, r.Carrier, r})
	}
	for i, r := range c.StorageUnits {
		out = append(out, row{network.StorageUnitComponent, i, r.Name, r.Carrier, r})
	}
	for i, r := range c.Stores {
		out = append(out, row{network.StoreComponent, i, r.Name, r.Carrier, r})
	}
	return out
}

func decodeRow(c *network.Components, comp network.Component, data []byte) error {
	var err error
	switch comp {
	case network.CarrierComponent:
		var r network.Carrier
		err = json.Unmarshal(data, &r)
		c.Carriers = append(c.Carriers, r)
	case network.BusComponent:
		var r network.Bus
		err = json.Unmarshal(data, &r)
		c.Buses = append(c.Buses, r)
	case network.LineComponent:
		var r network.Line
		err = json.Unmarshal(data, &r)
		c.Lines = append(c.Lines, r)
	case network.LinkComponent:
		var r network.Link
		err = json.Unmarshal(data, &r)
		c.Links = append(c.Links, r)
	case network.StorageUnitComponent:
		var r network.StorageUnit
		err = json.Unmarshal(data, &r)
		c.StorageUnits = append(c.StorageUnits, r)
	case network.StoreComponent:
		var r network.Store
		err = json.Unmarshal(data, &r)
		c.Stores = append(c.Stores, r)
	default:
		return fmt.Errorf("unknown component %q", comp)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", comp, err)
	}
	return nil
}
