// ABOUTME: Read-only view over the connector directory's connection state
// ABOUTME: Defines the Directory interface with SQLite and in-memory backends
package directory

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/zeroclick/crm/db"
	"github.com/zeroclick/crm/models"
)

// Directory is the narrow query surface the agent pipeline uses to learn
// which connectors are currently connected. Implementations read the backing
// store on every call; nothing is cached across requests, so a connect or
// disconnect racing an in-flight analysis is picked up by the next read.
type Directory interface {
	ListConnected(ctx context.Context) ([]models.Connector, error)
	IsActive(ctx context.Context, connectorID string) (bool, error)
}

// SQLDirectory reads connector state straight from the connectors table.
type SQLDirectory struct {
	db *sql.DB
}

func NewSQLDirectory(database *sql.DB) *SQLDirectory {
	return &SQLDirectory{db: database}
}

func (d *SQLDirectory) ListConnected(_ context.Context) ([]models.Connector, error) {
	return db.ListConnectedConnectors(d.db)
}

func (d *SQLDirectory) IsActive(_ context.Context, connectorID string) (bool, error) {
	connector, err := db.GetConnector(d.db, connectorID)
	if err != nil {
		return false, err
	}
	return connector != nil && connector.Connected, nil
}

// FakeDirectory is an in-memory Directory for tests.
type FakeDirectory struct {
	mu         sync.Mutex
	connectors map[string]models.Connector
}

func NewFakeDirectory(connectors ...models.Connector) *FakeDirectory {
	m := make(map[string]models.Connector, len(connectors))
	for _, c := range connectors {
		m[c.ID] = c
	}
	return &FakeDirectory{connectors: m}
}

func (d *FakeDirectory) ListConnected(_ context.Context) ([]models.Connector, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var connected []models.Connector
	for _, c := range d.connectors {
		if c.Connected {
			connected = append(connected, c)
		}
	}
	sort.Slice(connected, func(i, j int) bool { return connected[i].Name < connected[j].Name })
	return connected, nil
}

func (d *FakeDirectory) IsActive(_ context.Context, connectorID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.connectors[connectorID]
	return ok && c.Connected, nil
}

// SetConnected flips a connector's state, for exercising reconnect cycles.
func (d *FakeDirectory) SetConnected(connectorID string, connected bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if c, ok := d.connectors[connectorID]; ok {
		c.Connected = connected
		d.connectors[connectorID] = c
	}
}
