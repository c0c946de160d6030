// ABOUTME: Connector directory database operations
// ABOUTME: Handles connect/disconnect state transitions and connector lookups
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/zeroclick/crm/models"
)

func scanConnector(row interface {
	Scan(dest ...interface{}) error
}) (*models.Connector, error) {
	c := &models.Connector{}
	var connected int
	var lastSync sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Kind,
		&connected,
		&c.Stats.ContactCount,
		&c.Stats.DealCount,
		&c.Stats.CompanyCount,
		&lastSync,
	)
	if err != nil {
		return nil, err
	}

	c.Connected = connected != 0
	if lastSync.Valid {
		t := lastSync.Time
		c.Stats.LastSyncAt = &t
	}
	return c, nil
}

const connectorColumns = `id, name, kind, connected, contact_count, deal_count, company_count, last_sync_at`

func GetConnector(db *sql.DB, id string) (*models.Connector, error) {
	row := db.QueryRow(`SELECT `+connectorColumns+` FROM connectors WHERE id = ?`, id)

	connector, err := scanConnector(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sources, err := ListDataSources(db, id)
	if err != nil {
		return nil, err
	}
	connector.DataSources = sources

	return connector, nil
}

func ListConnectors(db *sql.DB) ([]models.Connector, error) {
	rows, err := db.Query(`SELECT ` + connectorColumns + ` FROM connectors ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var connectors []models.Connector
	for rows.Next() {
		c, err := scanConnector(rows)
		if err != nil {
			return nil, err
		}
		connectors = append(connectors, *c)
	}
	return connectors, rows.Err()
}

// ListConnectedConnectors returns connectors whose directory state is connected.
func ListConnectedConnectors(db *sql.DB) ([]models.Connector, error) {
	rows, err := db.Query(`SELECT ` + connectorColumns + ` FROM connectors WHERE connected = 1 ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var connectors []models.Connector
	for rows.Next() {
		c, err := scanConnector(rows)
		if err != nil {
			return nil, err
		}
		connectors = append(connectors, *c)
	}
	return connectors, rows.Err()
}

func CreateConnector(db *sql.DB, c *models.Connector) error {
	connected := 0
	if c.Connected {
		connected = 1
	}
	_, err := db.Exec(`
		INSERT INTO connectors (id, name, kind, connected, contact_count, deal_count, company_count, last_sync_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Kind, connected, c.Stats.ContactCount, c.Stats.DealCount, c.Stats.CompanyCount, c.Stats.LastSyncAt)
	return err
}

// ConnectConnector marks a connector as connected and stamps last_sync_at.
// Existing contacts, deals, and counters are preserved from previous cycles.
func ConnectConnector(db *sql.DB, id string) (*models.Connector, error) {
	connector, err := GetConnector(db, id)
	if err != nil {
		return nil, err
	}
	if connector == nil {
		return nil, fmt.Errorf("connector %s not found", id)
	}
	if connector.Connected {
		return connector, nil
	}

	now := time.Now()
	_, err = db.Exec(`UPDATE connectors SET connected = 1, last_sync_at = ? WHERE id = ?`, now, id)
	if err != nil {
		return nil, err
	}

	return GetConnector(db, id)
}

// DisconnectConnector marks a connector as disconnected and cascades the flag
// to its data sources. Contacts, transcripts, and stat counters are kept so a
// reconnect picks up exactly where the connector left off.
func DisconnectConnector(db *sql.DB, id string) (*models.Connector, error) {
	connector, err := GetConnector(db, id)
	if err != nil {
		return nil, err
	}
	if connector == nil {
		return nil, fmt.Errorf("connector %s not found", id)
	}
	if !connector.Connected {
		return connector, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE connectors SET connected = 0, last_sync_at = NULL WHERE id = ?`, id); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(`UPDATE data_sources SET connected = 0 WHERE connector_id = ?`, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return GetConnector(db, id)
}

func ListDataSources(db *sql.DB, connectorID string) ([]models.DataSource, error) {
	rows, err := db.Query(`
		SELECT id, connector_id, name, connected, item_count
		FROM data_sources WHERE connector_id = ? ORDER BY name
	`, connectorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sources []models.DataSource
	for rows.Next() {
		var ds models.DataSource
		var connected int
		if err := rows.Scan(&ds.ID, &ds.ConnectorID, &ds.Name, &connected, &ds.ItemCount); err != nil {
			return nil, err
		}
		ds.Connected = connected != 0
		sources = append(sources, ds)
	}
	return sources, rows.Err()
}

func GetDataSource(db *sql.DB, id string) (*models.DataSource, error) {
	ds := &models.DataSource{}
	var connected int

	err := db.QueryRow(`
		SELECT id, connector_id, name, connected, item_count
		FROM data_sources WHERE id = ?
	`, id).Scan(&ds.ID, &ds.ConnectorID, &ds.Name, &connected, &ds.ItemCount)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ds.Connected = connected != 0
	return ds, nil
}

func CreateDataSource(db *sql.DB, ds *models.DataSource) error {
	connected := 0
	if ds.Connected {
		connected = 1
	}
	_, err := db.Exec(`
		INSERT INTO data_sources (id, connector_id, name, connected, item_count)
		VALUES (?, ?, ?, ?, ?)
	`, ds.ID, ds.ConnectorID, ds.Name, connected, ds.ItemCount)
	return err
}

// ConnectDataSource connects a sub-channel. The parent connector must already
// be connected.
func ConnectDataSource(db *sql.DB, id string) (*models.DataSource, error) {
	ds, err := GetDataSource(db, id)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, fmt.Errorf("data source %s not found", id)
	}

	parent, err := GetConnector(db, ds.ConnectorID)
	if err != nil {
		return nil, err
	}
	if parent == nil || !parent.Connected {
		return nil, fmt.Errorf("connector %s is not connected", ds.ConnectorID)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE data_sources SET connected = 1 WHERE id = ?`, id); err != nil {
		return nil, err
	}

	// Re-materialize the recent feed from this source's transcripts; pruning
	// on disconnect removed the activity rows but kept the transcripts.
	if _, err := tx.Exec(`
		INSERT INTO activities (id, connector_id, data_source_id, title, type, timestamp, transcript_id)
		SELECT 'act-' || t.id, t.connector_id, t.data_source_id, t.title, t.type, t.date, t.id
		FROM transcripts t
		WHERE t.data_source_id = ?
		AND NOT EXISTS (SELECT 1 FROM activities a WHERE a.transcript_id = t.id)
	`, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	ds.Connected = true
	return ds, nil
}

// DisconnectDataSource disconnects a sub-channel and prunes its activities
// from the recent feed. Transcripts and item counts stay untouched.
func DisconnectDataSource(db *sql.DB, id string) (*models.DataSource, error) {
	ds, err := GetDataSource(db, id)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, fmt.Errorf("data source %s not found", id)
	}
	if !ds.Connected {
		return ds, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE data_sources SET connected = 0 WHERE id = ?`, id); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(`DELETE FROM activities WHERE data_source_id = ?`, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	ds.Connected = false
	return ds, nil
}
