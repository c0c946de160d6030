// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation and initialization
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS connectors (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	kind TEXT NOT NULL,
	connected INTEGER NOT NULL DEFAULT 0,
	contact_count INTEGER NOT NULL DEFAULT 0,
	deal_count INTEGER NOT NULL DEFAULT 0,
	company_count INTEGER NOT NULL DEFAULT 0,
	last_sync_at DATETIME
);

CREATE TABLE IF NOT EXISTS data_sources (
	id TEXT PRIMARY KEY,
	connector_id TEXT NOT NULL,
	name TEXT NOT NULL,
	connected INTEGER NOT NULL DEFAULT 0,
	item_count INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (connector_id) REFERENCES connectors(id)
);

CREATE INDEX IF NOT EXISTS idx_data_sources_connector_id ON data_sources(connector_id);

CREATE TABLE IF NOT EXISTS connector_contacts (
	id TEXT PRIMARY KEY,
	connector_id TEXT NOT NULL,
	name TEXT NOT NULL,
	email TEXT,
	phone TEXT,
	company_name TEXT,
	title TEXT,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (connector_id) REFERENCES connectors(id)
);

CREATE INDEX IF NOT EXISTS idx_connector_contacts_connector_id ON connector_contacts(connector_id);
CREATE INDEX IF NOT EXISTS idx_connector_contacts_created_at ON connector_contacts(created_at);

CREATE TABLE IF NOT EXISTS activities (
	id TEXT PRIMARY KEY,
	connector_id TEXT NOT NULL,
	data_source_id TEXT,
	title TEXT NOT NULL,
	type TEXT NOT NULL,
	timestamp DATETIME NOT NULL,
	transcript_id TEXT,
	FOREIGN KEY (connector_id) REFERENCES connectors(id)
);

CREATE INDEX IF NOT EXISTS idx_activities_connector_id ON activities(connector_id);
CREATE INDEX IF NOT EXISTS idx_activities_timestamp ON activities(timestamp);

CREATE TABLE IF NOT EXISTS transcripts (
	id TEXT PRIMARY KEY,
	connector_id TEXT NOT NULL,
	data_source_id TEXT,
	title TEXT NOT NULL,
	type TEXT NOT NULL,
	date DATETIME NOT NULL,
	participants TEXT,
	content TEXT NOT NULL,
	FOREIGN KEY (connector_id) REFERENCES connectors(id)
);

CREATE INDEX IF NOT EXISTS idx_transcripts_connector_id ON transcripts(connector_id);
`

// InitSchema creates all tables and indexes if they don't exist
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
