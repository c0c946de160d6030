// ABOUTME: Tests for database opening and connection configuration
// ABOUTME: Verifies schema init and foreign key enforcement on the open path
package db

import (
	"path/filepath"
	"testing"

	"github.com/zeroclick/crm/models"
)

func TestOpenDatabaseInitializesSchema(t *testing.T) {
	database, err := OpenDatabase(filepath.Join(t.TempDir(), "crm.db"))
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	defer database.Close()

	connectors, err := ListConnectors(database)
	if err != nil {
		t.Fatalf("ListConnectors on fresh database failed: %v", err)
	}
	if len(connectors) != 0 {
		t.Errorf("Expected empty connector table, got %d rows", len(connectors))
	}
}

func TestOpenDatabaseEnforcesForeignKeys(t *testing.T) {
	database, err := OpenDatabase(filepath.Join(t.TempDir(), "crm.db"))
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	defer database.Close()

	ds := &models.DataSource{ID: "orphan-calls", ConnectorID: "ghost", Name: "Calls"}
	if err := CreateDataSource(database, ds); err == nil {
		t.Error("Expected foreign key violation creating data source for unknown connector")
	}
}
