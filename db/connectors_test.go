// ABOUTME: Tests for connector directory state transitions
// ABOUTME: Validates stat preservation and data source cascade rules
package db

import (
	"database/sql"
	"testing"
	"time"

	"github.com/zeroclick/crm/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test db: %v", err)
	}
	if err := InitSchema(database); err != nil {
		t.Fatalf("Failed to init schema: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func seedConnector(t *testing.T, database *sql.DB, id string, connected bool, contacts int) {
	t.Helper()
	now := time.Now()
	c := &models.Connector{
		ID:        id,
		Name:      id,
		Kind:      id,
		Connected: connected,
		Stats:     models.ConnectorStats{ContactCount: contacts},
	}
	if connected {
		c.Stats.LastSyncAt = &now
	}
	if err := CreateConnector(database, c); err != nil {
		t.Fatalf("Failed to create connector: %v", err)
	}
}

func TestDisconnectPreservesStats(t *testing.T) {
	database := setupTestDB(t)
	seedConnector(t, database, "hubspot", true, 11)

	disconnected, err := DisconnectConnector(database, "hubspot")
	if err != nil {
		t.Fatalf("Disconnect failed: %v", err)
	}
	if disconnected.Connected {
		t.Error("Connector still marked connected")
	}
	if disconnected.Stats.LastSyncAt != nil {
		t.Error("last_sync_at not cleared on disconnect")
	}
	if disconnected.Stats.ContactCount != 11 {
		t.Errorf("Expected contact count 11 after disconnect, got %d", disconnected.Stats.ContactCount)
	}

	reconnected, err := ConnectConnector(database, "hubspot")
	if err != nil {
		t.Fatalf("Reconnect failed: %v", err)
	}
	if !reconnected.Connected {
		t.Error("Connector not marked connected after reconnect")
	}
	if reconnected.Stats.ContactCount != 11 {
		t.Errorf("Expected contact count 11 after reconnect, got %d", reconnected.Stats.ContactCount)
	}
	if reconnected.Stats.LastSyncAt == nil {
		t.Error("last_sync_at not stamped on reconnect")
	}
}

func TestDisconnectCascadesToDataSources(t *testing.T) {
	database := setupTestDB(t)
	seedConnector(t, database, "hubspot", true, 11)

	ds := &models.DataSource{ID: "hubspot-calls", ConnectorID: "hubspot", Name: "Calls", Connected: true, ItemCount: 4}
	if err := CreateDataSource(database, ds); err != nil {
		t.Fatalf("Failed to create data source: %v", err)
	}

	if _, err := DisconnectConnector(database, "hubspot"); err != nil {
		t.Fatalf("Disconnect failed: %v", err)
	}

	got, err := GetDataSource(database, "hubspot-calls")
	if err != nil {
		t.Fatalf("GetDataSource failed: %v", err)
	}
	if got.Connected {
		t.Error("Data source still connected after parent disconnect")
	}
	if got.ItemCount != 4 {
		t.Errorf("Expected item count 4 preserved, got %d", got.ItemCount)
	}
}

func TestConnectDataSourceRequiresConnectedParent(t *testing.T) {
	database := setupTestDB(t)
	seedConnector(t, database, "zoho", false, 0)

	ds := &models.DataSource{ID: "zoho-emails", ConnectorID: "zoho", Name: "Emails"}
	if err := CreateDataSource(database, ds); err != nil {
		t.Fatalf("Failed to create data source: %v", err)
	}

	if _, err := ConnectDataSource(database, "zoho-emails"); err == nil {
		t.Error("Expected error connecting data source under disconnected parent")
	}
}

func TestDataSourceDisconnectPrunesAndReconnectRestoresActivities(t *testing.T) {
	database := setupTestDB(t)
	seedConnector(t, database, "hubspot", true, 11)

	ds := &models.DataSource{ID: "hubspot-calls", ConnectorID: "hubspot", Name: "Calls", Connected: true, ItemCount: 1}
	if err := CreateDataSource(database, ds); err != nil {
		t.Fatalf("Failed to create data source: %v", err)
	}

	transcript := &models.Transcript{
		ID:           "tr-1",
		ConnectorID:  "hubspot",
		DataSourceID: "hubspot-calls",
		Title:        "Escalation call",
		Type:         "call",
		Date:         time.Now(),
		Content:      "Customer: this is unacceptable.",
	}
	if err := CreateTranscript(database, transcript); err != nil {
		t.Fatalf("Failed to create transcript: %v", err)
	}
	if err := CreateActivity(database, "hubspot", "hubspot-calls", transcript.Title, "call", transcript.Date, transcript.ID); err != nil {
		t.Fatalf("Failed to create activity: %v", err)
	}

	if _, err := DisconnectDataSource(database, "hubspot-calls"); err != nil {
		t.Fatalf("Disconnect data source failed: %v", err)
	}

	activities, err := RecentActivities(database, []string{"hubspot"}, 10)
	if err != nil {
		t.Fatalf("RecentActivities failed: %v", err)
	}
	if len(activities) != 0 {
		t.Errorf("Expected activities pruned on data source disconnect, got %d", len(activities))
	}

	// Transcript survives the prune
	if tr, err := GetTranscript(database, "tr-1"); err != nil || tr == nil {
		t.Fatalf("Transcript lost on data source disconnect: %v", err)
	}

	if _, err := ConnectDataSource(database, "hubspot-calls"); err != nil {
		t.Fatalf("Reconnect data source failed: %v", err)
	}

	activities, err = RecentActivities(database, []string{"hubspot"}, 10)
	if err != nil {
		t.Fatalf("RecentActivities failed: %v", err)
	}
	if len(activities) != 1 {
		t.Fatalf("Expected activity restored from transcript on reconnect, got %d", len(activities))
	}
	if activities[0].TranscriptID != "tr-1" {
		t.Errorf("Restored activity not linked to transcript, got %q", activities[0].TranscriptID)
	}
}

func TestRecentContactsOrderAndLimit(t *testing.T) {
	database := setupTestDB(t)
	seedConnector(t, database, "hubspot", true, 11)

	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < 8; i++ {
		name := string(rune('A'+i)) + " Contact"
		if err := CreateConnectorContact(database, "hubspot", name, "", "", "Acme", "", base.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("Failed to create contact: %v", err)
		}
	}

	contacts, err := RecentContacts(database, []string{"hubspot"}, 5)
	if err != nil {
		t.Fatalf("RecentContacts failed: %v", err)
	}
	if len(contacts) != 5 {
		t.Fatalf("Expected 5 contacts, got %d", len(contacts))
	}
	for i := 1; i < len(contacts); i++ {
		if contacts[i].CreatedAt.After(contacts[i-1].CreatedAt) {
			t.Error("Contacts not sorted newest first")
		}
	}
	if contacts[0].Name != "H Contact" {
		t.Errorf("Expected newest contact first, got %s", contacts[0].Name)
	}
}

func TestSeedDemoDataIsIdempotent(t *testing.T) {
	database := setupTestDB(t)

	if err := SeedDemoData(database); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if err := SeedDemoData(database); err != nil {
		t.Fatalf("Second seed failed: %v", err)
	}

	connectors, err := ListConnectors(database)
	if err != nil {
		t.Fatalf("ListConnectors failed: %v", err)
	}
	if len(connectors) != 6 {
		t.Errorf("Expected 6 seeded connectors, got %d", len(connectors))
	}

	transcript, err := GetTranscript(database, DemoTranscriptID())
	if err != nil {
		t.Fatalf("GetTranscript failed: %v", err)
	}
	if transcript == nil || transcript.Content == "" {
		t.Error("Seeded transcript missing or empty")
	}
}
