// ABOUTME: Tests for the connector directory MCP tool handlers
// ABOUTME: Exercises handlers directly against an in-memory database
package handlers

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/zeroclick/crm/db"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test db: %v", err)
	}
	if err := db.InitSchema(database); err != nil {
		t.Fatalf("Failed to init schema: %v", err)
	}
	if err := db.SeedDemoData(database); err != nil {
		t.Fatalf("Failed to seed demo data: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestListConnectorsHandler(t *testing.T) {
	h := NewConnectorHandlers(setupTestDB(t))

	_, out, err := h.ListConnectors(context.Background(), nil, ListConnectorsInput{})
	if err != nil {
		t.Fatalf("ListConnectors failed: %v", err)
	}
	if out.Count != 6 {
		t.Errorf("Expected 6 connectors, got %d", out.Count)
	}

	_, out, err = h.ListConnectors(context.Background(), nil, ListConnectorsInput{ConnectedOnly: true})
	if err != nil {
		t.Fatalf("ListConnectors connected-only failed: %v", err)
	}
	if out.Count != 2 {
		t.Errorf("Expected 2 connected connectors, got %d", out.Count)
	}
}

func TestConnectDisconnectHandlers(t *testing.T) {
	h := NewConnectorHandlers(setupTestDB(t))

	_, out, err := h.ConnectConnector(context.Background(), nil, ConnectorIDInput{ConnectorID: "pipedrive"})
	if err != nil {
		t.Fatalf("ConnectConnector failed: %v", err)
	}
	if !out.Connector.Connected {
		t.Error("Connector not connected")
	}
	if out.Connector.Stats.ContactCount != 342 {
		t.Errorf("Expected preserved contact count 342, got %d", out.Connector.Stats.ContactCount)
	}

	_, out, err = h.DisconnectConnector(context.Background(), nil, ConnectorIDInput{ConnectorID: "pipedrive"})
	if err != nil {
		t.Fatalf("DisconnectConnector failed: %v", err)
	}
	if out.Connector.Connected {
		t.Error("Connector still connected")
	}

	if _, _, err := h.ConnectConnector(context.Background(), nil, ConnectorIDInput{}); err == nil {
		t.Error("Expected error for missing connector_id")
	}
}

func TestConnectorSummaryHandler(t *testing.T) {
	h := NewConnectorHandlers(setupTestDB(t))

	_, out, err := h.ConnectorSummary(context.Background(), nil, SummaryInput{})
	if err != nil {
		t.Fatalf("ConnectorSummary failed: %v", err)
	}
	if out.ConnectedCount != 2 {
		t.Errorf("Expected 2 connected, got %d", out.ConnectedCount)
	}
	if out.TotalContacts != 1295 {
		t.Errorf("Expected 1295 contacts over connected sources, got %d", out.TotalContacts)
	}
	for _, a := range out.RecentActivities {
		if a.SourceConnectorID != "hubspot" && a.SourceConnectorID != "salesforce" {
			t.Errorf("Activity from disconnected source %s leaked into summary", a.SourceConnectorID)
		}
	}
}

func TestTranscriptHandlers(t *testing.T) {
	h := NewConnectorHandlers(setupTestDB(t))

	_, listed, err := h.ListTranscripts(context.Background(), nil, ListTranscriptsInput{ConnectorID: "hubspot"})
	if err != nil {
		t.Fatalf("ListTranscripts failed: %v", err)
	}
	if listed.Count != 1 {
		t.Errorf("Expected 1 transcript, got %d", listed.Count)
	}

	if _, _, err := h.ListTranscripts(context.Background(), nil, ListTranscriptsInput{ConnectorID: "zoho"}); err == nil {
		t.Error("Expected error listing transcripts for disconnected connector")
	}

	_, transcript, err := h.GetTranscript(context.Background(), nil, GetTranscriptInput{TranscriptID: db.DemoTranscriptID()})
	if err != nil {
		t.Fatalf("GetTranscript failed: %v", err)
	}
	if transcript.Content == "" {
		t.Error("Transcript content empty")
	}

	if _, _, err := h.GetTranscript(context.Background(), nil, GetTranscriptInput{TranscriptID: "tr-missing"}); err == nil {
		t.Error("Expected error for unknown transcript")
	}
}
