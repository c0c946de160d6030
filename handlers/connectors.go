// ABOUTME: Connector directory MCP tool handlers
// ABOUTME: Implements list/connect/disconnect tools for connectors and data sources
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/zeroclick/crm/db"
	"github.com/zeroclick/crm/models"
)

type ConnectorHandlers struct {
	db *sql.DB
}

func NewConnectorHandlers(database *sql.DB) *ConnectorHandlers {
	return &ConnectorHandlers{db: database}
}

type ListConnectorsInput struct {
	ConnectedOnly bool `json:"connected_only,omitempty" jsonschema:"Only return connectors that are currently connected"`
}

type ListConnectorsOutput struct {
	Connectors []models.Connector `json:"connectors"`
	Count      int                `json:"count"`
}

func (h *ConnectorHandlers) ListConnectors(_ context.Context, _ *mcp.CallToolRequest, input ListConnectorsInput) (*mcp.CallToolResult, ListConnectorsOutput, error) {
	var connectors []models.Connector
	var err error

	if input.ConnectedOnly {
		connectors, err = db.ListConnectedConnectors(h.db)
	} else {
		connectors, err = db.ListConnectors(h.db)
	}
	if err != nil {
		return nil, ListConnectorsOutput{}, fmt.Errorf("failed to list connectors: %w", err)
	}

	return nil, ListConnectorsOutput{Connectors: connectors, Count: len(connectors)}, nil
}

type ConnectorIDInput struct {
	ConnectorID string `json:"connector_id" jsonschema:"Id of the connector (required)"`
}

type ConnectorOutput struct {
	Connector models.Connector `json:"connector"`
	Message   string           `json:"message"`
}

func (h *ConnectorHandlers) ConnectConnector(_ context.Context, _ *mcp.CallToolRequest, input ConnectorIDInput) (*mcp.CallToolResult, ConnectorOutput, error) {
	if input.ConnectorID == "" {
		return nil, ConnectorOutput{}, fmt.Errorf("connector_id is required")
	}

	connector, err := db.ConnectConnector(h.db, input.ConnectorID)
	if err != nil {
		return nil, ConnectorOutput{}, fmt.Errorf("failed to connect: %w", err)
	}

	return nil, ConnectorOutput{
		Connector: *connector,
		Message:   fmt.Sprintf("%s connected, %d contacts synced", connector.Name, connector.Stats.ContactCount),
	}, nil
}

func (h *ConnectorHandlers) DisconnectConnector(_ context.Context, _ *mcp.CallToolRequest, input ConnectorIDInput) (*mcp.CallToolResult, ConnectorOutput, error) {
	if input.ConnectorID == "" {
		return nil, ConnectorOutput{}, fmt.Errorf("connector_id is required")
	}

	connector, err := db.DisconnectConnector(h.db, input.ConnectorID)
	if err != nil {
		return nil, ConnectorOutput{}, fmt.Errorf("failed to disconnect: %w", err)
	}

	return nil, ConnectorOutput{
		Connector: *connector,
		Message:   fmt.Sprintf("%s disconnected, synced data preserved for reconnect", connector.Name),
	}, nil
}

type DataSourceIDInput struct {
	DataSourceID string `json:"data_source_id" jsonschema:"Id of the data source (required)"`
}

type DataSourceOutput struct {
	DataSource models.DataSource `json:"data_source"`
	Message    string            `json:"message"`
}

func (h *ConnectorHandlers) ConnectDataSource(_ context.Context, _ *mcp.CallToolRequest, input DataSourceIDInput) (*mcp.CallToolResult, DataSourceOutput, error) {
	if input.DataSourceID == "" {
		return nil, DataSourceOutput{}, fmt.Errorf("data_source_id is required")
	}

	ds, err := db.ConnectDataSource(h.db, input.DataSourceID)
	if err != nil {
		return nil, DataSourceOutput{}, fmt.Errorf("failed to connect data source: %w", err)
	}

	return nil, DataSourceOutput{
		DataSource: *ds,
		Message:    fmt.Sprintf("%s connected", ds.Name),
	}, nil
}

func (h *ConnectorHandlers) DisconnectDataSource(_ context.Context, _ *mcp.CallToolRequest, input DataSourceIDInput) (*mcp.CallToolResult, DataSourceOutput, error) {
	if input.DataSourceID == "" {
		return nil, DataSourceOutput{}, fmt.Errorf("data_source_id is required")
	}

	ds, err := db.DisconnectDataSource(h.db, input.DataSourceID)
	if err != nil {
		return nil, DataSourceOutput{}, fmt.Errorf("failed to disconnect data source: %w", err)
	}

	return nil, DataSourceOutput{
		DataSource: *ds,
		Message:    fmt.Sprintf("%s disconnected", ds.Name),
	}, nil
}

type SummaryInput struct{}

type SummaryOutput struct {
	ConnectedCount   int                       `json:"connected_count"`
	TotalConnectors  int                       `json:"total_connectors"`
	TotalContacts    int                       `json:"total_contacts"`
	TotalDeals       int                       `json:"total_deals"`
	TotalCompanies   int                       `json:"total_companies"`
	ActiveConnectors []models.ConnectorSummary `json:"active_connectors"`
	RecentActivities []models.ActivityRef      `json:"recent_activities"`
}

// ConnectorSummary aggregates stats over connected connectors only, with the
// recent-activity feed restricted to connected data sources.
func (h *ConnectorHandlers) ConnectorSummary(_ context.Context, _ *mcp.CallToolRequest, _ SummaryInput) (*mcp.CallToolResult, SummaryOutput, error) {
	all, err := db.ListConnectors(h.db)
	if err != nil {
		return nil, SummaryOutput{}, fmt.Errorf("failed to list connectors: %w", err)
	}

	out := SummaryOutput{
		TotalConnectors:  len(all),
		ActiveConnectors: []models.ConnectorSummary{},
		RecentActivities: []models.ActivityRef{},
	}

	var connectedIDs []string
	for _, c := range all {
		if !c.Connected {
			continue
		}
		out.ConnectedCount++
		out.TotalContacts += c.Stats.ContactCount
		out.TotalDeals += c.Stats.DealCount
		out.TotalCompanies += c.Stats.CompanyCount
		out.ActiveConnectors = append(out.ActiveConnectors, models.ConnectorSummary{
			ID:           c.ID,
			Name:         c.Name,
			ContactCount: c.Stats.ContactCount,
		})
		connectedIDs = append(connectedIDs, c.ID)
	}

	if len(connectedIDs) > 0 {
		activities, err := db.RecentActivities(h.db, connectedIDs, 20)
		if err != nil {
			return nil, SummaryOutput{}, fmt.Errorf("failed to load activities: %w", err)
		}
		out.RecentActivities = append(out.RecentActivities, activities...)
	}

	sort.Slice(out.RecentActivities, func(i, j int) bool {
		return out.RecentActivities[i].Timestamp.After(out.RecentActivities[j].Timestamp)
	})

	return nil, out, nil
}

type ListTranscriptsInput struct {
	ConnectorID string `json:"connector_id" jsonschema:"Id of the connector (required)"`
}

type ListTranscriptsOutput struct {
	Transcripts []models.Transcript `json:"transcripts"`
	Count       int                 `json:"count"`
}

func (h *ConnectorHandlers) ListTranscripts(_ context.Context, _ *mcp.CallToolRequest, input ListTranscriptsInput) (*mcp.CallToolResult, ListTranscriptsOutput, error) {
	if input.ConnectorID == "" {
		return nil, ListTranscriptsOutput{}, fmt.Errorf("connector_id is required")
	}

	connector, err := db.GetConnector(h.db, input.ConnectorID)
	if err != nil {
		return nil, ListTranscriptsOutput{}, fmt.Errorf("failed to load connector: %w", err)
	}
	if connector == nil {
		return nil, ListTranscriptsOutput{}, fmt.Errorf("connector %s not found", input.ConnectorID)
	}
	if !connector.Connected {
		return nil, ListTranscriptsOutput{}, fmt.Errorf("%s is not connected", connector.Name)
	}

	transcripts, err := db.ListTranscripts(h.db, input.ConnectorID)
	if err != nil {
		return nil, ListTranscriptsOutput{}, fmt.Errorf("failed to list transcripts: %w", err)
	}

	return nil, ListTranscriptsOutput{Transcripts: transcripts, Count: len(transcripts)}, nil
}

type GetTranscriptInput struct {
	TranscriptID string `json:"transcript_id" jsonschema:"Id of the transcript (required)"`
}

func (h *ConnectorHandlers) GetTranscript(_ context.Context, _ *mcp.CallToolRequest, input GetTranscriptInput) (*mcp.CallToolResult, models.Transcript, error) {
	if input.TranscriptID == "" {
		return nil, models.Transcript{}, fmt.Errorf("transcript_id is required")
	}

	transcript, err := db.GetTranscript(h.db, input.TranscriptID)
	if err != nil {
		return nil, models.Transcript{}, fmt.Errorf("failed to load transcript: %w", err)
	}
	if transcript == nil {
		return nil, models.Transcript{}, fmt.Errorf("transcript %s not found", input.TranscriptID)
	}

	return nil, *transcript, nil
}
