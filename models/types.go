// ABOUTME: Data models for connectors and the per-request agent context
// ABOUTME: Defines Connector, DataSource, and the bounded context snapshot
package models

import (
	"time"
)

// ConnectorKind constants for the supported CRM platforms.
const (
	KindSalesforce = "salesforce"
	KindHubspot    = "hubspot"
	KindPipedrive  = "pipedrive"
	KindZoho       = "zoho"
	KindMonday     = "monday"
	KindZendesk    = "zendesk"
)

type ConnectorStats struct {
	ContactCount int        `json:"contact_count"`
	DealCount    int        `json:"deal_count"`
	CompanyCount int        `json:"company_count"`
	LastSyncAt   *time.Time `json:"last_sync_at,omitempty"`
}

type Connector struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Kind        string         `json:"kind"`
	Connected   bool           `json:"connected"`
	Stats       ConnectorStats `json:"stats"`
	DataSources []DataSource   `json:"data_sources,omitempty"`
}

// DataSource is a sub-channel of a connector (calls, emails, meetings).
// It can only be connected while its parent connector is connected;
// disconnecting the parent cascades but never deletes counted items.
type DataSource struct {
	ID          string `json:"id"`
	ConnectorID string `json:"connector_id"`
	Name        string `json:"name"`
	Connected   bool   `json:"connected"`
	ItemCount   int    `json:"item_count"`
}

// ContactRef is the slice of a synced contact that enters the agent context.
type ContactRef struct {
	Name              string    `json:"name"`
	CompanyName       string    `json:"company_name,omitempty"`
	SourceConnectorID string    `json:"source_connector_id"`
	CreatedAt         time.Time `json:"created_at"`
}

type ActivityRef struct {
	Title             string    `json:"title"`
	Type              string    `json:"type"`
	SourceConnectorID string    `json:"source_connector_id"`
	Timestamp         time.Time `json:"timestamp"`
	TranscriptID      string    `json:"transcript_id,omitempty"`
}

type Transcript struct {
	ID           string    `json:"id"`
	ConnectorID  string    `json:"connector_id"`
	DataSourceID string    `json:"data_source_id"`
	Title        string    `json:"title"`
	Type         string    `json:"type"`
	Date         time.Time `json:"date"`
	Participants string    `json:"participants,omitempty"`
	Content      string    `json:"content"`
}

// ConnectorSummary is the per-connector line carried into the prompt's
// connection-status block.
type ConnectorSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactCount int    `json:"contact_count"`
}

// AgentContext is the bounded, connection-filtered snapshot built fresh for
// each request and discarded afterwards. Every SourceConnectorID inside
// RecentContacts and RecentActivities is a member of ActiveConnectorIDs.
type AgentContext struct {
	ActiveConnectorIDs  map[string]bool    `json:"active_connector_ids"`
	ActiveConnectors    []ConnectorSummary `json:"active_connectors"`
	TotalConnectedCount int                `json:"total_connected_count"`
	TotalContactCount   int                `json:"total_contact_count"`
	TotalActivityCount  int                `json:"total_activity_count"`
	RecentContacts      []ContactRef       `json:"recent_contacts"`
	RecentActivities    []ActivityRef      `json:"recent_activities"`
	Query               string             `json:"query"`
}

// IsActive reports whether a connector id was admitted into this context.
func (c AgentContext) IsActive(connectorID string) bool {
	return c.ActiveConnectorIDs[connectorID]
}
