// ABOUTME: Demo data seeding for the connector directory and content store
// ABOUTME: Installs sample CRM connectors, contacts, activities, and a transcript
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/zeroclick/crm/models"
)

const demoTranscriptID = "tr-hubspot-1001"

const demoTranscript = `CSR: Sarah Mitchell: Thank you for calling Apex Travel support, this is Sarah. How can I help you today?
Customer: This is David Park. My flight booking was cancelled without any notice. This is completely unacceptable.
CSR: Sarah Mitchell: I apologize for the trouble, Mr. Park. Let me pull up your booking and see what happened.
Customer: I paid $2,400 for this trip. I want a refund, not a voucher. I don't want a voucher.
CSR: Sarah Mitchell: I understand. I can process the refund for the full amount today.
Customer: I also want to speak with a supervisor about how this was handled.
CSR: Sarah Mitchell: Of course. I will schedule a follow-up call with my manager for tomorrow morning.
Customer: Fine. Thank you for sorting out the refund at least.
CSR: Sarah Mitchell: You're welcome. The refund will be processed within 3 days, and we will follow up with you after it clears.`

// SeedDemoData installs the six demo CRM connectors with data sources and a
// sample escalation transcript. Idempotent: an already-seeded database is
// left alone.
func SeedDemoData(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM connectors`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()

	connectors := []models.Connector{
		{ID: "salesforce", Name: "Salesforce", Kind: models.KindSalesforce, Connected: true,
			Stats: models.ConnectorStats{ContactCount: 1284, DealCount: 47, CompanyCount: 89, LastSyncAt: &now}},
		{ID: "hubspot", Name: "HubSpot", Kind: models.KindHubspot, Connected: true,
			Stats: models.ConnectorStats{ContactCount: 11, DealCount: 3, CompanyCount: 6, LastSyncAt: &now}},
		{ID: "pipedrive", Name: "Pipedrive", Kind: models.KindPipedrive,
			Stats: models.ConnectorStats{ContactCount: 342, DealCount: 18, CompanyCount: 41}},
		{ID: "zoho", Name: "Zoho CRM", Kind: models.KindZoho,
			Stats: models.ConnectorStats{ContactCount: 97, DealCount: 9, CompanyCount: 22}},
		{ID: "monday", Name: "Monday.com", Kind: models.KindMonday,
			Stats: models.ConnectorStats{ContactCount: 56, DealCount: 5, CompanyCount: 14}},
		{ID: "zendesk", Name: "Zendesk Sell", Kind: models.KindZendesk,
			Stats: models.ConnectorStats{ContactCount: 210, DealCount: 12, CompanyCount: 33}},
	}

	for i := range connectors {
		if err := CreateConnector(db, &connectors[i]); err != nil {
			return fmt.Errorf("seed connector %s: %w", connectors[i].ID, err)
		}
	}

	sources := []models.DataSource{
		{ID: "hubspot-calls", ConnectorID: "hubspot", Name: "Calls", Connected: true, ItemCount: 4},
		{ID: "hubspot-emails", ConnectorID: "hubspot", Name: "Emails", Connected: true, ItemCount: 23},
		{ID: "salesforce-calls", ConnectorID: "salesforce", Name: "Calls", Connected: true, ItemCount: 12},
		{ID: "salesforce-meetings", ConnectorID: "salesforce", Name: "Meetings", ItemCount: 7},
		{ID: "pipedrive-emails", ConnectorID: "pipedrive", Name: "Emails", ItemCount: 54},
	}

	for i := range sources {
		if err := CreateDataSource(db, &sources[i]); err != nil {
			return fmt.Errorf("seed data source %s: %w", sources[i].ID, err)
		}
	}

	demoContacts := []struct {
		connector, name, email, company, title string
		age                                    time.Duration
	}{
		{"hubspot", "David Park", "david.park@apextravel.example", "Apex Travel", "Operations Lead", 2 * time.Hour},
		{"hubspot", "Maya Chen", "maya.chen@brightline.example", "Brightline", "VP Sales", 26 * time.Hour},
		{"salesforce", "Tom Alvarez", "t.alvarez@nortech.example", "Nortech", "CTO", 4 * time.Hour},
		{"salesforce", "Priya Nair", "priya@fieldstone.example", "Fieldstone", "Account Manager", 50 * time.Hour},
		{"salesforce", "Jonas Weber", "jweber@kanne.example", "Kanne GmbH", "Procurement", 72 * time.Hour},
		{"pipedrive", "Lena Okafor", "lena@coastal.example", "Coastal Ltd", "Founder", 12 * time.Hour},
	}

	for _, c := range demoContacts {
		if err := CreateConnectorContact(db, c.connector, c.name, c.email, "", c.company, c.title, now.Add(-c.age)); err != nil {
			return fmt.Errorf("seed contact %s: %w", c.name, err)
		}
	}

	transcript := &models.Transcript{
		ID:           demoTranscriptID,
		ConnectorID:  "hubspot",
		DataSourceID: "hubspot-calls",
		Title:        "Support call: cancelled booking escalation",
		Type:         "call",
		Date:         now.Add(-3 * time.Hour),
		Participants: "David Park, Sarah Mitchell",
		Content:      demoTranscript,
	}
	if err := CreateTranscript(db, transcript); err != nil {
		return fmt.Errorf("seed transcript: %w", err)
	}

	if err := CreateActivity(db, "hubspot", "hubspot-calls", transcript.Title, "call", transcript.Date, transcript.ID); err != nil {
		return fmt.Errorf("seed activity: %w", err)
	}
	if err := CreateActivity(db, "salesforce", "salesforce-calls", "Discovery call with Nortech", "call", now.Add(-20*time.Hour), ""); err != nil {
		return fmt.Errorf("seed activity: %w", err)
	}
	if err := CreateActivity(db, "hubspot", "hubspot-emails", "Renewal quote sent to Brightline", "email", now.Add(-30*time.Hour), ""); err != nil {
		return fmt.Errorf("seed activity: %w", err)
	}

	return nil
}

// DemoTranscriptID returns the id of the seeded escalation transcript.
func DemoTranscriptID() string {
	return demoTranscriptID
}
