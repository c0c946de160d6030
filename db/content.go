// ABOUTME: Content store queries for the agent context
// ABOUTME: Pulls recent contacts, activities, and transcript bodies by connector
package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zeroclick/crm/models"
)

// placeholders builds a (?, ?, ...) list for an IN clause.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// RecentContacts returns the newest contacts restricted to the given
// connector ids, most recent first.
func RecentContacts(db *sql.DB, connectorIDs []string, limit int) ([]models.ContactRef, error) {
	if len(connectorIDs) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}

	args := make([]interface{}, 0, len(connectorIDs)+1)
	for _, id := range connectorIDs {
		args = append(args, id)
	}
	args = append(args, limit)

	rows, err := db.Query(`
		SELECT name, company_name, connector_id, created_at
		FROM connector_contacts
		WHERE connector_id IN (`+placeholders(len(connectorIDs))+`)
		ORDER BY created_at DESC
		LIMIT ?
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []models.ContactRef
	for rows.Next() {
		var c models.ContactRef
		var company sql.NullString
		if err := rows.Scan(&c.Name, &company, &c.SourceConnectorID, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.CompanyName = company.String
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// RecentActivities returns the newest activities restricted to the given
// connector ids, most recent first.
func RecentActivities(db *sql.DB, connectorIDs []string, limit int) ([]models.ActivityRef, error) {
	if len(connectorIDs) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}

	args := make([]interface{}, 0, len(connectorIDs)+1)
	for _, id := range connectorIDs {
		args = append(args, id)
	}
	args = append(args, limit)

	rows, err := db.Query(`
		SELECT title, type, connector_id, timestamp, transcript_id
		FROM activities
		WHERE connector_id IN (`+placeholders(len(connectorIDs))+`)
		ORDER BY timestamp DESC
		LIMIT ?
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.ActivityRef
	for rows.Next() {
		var a models.ActivityRef
		var transcriptID sql.NullString
		if err := rows.Scan(&a.Title, &a.Type, &a.SourceConnectorID, &a.Timestamp, &transcriptID); err != nil {
			return nil, err
		}
		a.TranscriptID = transcriptID.String
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// CountActivities counts recent-feed rows for the given connector ids.
func CountActivities(db *sql.DB, connectorIDs []string) (int, error) {
	if len(connectorIDs) == 0 {
		return 0, nil
	}

	args := make([]interface{}, 0, len(connectorIDs))
	for _, id := range connectorIDs {
		args = append(args, id)
	}

	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM activities
		WHERE connector_id IN (`+placeholders(len(connectorIDs))+`)
	`, args...).Scan(&count)
	return count, err
}

func GetTranscript(db *sql.DB, id string) (*models.Transcript, error) {
	t := &models.Transcript{}
	var dataSourceID, participants sql.NullString

	err := db.QueryRow(`
		SELECT id, connector_id, data_source_id, title, type, date, participants, content
		FROM transcripts WHERE id = ?
	`, id).Scan(&t.ID, &t.ConnectorID, &dataSourceID, &t.Title, &t.Type, &t.Date, &participants, &t.Content)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	t.DataSourceID = dataSourceID.String
	t.Participants = participants.String
	return t, nil
}

// ListTranscripts returns all transcripts for one connector, newest first.
func ListTranscripts(db *sql.DB, connectorID string) ([]models.Transcript, error) {
	rows, err := db.Query(`
		SELECT id, connector_id, data_source_id, title, type, date, participants, content
		FROM transcripts WHERE connector_id = ?
		ORDER BY date DESC
	`, connectorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transcripts []models.Transcript
	for rows.Next() {
		var t models.Transcript
		var dataSourceID, participants sql.NullString
		if err := rows.Scan(&t.ID, &t.ConnectorID, &dataSourceID, &t.Title, &t.Type, &t.Date, &participants, &t.Content); err != nil {
			return nil, err
		}
		t.DataSourceID = dataSourceID.String
		t.Participants = participants.String
		transcripts = append(transcripts, t)
	}
	return transcripts, rows.Err()
}

// CreateConnectorContact inserts a synced contact row for a connector.
func CreateConnectorContact(db *sql.DB, connectorID, name, email, phone, companyName, title string, createdAt time.Time) error {
	_, err := db.Exec(`
		INSERT INTO connector_contacts (id, connector_id, name, email, phone, company_name, title, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), connectorID, name, email, phone, companyName, title, createdAt)
	return err
}

// CreateActivity inserts a recent-feed row.
func CreateActivity(db *sql.DB, connectorID, dataSourceID, title, activityType string, timestamp time.Time, transcriptID string) error {
	var tid interface{}
	if transcriptID != "" {
		tid = transcriptID
	}
	_, err := db.Exec(`
		INSERT INTO activities (id, connector_id, data_source_id, title, type, timestamp, transcript_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), connectorID, dataSourceID, title, activityType, timestamp, tid)
	return err
}

// CreateTranscript inserts a transcript body.
func CreateTranscript(db *sql.DB, t *models.Transcript) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	_, err := db.Exec(`
		INSERT INTO transcripts (id, connector_id, data_source_id, title, type, date, participants, content)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.ConnectorID, t.DataSourceID, t.Title, t.Type, t.Date, t.Participants, t.Content)
	return err
}
