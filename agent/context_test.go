// ABOUTME: Tests for the context aggregator's containment and truncation rules
// ABOUTME: Uses the in-memory directory and sqlite to exercise admission logic
package agent

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeroclick/crm/db"
	"github.com/zeroclick/crm/directory"
	"github.com/zeroclick/crm/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.InitSchema(database))
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func connector(id string, connected bool, contacts int) models.Connector {
	return models.Connector{
		ID:        id,
		Name:      id,
		Kind:      id,
		Connected: connected,
		Stats:     models.ConnectorStats{ContactCount: contacts},
	}
}

func TestBuildContextExcludesDisconnectedSources(t *testing.T) {
	database := setupTestDB(t)
	dir := directory.NewFakeDirectory(
		connector("hubspot", true, 11),
		connector("salesforce", false, 1284),
	)

	now := time.Now()
	require.NoError(t, db.CreateConnectorContact(database, "hubspot", "Jennifer Walsh", "", "", "Acme", "", now))
	require.NoError(t, db.CreateConnectorContact(database, "salesforce", "Hidden Contact", "", "", "Ghost Co", "", now))

	// Stale client hint still names salesforce; the directory must win.
	agentCtx, err := BuildContext(context.Background(), dir, database, "hi", []string{"hubspot", "salesforce"})
	require.NoError(t, err)

	assert.Equal(t, 1, agentCtx.TotalConnectedCount)
	assert.True(t, agentCtx.IsActive("hubspot"))
	assert.False(t, agentCtx.IsActive("salesforce"))
	assert.Equal(t, 11, agentCtx.TotalContactCount)
	for _, c := range agentCtx.RecentContacts {
		assert.Equal(t, "hubspot", c.SourceConnectorID)
	}
	for _, a := range agentCtx.RecentActivities {
		assert.Equal(t, "hubspot", a.SourceConnectorID)
	}
}

func TestBuildContextTruncatesRecentCollections(t *testing.T) {
	database := setupTestDB(t)
	dir := directory.NewFakeDirectory(connector("hubspot", true, 40))

	base := time.Now().Add(-48 * time.Hour)
	for i := 0; i < 9; i++ {
		name := "Contact " + string(rune('A'+i))
		require.NoError(t, db.CreateConnectorContact(database, "hubspot", name, "", "", "", "", base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, db.CreateActivity(database, "hubspot", "hubspot-calls", "Call "+name, "call", base.Add(time.Duration(i)*time.Hour), ""))
	}

	agentCtx, err := BuildContext(context.Background(), dir, database, "hi", []string{"hubspot"})
	require.NoError(t, err)

	assert.Len(t, agentCtx.RecentContacts, maxRecentContacts)
	assert.Len(t, agentCtx.RecentActivities, maxRecentActivities)
	// Truncation must not hide the true scale.
	assert.Equal(t, 40, agentCtx.TotalContactCount)
	assert.Equal(t, 9, agentCtx.TotalActivityCount)
}

func TestBuildContextEmptyIntersection(t *testing.T) {
	database := setupTestDB(t)
	dir := directory.NewFakeDirectory(connector("hubspot", false, 11))

	agentCtx, err := BuildContext(context.Background(), dir, database, "hi", []string{"hubspot"})
	require.NoError(t, err)

	assert.Equal(t, 0, agentCtx.TotalConnectedCount)
	assert.Empty(t, agentCtx.RecentContacts)
	assert.Empty(t, agentCtx.RecentActivities)
	assert.Equal(t, 0, agentCtx.TotalContactCount)
}

func TestBuildContextDedupesRequestedIDs(t *testing.T) {
	database := setupTestDB(t)
	dir := directory.NewFakeDirectory(connector("hubspot", true, 11))

	agentCtx, err := BuildContext(context.Background(), dir, database, "hi", []string{"hubspot", "hubspot"})
	require.NoError(t, err)

	assert.Equal(t, 1, agentCtx.TotalConnectedCount)
	assert.Equal(t, 11, agentCtx.TotalContactCount)
}

func TestBuildContextReconnectRestoresVisibility(t *testing.T) {
	database := setupTestDB(t)
	dir := directory.NewFakeDirectory(connector("hubspot", true, 11))
	require.NoError(t, db.CreateConnectorContact(database, "hubspot", "Jennifer Walsh", "", "", "Acme", "", time.Now()))

	dir.SetConnected("hubspot", false)
	agentCtx, err := BuildContext(context.Background(), dir, database, "hi", []string{"hubspot"})
	require.NoError(t, err)
	assert.Empty(t, agentCtx.RecentContacts)

	dir.SetConnected("hubspot", true)
	agentCtx, err = BuildContext(context.Background(), dir, database, "hi", []string{"hubspot"})
	require.NoError(t, err)
	require.Len(t, agentCtx.RecentContacts, 1)
	assert.Equal(t, "Jennifer Walsh", agentCtx.RecentContacts[0].Name)
}
