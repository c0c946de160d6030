// ABOUTME: Context aggregator building the bounded cross-source snapshot
// ABOUTME: Admits only directory-confirmed connectors and truncates collections
package agent

import (
	"context"
	"database/sql"
	"sort"

	"github.com/zeroclick/crm/db"
	"github.com/zeroclick/crm/directory"
	"github.com/zeroclick/crm/models"
)

// Caps on the per-request snapshot so prompt size stays bounded no matter how
// much data the connectors hold.
const (
	maxRecentContacts   = 5
	maxRecentActivities = 5
)

// BuildContext assembles the per-request AgentContext. The caller-supplied
// connector ids are intersected with what the directory actually reports as
// connected; a stale client-side flag can therefore never leak data from a
// disconnected source into the prompt. An empty intersection is not an error,
// it produces an empty context that signals "no connected sources" downstream.
func BuildContext(ctx context.Context, dir directory.Directory, database *sql.DB, query string, requestedIDs []string) (models.AgentContext, error) {
	agentCtx := models.AgentContext{
		ActiveConnectorIDs: map[string]bool{},
		ActiveConnectors:   []models.ConnectorSummary{},
		RecentContacts:     []models.ContactRef{},
		RecentActivities:   []models.ActivityRef{},
		Query:              query,
	}

	connected, err := dir.ListConnected(ctx)
	if err != nil {
		return agentCtx, err
	}

	connectedByID := make(map[string]models.Connector, len(connected))
	for _, c := range connected {
		connectedByID[c.ID] = c
	}

	// Admitted = requested ∩ directory-connected. The directory wins.
	var admitted []string
	for _, id := range requestedIDs {
		c, ok := connectedByID[id]
		if !ok || agentCtx.ActiveConnectorIDs[id] {
			continue
		}
		admitted = append(admitted, id)
		agentCtx.ActiveConnectorIDs[id] = true
		agentCtx.ActiveConnectors = append(agentCtx.ActiveConnectors, models.ConnectorSummary{
			ID:           c.ID,
			Name:         c.Name,
			ContactCount: c.Stats.ContactCount,
		})
		// True scale, not the truncated sample.
		agentCtx.TotalContactCount += c.Stats.ContactCount
	}
	sort.Strings(admitted)
	sort.Slice(agentCtx.ActiveConnectors, func(i, j int) bool {
		return agentCtx.ActiveConnectors[i].Name < agentCtx.ActiveConnectors[j].Name
	})
	agentCtx.TotalConnectedCount = len(admitted)

	if len(admitted) == 0 {
		return agentCtx, nil
	}

	contacts, err := db.RecentContacts(database, admitted, maxRecentContacts)
	if err != nil {
		return agentCtx, err
	}
	agentCtx.RecentContacts = append(agentCtx.RecentContacts, contacts...)

	activities, err := db.RecentActivities(database, admitted, maxRecentActivities)
	if err != nil {
		return agentCtx, err
	}
	agentCtx.RecentActivities = append(agentCtx.RecentActivities, activities...)

	total, err := db.CountActivities(database, admitted)
	if err != nil {
		return agentCtx, err
	}
	agentCtx.TotalActivityCount = total

	return agentCtx, nil
}
