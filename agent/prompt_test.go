// ABOUTME: Tests for prompt composition and deep-dive mode detection
// ABOUTME: Verifies determinism and the light vs deep instruction split
package agent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zeroclick/crm/models"
)

func sampleContext() models.AgentContext {
	return models.AgentContext{
		ActiveConnectorIDs: map[string]bool{"hubspot": true},
		ActiveConnectors: []models.ConnectorSummary{
			{ID: "hubspot", Name: "HubSpot", ContactCount: 11},
		},
		TotalConnectedCount: 1,
		TotalContactCount:   11,
		TotalActivityCount:  3,
		RecentContacts: []models.ContactRef{
			{Name: "Jennifer Walsh", CompanyName: "Acme", SourceConnectorID: "hubspot"},
		},
		RecentActivities: []models.ActivityRef{
			{Title: "Escalation call", Type: "call", SourceConnectorID: "hubspot"},
		},
		Query: "Show me CRM stats",
	}
}

func TestDetectMode(t *testing.T) {
	tests := []struct {
		query string
		want  Mode
	}{
		{"Analyze the Park account", ModeDeepAnalysis},
		{"summarize my week", ModeDeepAnalysis},
		{"What should I focus on today?", ModeDeepAnalysis},
		{"Any churn RISK in the pipeline?", ModeDeepAnalysis},
		{"Show me CRM stats", ModeChat},
		{"hello", ModeChat},
		{"", ModeChat},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectMode(tt.query), "query %q", tt.query)
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	agentCtx := sampleContext()

	first := Compose(agentCtx, ModeDeepAnalysis).Render()
	second := Compose(agentCtx, ModeDeepAnalysis).Render()

	assert.Equal(t, first, second)
}

func TestComposeLightVsDeep(t *testing.T) {
	agentCtx := sampleContext()

	light := Compose(agentCtx, ModeChat)
	assert.NotContains(t, light.System, "JSON object")
	assert.Contains(t, light.System, "DATA INTEGRITY")

	deep := Compose(agentCtx, ModeDeepAnalysis)
	assert.Contains(t, deep.System, "deep analytical")
	assert.Contains(t, deep.System, "DATA INTEGRITY")
}

func TestComposeDeepChatStaysFreeText(t *testing.T) {
	// A deep-dive chat query gets the analytical instruction, but its answer
	// goes straight back to the user, so the prompt must not demand JSON.
	agentCtx := sampleContext()
	agentCtx.Query = "analyze my pipeline"

	mode := DetectMode(agentCtx.Query)
	assert.Equal(t, ModeDeepAnalysis, mode)

	spec := Compose(agentCtx, mode)
	assert.NotContains(t, spec.System, "JSON object")
	assert.NotContains(t, spec.System, "churn_probability")
	assert.Contains(t, spec.System, "deep analytical")
}

func TestComposeRendersConnectionStatus(t *testing.T) {
	rendered := Compose(sampleContext(), ModeChat).Render()

	assert.Contains(t, rendered, "1 CRM platform(s) connected")
	assert.Contains(t, rendered, "HubSpot (hubspot): 11 contacts")
	assert.Contains(t, rendered, "Jennifer Walsh")
	assert.Contains(t, rendered, "USER QUERY: Show me CRM stats")
}

func TestComposeEmptyContext(t *testing.T) {
	agentCtx := models.AgentContext{
		ActiveConnectorIDs: map[string]bool{},
		Query:              "hello",
	}
	rendered := Compose(agentCtx, ModeChat).Render()

	assert.Contains(t, rendered, "No CRMs currently connected")
	assert.Contains(t, rendered, "RECENT CONTACTS: none available")
}

func TestComposeTranscriptEmbedsBody(t *testing.T) {
	agentCtx := sampleContext()
	agentCtx.Query = ""

	spec := ComposeTranscript(agentCtx, "Customer: I want to cancel.", "call")

	assert.Equal(t, ModeDeepAnalysis, spec.Mode)
	assert.Equal(t, "call", spec.ActivityType)
	assert.Equal(t, "Analyze this call transcript.", spec.Query)
	assert.Contains(t, spec.System, "JSON object")
	assert.Contains(t, spec.System, "churn_probability")

	rendered := spec.Render()
	assert.True(t, strings.Contains(rendered, "TRANSCRIPT:\nCustomer: I want to cancel."))
}
