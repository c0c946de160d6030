// ABOUTME: Prompt composer rendering the agent context into model instructions
// ABOUTME: Pure and deterministic; picks light or deep instruction by query keywords
package agent

import (
	"fmt"
	"strings"

	"github.com/zeroclick/crm/models"
)

// Mode selects between the light conversational path and the structured
// deep-analysis path.
type Mode string

const (
	ModeChat         Mode = "chat"
	ModeDeepAnalysis Mode = "deepAnalysis"
)

// deepDiveTriggers switch a query onto the extended analytical instruction.
// Matched case-insensitively as substrings.
var deepDiveTriggers = []string{
	"analyze",
	"summarize",
	"what should i",
	"risk",
	"recommend",
	"churn",
	"pending",
}

// DetectMode returns ModeDeepAnalysis when the query matches a deep-dive
// trigger, ModeChat otherwise.
func DetectMode(query string) Mode {
	q := strings.ToLower(query)
	for _, trigger := range deepDiveTriggers {
		if strings.Contains(q, trigger) {
			return ModeDeepAnalysis
		}
	}
	return ModeChat
}

// PromptSpec is the structured instruction handed to the model gateway. The
// context and transcript ride along so the fallback strategy can produce a
// deterministic response without re-reading any store.
type PromptSpec struct {
	Mode         Mode
	System       string
	Data         string
	Query        string
	Transcript   string
	ActivityType string
	Context      models.AgentContext
}

// Render flattens the spec into the single instruction string sent upstream.
func (s PromptSpec) Render() string {
	var b strings.Builder
	b.WriteString(s.System)
	b.WriteString("\n\n")
	b.WriteString(s.Data)
	if s.Transcript != "" {
		b.WriteString("\n\nTRANSCRIPT:\n")
		b.WriteString(s.Transcript)
	}
	b.WriteString("\n\nUSER QUERY: ")
	b.WriteString(s.Query)
	return b.String()
}

const integrityRule = `DATA INTEGRITY:
- Use ONLY the data supplied below; the counts reflect connected sources only.
- Do NOT invent, assume, or extrapolate entities.
- Attribute every claim to the source connector named in the data.
- If data is unavailable, say so and explain which connection would provide it.`

const lightInstruction = `You are an AI assistant for a Zero-Click CRM. Answer the user's question in a
short, direct response. Where relevant, mention which connected source the
answer comes from.`

const deepInstruction = `You are an AI assistant for a Zero-Click CRM with deep analytical capabilities.
Provide a structured analysis: lead with insights rather than data recitation,
surface patterns and anomalies, flag risks and opportunities, and prioritize
recommended actions by impact and urgency.`

const jsonContract = `Respond with a single JSON object and nothing else, using exactly these keys:
summary (string), key_points (array of strings), sentiment_timeline (array of
{stage, sentiment, emoji, description}; sentiment is one of positive, neutral,
negative, empathetic), risk_level (one of low, medium, high, critical),
churn_probability (number 0-100), insights (array of {category, priority,
title, description, action_required, suggested_actions}; priority is one of
low, medium, high, urgent), recommended_actions (array of strings),
contacts_identified (array of {name, email, phone, role, company}),
deals_identified (array of {title, value, stage, status, notes}),
tasks_to_create (array of {title, description, priority, due_date,
assigned_to}), meeting_title (string), meeting_date (string), attendees
(array of strings), decisions_made (array of strings), action_items (array of
{action, owner, due_date, priority, status}), follow_up_items (array of
strings), next_meeting (string).`

// Compose renders the context and query into the instruction for the given
// mode. Same context and query always yield a byte-identical spec. Deep-dive
// chat queries get the analytical instruction but stay free-text; the JSON
// contract is attached only by ComposeTranscript.
func Compose(agentCtx models.AgentContext, mode Mode) PromptSpec {
	var system strings.Builder
	if mode == ModeDeepAnalysis {
		system.WriteString(deepInstruction)
	} else {
		system.WriteString(lightInstruction)
	}
	system.WriteString("\n\n")
	system.WriteString(integrityRule)

	return PromptSpec{
		Mode:    mode,
		System:  system.String(),
		Data:    renderData(agentCtx),
		Query:   agentCtx.Query,
		Context: agentCtx,
	}
}

// ComposeTranscript builds the deep-analysis spec for a transcript body. This
// is the only path that demands structured JSON output.
func ComposeTranscript(agentCtx models.AgentContext, transcript string, activityType string) PromptSpec {
	spec := Compose(agentCtx, ModeDeepAnalysis)
	spec.System += "\n\n" + jsonContract
	spec.Transcript = transcript
	spec.ActivityType = activityType
	if spec.Query == "" {
		spec.Query = fmt.Sprintf("Analyze this %s transcript.", activityType)
	}
	return spec
}

func renderData(agentCtx models.AgentContext) string {
	var b strings.Builder

	b.WriteString("CONNECTION STATUS:\n")
	if agentCtx.TotalConnectedCount > 0 {
		fmt.Fprintf(&b, "%d CRM platform(s) connected\n", agentCtx.TotalConnectedCount)
		for _, c := range agentCtx.ActiveConnectors {
			fmt.Fprintf(&b, "  - %s (%s): %d contacts\n", c.Name, c.ID, c.ContactCount)
		}
	} else {
		b.WriteString("No CRMs currently connected\n")
	}

	b.WriteString("\nAVAILABLE DATA (connected sources only):\n")
	fmt.Fprintf(&b, "  - Total contacts: %d\n", agentCtx.TotalContactCount)
	fmt.Fprintf(&b, "  - Recent activities: %d\n", agentCtx.TotalActivityCount)

	if len(agentCtx.RecentContacts) > 0 {
		b.WriteString("\nRECENT CONTACTS (from connected CRMs):\n")
		for i, c := range agentCtx.RecentContacts {
			fmt.Fprintf(&b, "%d. %s - %s (source: %s)\n", i+1, c.Name, c.CompanyName, c.SourceConnectorID)
		}
	} else {
		b.WriteString("\nRECENT CONTACTS: none available (connect CRMs to see data)\n")
	}

	if len(agentCtx.RecentActivities) > 0 {
		b.WriteString("\nRECENT ACTIVITIES (from connected data sources):\n")
		for i, a := range agentCtx.RecentActivities {
			fmt.Fprintf(&b, "%d. %s (%s - %s)\n", i+1, a.Title, a.SourceConnectorID, a.Type)
		}
	} else {
		b.WriteString("\nRECENT ACTIVITIES: none available (connect data sources to see activities)\n")
	}

	return b.String()
}
