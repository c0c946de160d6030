// ABOUTME: Deterministic fallback strategy behind the model gateway
// ABOUTME: Produces status text for chat and rule-based JSON for deep analysis
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// FallbackGateway is the template strategy used when no live model is
// configured or the live call fails. Output is derived entirely from the
// prompt spec, so the pipeline never hard-fails a user-facing request.
type FallbackGateway struct{}

func NewFallbackGateway() *FallbackGateway {
	return &FallbackGateway{}
}

func (g *FallbackGateway) Invoke(_ context.Context, spec PromptSpec) (string, error) {
	if spec.Mode == ModeDeepAnalysis && spec.Transcript != "" {
		result := RuleAnalyze(spec.Transcript, spec.ActivityType)
		data, err := json.Marshal(result)
		if err != nil {
			return "", fmt.Errorf("marshal rule analysis: %w", err)
		}
		return string(data), nil
	}
	return statusText(spec), nil
}

// statusText is the rule-based chat response: a connection-aware summary of
// what the directory reports, so a degraded response is never blank.
func statusText(spec PromptSpec) string {
	agentCtx := spec.Context
	var b strings.Builder

	b.WriteString("CRM Assistant (rule-based mode)\n\n")

	if agentCtx.TotalConnectedCount > 0 {
		fmt.Fprintf(&b, "You have %d contacts across %d connected source(s).\n",
			agentCtx.TotalContactCount, agentCtx.TotalConnectedCount)
		b.WriteString("Connected platforms:\n")
		for _, c := range agentCtx.ActiveConnectors {
			fmt.Fprintf(&b, "  - %s (%s): %d contacts\n", c.Name, c.ID, c.ContactCount)
		}
		fmt.Fprintf(&b, "Recent activities: %d\n", agentCtx.TotalActivityCount)
	} else {
		b.WriteString("No CRMs are currently connected. Connect a platform on the Connectors page to start syncing data.\n")
	}

	b.WriteString("\nConfigure GEMINI_API_KEY for full AI analysis.")
	return b.String()
}
