// ABOUTME: Agent orchestrator tying aggregation, prompting, and normalization together
// ABOUTME: Implements the Chat, Analyze, and QuickSummary operations
package agent

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/zeroclick/crm/db"
	"github.com/zeroclick/crm/directory"
	"github.com/zeroclick/crm/models"
)

// Agent runs the analysis pipeline. Each request is stateless end-to-end:
// the context snapshot is built fresh, the model is invoked once, and nothing
// is persisted.
type Agent struct {
	db      *sql.DB
	dir     directory.Directory
	gateway Gateway
}

func New(database *sql.DB, dir directory.Directory, gateway Gateway) *Agent {
	return &Agent{db: database, dir: dir, gateway: gateway}
}

// resolveRequestedIDs applies the hint policy: a nil hint means "everything
// the directory reports as connected"; an explicit (possibly empty) list is
// intersected with the directory by the aggregator.
func (a *Agent) resolveRequestedIDs(ctx context.Context, requested []string) ([]string, error) {
	if requested != nil {
		return requested, nil
	}
	connected, err := a.dir.ListConnected(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(connected))
	for _, c := range connected {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// Chat answers a free-text question over the connected-source snapshot.
// Deep-dive queries get the extended analytical instruction; the response is
// always the text the model (or fallback) produced, never blank.
func (a *Agent) Chat(ctx context.Context, query string, activeConnectorIDs []string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("%w: query is empty", ErrInvalidInput)
	}

	requested, err := a.resolveRequestedIDs(ctx, activeConnectorIDs)
	if err != nil {
		return "", err
	}

	agentCtx, err := BuildContext(ctx, a.dir, a.db, query, requested)
	if err != nil {
		return "", err
	}

	spec := Compose(agentCtx, DetectMode(query))

	raw, err := a.gateway.Invoke(ctx, spec)
	if err != nil {
		return "", err
	}

	result := Normalize(raw, ModeChat)
	return result.Summary + chatFooter(agentCtx), nil
}

// chatFooter is the data-freshness line appended to every chat response.
func chatFooter(agentCtx models.AgentContext) string {
	return fmt.Sprintf("\n\n---\nData refreshed per request - based on %d connected CRM(s)", agentCtx.TotalConnectedCount)
}

// Analyze runs the deep-analysis path over a stored transcript. Model
// failures are absorbed by the resilient gateway; JSON and schema deviations
// are absorbed by the normalizer. The only hard failures are an unknown
// transcript id and an empty transcript body.
func (a *Agent) Analyze(ctx context.Context, transcriptID, activityType string, activeConnectorIDs []string) (models.AnalysisResult, error) {
	transcript, err := db.GetTranscript(a.db, transcriptID)
	if err != nil {
		return models.AnalysisResult{}, err
	}
	if transcript == nil {
		return models.AnalysisResult{}, fmt.Errorf("%w: transcript %s", ErrNotFound, transcriptID)
	}
	if strings.TrimSpace(transcript.Content) == "" {
		return models.AnalysisResult{}, fmt.Errorf("%w: transcript %s has no content", ErrInvalidInput, transcriptID)
	}
	if activityType == "" {
		activityType = transcript.Type
	}

	requested, err := a.resolveRequestedIDs(ctx, activeConnectorIDs)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	agentCtx, err := BuildContext(ctx, a.dir, a.db, "", requested)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	spec := ComposeTranscript(agentCtx, transcript.Content, activityType)

	raw, err := a.gateway.Invoke(ctx, spec)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	return Normalize(raw, ModeDeepAnalysis), nil
}

// QuickSummary projects a full analysis down to its headline metrics.
type QuickSummary struct {
	Summary          string   `json:"summary"`
	RiskLevel        string   `json:"risk_level"`
	ChurnProbability float64  `json:"churn_probability"`
	KeyPoints        []string `json:"key_points"`
	UrgentActions    []string `json:"urgent_actions"`
	Degraded         bool     `json:"degraded"`
}

func (a *Agent) QuickSummary(ctx context.Context, transcriptID, activityType string) (QuickSummary, error) {
	result, err := a.Analyze(ctx, transcriptID, activityType, nil)
	if err != nil {
		return QuickSummary{}, err
	}

	keyPoints := result.KeyPoints
	if len(keyPoints) > 3 {
		keyPoints = keyPoints[:3]
	}

	urgent := []string{}
	for _, action := range result.RecommendedActions {
		if strings.Contains(action, "Immediate") {
			urgent = append(urgent, action)
		}
	}

	return QuickSummary{
		Summary:          result.Summary,
		RiskLevel:        result.RiskLevel,
		ChurnProbability: result.ChurnProbability,
		KeyPoints:        keyPoints,
		UrgentActions:    urgent,
		Degraded:         result.Degraded,
	}, nil
}
