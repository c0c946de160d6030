// ABOUTME: Response normalizer coercing model output into the canonical schema
// ABOUTME: Validating parser with defaults, range clamping, and enum coercion
package agent

import (
	"encoding/json"
	"strings"

	"github.com/zeroclick/crm/models"
)

var validSentiments = map[string]bool{
	models.SentimentPositive:   true,
	models.SentimentNeutral:    true,
	models.SentimentNegative:   true,
	models.SentimentEmpathetic: true,
}

var validRiskLevels = map[string]bool{
	models.RiskLow:      true,
	models.RiskMedium:   true,
	models.RiskHigh:     true,
	models.RiskCritical: true,
}

var validPriorities = map[string]bool{
	models.PriorityLow:    true,
	models.PriorityMedium: true,
	models.PriorityHigh:   true,
	models.PriorityUrgent: true,
}

// Normalize turns raw model output into a fully populated, schema-valid
// AnalysisResult. Callers never need to null-check structured fields.
//
// Chat mode passes the text through as the summary. Deep-analysis mode parses
// the output as JSON and validates every field: unrecognized enum values are
// coerced to the lowest-severity member instead of rejected, churn probability
// is clamped to [0,100], and a completely unparseable payload becomes a
// degraded result carrying the raw text as its summary.
func Normalize(raw string, mode Mode) models.AnalysisResult {
	result := models.EmptyAnalysisResult()

	if mode == ModeChat {
		result.Summary = raw
		return result
	}

	payload, ok := extractJSON(raw)
	if !ok {
		result.Summary = raw
		result.Degraded = true
		return result
	}

	var parsed models.AnalysisResult
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		result.Summary = raw
		result.Degraded = true
		return result
	}

	return coerce(parsed)
}

// extractJSON strips a markdown code fence if present and trims to the
// outermost object braces. Models frequently wrap their JSON this way.
func extractJSON(raw string) (string, bool) {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

// coerce validates the parsed result field by field. Missing fields take
// type-appropriate defaults silently; present-but-invalid values are coerced
// to the lowest-severity enum member and flag the result as degraded.
func coerce(parsed models.AnalysisResult) models.AnalysisResult {
	degraded := false

	if parsed.RiskLevel == "" {
		parsed.RiskLevel = models.RiskLow
	} else if !validRiskLevels[parsed.RiskLevel] {
		parsed.RiskLevel = models.RiskLow
		degraded = true
	}

	if parsed.ChurnProbability < 0 {
		parsed.ChurnProbability = 0
		degraded = true
	} else if parsed.ChurnProbability > 100 {
		parsed.ChurnProbability = 100
		degraded = true
	}

	for i := range parsed.SentimentTimeline {
		s := &parsed.SentimentTimeline[i]
		if s.Sentiment == "" {
			s.Sentiment = models.SentimentNeutral
		} else if !validSentiments[s.Sentiment] {
			s.Sentiment = models.SentimentNeutral
			degraded = true
		}
	}

	for i := range parsed.Insights {
		in := &parsed.Insights[i]
		if in.Priority == "" {
			in.Priority = models.PriorityLow
		} else if !validPriorities[in.Priority] {
			in.Priority = models.PriorityLow
			degraded = true
		}
		if in.SuggestedActions == nil {
			in.SuggestedActions = []string{}
		}
	}

	for i := range parsed.ActionItems {
		a := &parsed.ActionItems[i]
		if a.Priority == "" {
			a.Priority = models.PriorityMedium
		} else if !validPriorities[a.Priority] {
			a.Priority = models.PriorityLow
			degraded = true
		}
	}

	for i := range parsed.DealsIdentified {
		if parsed.DealsIdentified[i].Value < 0 {
			parsed.DealsIdentified[i].Value = 0
			degraded = true
		}
	}

	// List fields are never nil in the canonical record.
	if parsed.KeyPoints == nil {
		parsed.KeyPoints = []string{}
	}
	if parsed.SentimentTimeline == nil {
		parsed.SentimentTimeline = []models.SentimentPoint{}
	}
	if parsed.Insights == nil {
		parsed.Insights = []models.Insight{}
	}
	if parsed.RecommendedActions == nil {
		parsed.RecommendedActions = []string{}
	}
	if parsed.ContactsIdentified == nil {
		parsed.ContactsIdentified = []models.IdentifiedContact{}
	}
	if parsed.DealsIdentified == nil {
		parsed.DealsIdentified = []models.IdentifiedDeal{}
	}
	if parsed.TasksToCreate == nil {
		parsed.TasksToCreate = []models.TaskItem{}
	}
	if parsed.Attendees == nil {
		parsed.Attendees = []string{}
	}
	if parsed.DecisionsMade == nil {
		parsed.DecisionsMade = []string{}
	}
	if parsed.ActionItems == nil {
		parsed.ActionItems = []models.ActionItem{}
	}
	if parsed.FollowUpItems == nil {
		parsed.FollowUpItems = []string{}
	}

	parsed.Degraded = parsed.Degraded || degraded
	return parsed
}
