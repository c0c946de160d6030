// ABOUTME: Tests for the rule-based transcript analyzer
// ABOUTME: Exercises churn scoring, risk detection, and minutes extraction
package agent

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeroclick/crm/models"
)

const escalationTranscript = `CSR: Sarah Mitchell speaking, how can I help you today?
Customer: Hi, this is David Park. My flight was cancelled and nobody told me. This is unacceptable.
CSR: I apologize for the trouble, let me look into that for you.
Customer: I paid $2,400 for this booking and I want a refund. I don't want a voucher.
CSR: I understand. I can process the refund today.
Customer: I also want to speak to a supervisor. This is the worst experience.
CSR: Of course. We will follow up with you within two days.
Customer: Thank you.`

func TestRuleAnalyzeEscalation(t *testing.T) {
	result := RuleAnalyze(escalationTranscript, "call")

	assert.Greater(t, result.ChurnProbability, 70.0)
	assert.LessOrEqual(t, result.ChurnProbability, 100.0)
	assert.Equal(t, models.RiskCritical, result.RiskLevel)

	assert.Contains(t, result.Summary, "David Park")
	assert.Contains(t, result.Summary, "churn probability")

	require.NotEmpty(t, result.ContactsIdentified)
	names := make([]string, 0, len(result.ContactsIdentified))
	for _, c := range result.ContactsIdentified {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "David Park")
	assert.Contains(t, names, "Sarah Mitchell")

	require.Len(t, result.DealsIdentified, 1)
	assert.Equal(t, 2400.0, result.DealsIdentified[0].Value)
	assert.Equal(t, "Refunded", result.DealsIdentified[0].Status)

	assert.NotEmpty(t, result.KeyPoints)
	assert.LessOrEqual(t, len(result.KeyPoints), 5)
	assert.LessOrEqual(t, len(result.SentimentTimeline), 5)

	categories := map[string]bool{}
	for _, in := range result.Insights {
		categories[in.Category] = true
	}
	assert.True(t, categories["risk"])
	assert.True(t, categories["opportunity"], "a $2,400 transaction should surface a retention opportunity")

	assert.NotEmpty(t, result.RecommendedActions)
	assert.LessOrEqual(t, len(result.RecommendedActions), 6)
}

func TestRuleAnalyzeMinutes(t *testing.T) {
	result := RuleAnalyze(escalationTranscript, "call")

	assert.Equal(t, "Customer Service Escalation Call", result.MeetingTitle)
	assert.Contains(t, result.Attendees, "David Park")

	require.NotEmpty(t, result.ActionItems)
	assert.LessOrEqual(t, len(result.ActionItems), 8)
	for _, item := range result.ActionItems {
		assert.Equal(t, "pending", item.Status)
		assert.NotEmpty(t, item.Owner)
	}
	assert.NotEmpty(t, result.FollowUpItems)
}

func TestRuleAnalyzeCalmTranscript(t *testing.T) {
	transcript := `Customer: Thank you so much, I really appreciate the great service.
CSR: Happy to hear everything is fixed now.`

	result := RuleAnalyze(transcript, "call")

	assert.Equal(t, models.RiskLow, result.RiskLevel)
	assert.Less(t, result.ChurnProbability, 50.0)
	assert.Empty(t, result.DealsIdentified)
}

func TestRuleAnalyzeTruncatesOnRuneBoundaries(t *testing.T) {
	long := strings.Repeat("ü", 120)
	transcript := "Customer: this is unacceptable, " + long + ".\n" +
		"Customer: I demand a refund because " + long + " ruined everything for us."

	result := RuleAnalyze(transcript, "call")

	require.NotEmpty(t, result.SentimentTimeline)
	for _, p := range result.SentimentTimeline {
		if !utf8.ValidString(p.Description) {
			t.Errorf("Timeline description is not valid UTF-8: %q", p.Description)
		}
	}

	require.NotEmpty(t, result.KeyPoints)
	for _, p := range result.KeyPoints {
		if !utf8.ValidString(p) {
			t.Errorf("Key point is not valid UTF-8: %q", p)
		}
		if utf8.RuneCountInString(p) > 150 {
			t.Errorf("Key point over 150 runes: %d", utf8.RuneCountInString(p))
		}
	}
}

func TestRuleAnalyzeIsDeterministic(t *testing.T) {
	first := RuleAnalyze(escalationTranscript, "call")
	second := RuleAnalyze(escalationTranscript, "call")
	assert.Equal(t, first, second)
}
