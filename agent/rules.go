// ABOUTME: Rule-based transcript analyzer used by the fallback strategy
// ABOUTME: Keyword sentiment timeline, churn scoring, insights, and meeting minutes
package agent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zeroclick/crm/models"
)

var (
	negativeWords   = []string{"angry", "upset", "ridiculous", "unacceptable", "terrible", "worst"}
	empatheticWords = []string{"apologize", "sorry", "understand", "help"}
	positiveWords   = []string{"thank", "appreciate", "great", "excellent"}

	keyPointWords = []string{
		"refund", "cancel", "problem", "issue", "apologize",
		"resolve", "supervisor", "voucher", "compensation",
	}

	amountPattern   = regexp.MustCompile(`\$([\d,]+(?:\.\d+)?)`)
	staffPattern    = regexp.MustCompile(`(?:CSR|Agent|Supervisor|Manager)[\s:]+([A-Z][a-z]+(?: [A-Z][a-z]+)?)`)
	customerPattern = regexp.MustCompile(`[Tt]his is ([A-Z][a-z]+ [A-Z][a-z]+)`)
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
		regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
		regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}`),
	}

	decisionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:decided|agreed|concluded|determined)\s+(?:to|that)\s+([^.!?\n]{20,100})`),
		regexp.MustCompile(`(?i)(?:will|going to)\s+([^.!?\n]{20,80})`),
		regexp.MustCompile(`(?i)(?:refund|process|implement|schedule|approve)\s+([^.!?\n]{15,80})`),
	}

	actionItemPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:action item|to-do|task):\s*([^.!?\n]{15,80})`),
		regexp.MustCompile(`(?i)(?:please|need to|should|must)\s+([^.!?\n]{15,80})`),
	}

	followUpPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:follow[- ]up with|follow up with|reach out to)\s+([^.!?\n]{10,80})`),
		regexp.MustCompile(`(?i)(?:next time|in the future|moving forward)\s+([^.!?\n]{15,80})`),
	}

	nextMeetingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)next (?:meeting|call|session)\s+(?:on|at)?\s*([^.!?\n]{10,50})`),
		regexp.MustCompile(`(?i)(?:schedule|book|set up)\s+(?:a|another|the next)\s+(?:meeting|call)\s+(?:for|on)?\s*([^.!?\n]{10,50})`),
	}
)

// RuleAnalyze runs the deterministic transcript analysis. Same transcript and
// activity type always produce the same result.
func RuleAnalyze(transcript, activityType string) models.AnalysisResult {
	result := models.EmptyAnalysisResult()
	lower := strings.ToLower(transcript)

	result.SentimentTimeline = sentimentTimeline(transcript)
	risks := detectRisks(lower)
	result.ChurnProbability = churnProbability(lower, result.SentimentTimeline)
	result.RiskLevel = riskLevel(result.ChurnProbability, len(risks))
	result.Insights = buildInsights(lower, risks, result.SentimentTimeline)
	result.ContactsIdentified = identifyContacts(transcript)
	result.DealsIdentified = extractDeals(transcript, lower)
	result.TasksToCreate = buildTasks(lower, result.Insights)
	result.Summary = executiveSummary(lower, result)
	result.KeyPoints = keyPoints(transcript)
	result.RecommendedActions = recommendedActions(result.RiskLevel, result.ChurnProbability)

	// Minutes of meeting
	result.MeetingTitle = meetingTitle(lower, activityType)
	result.MeetingDate = meetingDate(transcript)
	for _, c := range result.ContactsIdentified {
		result.Attendees = append(result.Attendees, c.Name)
	}
	result.DecisionsMade = extractByPatterns(transcript, decisionPatterns, 15, 5)
	result.ActionItems = actionItems(transcript, result.TasksToCreate)
	result.FollowUpItems = extractByPatterns(transcript, followUpPatterns, 10, 5)
	result.NextMeeting = nextMeeting(transcript)

	return result
}

// truncateRunes shortens s to at most limit runes, never splitting a
// multi-byte character.
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// sentimentTimeline walks the transcript line by line and records a point
// each time the detected sentiment changes, capped at 5 points.
func sentimentTimeline(transcript string) []models.SentimentPoint {
	timeline := []models.SentimentPoint{}
	current := models.SentimentNeutral

	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		sentiment := models.SentimentNeutral
		emoji := "\U0001F610"
		switch {
		case containsAny(lower, negativeWords):
			sentiment = models.SentimentNegative
			emoji = "\U0001F620"
		case containsAny(lower, empatheticWords):
			sentiment = models.SentimentEmpathetic
			emoji = "\U0001F91D"
		case containsAny(lower, positiveWords):
			sentiment = models.SentimentPositive
			emoji = "\U0001F60A"
		}

		if sentiment == current {
			continue
		}
		description := line
		if utf8.RuneCountInString(description) > 100 {
			description = truncateRunes(description, 100) + "..."
		}
		timeline = append(timeline, models.SentimentPoint{
			Stage:       fmt.Sprintf("Point %d", len(timeline)+1),
			Sentiment:   sentiment,
			Emoji:       emoji,
			Description: description,
		})
		current = sentiment
		if len(timeline) == 5 {
			break
		}
	}
	return timeline
}

func detectRisks(lower string) []string {
	var risks []string

	if containsAny(lower, []string{"cancel", "refund", "never again", "worst"}) {
		risks = append(risks, "Customer churn risk detected")
	}
	if strings.Contains(lower, "supervisor") || strings.Contains(lower, "manager") {
		risks = append(risks, "Issue escalated to management")
	}
	if strings.Count(lower, "unacceptable") > 2 || strings.Count(lower, "ridiculous") > 2 {
		risks = append(risks, "High negative sentiment - immediate action required")
	}
	if strings.Contains(lower, "cancel") && (strings.Contains(lower, "flight") || strings.Contains(lower, "booking")) {
		risks = append(risks, "Service disruption - customer compensation may be needed")
	}
	return risks
}

// churnProbability scores from a neutral 50 using weighted keyword counts and
// the number of negative sentiment shifts, clamped to [0,100].
func churnProbability(lower string, timeline []models.SentimentPoint) float64 {
	score := 50.0

	score += float64(strings.Count(lower, "cancel")) * 10
	score += float64(strings.Count(lower, "refund")) * 8
	score += float64(strings.Count(lower, "unacceptable")) * 5
	score += float64(strings.Count(lower, "worst")) * 7
	score += float64(strings.Count(lower, "never")) * 6

	if strings.Contains(lower, "voucher") && strings.Contains(lower, "don't want") {
		score += 15
	}

	if strings.Contains(lower, "thank") {
		score -= 5
	}
	if strings.Contains(lower, "appreciate") {
		score -= 5
	}
	if strings.Contains(lower, "resolve") || strings.Contains(lower, "fixed") {
		score -= 10
	}

	for _, p := range timeline {
		if p.Sentiment == models.SentimentNegative {
			score += 8
		}
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func riskLevel(churn float64, riskCount int) string {
	switch {
	case churn > 70 || riskCount >= 3:
		return models.RiskCritical
	case churn > 50 || riskCount >= 2:
		return models.RiskHigh
	case churn > 30 || riskCount >= 1:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

func buildInsights(lower string, risks []string, timeline []models.SentimentPoint) []models.Insight {
	insights := []models.Insight{}

	if len(risks) > 0 {
		insights = append(insights, models.Insight{
			Category:       "risk",
			Priority:       models.PriorityHigh,
			Title:          "Critical customer issues detected",
			Description:    fmt.Sprintf("%d risk factors identified requiring immediate attention", len(risks)),
			ActionRequired: true,
			SuggestedActions: []string{
				"Assign to senior account manager",
				"Schedule follow-up call within 24 hours",
				"Review service recovery procedures",
			},
		})
	}

	for _, p := range timeline {
		if p.Sentiment == models.SentimentNegative {
			insights = append(insights, models.Insight{
				Category:       "sentiment",
				Priority:       models.PriorityHigh,
				Title:          "Negative customer experience",
				Description:    "Customer expressed significant dissatisfaction during the interaction",
				ActionRequired: true,
				SuggestedActions: []string{
					"Send personalized apology from leadership",
					"Offer additional compensation",
					"Monitor for follow-up issues",
				},
			})
			break
		}
	}

	if value := largestAmount(lower); value > 1000 {
		insights = append(insights, models.Insight{
			Category:       "opportunity",
			Priority:       models.PriorityMedium,
			Title:          "High-value customer",
			Description:    fmt.Sprintf("Customer has a $%.0f transaction - worth retaining", value),
			ActionRequired: true,
			SuggestedActions: []string{
				"Assign VIP status",
				"Provide premium support access",
				"Consider loyalty program enrollment",
			},
		})
	}

	return insights
}

func largestAmount(s string) float64 {
	var largest float64
	for _, m := range amountPattern.FindAllStringSubmatch(s, -1) {
		raw := strings.ReplaceAll(m[1], ",", "")
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > largest {
			largest = v
		}
	}
	return largest
}

func identifyContacts(transcript string) []models.IdentifiedContact {
	contacts := []models.IdentifiedContact{}
	seen := map[string]bool{}

	add := func(name, role string) {
		name = strings.TrimSpace(name)
		if len(name) <= 2 || seen[name] {
			return
		}
		seen[name] = true
		contacts = append(contacts, models.IdentifiedContact{Name: name, Role: role})
	}

	if m := customerPattern.FindStringSubmatch(transcript); m != nil {
		add(m[1], "Customer")
	}
	for _, m := range staffPattern.FindAllStringSubmatch(transcript, -1) {
		add(m[1], "Staff")
	}

	if emails := emailPattern.FindAllString(transcript, -1); len(emails) > 0 && len(contacts) > 0 {
		contacts[0].Email = emails[0]
	}

	if len(contacts) > 5 {
		contacts = contacts[:5]
	}
	return contacts
}

func extractDeals(transcript, lower string) []models.IdentifiedDeal {
	deals := []models.IdentifiedDeal{}

	value := largestAmount(transcript)
	if value == 0 {
		return deals
	}

	stage := "In Progress"
	switch {
	case strings.Contains(lower, "refund") || strings.Contains(lower, "cancel"):
		stage = "Cancelled/Refunded"
	case strings.Contains(lower, "closed") || strings.Contains(lower, "completed"):
		stage = "Closed Won"
	case strings.Contains(lower, "negotiat") || strings.Contains(lower, "discuss"):
		stage = "Negotiation"
	}

	status := "Active"
	switch {
	case strings.Contains(lower, "refund"):
		status = "Refunded"
	case strings.Contains(lower, "cancel"):
		status = "Cancelled"
	case strings.Contains(lower, "complete"):
		status = "Completed"
	}

	deals = append(deals, models.IdentifiedDeal{
		Title:  "Transaction",
		Value:  value,
		Stage:  stage,
		Status: status,
	})
	return deals
}

func buildTasks(lower string, insights []models.Insight) []models.TaskItem {
	tasks := []models.TaskItem{}

	if strings.Contains(lower, "follow") {
		tasks = append(tasks, models.TaskItem{
			Title:       "Follow-up action required",
			Description: "Customer expects a follow-up after this interaction",
			Priority:    models.PriorityHigh,
			DueDate:     "2 days",
			AssignedTo:  "Account Manager",
		})
	}

	for _, i := range insights {
		if i.Category == "risk" {
			tasks = append(tasks, models.TaskItem{
				Title:       "Customer retention action",
				Description: "High churn risk - immediate outreach required",
				Priority:    models.PriorityUrgent,
				DueDate:     "24 hours",
				AssignedTo:  "Senior Account Manager",
			})
			break
		}
	}

	if strings.Contains(lower, "refund") {
		tasks = append(tasks, models.TaskItem{
			Title:       "Process refund",
			Description: "Complete refund processing and confirm with customer",
			Priority:    models.PriorityHigh,
			DueDate:     "3 days",
			AssignedTo:  "Finance Team",
		})
	}

	return tasks
}

func executiveSummary(lower string, result models.AnalysisResult) string {
	var parts []string

	if len(result.ContactsIdentified) > 0 {
		parts = append(parts, fmt.Sprintf("Customer %s contacted support", result.ContactsIdentified[0].Name))
	} else {
		parts = append(parts, "Customer contacted support")
	}

	if len(result.SentimentTimeline) > 0 {
		parts = append(parts, fmt.Sprintf("with %s sentiment", result.SentimentTimeline[0].Sentiment))
	}

	if result.ChurnProbability > 70 {
		parts = append(parts, fmt.Sprintf("CRITICAL: %.0f%% churn probability", result.ChurnProbability))
	} else if result.ChurnProbability > 50 {
		parts = append(parts, fmt.Sprintf("WARNING: %.0f%% churn probability", result.ChurnProbability))
	}

	if strings.Contains(lower, "refund") {
		parts = append(parts, "Refund processed")
	}
	if strings.Contains(lower, "supervisor") {
		parts = append(parts, "escalated to supervisor")
	}

	return strings.Join(parts, ". ") + "."
}

func keyPoints(transcript string) []string {
	points := []string{}

	for _, sentence := range regexp.MustCompile(`[.!?]+`).Split(transcript, -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= 30 {
			continue
		}
		if !containsAny(strings.ToLower(sentence), keyPointWords) {
			continue
		}
		sentence = truncateRunes(sentence, 150)
		points = append(points, sentence)
		if len(points) == 5 {
			break
		}
	}
	return points
}

func recommendedActions(risk string, churn float64) []string {
	actions := []string{}

	if risk == models.RiskCritical || risk == models.RiskHigh {
		actions = append(actions,
			"Immediate: assign to senior account manager",
			"Schedule follow-up call within 24 hours")
	}
	if churn > 60 {
		actions = append(actions,
			"Consider additional compensation or credits",
			"Escalate to customer success team")
	}
	actions = append(actions,
		"Send personalized follow-up email",
		"Monitor customer satisfaction metrics",
		"Document issue in CRM with full context")

	if len(actions) > 6 {
		actions = actions[:6]
	}
	return actions
}

func meetingTitle(lower, activityType string) string {
	switch {
	case activityType == "call" || activityType == "customer_service":
		if strings.Contains(lower, "supervisor") {
			return "Customer Service Escalation Call"
		}
		return "Customer Support Call"
	case strings.Contains(lower, "meeting"):
		return "Team Meeting"
	case strings.Contains(lower, "review"):
		return "Review Session"
	default:
		return "Business Discussion"
	}
}

func meetingDate(transcript string) string {
	for _, p := range datePatterns {
		if m := p.FindString(transcript); m != "" {
			return m
		}
	}
	return ""
}

func extractByPatterns(transcript string, patterns []*regexp.Regexp, minLen, limit int) []string {
	items := []string{}
	seen := map[string]bool{}

	for _, p := range patterns {
		for _, m := range p.FindAllStringSubmatch(transcript, -1) {
			item := strings.TrimSpace(m[1])
			if len(item) < minLen || seen[item] {
				continue
			}
			seen[item] = true
			items = append(items, item)
			if len(items) == limit {
				return items
			}
		}
	}
	return items
}

func actionItems(transcript string, tasks []models.TaskItem) []models.ActionItem {
	items := []models.ActionItem{}

	for _, t := range tasks {
		owner := t.AssignedTo
		if owner == "" {
			owner = "TBD"
		}
		due := t.DueDate
		if due == "" {
			due = "TBD"
		}
		items = append(items, models.ActionItem{
			Action:   t.Title,
			Owner:    owner,
			DueDate:  due,
			Priority: t.Priority,
			Status:   "pending",
		})
	}

	for _, extra := range extractByPatterns(transcript, actionItemPatterns, 15, 3) {
		if len(items) >= 8 {
			break
		}
		items = append(items, models.ActionItem{
			Action:   extra,
			Owner:    "TBD",
			DueDate:  "TBD",
			Priority: models.PriorityMedium,
			Status:   "pending",
		})
	}

	if len(items) > 8 {
		items = items[:8]
	}
	return items
}

func nextMeeting(transcript string) string {
	for _, p := range nextMeetingPatterns {
		if m := p.FindStringSubmatch(transcript); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
