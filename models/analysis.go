// ABOUTME: Canonical analysis record produced by the agent pipeline
// ABOUTME: Defines AnalysisResult with its enums, insights, and meeting minutes
package models

// Sentiment constants.
const (
	SentimentPositive   = "positive"
	SentimentNeutral    = "neutral"
	SentimentNegative   = "negative"
	SentimentEmpathetic = "empathetic"
)

// RiskLevel constants.
const (
	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

// Priority constants.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// SentimentPoint marks a sentiment shift at one stage of a conversation.
type SentimentPoint struct {
	Stage       string `json:"stage"`
	Sentiment   string `json:"sentiment"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

type Insight struct {
	Category         string   `json:"category"`
	Priority         string   `json:"priority"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	ActionRequired   bool     `json:"action_required"`
	SuggestedActions []string `json:"suggested_actions"`
}

type IdentifiedContact struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Role    string `json:"role,omitempty"`
	Company string `json:"company,omitempty"`
}

type IdentifiedDeal struct {
	Title  string  `json:"title"`
	Value  float64 `json:"value"`
	Stage  string  `json:"stage"`
	Status string  `json:"status"`
	Notes  string  `json:"notes,omitempty"`
}

type TaskItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date,omitempty"`
	AssignedTo  string `json:"assigned_to,omitempty"`
}

// ActionItem is one row of the minutes-of-meeting action table.
type ActionItem struct {
	Action   string `json:"action"`
	Owner    string `json:"owner"`
	DueDate  string `json:"due_date"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
}

// AnalysisResult is the canonical output of the agent pipeline. Every field is
// populated: list fields are empty slices rather than nil, enums always hold a
// valid member, and ChurnProbability is within [0,100]. Degraded is set when
// the normalizer had to synthesize structure the model did not supply.
type AnalysisResult struct {
	Summary            string              `json:"summary"`
	KeyPoints          []string            `json:"key_points"`
	SentimentTimeline  []SentimentPoint    `json:"sentiment_timeline"`
	RiskLevel          string              `json:"risk_level"`
	ChurnProbability   float64             `json:"churn_probability"`
	Insights           []Insight           `json:"insights"`
	RecommendedActions []string            `json:"recommended_actions"`
	ContactsIdentified []IdentifiedContact `json:"contacts_identified"`
	DealsIdentified    []IdentifiedDeal    `json:"deals_identified"`
	TasksToCreate      []TaskItem          `json:"tasks_to_create"`

	// Minutes of meeting
	MeetingTitle  string       `json:"meeting_title,omitempty"`
	MeetingDate   string       `json:"meeting_date,omitempty"`
	Attendees     []string     `json:"attendees"`
	DecisionsMade []string     `json:"decisions_made"`
	ActionItems   []ActionItem `json:"action_items"`
	FollowUpItems []string     `json:"follow_up_items"`
	NextMeeting   string       `json:"next_meeting,omitempty"`

	Degraded bool `json:"degraded"`
}

// EmptyAnalysisResult returns a schema-valid result with every list field
// initialized and enum fields at their lowest-severity members.
func EmptyAnalysisResult() AnalysisResult {
	return AnalysisResult{
		KeyPoints:          []string{},
		SentimentTimeline:  []SentimentPoint{},
		RiskLevel:          RiskLow,
		ChurnProbability:   0,
		Insights:           []Insight{},
		RecommendedActions: []string{},
		ContactsIdentified: []IdentifiedContact{},
		DealsIdentified:    []IdentifiedDeal{},
		TasksToCreate:      []TaskItem{},
		Attendees:          []string{},
		DecisionsMade:      []string{},
		ActionItems:        []ActionItem{},
		FollowUpItems:      []string{},
	}
}
