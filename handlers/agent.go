// ABOUTME: Agent MCP tool handlers
// ABOUTME: Implements chat_with_agent, analyze_transcript, and quick_summary tools
package handlers

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/zeroclick/crm/agent"
	"github.com/zeroclick/crm/models"
)

type AgentHandlers struct {
	agent *agent.Agent
}

func NewAgentHandlers(a *agent.Agent) *AgentHandlers {
	return &AgentHandlers{agent: a}
}

type ChatInput struct {
	Query              string   `json:"query" jsonschema:"The question to ask about the connected CRM data (required)"`
	ActiveConnectorIDs []string `json:"active_connector_ids,omitempty" jsonschema:"Connector ids the caller considers active; re-checked against the directory"`
}

type ChatOutput struct {
	Response string `json:"response"`
}

func (h *AgentHandlers) Chat(ctx context.Context, _ *mcp.CallToolRequest, input ChatInput) (*mcp.CallToolResult, ChatOutput, error) {
	response, err := h.agent.Chat(ctx, input.Query, input.ActiveConnectorIDs)
	if err != nil {
		return nil, ChatOutput{}, err
	}
	return nil, ChatOutput{Response: response}, nil
}

type AnalyzeInput struct {
	TranscriptID       string   `json:"transcript_id" jsonschema:"Id of the transcript to analyze (required)"`
	ActivityType       string   `json:"activity_type,omitempty" jsonschema:"Conversation type (call, meeting, email); defaults to the transcript's own type"`
	ActiveConnectorIDs []string `json:"active_connector_ids,omitempty" jsonschema:"Connector ids the caller considers active; re-checked against the directory"`
}

func (h *AgentHandlers) Analyze(ctx context.Context, _ *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, models.AnalysisResult, error) {
	result, err := h.agent.Analyze(ctx, input.TranscriptID, input.ActivityType, input.ActiveConnectorIDs)
	if err != nil {
		return nil, models.AnalysisResult{}, err
	}
	return nil, result, nil
}

type QuickSummaryInput struct {
	TranscriptID string `json:"transcript_id" jsonschema:"Id of the transcript to summarize (required)"`
	ActivityType string `json:"activity_type,omitempty" jsonschema:"Conversation type (call, meeting, email)"`
}

func (h *AgentHandlers) QuickSummary(ctx context.Context, _ *mcp.CallToolRequest, input QuickSummaryInput) (*mcp.CallToolResult, agent.QuickSummary, error) {
	summary, err := h.agent.QuickSummary(ctx, input.TranscriptID, input.ActivityType)
	if err != nil {
		return nil, agent.QuickSummary{}, err
	}
	return nil, summary, nil
}
