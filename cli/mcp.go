// ABOUTME: MCP server subcommand
// ABOUTME: Registers agent and connector tools and serves over stdio
package cli

import (
	"context"
	"database/sql"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/zeroclick/crm/agent"
	"github.com/zeroclick/crm/directory"
	"github.com/zeroclick/crm/handlers"
)

// MCPCommand starts the MCP server on stdio
func MCPCommand(database *sql.DB) error {
	log.Println("Starting Zero-Click CRM MCP server...")

	ctx := context.Background()

	dir := directory.NewSQLDirectory(database)
	crmAgent := agent.New(database, dir, agent.GatewayFromEnv(ctx))

	agentHandlers := handlers.NewAgentHandlers(crmAgent)
	connectorHandlers := handlers.NewConnectorHandlers(database)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "zeroclick-crm",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "chat_with_agent",
		Description: "Ask the CRM assistant a question about data from connected sources",
	}, agentHandlers.Chat)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_transcript",
		Description: "Run a deep analysis of a stored transcript: sentiment, risks, churn, tasks, and meeting minutes",
	}, agentHandlers.Analyze)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "quick_summary",
		Description: "Get the headline metrics of a transcript analysis without the full record",
	}, agentHandlers.QuickSummary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_connectors",
		Description: "List CRM connectors with their connection state and sync stats",
	}, connectorHandlers.ListConnectors)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "connect_connector",
		Description: "Connect a CRM connector, preserving any data from earlier sync cycles",
	}, connectorHandlers.ConnectConnector)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "disconnect_connector",
		Description: "Disconnect a CRM connector without deleting its synced data",
	}, connectorHandlers.DisconnectConnector)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "connect_data_source",
		Description: "Connect a data source channel under a connected connector",
	}, connectorHandlers.ConnectDataSource)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "disconnect_data_source",
		Description: "Disconnect a data source channel and prune its recent activities",
	}, connectorHandlers.DisconnectDataSource)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "connector_summary",
		Description: "Aggregate stats across connected connectors only",
	}, connectorHandlers.ConnectorSummary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_transcripts",
		Description: "List transcripts available from a connected connector",
	}, connectorHandlers.ListTranscripts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transcript",
		Description: "Get a transcript body by id for analysis",
	}, connectorHandlers.GetTranscript)

	return server.Run(ctx, &mcp.StdioTransport{})
}
