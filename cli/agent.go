// ABOUTME: Agent CLI commands
// ABOUTME: Human-friendly chat and analyze commands against the local store
package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/zeroclick/crm/agent"
	"github.com/zeroclick/crm/directory"
)

func newAgent(ctx context.Context, database *sql.DB) *agent.Agent {
	dir := directory.NewSQLDirectory(database)
	return agent.New(database, dir, agent.GatewayFromEnv(ctx))
}

// ChatCommand asks the assistant a single question.
func ChatCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	connectors := fs.String("connectors", "", "Comma-separated connector ids to restrict to (default: all connected)")
	_ = fs.Parse(args)

	query := strings.Join(fs.Args(), " ")
	if query == "" {
		return fmt.Errorf("usage: chat [--connectors id,id] <question>")
	}

	var requested []string
	if *connectors != "" {
		requested = strings.Split(*connectors, ",")
	}

	response, err := newAgent(context.Background(), database).Chat(context.Background(), query, requested)
	if err != nil {
		return err
	}

	fmt.Println(response)
	return nil
}

// AnalyzeCommand runs a deep analysis of a stored transcript.
func AnalyzeCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	transcriptID := fs.String("transcript", "", "Transcript id (required)")
	activityType := fs.String("type", "", "Conversation type (call, meeting, email)")
	asJSON := fs.Bool("json", false, "Print the full analysis record as JSON")
	_ = fs.Parse(args)

	if *transcriptID == "" {
		return fmt.Errorf("--transcript is required")
	}

	result, err := newAgent(context.Background(), database).Analyze(context.Background(), *transcriptID, *activityType, nil)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("Summary: %s\n", result.Summary)
	fmt.Printf("Risk level: %s\n", result.RiskLevel)
	fmt.Printf("Churn probability: %.0f%%\n", result.ChurnProbability)
	if result.Degraded {
		fmt.Println("(degraded: structure was synthesized by the normalizer)")
	}

	if len(result.KeyPoints) > 0 {
		fmt.Println("\nKey points:")
		for _, p := range result.KeyPoints {
			fmt.Printf("  - %s\n", p)
		}
	}

	if len(result.Insights) > 0 {
		fmt.Println("\nInsights:")
		for _, in := range result.Insights {
			fmt.Printf("  [%s/%s] %s: %s\n", in.Category, in.Priority, in.Title, in.Description)
		}
	}

	if len(result.RecommendedActions) > 0 {
		fmt.Println("\nRecommended actions:")
		for _, a := range result.RecommendedActions {
			fmt.Printf("  - %s\n", a)
		}
	}

	if len(result.TasksToCreate) > 0 {
		fmt.Println("\nTasks:")
		for _, t := range result.TasksToCreate {
			fmt.Printf("  - %s (%s, due %s, %s)\n", t.Title, t.Priority, t.DueDate, t.AssignedTo)
		}
	}

	return nil
}
