// ABOUTME: Entry point for the Zero-Click CRM assistant and MCP server
// ABOUTME: Routes to MCP server, TUI, or CLI commands based on arguments
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/zeroclick/crm/cli"
	"github.com/zeroclick/crm/db"
	"github.com/zeroclick/crm/tui"
)

const version = "0.1.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/zeroclick/crm.db)")
	initOnly := flag.Bool("init", false, "Initialize database with demo connectors and exit")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("zeroclick version %s\n", version)
		os.Exit(0)
	}

	// Secrets like GEMINI_API_KEY may live in a local .env
	_ = godotenv.Load()

	args := flag.Args()

	if *initOnly {
		database := mustOpen(*dbPath)
		defer database.Close()
		if err := db.SeedDemoData(database); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
		log.Println("Database initialized with demo connectors")
		return
	}

	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	database := mustOpen(*dbPath)
	defer database.Close()

	var err error
	switch command {
	case "mcp":
		err = cli.MCPCommand(database)
	case "chat":
		err = cli.ChatCommand(database, commandArgs)
	case "analyze":
		err = cli.AnalyzeCommand(database, commandArgs)
	case "connectors":
		err = cli.ListConnectorsCommand(database, commandArgs)
	case "connect":
		err = cli.ConnectCommand(database, commandArgs)
	case "disconnect":
		err = cli.DisconnectCommand(database, commandArgs)
	case "transcripts":
		err = cli.TranscriptsCommand(database, commandArgs)
	case "tui":
		err = tui.Run(database)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func mustOpen(override string) *sql.DB {
	path := getDatabasePath(override)
	database, err := db.OpenDatabase(path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	return database
}

func printUsage() {
	fmt.Println(`zeroclick - connection-aware CRM assistant

Usage:
  zeroclick [flags] <command> [args]

Commands:
  mcp                         Start the MCP server on stdio
  tui                         Interactive chat interface
  chat <question>             Ask the assistant a question
  analyze --transcript <id>   Deep-analyze a stored transcript
  connectors                  List connector directory
  connect <id>                Connect a connector (or --data-source <id>)
  disconnect <id>             Disconnect a connector (or --data-source <id>)
  transcripts <id>            List transcripts for a connected connector

Flags:
  --db-path <path>            Database path
  --init                      Initialize database with demo connectors
  --version                   Show version`)
}

func getDatabasePath(override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(xdg.DataHome, "zeroclick", "crm.db")
}
