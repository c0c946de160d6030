// ABOUTME: Connector CLI commands
// ABOUTME: List, connect, and disconnect connectors and data sources
package cli

import (
	"database/sql"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/zeroclick/crm/db"
)

// ListConnectorsCommand prints the connector directory.
func ListConnectorsCommand(database *sql.DB, _ []string) error {
	connectors, err := db.ListConnectors(database)
	if err != nil {
		return fmt.Errorf("failed to list connectors: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATE\tCONTACTS\tDEALS\tCOMPANIES\tLAST SYNC")
	for _, c := range connectors {
		state := "disconnected"
		if c.Connected {
			state = "connected"
		}
		lastSync := "-"
		if c.Stats.LastSyncAt != nil {
			lastSync = c.Stats.LastSyncAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			c.ID, c.Name, state, c.Stats.ContactCount, c.Stats.DealCount, c.Stats.CompanyCount, lastSync)
	}
	return w.Flush()
}

// ConnectCommand connects a connector or, with --data-source, a sub-channel.
func ConnectCommand(database *sql.DB, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: connect <connector-id> | connect --data-source <data-source-id>")
	}

	if args[0] == "--data-source" {
		if len(args) < 2 {
			return fmt.Errorf("--data-source requires an id")
		}
		ds, err := db.ConnectDataSource(database, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Data source %s connected (%d items)\n", ds.Name, ds.ItemCount)
		return nil
	}

	connector, err := db.ConnectConnector(database, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s connected: %d contacts, %d deals, %d companies\n",
		connector.Name, connector.Stats.ContactCount, connector.Stats.DealCount, connector.Stats.CompanyCount)
	return nil
}

// DisconnectCommand disconnects a connector or data source. Synced data and
// counters survive for the next reconnect.
func DisconnectCommand(database *sql.DB, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: disconnect <connector-id> | disconnect --data-source <data-source-id>")
	}

	if args[0] == "--data-source" {
		if len(args) < 2 {
			return fmt.Errorf("--data-source requires an id")
		}
		ds, err := db.DisconnectDataSource(database, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Data source %s disconnected\n", ds.Name)
		return nil
	}

	connector, err := db.DisconnectConnector(database, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s disconnected, data preserved for reconnect\n", connector.Name)
	return nil
}

// TranscriptsCommand lists transcripts for a connected connector.
func TranscriptsCommand(database *sql.DB, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: transcripts <connector-id>")
	}

	connector, err := db.GetConnector(database, args[0])
	if err != nil {
		return err
	}
	if connector == nil {
		return fmt.Errorf("connector %s not found", args[0])
	}
	if !connector.Connected {
		return fmt.Errorf("%s is not connected", connector.Name)
	}

	transcripts, err := db.ListTranscripts(database, args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tDATE\tTITLE")
	for _, t := range transcripts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Type, t.Date.Format("2006-01-02"), t.Title)
	}
	return w.Flush()
}
