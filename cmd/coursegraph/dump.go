package main

import (
	"fmt"
	"log/slog"

	"github.com/ferdiebergado/lmskit/internal/coursegraph"
	"github.com/ferdiebergado/lmskit/internal/modulestore"
	"github.com/ferdiebergado/lmskit/internal/platform/db"
	"github.com/spf13/cobra"
)

var (
	neo4jURI  string
	neo4jUser string
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Replace the graph with every course of the modulestore",
	Long: `Delete everything in the graph database, then export the courses one
transaction at a time. A course that fails is rolled back and reported;
the export continues with the next one.`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVar(&neo4jURI, "neo4j-uri", "", "bolt URI of the graph database (overrides config)")
	dumpCmd.Flags().StringVar(&neo4jUser, "neo4j-user", "", "graph database user (overrides config)")
}

func runDump(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	opts, err := loadOptions()
	if err != nil {
		return err
	}

	if neo4jURI != "" {
		opts.Neo4j.URI = neo4jURI
	}
	if neo4jUser != "" {
		opts.Neo4j.User = neo4jUser
	}

	conn, err := db.NewConnection(ctx, opts.DB)
	if err != nil {
		return err
	}
	defer conn.Close()

	graph, err := coursegraph.NewNeo4jGraph(ctx, opts.Neo4j)
	if err != nil {
		return err
	}
	defer func() {
		if err := graph.Close(ctx); err != nil {
			slog.Error("failed to close graph driver", "reason", err)
		}
	}()

	store := modulestore.NewRepository(conn, db.NewSQLTxManager(conn))
	summary, err := coursegraph.NewExporter(store, graph).Dump(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "exported %d of %d courses\n", summary.Exported, summary.Total)
	for _, key := range summary.Failed {
		fmt.Fprintf(cmd.OutOrStdout(), "failed: %s\n", key)
	}
	return nil
}
