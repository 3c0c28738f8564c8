package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ferdiebergado/lmskit/internal/modulestore"
	"github.com/ferdiebergado/lmskit/internal/platform/db"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load FILE...",
	Short: "Store course exports in the modulestore",
	Long: `Read JSON course exports and store each course with its blocks,
replacing earlier copies of the same course.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLoad,
}

func runLoad(cmd *cobra.Command, files []string) error {
	ctx := cmd.Context()

	opts, err := loadOptions()
	if err != nil {
		return err
	}

	conn, err := db.NewConnection(ctx, opts.DB)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.ApplyEmbedded(ctx, conn); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	store := modulestore.NewRepository(conn, db.NewSQLTxManager(conn))

	for _, file := range files {
		f, err := os.Open(filepath.Clean(file))
		if err != nil {
			return fmt.Errorf("open %s: %w", file, err)
		}

		summary, items, err := modulestore.ReadExport(f)
		_ = f.Close()
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}

		if err := store.Put(ctx, summary, items); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "loaded %s (%d blocks)\n", summary.ID, len(items))
	}
	return nil
}
