package coursegraph

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ferdiebergado/lmskit/internal/course"
	"github.com/ferdiebergado/lmskit/internal/modulestore"
)

// Summary reports the outcome of a dump.
type Summary struct {
	Total    int
	Exported int
	Failed   []course.Key
}

type Exporter struct {
	store      modulestore.Store
	graph      Graph
	serializer *Serializer
}

func NewExporter(store modulestore.Store, graph Graph) *Exporter {
	return &Exporter{
		store:      store,
		graph:      graph,
		serializer: NewSerializer(store),
	}
}

// Dump replaces the content of the graph with every course of the store.
// A course that fails is rolled back and skipped.
func (e *Exporter) Dump(ctx context.Context) (*Summary, error) {
	summaries, err := e.store.CourseSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	if err := e.graph.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("clear graph: %w", err)
	}

	total := len(summaries)
	result := &Summary{Total: total}

	for i, summary := range summaries {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("dump interrupted after %d of %d courses: %w", i, total, err)
		}

		key := summary.ID
		slog.Info("Exporting course...", "course_id", key.String(), "index", i+1, "total", total)

		if err := e.dumpCourse(ctx, key); err != nil {
			slog.Error("Course not exported.", "course_id", key.String(), "reason", err)
			result.Failed = append(result.Failed, key)
			continue
		}

		result.Exported++
	}

	slog.Info("Dump complete.", "exported", result.Exported, "failed", len(result.Failed), "total", total)
	return result, nil
}

func (e *Exporter) dumpCourse(ctx context.Context, key course.Key) (err error) {
	nodes, rels, err := e.serializer.SerializeCourse(ctx, key)
	if err != nil {
		return err
	}

	tx, err := e.graph.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			slog.Error("Rollback failed.", "course_id", key.String(), "reason", rbErr)
		}
	}()

	for _, node := range nodes {
		if err = tx.CreateNode(ctx, node); err != nil {
			return fmt.Errorf("create node %s: %w", node.Location(), err)
		}
	}

	for _, rel := range rels {
		if err = tx.CreateRelationship(ctx, rel); err != nil {
			return fmt.Errorf("create relationship %s -> %s: %w", rel.Parent, rel.Child, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}
