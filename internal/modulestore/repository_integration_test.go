//go:build integration

package modulestore_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ferdiebergado/lmskit/internal/modulestore"
	"github.com/ferdiebergado/lmskit/internal/platform/db"
)

func TestIntegrationRepository_PutAndRead(t *testing.T) {
	conn, cleanUp := db.Setup(t, "blocks", "courses")
	t.Cleanup(cleanUp)

	ctx := context.Background()
	repo := modulestore.NewRepository(conn, db.NewSQLTxManager(conn))

	edited := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	root := demoCourse.MakeUsageKey("course", "course")
	chapter := demoCourse.MakeUsageKey("chapter", "week_1")

	items := []modulestore.Item{
		{Location: root, DisplayName: "Demo", EditedOn: &edited, Fields: map[string]any{"max_attempts": 3}, Children: nil},
		{Location: chapter, Fields: map[string]any{"tags": []string{"a"}}},
	}
	items[0].Children = append(items[0].Children, chapter)

	if err := repo.Put(ctx, modulestore.CourseSummary{ID: demoCourse, DisplayName: "Demo"}, items); err != nil {
		t.Fatal(err)
	}

	summaries, err := repo.CourseSummaries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 || summaries[0].ID != demoCourse {
		t.Fatalf("repo.CourseSummaries() = %+v, want one %s", summaries, demoCourse)
	}

	got, err := repo.Items(ctx, demoCourse)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len(repo.Items()) = %d, want: 2", len(got))
	}

	if n, ok := got[0].Fields["max_attempts"].(json.Number); !ok || n.String() != "3" {
		t.Errorf("fields[max_attempts] = %#v, want: json.Number(3)", got[0].Fields["max_attempts"])
	}
	if len(got[0].Children) != 1 || got[0].Children[0] != chapter {
		t.Errorf("children = %v, want: [%s]", got[0].Children, chapter)
	}
	if got[1].DisplayNameWithDefault() != "week 1" {
		t.Errorf("DisplayNameWithDefault() = %q, want: %q", got[1].DisplayNameWithDefault(), "week 1")
	}
}
