package modulestore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ferdiebergado/lmskit/internal/course"
	"github.com/ferdiebergado/lmskit/internal/modulestore"
	"github.com/google/go-cmp/cmp"
)

var demoCourse = course.Key{Org: "edX", Course: "DemoX", Run: "2025"}

func TestItem_DisplayNameWithDefault(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		item modulestore.Item
		want string
	}{
		{"named", modulestore.Item{DisplayName: "Intro", Location: demoCourse.MakeUsageKey("chapter", "intro_chapter")}, "Intro"},
		{"unnamed", modulestore.Item{Location: demoCourse.MakeUsageKey("chapter", "intro_chapter")}, "intro chapter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.item.DisplayNameWithDefault(); got != tt.want {
				t.Errorf("item.DisplayNameWithDefault() = %q, want: %q", got, tt.want)
			}
		})
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := modulestore.NewMemoryStore()
	other := course.Key{Org: "edX", Course: "Other", Run: "2025"}

	root := modulestore.Item{Location: demoCourse.MakeUsageKey("course", "course")}
	store.Put(modulestore.CourseSummary{ID: demoCourse, DisplayName: "Demo"}, root)
	store.Put(modulestore.CourseSummary{ID: other, DisplayName: "Other"})
	store.Put(modulestore.CourseSummary{ID: demoCourse, DisplayName: "Demo v2"}, root)

	summaries, err := store.CourseSummaries(ctx)
	if err != nil {
		t.Fatal(err)
	}

	want := []modulestore.CourseSummary{{ID: demoCourse, DisplayName: "Demo v2"}, {ID: other, DisplayName: "Other"}}
	if diff := cmp.Diff(want, summaries); diff != "" {
		t.Errorf("store.CourseSummaries() mismatch (-want +got):\n%s", diff)
	}

	items, err := store.Items(ctx, demoCourse)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Errorf("len(store.Items()) = %d, want: 1", len(items))
	}

	missing := course.Key{Org: "x", Course: "y", Run: "z"}
	if _, err := store.Items(ctx, missing); !errors.Is(err, modulestore.ErrCourseNotFound) {
		t.Errorf("store.Items(missing) = %v, want: %v", err, modulestore.ErrCourseNotFound)
	}
}
