package coursegraph_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ferdiebergado/lmskit/internal/course"
	"github.com/ferdiebergado/lmskit/internal/coursegraph"
	"github.com/ferdiebergado/lmskit/internal/modulestore"
	"github.com/google/go-cmp/cmp"
)

var demoCourse = course.Key{Org: "edX", Course: "DemoX", Run: "2025"}

func TestSerializer_SerializeItem(t *testing.T) {
	t.Parallel()

	edited := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	loc := demoCourse.MakeUsageKey("course", "course")
	item := modulestore.Item{
		Location: loc,
		EditedOn: &edited,
		Fields: map[string]any{
			"parent":     "nope",
			"children":   []string{"a"},
			"checklists": []any{"x"},
			"start":      "2025-01-01",
		},
	}

	s := coursegraph.NewSerializer(modulestore.NewMemoryStore())
	fields, label := s.SerializeItem(item)

	if label != "course" {
		t.Errorf("label = %q, want: %q", label, "course")
	}

	want := map[string]any{
		"start":        "2025-01-01",
		"edited_on":    "2025-03-14T09:26:53Z",
		"display_name": "course",
		"org":          "edX",
		"course":       "DemoX",
		"run":          "2025",
		"course_key":   "course-v1:edX+DemoX+2025",
		"location":     "block-v1:edX+DemoX+2025+type@course+block@course",
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("s.SerializeItem(item) mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializer_SerializeItem_KeepsChecklistsOutsideCourse(t *testing.T) {
	t.Parallel()

	item := modulestore.Item{
		Location:    demoCourse.MakeUsageKey("chapter", "week_1"),
		DisplayName: "Week 1",
		Fields:      map[string]any{"checklists": "kept"},
	}

	fields, label := coursegraph.NewSerializer(modulestore.NewMemoryStore()).SerializeItem(item)

	if label != "chapter" {
		t.Errorf("label = %q, want: %q", label, "chapter")
	}
	if fields["checklists"] != "kept" {
		t.Errorf("fields[checklists] = %v, want: %q", fields["checklists"], "kept")
	}
	if fields["edited_on"] != "" {
		t.Errorf("fields[edited_on] = %v, want: empty", fields["edited_on"])
	}
	if fields["display_name"] != "Week 1" {
		t.Errorf("fields[display_name] = %v, want: %q", fields["display_name"], "Week 1")
	}
}

func TestCoerceValue(t *testing.T) {
	t.Parallel()

	when := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name   string
		value  any
		want   any
		wantOK bool
	}{
		{"string", "abc", "abc", true},
		{"bool", true, true, true},
		{"int", 7, 7, true},
		{"float", 0.5, 0.5, true},
		{"json integer", json.Number("42"), int64(42), true},
		{"json float", json.Number("4.5"), 4.5, true},
		{"nil", nil, nil, false},
		{"time", when, "2025-01-02T03:04:05Z", true},
		{"map", map[string]any{"a": 1}, `{"a":1}`, true},
		{"string list", []string{"a", "b"}, []string{"a", "b"}, true},
		{"mixed list", []any{1, "b", true}, []string{"1", "b", "true"}, true},
		{"list of maps", []any{map[string]any{"k": "v"}}, []string{`{"k":"v"}`}, true},
		{"usage key", demoCourse.MakeUsageKey("html", "intro"), "block-v1:edX+DemoX+2025+type@html+block@intro", true},
		{"bytes", []byte("raw"), "raw", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := coursegraph.CoerceValue(tt.value)
			if ok != tt.wantOK {
				t.Fatalf("CoerceValue(%v) ok = %v, want: %v", tt.value, ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("CoerceValue(%v) mismatch (-want +got):\n%s", tt.value, diff)
			}
		})
	}
}

// fixtureStore holds a course, two chapters, a sequential, and a child reference
// that points outside the stored items.
func fixtureStore() *modulestore.MemoryStore {
	root := demoCourse.MakeUsageKey("course", "course")
	ch1 := demoCourse.MakeUsageKey("chapter", "week_1")
	ch2 := demoCourse.MakeUsageKey("chapter", "week_2")
	seq := demoCourse.MakeUsageKey("sequential", "lesson_1")
	orphan := demoCourse.MakeUsageKey("vertical", "deleted")

	store := modulestore.NewMemoryStore()
	store.Put(modulestore.CourseSummary{ID: demoCourse, DisplayName: "Demo"},
		modulestore.Item{Location: root, DisplayName: "Demo", Children: []course.UsageKey{ch1, ch2}},
		modulestore.Item{Location: ch1, Children: []course.UsageKey{seq}},
		modulestore.Item{Location: ch2, Fields: map[string]any{"due": nil}},
		modulestore.Item{Location: seq, Children: []course.UsageKey{orphan}},
	)
	return store
}

func TestSerializer_SerializeCourse(t *testing.T) {
	t.Parallel()

	s := coursegraph.NewSerializer(fixtureStore())
	nodes, rels, err := s.SerializeCourse(context.Background(), demoCourse)
	if err != nil {
		t.Fatalf("s.SerializeCourse() = %v", err)
	}

	if len(nodes) != 4 {
		t.Errorf("len(nodes) = %d, want: 4", len(nodes))
	}

	for _, n := range nodes {
		if _, ok := n.Properties["due"]; ok {
			t.Errorf("node %s has nil property due", n.Location())
		}
	}

	want := []coursegraph.Relationship{
		{Parent: demoCourse.MakeUsageKey("course", "course").String(), Child: demoCourse.MakeUsageKey("chapter", "week_1").String(), Type: coursegraph.RelParentOf},
		{Parent: demoCourse.MakeUsageKey("course", "course").String(), Child: demoCourse.MakeUsageKey("chapter", "week_2").String(), Type: coursegraph.RelParentOf},
		{Parent: demoCourse.MakeUsageKey("chapter", "week_1").String(), Child: demoCourse.MakeUsageKey("sequential", "lesson_1").String(), Type: coursegraph.RelParentOf},
	}
	if diff := cmp.Diff(want, rels); diff != "" {
		t.Errorf("relationships mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializer_SerializeCourse_Missing(t *testing.T) {
	t.Parallel()

	s := coursegraph.NewSerializer(modulestore.NewMemoryStore())
	if _, _, err := s.SerializeCourse(context.Background(), demoCourse); err == nil {
		t.Error("s.SerializeCourse(missing) = nil, want: error")
	}
}
