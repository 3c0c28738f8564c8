package modulestore

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ferdiebergado/lmskit/internal/course"
)

// Export is the JSON document a course is loaded from.
type Export struct {
	CourseID    course.Key   `json:"course_id"`
	DisplayName string       `json:"display_name"`
	Items       []ExportItem `json:"items"`
}

type ExportItem struct {
	Location    course.UsageKey   `json:"location"`
	DisplayName string            `json:"display_name,omitempty"`
	EditedOn    *time.Time        `json:"edited_on,omitempty"`
	Fields      map[string]any    `json:"fields,omitempty"`
	Children    []course.UsageKey `json:"children,omitempty"`
}

// ReadExport decodes a course export. Every item must belong to the exported course.
func ReadExport(r io.Reader) (CourseSummary, []Item, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var export Export
	if err := dec.Decode(&export); err != nil {
		return CourseSummary{}, nil, fmt.Errorf("decode course export: %w", err)
	}

	items := make([]Item, 0, len(export.Items))
	for _, ei := range export.Items {
		if ei.Location.Course != export.CourseID {
			return CourseSummary{}, nil, fmt.Errorf("block %s is not part of %s", ei.Location, export.CourseID)
		}
		items = append(items, Item(ei))
	}

	return CourseSummary{ID: export.CourseID, DisplayName: export.DisplayName}, items, nil
}
