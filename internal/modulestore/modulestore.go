// Package modulestore reads course content trees.
package modulestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ferdiebergado/lmskit/internal/course"
)

var ErrCourseNotFound = errors.New("course not found")

// Item is one content block of a course.
type Item struct {
	Location    course.UsageKey
	DisplayName string
	EditedOn    *time.Time
	Fields      map[string]any
	Children    []course.UsageKey
}

// DisplayNameWithDefault returns the display name, or the block id with
// underscores shown as spaces when the block has no name.
func (i Item) DisplayNameWithDefault() string {
	if i.DisplayName != "" {
		return i.DisplayName
	}
	return strings.ReplaceAll(i.Location.BlockID, "_", " ")
}

type CourseSummary struct {
	ID          course.Key
	DisplayName string
}

// Store lists courses and the blocks of a course.
type Store interface {
	CourseSummaries(ctx context.Context) ([]CourseSummary, error)
	Items(ctx context.Context, key course.Key) ([]Item, error)
}
