package modulestore

import (
	"context"
	"slices"
	"sync"

	"github.com/ferdiebergado/lmskit/internal/course"
)

var _ Store = (*MemoryStore)(nil)

type memoryCourse struct {
	summary CourseSummary
	items   []Item
}

// MemoryStore keeps courses in insertion order.
type MemoryStore struct {
	mu      sync.RWMutex
	courses []memoryCourse
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Put adds or replaces a course and its items.
func (m *MemoryStore) Put(summary CourseSummary, items ...Item) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryCourse{summary: summary, items: slices.Clone(items)}
	for i, c := range m.courses {
		if c.summary.ID == summary.ID {
			m.courses[i] = entry
			return
		}
	}
	m.courses = append(m.courses, entry)
}

func (m *MemoryStore) CourseSummaries(_ context.Context) ([]CourseSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summaries := make([]CourseSummary, 0, len(m.courses))
	for _, c := range m.courses {
		summaries = append(summaries, c.summary)
	}
	return summaries, nil
}

func (m *MemoryStore) Items(_ context.Context, key course.Key) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.courses {
		if c.summary.ID == key {
			return slices.Clone(c.items), nil
		}
	}
	return nil, ErrCourseNotFound
}
