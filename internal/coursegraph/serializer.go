package coursegraph

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/ferdiebergado/lmskit/internal/course"
	"github.com/ferdiebergado/lmskit/internal/modulestore"
)

const (
	propEditedOn    = "edited_on"
	propDisplayName = "display_name"
	propOrg         = "org"
	propCourse      = "course"
	propRun         = "run"
	propCourseKey   = "course_key"
	propLocation    = "location"

	courseBlockType = "course"
)

// skippedFields are structural and become relationships instead of properties.
var skippedFields = map[string]struct{}{
	"parent":   {},
	"children": {},
}

type Serializer struct {
	store modulestore.Store
}

func NewSerializer(store modulestore.Store) *Serializer {
	return &Serializer{store: store}
}

// SerializeItem returns the raw properties and the label of the node for item.
func (s *Serializer) SerializeItem(item modulestore.Item) (map[string]any, string) {
	fields := make(map[string]any, len(item.Fields)+7)
	for name, value := range item.Fields {
		if _, skip := skippedFields[name]; skip {
			continue
		}
		fields[name] = value
	}

	key := item.Location.Course

	editedOn := ""
	if item.EditedOn != nil {
		editedOn = item.EditedOn.UTC().Format(time.RFC3339)
	}

	fields[propEditedOn] = editedOn
	fields[propDisplayName] = item.DisplayNameWithDefault()
	fields[propOrg] = key.Org
	fields[propCourse] = key.Course
	fields[propRun] = key.Run
	fields[propCourseKey] = key.String()
	fields[propLocation] = item.Location.String()

	label := item.Location.BlockType
	if label == courseBlockType {
		delete(fields, "checklists")
	}

	return fields, label
}

// SerializeCourse turns the items of the course into nodes and the parent
// child links between serialized items into relationships.
func (s *Serializer) SerializeCourse(ctx context.Context, key course.Key) ([]Node, []Relationship, error) {
	items, err := s.store.Items(ctx, key)
	if err != nil {
		return nil, nil, fmt.Errorf("get items of %s: %w", key, err)
	}

	nodes := make([]Node, 0, len(items))
	serialized := make(map[course.UsageKey]struct{}, len(items))

	for _, item := range items {
		fields, label := s.SerializeItem(item)

		props := make(map[string]any, len(fields))
		for name, value := range fields {
			if coerced, ok := CoerceValue(value); ok {
				props[name] = coerced
			}
		}

		nodes = append(nodes, Node{Label: label, Properties: props})
		serialized[item.Location] = struct{}{}
	}

	var rels []Relationship
	for _, item := range items {
		for _, child := range item.Children {
			if _, ok := serialized[child]; !ok {
				continue
			}
			rels = append(rels, Relationship{
				Parent: item.Location.String(),
				Child:  child.String(),
				Type:   RelParentOf,
			})
		}
	}

	return nodes, rels, nil
}

// CoerceValue converts a field value into one a graph property can hold.
// Primitives pass through, sequences become lists of text and anything else
// becomes text. Nil values have no property and report false.
func CoerceValue(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v, true
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
		if f, err := v.Float64(); err == nil {
			return f, true
		}
		return v.String(), true
	case []byte:
		return string(v), true
	}

	rv := reflect.ValueOf(value)
	if kind := rv.Kind(); kind == reflect.Slice || kind == reflect.Array {
		list := make([]string, 0, rv.Len())
		for i := range rv.Len() {
			list = append(list, toText(rv.Index(i).Interface()))
		}
		return list, true
	}

	return toText(value), true
}

func toText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	case json.Number:
		return v.String()
	}

	switch reflect.ValueOf(value).Kind() {
	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array:
		if b, err := json.Marshal(value); err == nil {
			return string(b)
		}
	}

	return fmt.Sprint(value)
}
