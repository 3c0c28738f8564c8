package modulestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ferdiebergado/lmskit/internal/course"
	"github.com/ferdiebergado/lmskit/internal/platform/db"
	"github.com/jmoiron/sqlx"
)

var _ Store = (*Repository)(nil)

var ErrQueryFailed = errors.New("modulestore repository: query failed")

type Repository struct {
	db    *sqlx.DB
	txMgr db.TxManager
}

func NewRepository(conn *sqlx.DB, txMgr db.TxManager) *Repository {
	return &Repository{db: conn, txMgr: txMgr}
}

type courseRow struct {
	CourseKey   string `db:"course_key"`
	DisplayName string `db:"display_name"`
}

type blockRow struct {
	UsageKey    string     `db:"usage_key"`
	DisplayName string     `db:"display_name"`
	EditedOn    *time.Time `db:"edited_on"`
	Fields      []byte     `db:"fields"`
	Children    []byte     `db:"children"`
}

const QueryCourseList = "SELECT course_key, display_name FROM courses ORDER BY course_key"

func (r *Repository) CourseSummaries(ctx context.Context) ([]CourseSummary, error) {
	var rows []courseRow
	if err := r.db.SelectContext(ctx, &rows, QueryCourseList); err != nil {
		return nil, fmt.Errorf("%w: list courses: %v", ErrQueryFailed, err)
	}

	summaries := make([]CourseSummary, 0, len(rows))
	for _, row := range rows {
		key, err := course.ParseKey(row.CourseKey)
		if err != nil {
			return nil, fmt.Errorf("modulestore repository: scan course: %w", err)
		}
		summaries = append(summaries, CourseSummary{ID: key, DisplayName: row.DisplayName})
	}
	return summaries, nil
}

const QueryBlockList = `
SELECT usage_key, display_name, edited_on, fields, children
FROM blocks
WHERE course_key = $1
ORDER BY position, usage_key
`

func (r *Repository) Items(ctx context.Context, key course.Key) ([]Item, error) {
	var rows []blockRow
	if err := r.db.SelectContext(ctx, &rows, QueryBlockList, key.String()); err != nil {
		return nil, fmt.Errorf("%w: list blocks of %s: %v", ErrQueryFailed, key, err)
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		item, err := row.item()
		if err != nil {
			return nil, fmt.Errorf("modulestore repository: scan block %s: %w", row.UsageKey, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (row blockRow) item() (Item, error) {
	loc, err := course.ParseUsageKey(row.UsageKey)
	if err != nil {
		return Item{}, err
	}

	// UseNumber keeps integer fields from turning into floats.
	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(row.Fields))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return Item{}, fmt.Errorf("decode fields: %w", err)
	}

	var children []course.UsageKey
	if err := json.Unmarshal(row.Children, &children); err != nil {
		return Item{}, fmt.Errorf("decode children: %w", err)
	}

	return Item{
		Location:    loc,
		DisplayName: row.DisplayName,
		EditedOn:    row.EditedOn,
		Fields:      fields,
		Children:    children,
	}, nil
}

const (
	QueryCourseUpsert = `
INSERT INTO courses (course_key, display_name) VALUES ($1, $2)
ON CONFLICT (course_key) DO UPDATE SET display_name = EXCLUDED.display_name
`
	QueryBlockDeleteByCourse = "DELETE FROM blocks WHERE course_key = $1"
	QueryBlockInsert         = `
INSERT INTO blocks (usage_key, course_key, display_name, edited_on, fields, children, position)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
)

// Put replaces the course and all of its blocks in one transaction.
func (r *Repository) Put(ctx context.Context, summary CourseSummary, items []Item) error {
	return r.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		q := db.QuerierFromContext(txCtx, r.db)
		courseKey := summary.ID.String()

		if _, err := q.ExecContext(txCtx, QueryCourseUpsert, courseKey, summary.DisplayName); err != nil {
			return fmt.Errorf("%w: upsert course %s: %v", ErrQueryFailed, courseKey, err)
		}

		if _, err := q.ExecContext(txCtx, QueryBlockDeleteByCourse, courseKey); err != nil {
			return fmt.Errorf("%w: clear blocks of %s: %v", ErrQueryFailed, courseKey, err)
		}

		for pos, item := range items {
			fields, err := json.Marshal(item.Fields)
			if err != nil {
				return fmt.Errorf("encode fields of %s: %w", item.Location, err)
			}
			if item.Fields == nil {
				fields = []byte("{}")
			}

			children, err := json.Marshal(item.Children)
			if err != nil {
				return fmt.Errorf("encode children of %s: %w", item.Location, err)
			}
			if item.Children == nil {
				children = []byte("[]")
			}

			if _, err := q.ExecContext(txCtx, QueryBlockInsert,
				item.Location.String(), courseKey, item.DisplayName, item.EditedOn, string(fields), string(children), pos); err != nil {
				return fmt.Errorf("%w: insert block %s: %v", ErrQueryFailed, item.Location, err)
			}
		}
		return nil
	})
}
