package grades

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ferdiebergado/lmskit/internal/platform/db"
	"github.com/ferdiebergado/lmskit/internal/platform/validation"
	"github.com/jmoiron/sqlx"
)

var _ Store = (*Repository)(nil)

var ErrQueryFailed = errors.New("grades repository: query failed")

type Repository struct {
	db        *sqlx.DB
	txMgr     db.TxManager
	validator validation.Validator
}

func NewRepository(conn *sqlx.DB, txMgr db.TxManager, validator validation.Validator) *Repository {
	return &Repository{db: conn, txMgr: txMgr, validator: validator}
}

const (
	QueryGradeCreate = `
INSERT INTO grades (subtree_edited_date, course_version, user_id, course_id, content_id, content_type,
	total_weighted_raw_score, total_weighted_max_score, is_valid)
VALUES (:subtree_edited_date, :course_version, :user_id, :course_id, :content_id, :content_type,
	:total_weighted_raw_score, :total_weighted_max_score, :is_valid)
RETURNING id, created, updated
`
	QueryBlockRecordCreate = `
INSERT INTO block_records (block_type, block_id, block_version)
VALUES ($1, $2, $3)
RETURNING id
`
	QueryVisibleBlockLink = "INSERT INTO grade_visible_blocks (grade_id, block_record_id) VALUES ($1, $2)"
)

// Create stores the grade with its visible blocks in one transaction.
func (r *Repository) Create(ctx context.Context, grade *Grade, blocks []BlockRecord) (*Grade, error) {
	if err := r.validate(grade, blocks); err != nil {
		return nil, err
	}

	created := *grade
	err := r.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		q := db.QuerierFromContext(txCtx, r.db)

		rows, err := sqlx.NamedQueryContext(txCtx, q, QueryGradeCreate, &created)
		if err != nil {
			return fmt.Errorf("%w: insert grade: %v", ErrQueryFailed, err)
		}
		defer rows.Close()

		if !rows.Next() {
			if err := rows.Err(); err != nil {
				return fmt.Errorf("%w: insert grade: %v", ErrQueryFailed, err)
			}
			return fmt.Errorf("%w: insert grade: no row returned", ErrQueryFailed)
		}
		if err := rows.Scan(&created.ID, &created.Created, &created.Updated); err != nil {
			return fmt.Errorf("%w: scan grade: %v", ErrQueryFailed, err)
		}
		if err := rows.Close(); err != nil {
			return fmt.Errorf("%w: insert grade: %v", ErrQueryFailed, err)
		}

		for _, b := range blocks {
			var blockID int64
			if err := sqlx.GetContext(txCtx, q, &blockID, QueryBlockRecordCreate, b.BlockType, b.BlockID, b.BlockVersion); err != nil {
				return fmt.Errorf("%w: insert block record %s: %v", ErrQueryFailed, b.BlockID, err)
			}

			if _, err := q.ExecContext(txCtx, QueryVisibleBlockLink, created.ID, blockID); err != nil {
				return fmt.Errorf("%w: link block record %s: %v", ErrQueryFailed, b.BlockID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *Repository) validate(grade *Grade, blocks []BlockRecord) error {
	problems := r.validator.ValidateStruct(grade)
	for i := range blocks {
		for field, msg := range r.validator.ValidateStruct(&blocks[i]) {
			if problems == nil {
				problems = make(map[string]string)
			}
			problems[fmt.Sprintf("visible_blocks[%d].%s", i, field)] = msg
		}
	}

	if len(problems) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(problems))
	for field, msg := range problems {
		msgs = append(msgs, field+": "+msg)
	}
	return fmt.Errorf("%w: %s", ErrInvalidGrade, strings.Join(msgs, "; "))
}

const gradeColumns = `id, created, updated, subtree_edited_date, course_version, user_id, course_id, content_id,
	content_type, total_weighted_raw_score, total_weighted_max_score, is_valid`

const QueryGradesForUser = `
SELECT ` + gradeColumns + `
FROM grades
WHERE user_id = $1 AND course_id = $2 AND content_type = $3 AND is_valid
ORDER BY updated DESC, id DESC
`

// FindForUser returns the valid grades of the user for one content type in a course.
func (r *Repository) FindForUser(ctx context.Context, userID, courseID, contentType string) ([]Grade, error) {
	grades := []Grade{}
	if err := r.db.SelectContext(ctx, &grades, QueryGradesForUser, userID, courseID, contentType); err != nil {
		return nil, fmt.Errorf("%w: find grades of user %s: %v", ErrQueryFailed, userID, err)
	}
	return grades, nil
}

const QueryGradesUpdatedSince = `
SELECT ` + gradeColumns + `
FROM grades
WHERE course_id = $1 AND updated >= $2
ORDER BY updated, id
`

func (r *Repository) ListUpdatedSince(ctx context.Context, courseID string, since time.Time) ([]Grade, error) {
	grades := []Grade{}
	if err := r.db.SelectContext(ctx, &grades, QueryGradesUpdatedSince, courseID, since); err != nil {
		return nil, fmt.Errorf("%w: list grades of %s: %v", ErrQueryFailed, courseID, err)
	}
	return grades, nil
}

const QueryVisibleBlocks = `
SELECT b.id, b.block_type, b.block_id, b.block_version
FROM block_records b
JOIN grade_visible_blocks v ON v.block_record_id = b.id
WHERE v.grade_id = $1
ORDER BY b.id
`

func (r *Repository) VisibleBlocks(ctx context.Context, gradeID int64) ([]BlockRecord, error) {
	blocks := []BlockRecord{}
	if err := r.db.SelectContext(ctx, &blocks, QueryVisibleBlocks, gradeID); err != nil {
		return nil, fmt.Errorf("%w: list visible blocks of grade %d: %v", ErrQueryFailed, gradeID, err)
	}
	return blocks, nil
}
