// Package grades persists computed subsection and course grades.
package grades

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidGrade = errors.New("invalid grade")

// BlockRecord identifies a version of a block that was visible when a grade was computed.
type BlockRecord struct {
	ID           int64  `db:"id" json:"-"`
	BlockType    string `db:"block_type" json:"block_type" validate:"required,max=255"`
	BlockID      string `db:"block_id" json:"block_id" validate:"required,max=255"`
	BlockVersion int    `db:"block_version" json:"block_version" validate:"gte=0"`
}

// Grade is the persisted score of a user for one piece of content.
type Grade struct {
	ID                    int64     `db:"id" json:"id"`
	Created               time.Time `db:"created" json:"created"`
	Updated               time.Time `db:"updated" json:"updated"`
	SubtreeEditedDate     time.Time `db:"subtree_edited_date" json:"subtree_edited_date" validate:"required"`
	CourseVersion         string    `db:"course_version" json:"course_version" validate:"max=255"`
	UserID                string    `db:"user_id" json:"user_id" validate:"required"`
	CourseID              string    `db:"course_id" json:"course_id" validate:"required,max=255"`
	ContentID             string    `db:"content_id" json:"content_id" validate:"required,max=255"`
	ContentType           string    `db:"content_type" json:"content_type" validate:"required,max=255"`
	TotalWeightedRawScore int       `db:"total_weighted_raw_score" json:"total_weighted_raw_score" validate:"gte=0,ltefield=TotalWeightedMaxScore"`
	TotalWeightedMaxScore int       `db:"total_weighted_max_score" json:"total_weighted_max_score" validate:"gte=0"`
	IsValid               bool      `db:"is_valid" json:"is_valid"`
}

type Store interface {
	Create(ctx context.Context, grade *Grade, blocks []BlockRecord) (*Grade, error)
	FindForUser(ctx context.Context, userID, courseID, contentType string) ([]Grade, error)
	ListUpdatedSince(ctx context.Context, courseID string, since time.Time) ([]Grade, error)
	VisibleBlocks(ctx context.Context, gradeID int64) ([]BlockRecord, error)
}
