package grades_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ferdiebergado/lmskit/internal/grades"
	"github.com/ferdiebergado/lmskit/internal/platform/db"
	"github.com/ferdiebergado/lmskit/internal/platform/validation"
)

func validGrade() *grades.Grade {
	return &grades.Grade{
		SubtreeEditedDate:     time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		CourseVersion:         "5e3a",
		UserID:                "42",
		CourseID:              "course-v1:edX+DemoX+2025",
		ContentID:             "block-v1:edX+DemoX+2025+type@sequential+block@lesson_1",
		ContentType:           "sequential",
		TotalWeightedRawScore: 3,
		TotalWeightedMaxScore: 4,
		IsValid:               true,
	}
}

func TestRepository_Create_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		grade  func() *grades.Grade
		blocks []grades.BlockRecord
		field  string
	}{
		{"missing user", func() *grades.Grade { g := validGrade(); g.UserID = ""; return g }, nil, "user_id"},
		{"long course id", func() *grades.Grade { g := validGrade(); g.CourseID = strings.Repeat("c", 256); return g }, nil, "course_id"},
		{"raw above max", func() *grades.Grade { g := validGrade(); g.TotalWeightedRawScore = 9; return g }, nil, "total_weighted_raw_score"},
		{"missing edit date", func() *grades.Grade { g := validGrade(); g.SubtreeEditedDate = time.Time{}; return g }, nil, "subtree_edited_date"},
		{"bad block", validGrade, []grades.BlockRecord{{BlockType: "problem"}}, "visible_blocks[0].block_id"},
	}

	repo := grades.NewRepository(nil, &db.StubTxManager{}, validation.NewGoPlaygroundValidator())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := repo.Create(context.Background(), tt.grade(), tt.blocks)
			if !errors.Is(err, grades.ErrInvalidGrade) {
				t.Fatalf("repo.Create() = %v, want: %v", err, grades.ErrInvalidGrade)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("repo.Create() error = %q, want it to mention %q", err, tt.field)
			}
		})
	}
}

func TestRepository_Create_TxFailure(t *testing.T) {
	t.Parallel()

	txErr := errors.New("connection reset")
	txMgr := &db.StubTxManager{
		RunInTxFunc: func(_ context.Context, _ func(context.Context) error) error { return txErr },
	}

	repo := grades.NewRepository(nil, txMgr, validation.NewGoPlaygroundValidator())
	if _, err := repo.Create(context.Background(), validGrade(), nil); !errors.Is(err, txErr) {
		t.Errorf("repo.Create() = %v, want: %v", err, txErr)
	}
}
