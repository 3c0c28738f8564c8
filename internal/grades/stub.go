package grades

import (
	"context"
	"errors"
	"time"
)

var _ Store = (*StubStore)(nil)

type StubStore struct {
	CreateFunc           func(ctx context.Context, grade *Grade, blocks []BlockRecord) (*Grade, error)
	FindForUserFunc      func(ctx context.Context, userID, courseID, contentType string) ([]Grade, error)
	ListUpdatedSinceFunc func(ctx context.Context, courseID string, since time.Time) ([]Grade, error)
	VisibleBlocksFunc    func(ctx context.Context, gradeID int64) ([]BlockRecord, error)
}

func (s *StubStore) Create(ctx context.Context, grade *Grade, blocks []BlockRecord) (*Grade, error) {
	if s.CreateFunc == nil {
		return nil, errors.New("Create not implemented by stub")
	}
	return s.CreateFunc(ctx, grade, blocks)
}

func (s *StubStore) FindForUser(ctx context.Context, userID, courseID, contentType string) ([]Grade, error) {
	if s.FindForUserFunc == nil {
		return nil, errors.New("FindForUser not implemented by stub")
	}
	return s.FindForUserFunc(ctx, userID, courseID, contentType)
}

func (s *StubStore) ListUpdatedSince(ctx context.Context, courseID string, since time.Time) ([]Grade, error) {
	if s.ListUpdatedSinceFunc == nil {
		return nil, errors.New("ListUpdatedSince not implemented by stub")
	}
	return s.ListUpdatedSinceFunc(ctx, courseID, since)
}

func (s *StubStore) VisibleBlocks(ctx context.Context, gradeID int64) ([]BlockRecord, error) {
	if s.VisibleBlocksFunc == nil {
		return nil, errors.New("VisibleBlocks not implemented by stub")
	}
	return s.VisibleBlocksFunc(ctx, gradeID)
}
