package coursegraph

import (
	"context"
	"errors"
)

var _ Graph = (*StubGraph)(nil)
var _ Transaction = (*StubTransaction)(nil)

type StubGraph struct {
	DeleteAllFunc func(ctx context.Context) error
	BeginFunc     func(ctx context.Context) (Transaction, error)
}

func (s *StubGraph) DeleteAll(ctx context.Context) error {
	if s.DeleteAllFunc == nil {
		return errors.New("DeleteAll not implemented by stub")
	}
	return s.DeleteAllFunc(ctx)
}

func (s *StubGraph) Begin(ctx context.Context) (Transaction, error) {
	if s.BeginFunc == nil {
		return nil, errors.New("Begin not implemented by stub")
	}
	return s.BeginFunc(ctx)
}

type StubTransaction struct {
	CreateNodeFunc         func(ctx context.Context, node Node) error
	CreateRelationshipFunc func(ctx context.Context, rel Relationship) error
	CommitFunc             func(ctx context.Context) error
	RollbackFunc           func(ctx context.Context) error
}

func (s *StubTransaction) CreateNode(ctx context.Context, node Node) error {
	if s.CreateNodeFunc == nil {
		return errors.New("CreateNode not implemented by stub")
	}
	return s.CreateNodeFunc(ctx, node)
}

func (s *StubTransaction) CreateRelationship(ctx context.Context, rel Relationship) error {
	if s.CreateRelationshipFunc == nil {
		return errors.New("CreateRelationship not implemented by stub")
	}
	return s.CreateRelationshipFunc(ctx, rel)
}

func (s *StubTransaction) Commit(ctx context.Context) error {
	if s.CommitFunc == nil {
		return errors.New("Commit not implemented by stub")
	}
	return s.CommitFunc(ctx)
}

func (s *StubTransaction) Rollback(ctx context.Context) error {
	if s.RollbackFunc == nil {
		return errors.New("Rollback not implemented by stub")
	}
	return s.RollbackFunc(ctx)
}
