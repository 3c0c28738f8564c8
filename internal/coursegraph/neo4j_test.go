package coursegraph

import (
	"context"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type fakeExplicitTx struct {
	commitErr error
	commits   int
	rollbacks int
}

func (f *fakeExplicitTx) Run(context.Context, string, map[string]any) (neo4j.ResultWithContext, error) {
	return nil, errors.New("Run not implemented by fake")
}

func (f *fakeExplicitTx) Commit(context.Context) error {
	f.commits++
	return f.commitErr
}

func (f *fakeExplicitTx) Rollback(context.Context) error {
	f.rollbacks++
	return errors.New("transaction is closed")
}

type fakeSession struct {
	closes int
}

func (f *fakeSession) Close(context.Context) error {
	f.closes++
	return nil
}

func TestNeo4jTx_RollbackAfterCommit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		commitErr error
	}{
		{"commit succeeded", nil},
		{"commit failed", errors.New("leader changed")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			ftx := &fakeExplicitTx{commitErr: tt.commitErr}
			sess := &fakeSession{}
			tx := &neo4jTx{session: sess, tx: ftx}

			if err := tx.Commit(ctx); !errors.Is(err, tt.commitErr) {
				t.Errorf("tx.Commit() = %v, want: %v", err, tt.commitErr)
			}

			if err := tx.Rollback(ctx); err != nil {
				t.Errorf("tx.Rollback() after commit = %v, want: nil", err)
			}

			if ftx.rollbacks != 0 {
				t.Errorf("driver rollbacks = %d, want: 0", ftx.rollbacks)
			}
			if sess.closes != 1 {
				t.Errorf("session closes = %d, want: 1", sess.closes)
			}
		})
	}
}

func TestNeo4jTx_RollbackOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ftx := &fakeExplicitTx{}
	sess := &fakeSession{}
	tx := &neo4jTx{session: sess, tx: ftx}

	if err := tx.Rollback(ctx); err == nil {
		t.Error("first tx.Rollback() = nil, want: driver error")
	}
	if err := tx.Rollback(ctx); err != nil {
		t.Errorf("second tx.Rollback() = %v, want: nil", err)
	}
	if err := tx.Commit(ctx); !errors.Is(err, errTxDone) {
		t.Errorf("tx.Commit() after rollback = %v, want: %v", err, errTxDone)
	}

	if ftx.rollbacks != 1 || ftx.commits != 0 || sess.closes != 1 {
		t.Errorf("rollbacks, commits, closes = %d, %d, %d, want: 1, 0, 1", ftx.rollbacks, ftx.commits, sess.closes)
	}
}
