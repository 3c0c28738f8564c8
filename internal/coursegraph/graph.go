// Package coursegraph copies course content trees into a graph database,
// one node per block and one PARENT_OF relationship per parent and child.
package coursegraph

import "context"

const RelParentOf = "PARENT_OF"

// Node is a block with its coerced field values. Label is the block type.
type Node struct {
	Label      string
	Properties map[string]any
}

// Location returns the usage key the node was created from.
func (n Node) Location() string {
	loc, _ := n.Properties[propLocation].(string)
	return loc
}

// Relationship links two nodes by their locations.
type Relationship struct {
	Parent string
	Child  string
	Type   string
}

// Graph is the target database of an export.
type Graph interface {
	DeleteAll(ctx context.Context) error
	Begin(ctx context.Context) (Transaction, error)
}

// Transaction groups the writes of one course.
type Transaction interface {
	CreateNode(ctx context.Context, node Node) error
	CreateRelationship(ctx context.Context, rel Relationship) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
