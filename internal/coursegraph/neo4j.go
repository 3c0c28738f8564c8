package coursegraph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ferdiebergado/lmskit/internal/config"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const (
	cypherDeleteAll    = "MATCH (n) DETACH DELETE n"
	cypherCreateRelFmt = "MATCH (p {location: $parent}), (c {location: $child}) CREATE (p)-[:%s]->(c)"
)

var (
	ErrNoNeo4jURI = errors.New("neo4j uri is not defined")
	errTxDone     = errors.New("neo4j transaction already finished")
)

var _ Graph = (*Neo4jGraph)(nil)

type Neo4jGraph struct {
	driver neo4j.DriverWithContext
}

// NewNeo4jGraph connects to the server and verifies that it is reachable.
func NewNeo4jGraph(ctx context.Context, opts *config.Neo4jOptions) (*Neo4jGraph, error) {
	if opts == nil || opts.URI == "" {
		return nil, ErrNoNeo4jURI
	}

	slog.Info("Connecting to the graph database...", "uri", opts.URI)
	driver, err := neo4j.NewDriverWithContext(opts.URI, neo4j.BasicAuth(opts.User, opts.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify neo4j connectivity: %w", err)
	}

	slog.Info("Connected to the graph database.")
	return &Neo4jGraph{driver: driver}, nil
}

func (g *Neo4jGraph) Close(ctx context.Context) error {
	return g.driver.Close(ctx)
}

func (g *Neo4jGraph) DeleteAll(ctx context.Context) error {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypherDeleteAll, nil)
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("delete all nodes: %w", err)
	}
	return nil
}

func (g *Neo4jGraph) Begin(ctx context.Context) (Transaction, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})

	tx, err := session.BeginTransaction(ctx)
	if err != nil {
		_ = session.Close(ctx)
		return nil, fmt.Errorf("begin neo4j transaction: %w", err)
	}

	return &neo4jTx{session: session, tx: tx}, nil
}

// explicitTx is the part of neo4j.ExplicitTransaction the exporter uses.
type explicitTx interface {
	Run(ctx context.Context, cypher string, params map[string]any) (neo4j.ResultWithContext, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type sessionCloser interface {
	Close(ctx context.Context) error
}

// neo4jTx owns its session. After Commit, whatever its outcome, the
// transaction is finished and Rollback does nothing.
type neo4jTx struct {
	session sessionCloser
	tx      explicitTx
	done    bool
}

func (t *neo4jTx) CreateNode(ctx context.Context, node Node) error {
	return t.run(ctx, "CREATE (n:"+QuoteLabel(node.Label)+" $props)", map[string]any{"props": node.Properties})
}

func (t *neo4jTx) CreateRelationship(ctx context.Context, rel Relationship) error {
	relType := rel.Type
	if relType == "" {
		relType = RelParentOf
	}

	cypher := fmt.Sprintf(cypherCreateRelFmt, QuoteLabel(relType))
	return t.run(ctx, cypher, map[string]any{"parent": rel.Parent, "child": rel.Child})
}

func (t *neo4jTx) run(ctx context.Context, cypher string, params map[string]any) error {
	result, err := t.tx.Run(ctx, cypher, params)
	if err != nil {
		return err
	}
	_, err = result.Consume(ctx)
	return err
}

func (t *neo4jTx) Commit(ctx context.Context) error {
	if t.done {
		return errTxDone
	}
	t.done = true
	defer t.closeSession(ctx)
	return t.tx.Commit(ctx)
}

func (t *neo4jTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	defer t.closeSession(ctx)
	return t.tx.Rollback(ctx)
}

func (t *neo4jTx) closeSession(ctx context.Context) {
	if err := t.session.Close(ctx); err != nil {
		slog.Warn("failed to close neo4j session", "reason", err)
	}
}

// QuoteLabel escapes a label or relationship type for use in a cypher query.
func QuoteLabel(label string) string {
	return "`" + strings.ReplaceAll(label, "`", "``") + "`"
}
