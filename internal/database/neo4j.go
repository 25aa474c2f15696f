package database

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jRunner executes a Cypher statement and returns a fully buffered
// result. The graph store depends on this interface so tests can substitute
// a fake executor.
type Neo4jRunner interface {
	Run(ctx context.Context, query string, params map[string]interface{}) (*neo4j.EagerResult, error)
}

// Neo4jExecutor is the driver-backed Neo4jRunner.
type Neo4jExecutor struct {
	Driver neo4j.DriverWithContext
	DBName string
}

// NewNeo4jExecutor creates a driver for the given instance. The connection is
// not verified here; call Verify before use.
func NewNeo4jExecutor(uri, username, password, dbName string) (*Neo4jExecutor, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("could not create neo4j driver: %w", err)
	}
	return &Neo4jExecutor{Driver: driver, DBName: dbName}, nil
}

// Verify checks connectivity to the database.
func (e *Neo4jExecutor) Verify(ctx context.Context) error {
	return e.Driver.VerifyConnectivity(ctx)
}

// Run executes a Cypher statement through neo4j.ExecuteQuery, which manages
// sessions and transactions itself and buffers all records before returning.
func (e *Neo4jExecutor) Run(ctx context.Context, query string, params map[string]interface{}) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(
		ctx,
		e.Driver,
		query,
		params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(e.DBName),
	)
	if err != nil {
		return nil, fmt.Errorf("error executing neo4j query: %w", err)
	}
	return result, nil
}

// Close releases the underlying driver.
func (e *Neo4jExecutor) Close(ctx context.Context) error {
	return e.Driver.Close(ctx)
}
