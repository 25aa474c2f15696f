package neostore

import (
	"context"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
)

// seedHandler answers the counter queries and the department listing; every
// other statement succeeds with an empty result.
func seedHandler(existingDepartments int) func(string, map[string]interface{}) (*neo4j.EagerResult, error) {
	return counterHandler(func(query string, params map[string]interface{}) (*neo4j.EagerResult, error) {
		if strings.HasPrefix(query, "MATCH (d:Department) RETURN") {
			rows := make([][]interface{}, 0, existingDepartments)
			for i := 0; i < existingDepartments; i++ {
				rows = append(rows, []interface{}{int64(i + 1), "Dept"})
			}
			return result([]string{"id", "name"}, rows...), nil
		}
		return emptyResult(), nil
	})
}

func TestBootstrapSeedsEmptyGraph(t *testing.T) {
	runner := &scriptRunner{}
	runner.handler = seedHandler(0)
	s := New(runner)

	err := s.Bootstrap(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, 8, runner.countContaining("CREATE CONSTRAINT IF NOT EXISTS"))
	assert.Equal(t, 1, runner.countContaining("MERGE (ctr:Counter"))
	assert.Equal(t, 2, runner.countContaining("CREATE (:Clinic"))
	assert.Equal(t, 24, runner.countContaining("CREATE (d:Department"))
	assert.Equal(t, 48, runner.countContaining("CREATE (doc:Doctor"))
	assert.Equal(t, 2, runner.countContaining("CREATE (:Patient"))
	assert.Equal(t, 4, runner.countContaining("CREATE (a:Appointment"))
	assert.Equal(t, 7, runner.countContaining("CREATE (o:Observation"))
	assert.Equal(t, 7, runner.countContaining("CREATE (x:Diagnosis"))
}

func TestBootstrapSkipsSeedWhenDepartmentsExist(t *testing.T) {
	runner := &scriptRunner{}
	runner.handler = seedHandler(24)
	s := New(runner)

	err := s.Bootstrap(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, 8, runner.countContaining("CREATE CONSTRAINT IF NOT EXISTS"))
	assert.Equal(t, 0, runner.countContaining("CREATE (d:Department"))
	assert.Equal(t, 0, runner.countContaining("CREATE (doc:Doctor"))
	assert.Equal(t, 0, runner.countContaining("CREATE (:Patient"))
}
