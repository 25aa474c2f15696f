package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasAllowedPrefix(t *testing.T) {
	t.Run("sql select", func(t *testing.T) {
		assert.True(t, HasAllowedPrefix("SELECT * FROM patient", "select"))
		assert.True(t, HasAllowedPrefix("  select 1", "select"))
		assert.True(t, HasAllowedPrefix("\n\tSelect name FROM doctor", "select"))
		assert.False(t, HasAllowedPrefix("DELETE FROM patient", "select"))
		assert.False(t, HasAllowedPrefix("DROP TABLE patient; SELECT 1", "select"))
		assert.False(t, HasAllowedPrefix("", "select"))
	})

	t.Run("cypher read statements", func(t *testing.T) {
		assert.True(t, HasAllowedPrefix("MATCH (p:Patient) RETURN p", "match", "return"))
		assert.True(t, HasAllowedPrefix("return 1", "match", "return"))
		assert.False(t, HasAllowedPrefix("CREATE (p:Patient {id: 1})", "match", "return"))
		assert.False(t, HasAllowedPrefix("MERGE (p:Patient {id: 1})", "match", "return"))
	})

	t.Run("only the leading keyword is inspected", func(t *testing.T) {
		// The guard does not parse past the first keyword.
		assert.True(t, HasAllowedPrefix("SELECT 1 INTO OUTFILE '/tmp/x'", "select"))
	})
}
