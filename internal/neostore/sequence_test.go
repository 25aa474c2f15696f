package neostore

import (
	"context"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
)

func TestNextIDStartsAtOneAndIncrements(t *testing.T) {
	runner := &scriptRunner{}
	runner.handler = counterHandler(nil)
	s := New(runner)

	for want := int64(1); want <= 3; want++ {
		got, err := s.NextID(context.Background(), LabelPatient)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestNextIDSequencesAreIndependentPerLabel(t *testing.T) {
	runner := &scriptRunner{}
	runner.handler = counterHandler(nil)
	s := New(runner)

	p1, err := s.NextID(context.Background(), LabelPatient)
	assert.NoError(t, err)
	d1, err := s.NextID(context.Background(), LabelDoctor)
	assert.NoError(t, err)
	p2, err := s.NextID(context.Background(), LabelPatient)
	assert.NoError(t, err)

	assert.Equal(t, int64(1), p1)
	assert.Equal(t, int64(1), d1)
	assert.Equal(t, int64(2), p2)
}

func TestNextIDUnknownLabel(t *testing.T) {
	s := New(&scriptRunner{})

	_, err := s.NextID(context.Background(), "Widget")
	assert.Error(t, err)
}

func TestNextIDMissingCounterNode(t *testing.T) {
	runner := &scriptRunner{handler: func(query string, params map[string]interface{}) (*neo4j.EagerResult, error) {
		return emptyResult(), nil
	}}
	s := New(runner)

	_, err := s.NextID(context.Background(), LabelClinic)
	assert.Error(t, err)
}
