package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAssignsDistinctRunIDs(t *testing.T) {
	a := New("hpo-terms", "in.obo", "out.csv")
	b := New("hpo-terms", "in.obo", "out.csv")

	assert.NotEmpty(t, a.RunID)
	assert.NotEmpty(t, b.RunID)
	assert.NotEqual(t, a.RunID, b.RunID)

	assert.Equal(t, "hpo-terms", a.Dataset)
	assert.Equal(t, "in.obo", a.Input)
	assert.Equal(t, "out.csv", a.Output)
	assert.Zero(t, a.Rows)
}
