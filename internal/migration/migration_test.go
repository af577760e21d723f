package migration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatements_AreIdempotent(t *testing.T) {
	runner := NewRunner()
	assert.Equal(t, "1.0.0", runner.Version())

	steps := runner.Statements()
	assert.Len(t, steps, 3)
	for _, step := range steps {
		assert.Contains(t, step.SQL, "IF NOT EXISTS", step.Name)
	}
	assert.True(t, strings.Contains(steps[0].SQL, "projects"))
	assert.True(t, strings.Contains(steps[1].SQL, "results JSONB"))
}
