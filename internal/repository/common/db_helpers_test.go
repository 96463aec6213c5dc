package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhere(t *testing.T) {
	var w Where
	assert.Equal(t, "", w.SQL())
	assert.Equal(t, 1, w.Next())

	w.Add("target_kind", "job")
	w.Add("target_id", "a1")
	assert.Equal(t, " WHERE target_kind = $1 AND target_id = $2", w.SQL())
	assert.Equal(t, []interface{}{"job", "a1"}, w.Args())
	assert.Equal(t, 3, w.Next())
}
