package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	p, err := NewParser()
	require.NoError(t, err)

	cases := map[string]int{
		"2 + 0 + 1 + 2323": 2326,
		"2 - 5":            -3,
		"2 * 4 - 3":        5,
		"(2 - 4) / 2":      -1,
		"3*(4-4)":          0,
	}
	for expr, want := range cases {
		got, err := Eval(p, expr)
		require.NoError(t, err, "expr %q", expr)
		assert.Equal(t, want, got, "expr %q", expr)
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	p, err := NewParser()
	require.NoError(t, err)

	_, err = Eval(p, "1 / 0")
	assert.Error(t, err)
}
