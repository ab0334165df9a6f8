package inference

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/elembed/ball"
	"github.com/neurlang/elembed/ontology"
)

func testSpace(t *testing.T) *Space {
	t.Helper()
	ax, err := ontology.Parse(strings.NewReader("SubClassOf(A B)\nSubClassOf(B C)\n"))
	require.NoError(t, err)
	m := ball.New(len(ax.ClassNames), 0, 2)
	// A: small ball inside B, C far away
	copy(m.Cls[ax.Classes["A"]], []float32{0, 0, 0.1})
	copy(m.Cls[ax.Classes["B"]], []float32{0.1, 0, 0.5})
	copy(m.Cls[ax.Classes["C"]], []float32{5, 5, -0.2})
	return New(m, ax)
}

func TestSubsumes(t *testing.T) {
	s := testSpace(t)
	slack, err := s.Subsumes("A", "B")
	require.NoError(t, err)
	assert.Less(t, slack, float32(0), "A's ball lies inside B's")

	slack, err = s.Subsumes("A", "C")
	require.NoError(t, err)
	assert.Greater(t, slack, float32(0))
}

func TestSeparation(t *testing.T) {
	s := testSpace(t)
	gap, err := s.Separation("A", "C")
	require.NoError(t, err)
	assert.Greater(t, gap, float32(1), "A and C are far apart")

	gap, err = s.Separation("A", "B")
	require.NoError(t, err)
	assert.Less(t, gap, float32(0), "overlapping balls have negative gap")
}

func TestRadiusSignIgnored(t *testing.T) {
	s := testSpace(t)
	// C's radius coordinate is negative; the magnitude is the radius
	gap, err := s.Separation("B", "C")
	require.NoError(t, err)
	want := math.Sqrt(4.9*4.9+5*5) - 0.5 - 0.2
	assert.InDelta(t, want, float64(gap), 1e-5)
}

func TestUnknownName(t *testing.T) {
	s := testSpace(t)
	_, err := s.Subsumes("A", "Nope")
	assert.Error(t, err)
	_, err = s.Separation("Nope", "A")
	assert.Error(t, err)
}
