package training

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/elembed/ontology"
)

type captureSink struct {
	puts     int
	clsRows  int
	relRows  int
	clsNames []string
	relNames []string
}

func (c *captureSink) Put(cls, rel [][]float32, clsNames, relNames []string) error {
	c.puts++
	c.clsRows = len(cls)
	c.relRows = len(rel)
	c.clsNames = clsNames
	c.relNames = relNames
	return nil
}

func parse(t *testing.T, lines ...string) *ontology.Axioms {
	t.Helper()
	ax, err := ontology.Parse(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	return ax
}

func TestTrainingEndToEnd(t *testing.T) {
	ax := parse(t,
		"SubClassOf(A B)",
		"SubClassOf(B C)",
		"SubClassOf(ObjectIntersectionOf(A C) owl:Nothing)",
		"SubClassOf(A ObjectSomeValuesFrom(partOf C))",
		"SubClassOf(ObjectSomeValuesFrom(partOf B) C)",
	)
	sink := &captureSink{}
	h := HyperParameters{
		Dim:       4,
		BatchSize: 8,
		Epochs:    6,
		Threads:   2,
		EveryN:    2,
	}
	model, err := h.Training(ax, sink)
	require.NoError(t, err)
	require.NotNil(t, model)

	assert.Len(t, model.Cls, len(ax.ClassNames))
	assert.Len(t, model.Rel, 1)
	assert.Len(t, model.Cls[0], 5)
	assert.Len(t, model.Rel[0], 4)

	// epochs 0, 2, 4 and the final epoch 5
	assert.Equal(t, 4, sink.puts)
	assert.Equal(t, len(ax.ClassNames), sink.clsRows)
	assert.Equal(t, 1, sink.relRows)
	assert.Equal(t, ax.ClassNames, sink.clsNames)
	assert.Equal(t, []string{"partOf"}, sink.relNames)
}

func TestTrainingNilSink(t *testing.T) {
	ax := parse(t, "SubClassOf(A B)")
	h := HyperParameters{Dim: 2, BatchSize: 2, Epochs: 2, Threads: 1}
	_, err := h.Training(ax, nil)
	assert.NoError(t, err)
}

type failSink struct{}

func (failSink) Put(cls, rel [][]float32, clsNames, relNames []string) error {
	return assert.AnError
}

func TestTrainingCheckpointFailureIsFatal(t *testing.T) {
	ax := parse(t, "SubClassOf(A B)")
	h := HyperParameters{Dim: 2, BatchSize: 2, Epochs: 3, Threads: 1}
	_, err := h.Training(ax, failSink{})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestTrainingNoAxioms(t *testing.T) {
	ax := parse(t, "")
	var h HyperParameters
	h.Epochs = 1
	_, err := h.Training(ax, nil)
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	var h HyperParameters
	h.defaults()
	assert.Equal(t, DefaultBatchSize, h.BatchSize)
	assert.Equal(t, DefaultEpochs, h.Epochs)
	assert.Equal(t, DefaultDim, h.Dim)
	assert.Equal(t, float32(DefaultLearningRate), h.LearningRate)
	assert.Equal(t, float32(DefaultMargin), h.Margin)
	assert.Equal(t, DefaultEveryN, h.EveryN)
	assert.Greater(t, h.Threads, 0)
}
