package ontology

import "math/rand"

// Batch is one randomized mini batch: five independently sampled index
// batches, one per axiom group, plus the all-zero label column the loss is
// squared against. Groups with no axioms yield zero-row batches.
type Batch struct {
	NF1      [][2]int32
	NF2      [][3]int32
	NF3      [][3]int32
	NF4      [][3]int32
	Disjoint [][3]int32
	Labels   []float32
}

// Generator produces a fixed number of batches per epoch. The step count is
// derived from the largest axiom group, so smaller groups are oversampled
// relative to their size. Sampling is uniform with replacement and every
// group is drawn independently.
type Generator struct {
	ax        *Axioms
	batchSize int
	steps     int
	start     int
}

// NewGenerator creates a generator over ax yielding batchSize-row batches.
func NewGenerator(ax *Axioms, batchSize int) *Generator {
	if batchSize < 1 {
		batchSize = 1
	}
	max := ax.MaxGroup()
	steps := (max + batchSize - 1) / batchSize
	return &Generator{ax: ax, batchSize: batchSize, steps: steps}
}

// Steps reports the number of batches produced per pass.
func (g *Generator) Steps() int {
	return g.steps
}

// Next yields the next batch. After Steps() batches it reports false and
// resets, so the next call starts a fresh pass.
func (g *Generator) Next() (*Batch, bool) {
	if g.start >= g.steps {
		g.start = 0
		return nil, false
	}
	g.start++
	b := &Batch{
		NF1:      sample2(g.ax.NF1, g.batchSize),
		NF2:      sample3(g.ax.NF2, g.batchSize),
		NF3:      sample3(g.ax.NF3, g.batchSize),
		NF4:      sample3(g.ax.NF4, g.batchSize),
		Disjoint: sample3(g.ax.Disjoint, g.batchSize),
		Labels:   make([]float32, g.batchSize),
	}
	return b, true
}

func sample2(rows [][2]int32, n int) [][2]int32 {
	if len(rows) == 0 {
		return nil
	}
	out := make([][2]int32, n)
	for i := range out {
		out[i] = rows[rand.Intn(len(rows))]
	}
	return out
}

func sample3(rows [][3]int32, n int) [][3]int32 {
	if len(rows) == 0 {
		return nil
	}
	out := make([][3]int32, n)
	for i := range out {
		out[i] = rows[rand.Intn(len(rows))]
	}
	return out
}
