package ball

import "github.com/neurlang/elembed/ontology"
import "github.com/neurlang/elembed/parallel"
import "github.com/neurlang/elembed/vecmath"

// gradEntry is one embedding row's raw (unscaled) gradient contribution
// from a single batch row.
type gradEntry struct {
	rel bool
	idx int32
	g   []float32
}

// rowScratch holds one batch row's working state: the shifted-ball scratch
// vectors, three unit-direction buffers, and the row's loss and gradient
// contributions.
type rowScratch struct {
	a, ga   []float32 // shifted ball and its gradient, dim+1 wide
	u, v, w []float32 // unit-direction scratch, dim wide
	entries []gradEntry
	loss    float32
}

func (sc *rowScratch) init(dim int) {
	sc.a = make([]float32, dim+1)
	sc.ga = make([]float32, dim+1)
	sc.u = make([]float32, dim)
	sc.v = make([]float32, dim)
	sc.w = make([]float32, dim)
}

func (sc *rowScratch) cls(idx int32, g []float32) []float32 {
	sc.entries = append(sc.entries, gradEntry{false, idx, g})
	return g
}

func (sc *rowScratch) relEntry(idx int32, g []float32) []float32 {
	sc.entries = append(sc.entries, gradEntry{true, idx, g})
	return g
}

// Grads accumulates sparse gradients per embedding row.
type Grads struct {
	Cls map[int32][]float32
	Rel map[int32][]float32
}

// NewGrads creates empty gradient accumulators.
func NewGrads() *Grads {
	return &Grads{
		Cls: make(map[int32][]float32),
		Rel: make(map[int32][]float32),
	}
}

func (g *Grads) add(e gradEntry, scale float32) {
	tbl := g.Cls
	if e.rel {
		tbl = g.Rel
	}
	acc, ok := tbl[e.idx]
	if !ok {
		acc = make([]float32, len(e.g))
		tbl[e.idx] = acc
	}
	vecmath.Axpy(scale, e.g, acc)
}

// row evaluates all five axiom penalties for batch position i, summing them
// into one row loss and collecting the raw gradients of every touched
// embedding row. Empty axiom groups contribute nothing.
func (m *Model) row(b *ontology.Batch, i int, margin float32, sc *rowScratch) {
	dim := m.Dim
	sc.entries = sc.entries[:0]
	var s float32
	if len(b.NF1) > 0 {
		r := b.NF1[i]
		gc := sc.cls(r[0], make([]float32, dim+1))
		gd := sc.cls(r[1], make([]float32, dim+1))
		s += m.nf1Row(m.Cls[r[0]], m.Cls[r[1]], gc, gd, sc.u)
	}
	if len(b.NF2) > 0 {
		r := b.NF2[i]
		gc := sc.cls(r[0], make([]float32, dim+1))
		gd := sc.cls(r[1], make([]float32, dim+1))
		ge := sc.cls(r[2], make([]float32, dim+1))
		s += m.nf2Row(m.Cls[r[0]], m.Cls[r[1]], m.Cls[r[2]], gc, gd, ge, sc)
	}
	if len(b.NF3) > 0 {
		r := b.NF3[i]
		gc := sc.cls(r[0], make([]float32, dim+1))
		gr := sc.relEntry(r[1], make([]float32, dim))
		gd := sc.cls(r[2], make([]float32, dim+1))
		s += m.nf3Row(m.Cls[r[0]], m.Rel[r[1]], m.Cls[r[2]], gc, gr, gd, sc)
	}
	if len(b.NF4) > 0 {
		r := b.NF4[i]
		gr := sc.relEntry(r[0], make([]float32, dim))
		gc := sc.cls(r[1], make([]float32, dim+1))
		gd := sc.cls(r[2], make([]float32, dim+1))
		s += m.nf4Row(m.Rel[r[0]], m.Cls[r[1]], m.Cls[r[2]], gr, gc, gd, sc)
	}
	if len(b.Disjoint) > 0 {
		r := b.Disjoint[i]
		gc := sc.cls(r[0], make([]float32, dim+1))
		gd := sc.cls(r[1], make([]float32, dim+1))
		s += m.disRow(m.Cls[r[0]], m.Cls[r[1]], margin, gc, gd, sc.u)
	}
	sc.loss = s
}

// Step runs one forward and backward pass over a batch. Rows are evaluated
// concurrently, bounded by threads, then reduced serially. The returned
// scalar is the mean squared summed penalty against the all-zero labels,
// so each row's raw gradients are scaled by 2*loss/batch in the reduction.
func (m *Model) Step(b *ontology.Batch, margin float32, threads int) (float64, *Grads) {
	n := len(b.Labels)
	rows := make([]rowScratch, n)
	parallel.ForEach(n, threads, func(i int) {
		rows[i].init(m.Dim)
		m.row(b, i, margin, &rows[i])
	})
	g := NewGrads()
	var total float64
	for i := range rows {
		s := rows[i].loss
		total += float64(s) * float64(s)
		scale := 2 * s / float32(n)
		for _, e := range rows[i].entries {
			g.add(e, scale)
		}
	}
	return total / float64(n), g
}

// Apply performs one gradient descent update on both tables.
func (m *Model) Apply(g *Grads, lr float32) {
	for idx, gv := range g.Cls {
		vecmath.Axpy(-lr, gv, m.Cls[idx])
	}
	for idx, gv := range g.Rel {
		vecmath.Axpy(-lr, gv, m.Rel[idx])
	}
}
