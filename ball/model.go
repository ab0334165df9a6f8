// Package ball implements the geometric embedding model. Every class is a
// ball in R^dim: a center vector plus one trailing radius coordinate whose
// absolute value is the effective radius. Every relation is a pure
// translation vector. Each Description Logic normal form becomes a
// differentiable penalty over these balls.
package ball

import "math/rand"

// Model owns the two trainable lookup tables. Cls rows are dim+1 wide
// (center plus radius coordinate), Rel rows are dim wide.
type Model struct {
	Dim int
	Cls [][]float32
	Rel [][]float32
}

// New creates a model with both tables randomly initialized, uniform in
// (-0.5, 0.5) scaled down by the dimensionality.
func New(nbClasses, nbRelations, dim int) *Model {
	return &Model{
		Dim: dim,
		Cls: randTable(nbClasses, dim+1, dim),
		Rel: randTable(nbRelations, dim, dim),
	}
}

func randTable(rows, cols, dim int) [][]float32 {
	t := make([][]float32, rows)
	for i := range t {
		v := make([]float32, cols)
		for j := range v {
			v[j] = (rand.Float32() - 0.5) / float32(dim)
		}
		t[i] = v
	}
	return t
}

// GatherCls returns the class vectors for the given indices.
func (m *Model) GatherCls(idx []int32) [][]float32 {
	out := make([][]float32, len(idx))
	for i, j := range idx {
		out[i] = m.Cls[j]
	}
	return out
}

// GatherRel returns the relation vectors for the given indices.
func (m *Model) GatherRel(idx []int32) [][]float32 {
	out := make([][]float32, len(idx))
	for i, j := range idx {
		out[i] = m.Rel[j]
	}
	return out
}

// ExportCls copies the full class table in index order.
func (m *Model) ExportCls() [][]float32 {
	return copyTable(m.Cls)
}

// ExportRel copies the full relation table in index order.
func (m *Model) ExportRel() [][]float32 {
	return copyTable(m.Rel)
}

func copyTable(t [][]float32) [][]float32 {
	out := make([][]float32, len(t))
	for i, v := range t {
		row := make([]float32, len(v))
		copy(row, v)
		out[i] = row
	}
	return out
}
