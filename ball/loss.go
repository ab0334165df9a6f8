package ball

import "github.com/neurlang/elembed/vecmath"

// eps guards the gradient of a Euclidean norm at zero, where it is
// undefined; the forward value needs no guard.
const eps = 1e-12

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x float32) float32 {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// regRow is the unit-norm regularization |‖x‖-1| keeping a center near the
// unit sphere. Its gradient sign(‖x‖-1)*x/‖x‖ accumulates into gx.
func regRow(x, gx []float32) float32 {
	n := vecmath.Norm(x)
	if n > eps {
		vecmath.Axpy(sign(n-1)/n, x, gx)
	}
	return abs32(n - 1)
}

// unitDiff returns ‖a-b‖ and writes the unit direction (a-b)/‖a-b‖ into u.
// A degenerate distance leaves u all zero, dropping the direction gradient.
func unitDiff(a, b, u []float32) float32 {
	vecmath.SubInto(u, a, b)
	n := vecmath.Norm(u)
	if n > eps {
		inv := 1 / n
		for i := range u {
			u[i] *= inv
		}
	} else {
		for i := range u {
			u[i] = 0
		}
	}
	return n
}

// containRow is the containment primitive for C SubClassOf D:
// relu(‖cc-cd‖ + rc - rd) plus unit-norm regularization of both centers.
// Ball C fits in ball D exactly when the center distance plus C's radius
// stays within D's radius. Gradients accumulate into gc and gd; u is a
// dim-wide scratch slice.
func (m *Model) containRow(c, d, gc, gd, u []float32) float32 {
	dim := m.Dim
	rc := abs32(c[dim])
	rd := abs32(d[dim])
	dst := unitDiff(c[:dim], d[:dim], u)
	s := regRow(c[:dim], gc[:dim]) + regRow(d[:dim], gd[:dim])
	if t := dst + rc - rd; t > 0 {
		s += t
		vecmath.Axpy(1, u, gc[:dim])
		vecmath.Axpy(-1, u, gd[:dim])
		gc[dim] += sign(c[dim])
		gd[dim] -= sign(d[dim])
	}
	return s
}

// nf1Row scores C SubClassOf D with the containment primitive.
func (m *Model) nf1Row(c, d, gc, gd, u []float32) float32 {
	return m.containRow(c, d, gc, gd, u)
}

// nf2Row scores C and D SubClassOf E. Four penalties combine: the C and D
// balls must intersect, E's center must lie within both radii, and E's
// radius must not undercut the larger of C's and D's. The E radius is taken
// from E's own radius column (the reference reuses D's there; see
// DESIGN.md).
func (m *Model) nf2Row(c, d, e, gc, gd, ge []float32, sc *rowScratch) float32 {
	dim := m.Dim
	rc := abs32(c[dim])
	rd := abs32(d[dim])
	re := abs32(e[dim])
	u1, u2, u3 := sc.u, sc.v, sc.w
	dst := unitDiff(d[:dim], c[:dim], u1)
	dst2 := unitDiff(e[:dim], c[:dim], u2)
	dst3 := unitDiff(e[:dim], d[:dim], u3)
	s := regRow(c[:dim], gc[:dim]) + regRow(d[:dim], gd[:dim]) + regRow(e[:dim], ge[:dim])
	if t := dst - (rc + rd); t > 0 {
		s += t
		vecmath.Axpy(1, u1, gd[:dim])
		vecmath.Axpy(-1, u1, gc[:dim])
		gc[dim] -= sign(c[dim])
		gd[dim] -= sign(d[dim])
	}
	if t := dst2 - rc; t > 0 {
		s += t
		vecmath.Axpy(1, u2, ge[:dim])
		vecmath.Axpy(-1, u2, gc[:dim])
		gc[dim] -= sign(c[dim])
	}
	if t := dst3 - rd; t > 0 {
		s += t
		vecmath.Axpy(1, u3, ge[:dim])
		vecmath.Axpy(-1, u3, gd[:dim])
		gd[dim] -= sign(d[dim])
	}
	if t := max32(rc, rd) - re; t > 0 {
		s += t
		if rc >= rd {
			gc[dim] += sign(c[dim])
		} else {
			gd[dim] += sign(d[dim])
		}
		ge[dim] -= sign(e[dim])
	}
	return s
}

// nf3Row scores C SubClassOf R some D: C's center is translated by the
// relation vector (the relation carries no radius) and the shifted ball
// must be contained in D.
func (m *Model) nf3Row(c, r, d, gc, gr, gd []float32, sc *rowScratch) float32 {
	dim := m.Dim
	shifted := sc.a
	vecmath.AddInto(shifted[:dim], c[:dim], r)
	shifted[dim] = c[dim]
	gs := sc.ga
	for i := range gs {
		gs[i] = 0
	}
	s := m.containRow(shifted, d, gs, gd, sc.u)
	vecmath.Axpy(1, gs, gc)
	vecmath.Axpy(1, gs[:dim], gr)
	return s
}

// nf4Row scores R some C SubClassOf D: C's center is translated by the
// inverse relation vector and only intersection with D is demanded, not
// containment.
func (m *Model) nf4Row(r, c, d, gr, gc, gd []float32, sc *rowScratch) float32 {
	dim := m.Dim
	shifted := sc.a
	vecmath.SubInto(shifted[:dim], c[:dim], r)
	shifted[dim] = c[dim]
	gs := sc.ga
	for i := range gs {
		gs[i] = 0
	}
	rc := abs32(shifted[dim])
	rd := abs32(d[dim])
	dst := unitDiff(shifted[:dim], d[:dim], sc.u)
	s := regRow(shifted[:dim], gs[:dim]) + regRow(d[:dim], gd[:dim])
	if t := dst - (rc + rd); t > 0 {
		s += t
		vecmath.Axpy(1, sc.u, gs[:dim])
		vecmath.Axpy(-1, sc.u, gd[:dim])
		gs[dim] -= sign(shifted[dim])
		gd[dim] -= sign(d[dim])
	}
	vecmath.Axpy(1, gs, gc)
	vecmath.Axpy(-1, gs[:dim], gr)
	return s
}

// disRow scores C and D SubClassOf owl:Nothing: overlapping balls are
// penalized until they are separated by at least margin beyond touching.
func (m *Model) disRow(c, d []float32, margin float32, gc, gd, u []float32) float32 {
	dim := m.Dim
	rc := abs32(c[dim])
	rd := abs32(d[dim])
	dst := unitDiff(d[:dim], c[:dim], u)
	s := regRow(c[:dim], gc[:dim]) + regRow(d[:dim], gd[:dim])
	if t := rc + rd - dst - margin; t > 0 {
		s += t
		vecmath.Axpy(1, u, gc[:dim])
		vecmath.Axpy(-1, u, gd[:dim])
		gc[dim] += sign(c[dim])
		gd[dim] += sign(d[dim])
	}
	return s
}
