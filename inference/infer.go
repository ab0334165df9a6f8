// Package inference scores axioms against a trained ball embedding space.
// It answers by name: how far is class C from being contained in D, and how
// far are C and D from being disjoint.
package inference

import (
	"fmt"

	"github.com/neurlang/elembed/ball"
	"github.com/neurlang/elembed/ontology"
	"github.com/neurlang/elembed/vecmath"
)

// Space wraps a trained model with the name maps it was trained against.
type Space struct {
	model *ball.Model
	ax    *ontology.Axioms
}

// New builds a scoring space over a trained model.
func New(m *ball.Model, ax *ontology.Axioms) *Space {
	return &Space{model: m, ax: ax}
}

func (s *Space) classBall(name string) ([]float32, float32, error) {
	i, ok := s.ax.Classes[name]
	if !ok {
		return nil, 0, fmt.Errorf("inference: unknown class %q", name)
	}
	v := s.model.Cls[i]
	dim := s.model.Dim
	r := v[dim]
	if r < 0 {
		r = -r
	}
	return v[:dim], r, nil
}

// Subsumes returns the containment slack of C in D: distance between the
// centers plus C's radius minus D's radius. Zero or below means the ball of
// C lies entirely inside the ball of D, so the space supports C SubClassOf D.
func (s *Space) Subsumes(c, d string) (float32, error) {
	cc, rc, err := s.classBall(c)
	if err != nil {
		return 0, err
	}
	cd, rd, err := s.classBall(d)
	if err != nil {
		return 0, err
	}
	return vecmath.Dist(cc, cd) + rc - rd, nil
}

// Separation returns the gap between the balls of C and D: distance between
// the centers minus the radius sum. Positive means the balls do not overlap,
// supporting disjointness of C and D.
func (s *Space) Separation(c, d string) (float32, error) {
	cc, rc, err := s.classBall(c)
	if err != nil {
		return 0, err
	}
	cd, rd, err := s.classBall(d)
	if err != nil {
		return 0, err
	}
	return vecmath.Dist(cc, cd) - (rc + rd), nil
}
