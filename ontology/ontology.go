// Package ontology implements the normalized ontology axiom store.
//
// The input format is one axiom per line, each wrapped as SubClassOf(...),
// produced by an EL ontology normalizer. Four inner shapes are recognized:
//
//	ObjectIntersectionOf(C D) E      C and D SubClassOf E   (NF2)
//	ObjectSomeValuesFrom(R C) D      R some C SubClassOf D  (NF4)
//	C ObjectSomeValuesFrom(R D)      C SubClassOf R some D  (NF3)
//	C D                              C SubClassOf D         (NF1)
//
// An NF2 line whose right hand side is owl:Nothing asserts disjointness of
// C and D and is stored in the Disjoint group instead.
package ontology

import "bufio"
import "fmt"
import "io"
import "os"
import "strings"

// Bottom is the OWL bottom concept. An intersection subsumed by Bottom is a
// disjointness axiom.
const Bottom = "owl:Nothing"

const someValuesFrom = "ObjectSomeValuesFrom("
const intersectionOf = "ObjectIntersectionOf("

// Axioms holds the five parsed axiom groups together with the class and
// relation name maps. Indices are assigned in first-seen order, so a fixed
// input ordering always produces the same assignment. Axioms is read-only
// after parsing.
type Axioms struct {
	NF1      [][2]int32 // (c, d): C SubClassOf D
	NF2      [][3]int32 // (c, d, e): C and D SubClassOf E
	NF3      [][3]int32 // (c, r, d): C SubClassOf R some D
	NF4      [][3]int32 // (r, c, d): R some C SubClassOf D
	Disjoint [][3]int32 // (c, d, bottom): C and D SubClassOf owl:Nothing

	Classes   map[string]int32
	Relations map[string]int32

	// ClassNames and RelationNames invert the maps: ClassNames[i] is the
	// identifier assigned index i.
	ClassNames    []string
	RelationNames []string
}

func (a *Axioms) class(name string) int32 {
	if i, ok := a.Classes[name]; ok {
		return i
	}
	i := int32(len(a.ClassNames))
	a.Classes[name] = i
	a.ClassNames = append(a.ClassNames, name)
	return i
}

func (a *Axioms) relation(name string) int32 {
	if i, ok := a.Relations[name]; ok {
		return i
	}
	i := int32(len(a.RelationNames))
	a.Relations[name] = i
	a.RelationNames = append(a.RelationNames, name)
	return i
}

// MaxGroup returns the row count of the largest axiom group.
func (a *Axioms) MaxGroup() int {
	max := len(a.NF1)
	for _, n := range []int{len(a.NF2), len(a.NF3), len(a.NF4), len(a.Disjoint)} {
		if n > max {
			max = n
		}
	}
	return max
}

// ParseError reports a line that matched a recognized axiom shape but
// violated its token structure.
type ParseError struct {
	Line int
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ontology: line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// ParseFile parses the normalized ontology file at path.
func ParseFile(path string) (*Axioms, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ontology: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads normalized axiom lines from r and builds the axiom store.
// Lines that are empty once the SubClassOf wrapper is stripped are skipped.
func Parse(r io.Reader) (*Axioms, error) {
	a := &Axioms{
		Classes:   make(map[string]int32),
		Relations: make(map[string]int32),
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		inner, err := unwrap(line, lineno)
		if err != nil {
			return nil, err
		}
		if inner == "" {
			continue
		}
		if err := a.parseAxiom(inner, lineno); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ontology: %w", err)
	}
	return a, nil
}

// unwrap strips the outer SubClassOf( ... ) wrapper: 11 leading characters
// and one trailing character.
func unwrap(line string, lineno int) (string, error) {
	if len(line) <= len("SubClassOf(") {
		return "", nil
	}
	if !strings.HasPrefix(line, "SubClassOf(") || !strings.HasSuffix(line, ")") {
		return "", &ParseError{lineno, line, "expected SubClassOf(...) wrapper"}
	}
	return line[len("SubClassOf(") : len(line)-1], nil
}

func (a *Axioms) parseAxiom(inner string, lineno int) error {
	it := strings.Split(inner, " ")
	switch {
	case strings.HasPrefix(inner, intersectionOf):
		// ObjectIntersectionOf(C D) E
		if len(it) != 3 {
			return &ParseError{lineno, inner, "intersection axiom needs 3 tokens"}
		}
		d, ok := strings.CutSuffix(it[1], ")")
		if !ok || len(it[0]) <= len(intersectionOf) || d == "" || it[2] == "" {
			return &ParseError{lineno, inner, "malformed intersection axiom"}
		}
		c := a.class(it[0][len(intersectionOf):])
		di := a.class(d)
		e := a.class(it[2])
		if it[2] == Bottom {
			a.Disjoint = append(a.Disjoint, [3]int32{c, di, e})
		} else {
			a.NF2 = append(a.NF2, [3]int32{c, di, e})
		}
	case strings.HasPrefix(inner, someValuesFrom):
		// ObjectSomeValuesFrom(R C) D
		if len(it) != 3 {
			return &ParseError{lineno, inner, "left existential axiom needs 3 tokens"}
		}
		c, ok := strings.CutSuffix(it[1], ")")
		if !ok || len(it[0]) <= len(someValuesFrom) || c == "" || it[2] == "" {
			return &ParseError{lineno, inner, "malformed left existential axiom"}
		}
		r := a.relation(it[0][len(someValuesFrom):])
		ci := a.class(c)
		d := a.class(it[2])
		a.NF4 = append(a.NF4, [3]int32{r, ci, d})
	case strings.Contains(inner, "ObjectSomeValuesFrom"):
		// C ObjectSomeValuesFrom(R D)
		if len(it) != 3 {
			return &ParseError{lineno, inner, "right existential axiom needs 3 tokens"}
		}
		d, ok := strings.CutSuffix(it[2], ")")
		if !ok || !strings.HasPrefix(it[1], someValuesFrom) ||
			len(it[1]) <= len(someValuesFrom) || it[0] == "" || d == "" {
			return &ParseError{lineno, inner, "malformed right existential axiom"}
		}
		c := a.class(it[0])
		r := a.relation(it[1][len(someValuesFrom):])
		di := a.class(d)
		a.NF3 = append(a.NF3, [3]int32{c, r, di})
	default:
		// C D
		if len(it) != 2 || it[0] == "" || it[1] == "" {
			return &ParseError{lineno, inner, "plain subsumption axiom needs 2 tokens"}
		}
		c := a.class(it[0])
		d := a.class(it[1])
		a.NF1 = append(a.NF1, [2]int32{c, d})
	}
	return nil
}
