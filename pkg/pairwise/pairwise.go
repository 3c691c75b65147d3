/*
Package pairwise aligns pairs of sequences with biogo's affine-gap aligners
and a substitution matrix.

The dynamic programming is biogo's; this package translates intuitive
subtract-style gap penalties and a float-valued substitution matrix into the
integer scores the engine expects, and wraps the engine output in a
printable result.
*/
package pairwise

import (
	"errors"
	"fmt"
	"math"

	"github.com/biogo/biogo/align"
	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/feat"
	"github.com/biogo/biogo/seq/linear"

	"github.com/makovalab-psu/pairalign/pkg/submat"
)

// Scope selects between end-to-end and best-segment alignment.
type Scope string

const (
	Global Scope = "global"
	Local  Scope = "local"
)

// Default gap penalties.
const (
	DefaultGapOpen   = 0
	DefaultGapExtend = 2.5
)

// GapChar is the character used for gaps in formatted alignments.
const GapChar = submat.GapChar

// ParseScope converts a scope name from the command line.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case Global, Local:
		return Scope(s), nil
	}
	return "", fmt.Errorf("invalid scope %q: must be %q or %q", s, Global, Local)
}

// An Aligner aligns pairs of sequences with a fixed scope, gap penalty
// model and substitution matrix.
//
// GapOpen is charged once at the start of each gap and GapExtend once for
// every position of the gap, the first included. Both are penalties: they
// are subtracted from the alignment score.
type Aligner struct {
	Scope     Scope
	GapOpen   float64
	GapExtend float64
	Matrix    *submat.Matrix

	alpha   alphabet.Alphabet
	scores  align.Linear
	gapOpen int
	scale   float64
	valid   map[byte]bool
}

// NewAligner builds an Aligner and its engine configuration. It fails if
// the matrix does not give a score for every ordered pair of its symbols.
func NewAligner(scope Scope, gapOpen, gapExtend float64, m *submat.Matrix) (*Aligner, error) {
	if m == nil {
		return nil, errors.New("pairwise: no substitution matrix given")
	}
	if gapOpen < 0 || gapExtend < 0 {
		return nil, fmt.Errorf("pairwise: gap penalties must be non-negative, got %g and %g", gapOpen, gapExtend)
	}
	a := &Aligner{
		Scope:     scope,
		GapOpen:   gapOpen,
		GapExtend: gapExtend,
		Matrix:    m,
	}
	if err := a.configure(); err != nil {
		return nil, err
	}
	return a, nil
}

// OpenGapScore is the score the engine applies to the first position of a
// gap. The engine adds gap scores rather than subtracting penalties, and
// its per-position extension score also covers the first position, so the
// opening position carries both penalties.
func (a *Aligner) OpenGapScore() float64 {
	return -(a.GapOpen + a.GapExtend)
}

// ExtendGapScore is the score the engine applies to each gap position
// after the first.
func (a *Aligner) ExtendGapScore() float64 {
	return -a.GapExtend
}

// Algorithm names the engine algorithm the aligner's scope selects.
func (a *Aligner) Algorithm() string {
	if a.Scope == Global {
		return "Needleman-Wunsch with affine gaps"
	}
	return "Smith-Waterman with affine gaps"
}

// Scale is the factor applied to scores and penalties to make them
// integral for the engine.
func (a *Aligner) Scale() float64 {
	return a.scale
}

// configure builds the engine alphabet and integer score matrix. Scores
// are scaled by the smallest power of ten that makes the matrix and both
// penalties integral, then rounded.
func (a *Aligner) configure() error {
	symbols := a.Matrix.Symbols()
	if len(symbols) == 0 {
		return errors.New("pairwise: substitution matrix is empty")
	}

	a.scale = scoreScale(append(a.Matrix.Scores(), a.GapOpen, a.GapExtend))

	alpha, err := alphabet.NewAlphabet(
		string(GapChar)+string(symbols), feat.Undefined, GapChar, 0, alphabet.CaseSensitive,
	)
	if err != nil {
		return fmt.Errorf("pairwise: building alphabet: %w", err)
	}
	a.alpha = alpha

	// The engine matrix is indexed by alphabet letter index, gap at 0.
	n := len(symbols) + 1
	extend := scaled(-a.GapExtend, a.scale)
	a.scores = make(align.Linear, n)
	for i := range a.scores {
		a.scores[i] = make([]int, n)
	}
	for i := 1; i < n; i++ {
		a.scores[0][i] = extend
		a.scores[i][0] = extend
	}
	for i, x := range symbols {
		for j, y := range symbols {
			score, ok := a.Matrix.Score(x, y)
			if !ok {
				return fmt.Errorf("pairwise: matrix has no score for the pair %c/%c", x, y)
			}
			a.scores[i+1][j+1] = scaled(score, a.scale)
		}
	}
	a.gapOpen = scaled(-a.GapOpen, a.scale)

	a.valid = make(map[byte]bool, len(symbols))
	for _, sym := range symbols {
		a.valid[sym] = true
	}

	return nil
}

// Align returns the best alignment of seq1 and seq2, or nil if the engine
// finds none (an empty local alignment).
func (a *Aligner) Align(seq1, seq2 string) (*Alignment, error) {
	alns, err := a.AlignAll(seq1, seq2)
	if err != nil {
		return nil, err
	}
	if len(alns) == 0 {
		return nil, nil
	}
	return alns[0], nil
}

// AlignAll returns every alignment the engine reports. The engine reports
// a single optimal alignment.
func (a *Aligner) AlignAll(seq1, seq2 string) ([]*Alignment, error) {
	sa, err := a.newSeq("target", seq1)
	if err != nil {
		return nil, err
	}
	sb, err := a.newSeq("query", seq2)
	if err != nil {
		return nil, err
	}

	var pairs []feat.Pair
	switch a.Scope {
	case Global:
		nw := align.NWAffine{Matrix: a.scores, GapOpen: a.gapOpen}
		pairs, err = nw.Align(sa, sb)
	case Local:
		sw := align.SWAffine{Matrix: a.scores, GapOpen: a.gapOpen}
		pairs, err = sw.Align(sa, sb)
	default:
		return nil, fmt.Errorf("invalid scope %q", a.Scope)
	}
	if err != nil {
		return nil, fmt.Errorf("aligning: %w", err)
	}
	if len(pairs) == 0 {
		return nil, nil
	}

	formatted := align.Format(sa, sb, pairs, GapChar)
	target := fmt.Sprintf("%s", formatted[0])
	query := fmt.Sprintf("%s", formatted[1])
	// A local alignment with no positive-scoring pair formats to empty
	// strings rather than an empty pair list.
	if target == "" && query == "" {
		return nil, nil
	}
	aln, err := a.newAlignment(target, query)
	if err != nil {
		return nil, err
	}
	return []*Alignment{aln}, nil
}

func (a *Aligner) newSeq(id, s string) (*linear.Seq, error) {
	if s == "" {
		return nil, fmt.Errorf("%s sequence is empty", id)
	}
	for i := 0; i < len(s); i++ {
		if !a.valid[s[i]] {
			return nil, fmt.Errorf("%s sequence symbol %q is not in the substitution matrix", id, s[i])
		}
	}
	return linear.NewSeq(id, alphabet.BytesToLetters([]byte(s)), a.alpha), nil
}

// scoreScale returns the smallest power of ten from 1 to 1000 that makes
// every value integral, or 1000 if none does.
func scoreScale(values []float64) float64 {
	for _, scale := range []float64{1, 10, 100, 1000} {
		integral := true
		for _, v := range values {
			sv := v * scale
			if math.Abs(sv-math.Round(sv)) > 1e-9 {
				integral = false
				break
			}
		}
		if integral {
			return scale
		}
	}
	return 1000
}

func scaled(v, scale float64) int {
	return int(math.Round(v * scale))
}
