package pairwise

import (
	"fmt"
	"strings"
)

// An Alignment is a formatted pairwise alignment: the gapped target and
// query strings, a match line ('|' match, '.' mismatch, '-' gap), and the
// alignment score under the aligner's matrix and gap penalties.
type Alignment struct {
	Target  string
	Matches string
	Query   string
	Score   float64
}

// String returns the three-line human-readable representation.
func (aln *Alignment) String() string {
	return strings.Join([]string{aln.Target, aln.Matches, aln.Query}, "\n")
}

func (a *Aligner) newAlignment(target, query string) (*Alignment, error) {
	if len(target) != len(query) {
		return nil, fmt.Errorf("formatted alignment strings differ in length: %d != %d", len(target), len(query))
	}
	score, err := a.scoreColumns(target, query)
	if err != nil {
		return nil, err
	}
	return &Alignment{
		Target:  target,
		Matches: matchLine(target, query),
		Query:   query,
		Score:   score,
	}, nil
}

// scoreColumns computes the alignment score column by column with the
// original float matrix, so the score is exact even when the engine ran on
// scaled integers.
func (a *Aligner) scoreColumns(target, query string) (float64, error) {
	var score float64
	inTargetGap, inQueryGap := false, false
	for i := 0; i < len(target); i++ {
		t, q := target[i], query[i]
		switch {
		case t == GapChar && q == GapChar:
			return 0, fmt.Errorf("column %d is a gap in both sequences", i+1)
		case t == GapChar:
			if inTargetGap {
				score += a.ExtendGapScore()
			} else {
				score += a.OpenGapScore()
			}
			inTargetGap, inQueryGap = true, false
		case q == GapChar:
			if inQueryGap {
				score += a.ExtendGapScore()
			} else {
				score += a.OpenGapScore()
			}
			inTargetGap, inQueryGap = false, true
		default:
			s, ok := a.Matrix.Score(t, q)
			if !ok {
				return 0, fmt.Errorf("matrix has no score for the pair %c/%c", t, q)
			}
			score += s
			inTargetGap, inQueryGap = false, false
		}
	}
	return score, nil
}

func matchLine(target, query string) string {
	matches := make([]byte, len(target))
	for i := 0; i < len(target); i++ {
		switch {
		case target[i] == GapChar || query[i] == GapChar:
			matches[i] = GapChar
		case target[i] == query[i]:
			matches[i] = '|'
		default:
			matches[i] = '.'
		}
	}
	return string(matches)
}
