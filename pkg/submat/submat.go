/*
Package submat reads substitution matrices from a plain-text format.

The format is whitespace-delimited: lines starting with '#' are comments,
the first remaining line is an ordered list of column symbols, and each
later line is a row symbol followed by one score per column. Scores are
keyed by the (column symbol, row symbol) pair.
*/
package submat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// GapChar is reserved for alignment gaps and may not appear as a matrix
// symbol.
const GapChar = '-'

var errNoHeader = errors.New("no header line of column symbols found")

// Matrix is a substitution matrix: a score for each (column symbol,
// row symbol) pair.
type Matrix struct {
	cols   []byte
	rows   []byte
	scores map[[2]byte]float64
}

// Read parses a substitution matrix from r.
func Read(r io.Reader) (*Matrix, error) {
	m := &Matrix{scores: make(map[[2]byte]float64)}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if m.cols == nil {
			for _, field := range fields {
				sym, err := parseSymbol(field, lineNum)
				if err != nil {
					return nil, err
				}
				m.cols = append(m.cols, sym)
			}
			continue
		}
		rowSym, err := parseSymbol(fields[0], lineNum)
		if err != nil {
			return nil, err
		}
		scoreStrs := fields[1:]
		if len(scoreStrs) != len(m.cols) {
			return nil, fmt.Errorf(
				"line %d has %d scores but the header has %d symbols",
				lineNum, len(scoreStrs), len(m.cols),
			)
		}
		m.rows = append(m.rows, rowSym)
		for i, scoreStr := range scoreStrs {
			score, err := strconv.ParseFloat(scoreStr, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad score %q", lineNum, scoreStr)
			}
			m.scores[[2]byte{m.cols[i], rowSym}] = score
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if m.cols == nil {
		return nil, errNoHeader
	}

	return m, nil
}

// ReadFile parses a substitution matrix from the file at path.
func ReadFile(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func parseSymbol(field string, lineNum int) (byte, error) {
	if len(field) != 1 {
		return 0, fmt.Errorf("line %d: symbol %q is not a single character", lineNum, field)
	}
	if field[0] == GapChar {
		return 0, fmt.Errorf("line %d: %q is reserved for alignment gaps", lineNum, field)
	}
	return field[0], nil
}

// Score returns the score for the (column, row) symbol pair x, y.
func (m *Matrix) Score(x, y byte) (float64, bool) {
	score, ok := m.scores[[2]byte{x, y}]
	return score, ok
}

// Len returns the number of symbol pairs with a score.
func (m *Matrix) Len() int {
	return len(m.scores)
}

// Symbols returns the union of column and row symbols, columns first, each
// in order of first appearance.
func (m *Matrix) Symbols() []byte {
	var symbols []byte
	seen := make(map[byte]bool)
	for _, set := range [][]byte{m.cols, m.rows} {
		for _, sym := range set {
			if !seen[sym] {
				seen[sym] = true
				symbols = append(symbols, sym)
			}
		}
	}
	return symbols
}

// Scores returns the scores of every symbol pair.
func (m *Matrix) Scores() []float64 {
	scores := make([]float64, 0, len(m.scores))
	for _, score := range m.scores {
		scores = append(scores, score)
	}
	return scores
}
