package submat

import (
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	data := `# A comment to be skipped.
A C G T
A 1 -1 -1 -1
C -1 1 -1 -1
G -1 -1 1 -1
T -1 -1 -1 1
`

	m, err := Read(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	if m.Len() != 16 {
		t.Errorf("got %d entries, want 16", m.Len())
	}

	if score, ok := m.Score('A', 'A'); !ok || score != 1 {
		t.Errorf("Score(A, A) = %v, %v, want 1, true", score, ok)
	}
	if score, ok := m.Score('A', 'G'); !ok || score != -1 {
		t.Errorf("Score(A, G) = %v, %v, want -1, true", score, ok)
	}
	if _, ok := m.Score('A', 'X'); ok {
		t.Error("Score(A, X) should not be present")
	}

	if string(m.Symbols()) != "ACGT" {
		t.Errorf("Symbols() = %q, want %q", m.Symbols(), "ACGT")
	}
}

func TestReadEntryCount(t *testing.T) {
	// 3 columns x 2 rows must load to exactly 6 entries.
	data := `A C G
A 1 0 0
C 0 1 0
`

	m, err := Read(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 6 {
		t.Errorf("got %d entries, want 6", m.Len())
	}
	if string(m.Symbols()) != "ACG" {
		t.Errorf("Symbols() = %q, want %q", m.Symbols(), "ACG")
	}
}

func TestReadFloatScores(t *testing.T) {
	data := `A C
A 1.5 -2.25
C -2.25 1.5
`

	m, err := Read(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if score, _ := m.Score('C', 'A'); score != -2.25 {
		t.Errorf("Score(C, A) = %v, want -2.25", score)
	}
}

func TestReadMismatchedRow(t *testing.T) {
	data := `A C G T
A 1 -1 -1 -1
C -1 1
`

	_, err := Read(strings.NewReader(data))
	if err == nil {
		t.Fatal("expected an error for a row with too few scores")
	}
	want := "line 3 has 2 scores but the header has 4 symbols"
	if err.Error() != want {
		t.Errorf("got error %q, want %q", err.Error(), want)
	}
}

func TestReadBadScore(t *testing.T) {
	data := `A C
A 1 x
C -1 1
`

	_, err := Read(strings.NewReader(data))
	if err == nil {
		t.Fatal("expected an error for an unparseable score")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q should name line 2", err.Error())
	}
}

func TestReadBadSymbols(t *testing.T) {
	for _, data := range []string{
		"AB C\nC 1 1\n",
		"A C\nAB 1 1\n",
		"A -\nA 1 1\n",
	} {
		if _, err := Read(strings.NewReader(data)); err == nil {
			t.Errorf("expected an error reading %q", data)
		}
	}
}

func TestReadEmpty(t *testing.T) {
	_, err := Read(strings.NewReader("# only comments\n\n"))
	if err != errNoHeader {
		t.Errorf("got %v, want %v", err, errNoHeader)
	}
}

func TestDefault(t *testing.T) {
	m := Default()
	if m.Len() != 25 {
		t.Errorf("default matrix has %d entries, want 25", m.Len())
	}
	if score, _ := m.Score('G', 'G'); score != 1 {
		t.Errorf("Score(G, G) = %v, want 1", score)
	}
	if score, _ := m.Score('A', 'T'); score != -1.5 {
		t.Errorf("Score(A, T) = %v, want -1.5", score)
	}
	if score, _ := m.Score('N', 'T'); score != 0 {
		t.Errorf("Score(N, T) = %v, want 0", score)
	}
}
