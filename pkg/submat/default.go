package submat

import (
	"bytes"
	_ "embed"
	"sync"
)

//go:embed sub-matrix.txt
var defaultMatrixText []byte

var defaultMatrix = sync.OnceValue(func() *Matrix {
	m, err := Read(bytes.NewReader(defaultMatrixText))
	if err != nil {
		panic("submat: embedded default matrix is invalid: " + err.Error())
	}
	return m
})

// Default returns the built-in nucleotide substitution matrix.
func Default() *Matrix {
	return defaultMatrix()
}
