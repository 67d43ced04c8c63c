package ldpc

import (
	"fmt"

	mat "github.com/nathanhack/sparsemat"
)

//Graph is the Tanner graph of a parity check matrix H.
// Rows of H are check nodes and columns are variable nodes (codeword bits).
// Immutable once built; safe for concurrent readers.
type Graph struct {
	checkCount    int
	variableCount int
	checkAdj      [][]int //per check, adjacent variables in column order
	variableAdj   [][]int //per variable, adjacent checks in row order
}

//NewGraph builds the two adjacency representations from H.
// The ordering of each adjacency list follows the matrix ordering exactly,
// encoder and decoder indexing depend on it.
func NewGraph(H mat.SparseMat) *Graph {
	rows, cols := H.Dims()
	g := &Graph{
		checkCount:    rows,
		variableCount: cols,
		checkAdj:      make([][]int, rows),
		variableAdj:   make([][]int, cols),
	}

	for m := 0; m < rows; m++ {
		g.checkAdj[m] = H.Row(m).NonzeroArray()
		for _, n := range g.checkAdj[m] {
			g.variableAdj[n] = append(g.variableAdj[n], m)
		}
	}
	return g
}

func (g *Graph) CheckCount() int {
	return g.checkCount
}

func (g *Graph) VariableCount() int {
	return g.variableCount
}

//MessageLength is the number of systematic (non-parity) bit positions.
func (g *Graph) MessageLength() int {
	return g.variableCount - g.checkCount
}

func (g *Graph) CodeRate() float64 {
	return float64(g.MessageLength()) / float64(g.variableCount)
}

//CheckNeighbors returns the variables adjacent to check m, in column order.
// The returned slice is owned by the graph and must not be mutated.
func (g *Graph) CheckNeighbors(m int) []int {
	return g.checkAdj[m]
}

//VariableNeighbors returns the checks adjacent to variable n, in row order.
func (g *Graph) VariableNeighbors(n int) []int {
	return g.variableAdj[n]
}

//SatisfiedChecks counts the parity rows whose mod-2 sum over the codeword is zero.
func (g *Graph) SatisfiedChecks(codeword mat.SparseVector) int {
	if codeword.Len() != g.variableCount {
		panic(fmt.Sprintf("codeword length == %v is required but found %v", g.variableCount, codeword.Len()))
	}

	satisfied := 0
	for m := 0; m < g.checkCount; m++ {
		sum := 0
		for _, n := range g.checkAdj[m] {
			sum ^= codeword.At(n)
		}
		if sum == 0 {
			satisfied++
		}
	}
	return satisfied
}
