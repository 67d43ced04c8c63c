package ldpc

import (
	"fmt"
	"math"

	mat "github.com/nathanhack/sparsemat"
)

//MaxIterations is the default iteration budget for Decode.
const MaxIterations = 100

// keeps atanh finite when a check product saturates
const maxProduct = 1 - 1e-12

//DecodeResult records the trajectory of one decode call: the hard decision
// vector and the number of satisfied checks after every iteration.
type DecodeResult struct {
	HardDecisions []mat.SparseVector
	Satisfied     []int
}

//Converged reports whether the final recorded iteration satisfied every check.
func (r DecodeResult) Converged(g *Graph) bool {
	if len(r.Satisfied) == 0 {
		return false
	}
	return r.Satisfied[len(r.Satisfied)-1] == g.CheckCount()
}

//Select returns the hard decision of the last iteration whose satisfied-check
// count was non-zero. When every iteration recorded zero satisfied checks it
// falls back to the final iteration's decision.
func (r DecodeResult) Select() mat.SparseVector {
	for i := len(r.Satisfied) - 1; i >= 0; i-- {
		if r.Satisfied[i] > 0 {
			return r.HardDecisions[i]
		}
	}
	return r.HardDecisions[len(r.HardDecisions)-1]
}

type edge struct {
	check int
	pos   int //position of the variable within the check's adjacency list
}

//Decode runs sum-product belief propagation over the graph. llr follows the
// 1-2b BPSK mapping: negative values favor bit=1. It iterates until all
// checks are satisfied or maxIter iterations have run, recording the hard
// decisions and satisfied-check count of every iteration.
func Decode(g *Graph, llr []float64, maxIter int) DecodeResult {
	if len(llr) != g.VariableCount() {
		panic(fmt.Sprintf("llr length == %v is required but found %v", g.VariableCount(), len(llr)))
	}
	if maxIter < 1 {
		panic(fmt.Sprintf("maxIter >= 1 is required but found %v", maxIter))
	}

	checks := g.CheckCount()
	vars := g.VariableCount()

	//variable->check and check->variable messages, one per edge,
	// indexed by [check][position within the check's adjacency]
	vc := make([][]float64, checks)
	cv := make([][]float64, checks)
	varEdges := make([][]edge, vars)
	for m := 0; m < checks; m++ {
		adj := g.CheckNeighbors(m)
		vc[m] = make([]float64, len(adj))
		cv[m] = make([]float64, len(adj))
		for j, n := range adj {
			vc[m][j] = llr[n]
			varEdges[n] = append(varEdges[n], edge{check: m, pos: j})
		}
	}

	result := DecodeResult{
		HardDecisions: make([]mat.SparseVector, 0, maxIter),
		Satisfied:     make([]int, 0, maxIter),
	}

	total := make([]float64, vars)
	for iter := 0; iter < maxIter; iter++ {
		//check node pass: each outgoing message excludes the
		// recipient's own incoming message from the product
		for m := 0; m < checks; m++ {
			in := vc[m]
			for j := range in {
				product := 1.0
				for jj := range in {
					if jj == j {
						continue
					}
					product *= math.Tanh(in[jj] / 2)
				}
				product = clamp(product, -maxProduct, maxProduct)
				cv[m][j] = 2 * math.Atanh(product)
			}
		}

		//variable node pass: channel LLR plus all incoming check messages
		hard := mat.CSRVec(vars)
		for n := 0; n < vars; n++ {
			sum := llr[n]
			for _, e := range varEdges[n] {
				sum += cv[e.check][e.pos]
			}
			total[n] = sum
			if sum < 0 {
				hard.Set(n, 1)
			}
		}
		for n := 0; n < vars; n++ {
			for _, e := range varEdges[n] {
				vc[e.check][e.pos] = total[n] - cv[e.check][e.pos]
			}
		}

		satisfied := g.SatisfiedChecks(hard)
		result.HardDecisions = append(result.HardDecisions, hard)
		result.Satisfied = append(result.Satisfied, satisfied)

		if satisfied == checks {
			break
		}
	}

	return result
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
