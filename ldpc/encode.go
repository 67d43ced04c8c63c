package ldpc

import (
	"fmt"

	mat "github.com/nathanhack/sparsemat"
)

//Encode maps message bits onto a systematic codeword using the parity rows
// directly, no generator matrix is needed. Bits [0,k) carry the message and
// check row m resolves its parity bit at column k+m by back substitution over
// the row, so every check sums to zero by construction.
// Each check row's highest indexed variable must be its own parity column
// (the staircase structure LoadMatrix enforces); a row without it panics.
func Encode(g *Graph, message mat.SparseVector) (codeword mat.SparseVector) {
	k := g.MessageLength()
	if message.Len() != k {
		panic(fmt.Sprintf("message length == %v is required but found %v", k, message.Len()))
	}

	codeword = mat.CSRVec(g.VariableCount())
	for i := 0; i < k; i++ {
		codeword.Set(i, message.At(i))
	}

	for m := 0; m < g.CheckCount(); m++ {
		parity := k + m
		adj := g.CheckNeighbors(m)
		if len(adj) == 0 || adj[len(adj)-1] != parity {
			panic(fmt.Sprintf("check %v must have its highest variable at parity column %v", m, parity))
		}
		sum := 0
		for _, n := range adj {
			if n == parity {
				continue
			}
			sum ^= codeword.At(n)
		}
		codeword.Set(parity, sum)
	}

	return codeword
}

//Message extracts the systematic message bits from a codeword.
func Message(g *Graph, codeword mat.SparseVector) (message mat.SparseVector) {
	if codeword.Len() != g.VariableCount() {
		panic(fmt.Sprintf("codeword length == %v is required but found %v", g.VariableCount(), codeword.Len()))
	}
	return codeword.Slice(0, g.MessageLength())
}
