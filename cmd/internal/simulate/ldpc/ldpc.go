package ldpc

import (
	"fmt"

	"github.com/jumbo77/c2dev-700/cmd/internal/simulate"
	ldpccode "github.com/jumbo77/c2dev-700/ldpc"
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var MaxIter uint

var LdpcRun = func(cmd *cobra.Command, args []string) {
	if len(args) != 2 {
		fmt.Println("requires both MATRIX_TXT RESULT_JSON")
		return
	}

	H, err := ldpccode.LoadMatrix(args[0])
	if err != nil {
		logrus.Error(err)
		return
	}
	graph := ldpccode.NewGraph(H)
	logrus.Debugf("loaded (%v,%v) code, rate %v", graph.CheckCount(), graph.VariableCount(), graph.CodeRate())

	encode := func(message mat.SparseVector) mat.SparseVector {
		return ldpccode.Encode(graph, message)
	}
	decode := func(llr []float64) mat.SparseVector {
		result := ldpccode.Decode(graph, llr, int(MaxIter))
		return ldpccode.Message(graph, result.Select())
	}

	err = simulate.Sweep("ldpc", graph.MessageLength(), graph.CodeRate(), encode, decode, args[1])
	if err != nil {
		logrus.Error(err)
	}
}
