package golay

import (
	"fmt"

	"github.com/jumbo77/c2dev-700/cmd/internal/simulate"
	golaycode "github.com/jumbo77/c2dev-700/golay"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var GolayRun = func(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		fmt.Println("requires RESULT_JSON")
		return
	}

	rate := float64(golaycode.MessageBits) / float64(golaycode.CodewordBits)
	err := simulate.Sweep("golay", golaycode.MessageBits, rate,
		golaycode.EncodeVector, golaycode.DecodeVector, args[0])
	if err != nil {
		logrus.Error(err)
	}
}
