package diversity

import (
	"fmt"

	"github.com/jumbo77/c2dev-700/cmd/internal/simulate"
	diversitycode "github.com/jumbo77/c2dev-700/diversity"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var MessageBits uint

var DiversityRun = func(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		fmt.Println("requires RESULT_JSON")
		return
	}

	err := simulate.Sweep("diversity", int(MessageBits), 0.5,
		diversitycode.Encode, diversitycode.Decode, args[0])
	if err != nil {
		logrus.Error(err)
	}
}
