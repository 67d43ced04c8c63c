package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jumbo77/c2dev-700/cmd/internal/simulate"
	"github.com/spf13/cobra"
)

var OutputFile string

var CSVRun = func(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("requires at least one RESULTS_JSON")
		return
	}

	f, err := os.Create(OutputFile)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	err = w.Write([]string{"Results File", "Code", "Channel", "EsNo dB", "EbNo dB", "BER", "FER", "PER", "Bits", "Frames", "Packets"})
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, resultFile := range args {
		results, err := simulate.Load(resultFile)
		if err != nil {
			fmt.Println(err)
			return
		}
		if results == nil {
			fmt.Printf("results file %v not found\n", resultFile)
			return
		}

		name := strings.TrimSuffix(resultFile, filepath.Ext(resultFile))
		for _, p := range results.Points {
			record := []string{
				name,
				results.Code,
				results.Channel,
				fmt.Sprintf("%v", p.EsNoDB),
				fmt.Sprintf("%v", p.EbNoDB),
				fmt.Sprintf("%v", p.BER),
				fmt.Sprintf("%v", p.FER),
				fmt.Sprintf("%v", p.PER),
				fmt.Sprintf("%v", p.Counts.Bits),
				fmt.Sprintf("%v", p.Counts.Frames),
				fmt.Sprintf("%v", p.Counts.Packets),
			}
			if err := w.Write(record); err != nil {
				fmt.Println(err)
				return
			}
		}
	}
}
