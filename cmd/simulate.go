package cmd

import (
	"github.com/jumbo77/c2dev-700/cmd/internal/simulate"
	"github.com/jumbo77/c2dev-700/cmd/internal/simulate/diversity"
	"github.com/jumbo77/c2dev-700/cmd/internal/simulate/golay"
	"github.com/jumbo77/c2dev-700/cmd/internal/simulate/ldpc"

	"github.com/spf13/cobra"
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:     "simulate",
	Aliases: []string{"sim", "s"},
	Short:   "Channel simulators",
	Long:    `Monte-Carlo channel simulators producing BER/FER/PER curves versus Eb/No`,
}

// simulateLdpcCmd represents the ldpc command
var simulateLdpcCmd = &cobra.Command{
	Use:     "ldpc MATRIX_TXT RESULT_JSON",
	Aliases: []string{"l"},
	Short:   "LDPC belief propagation simulator",
	Long:    `Simulates an LDPC code loaded from a dense 0/1 parity check matrix file, decoded with sum-product belief propagation`,
	Run:     ldpc.LdpcRun,
}

// simulateGolayCmd represents the golay command
var simulateGolayCmd = &cobra.Command{
	Use:     "golay RESULT_JSON",
	Aliases: []string{"g"},
	Short:   "Golay(24,12) simulator",
	Long:    `Simulates the extended Golay(24,12) code with hard decision decoding`,
	Run:     golay.GolayRun,
}

// simulateDiversityCmd represents the diversity command
var simulateDiversityCmd = &cobra.Command{
	Use:     "diversity RESULT_JSON",
	Aliases: []string{"d"},
	Short:   "Two-branch diversity simulator",
	Long:    `Simulates a rate 1/2 two-branch diversity code with soft combining`,
	Run:     diversity.DiversityRun,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.PersistentFlags().UintVarP(&simulate.Trials, "trials", "t", 5_000, "the number of trials per operating point")
	simulateCmd.PersistentFlags().UintVar(&simulate.Threads, "threads", 0, "number of threads to use (0 means to use the # of threads equal to the # of CPUs)")
	simulateCmd.PersistentFlags().Float64SliceVarP(&simulate.EsNo, "esno", "e", []float64{0, 1, 2, 3, 4, 5, 6}, "Es/No operating points to sweep, in dB")
	simulateCmd.PersistentFlags().StringVarP(&simulate.Channel, "channel", "c", "awgn", "channel model: awgn or hf")
	simulateCmd.PersistentFlags().BoolVarP(&simulate.Genie, "genie", "g", true, "scale LLRs by the known Es/No instead of a blind estimate")
	simulateCmd.PersistentFlags().UintVarP(&simulate.PacketBits, "packet", "p", 224, "transport packet size in bits for PER, independent of the frame size")
	simulateCmd.PersistentFlags().Int64VarP(&simulate.Seed, "seed", "s", 1, "base seed for the per-trial random streams")
	simulateCmd.PersistentFlags().Float64Var(&simulate.DopplerHz, "doppler", 1.0, "Doppler spread of the hf channel in Hz")
	simulateCmd.PersistentFlags().Float64Var(&simulate.SymbolRateHz, "rate", 50.0, "symbol rate of the hf channel in Hz")
	simulateCmd.PersistentFlags().StringVar(&simulate.ErrFile, "errfile", "", "optional binary error pattern output file (int16 per bit)")

	simulateCmd.AddCommand(simulateLdpcCmd)
	simulateLdpcCmd.Flags().UintVarP(&ldpc.MaxIter, "iters", "i", 100, "max number of belief propagation iterations")

	simulateCmd.AddCommand(simulateGolayCmd)

	simulateCmd.AddCommand(simulateDiversityCmd)
	simulateDiversityCmd.Flags().UintVarP(&diversity.MessageBits, "message", "m", 56, "the number of message bits per frame")
}
