package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "c2dev",
	Short: "FEC performance simulation over AWGN and HF channels",
	Long: `Monte-Carlo simulation of short blocklength FEC (LDPC, Golay, diversity)
over AWGN and multipath fading HF channels, producing BER/FER/PER curves
versus Eb/No.`,
}

//Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
