package simulation

import (
	"fmt"
	"math"

	"github.com/nathanhack/avgstd"
	"golang.org/x/exp/constraints"
)

//Counts are the raw accumulators for one operating point. They are plain
// values threaded through the run, never shared mutable state, so points can
// be reduced in parallel by summing fields.
type Counts struct {
	BitErrors int
	Bits      int

	FrameErrors int
	Frames      int

	PacketErrors int
	Packets      int
}

func (c Counts) Add(o Counts) Counts {
	c.BitErrors += o.BitErrors
	c.Bits += o.Bits
	c.FrameErrors += o.FrameErrors
	c.Frames += o.Frames
	c.PacketErrors += o.PacketErrors
	c.Packets += o.Packets
	return c
}

//PointStats is the finalized result of one Es/No operating point.
type PointStats struct {
	EsNoDB float64
	EbNoDB float64

	BER float64
	FER float64
	PER float64

	Counts Counts

	//running per-frame bit error fraction, mean and spread
	FrameBER avgstd.AvgStd

	//one entry per transmitted message bit in transmission order,
	// 1 where the decoded bit differed from the source bit
	ErrorPattern []int16
}

func (p PointStats) String() string {
	return fmt.Sprintf("{EbNo:%0.02f BER:%0.02e(+/-%0.02e) FER:%0.02e PER:%0.02e}",
		p.EbNoDB, p.BER, math.Sqrt(p.FrameBER.SampledVariance()), p.FER, p.PER)
}

//EbNoDB derives the per-information-bit SNR from the per-symbol SNR.
func EbNoDB(esNoDB float64, bitsPerSymbol int, codeRate float64) float64 {
	return esNoDB - 10*math.Log10(float64(bitsPerSymbol)*codeRate)
}

func ratio[T constraints.Integer](num, den T) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
