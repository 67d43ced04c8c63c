//Package simulation runs Monte-Carlo FEC trials over simulated channels and
// accumulates bit, frame and packet error statistics per operating point.
package simulation

import (
	"context"
	"math/rand"

	"github.com/cheggaaa/pb/v3"
	mat "github.com/nathanhack/sparsemat"
	"github.com/nathanhack/threadpool"
)

//Per-trial hooks. Every hook must be safe for concurrent calls; randomness
// comes only from the rng handed in, which is seeded per trial.
type MessageSource func(trial int, rng *rand.Rand) (message mat.SparseVector)
type Encoder func(message mat.SparseVector) (codeword mat.SparseVector)
type Channel func(trial int, codeword mat.SparseVector, esNoDB float64, rng *rand.Rand) (llr []float64)
type Decoder func(llr []float64) (message mat.SparseVector)

//Config holds the sweep-wide operating parameters.
type Config struct {
	Trials  int
	Threads int
	Seed    int64

	//transport packet size in bits, independent of the FEC frame size
	PacketBits int

	BitsPerSymbol int
	CodeRate      float64

	ShowProgress bool
}

//RunPoint runs cfg.Trials independent trials at one Es/No operating point
// and finalizes the accumulated statistics. Trials execute in parallel but
// their error patterns are committed in trial order, so the concatenated
// stream (and with it the packet statistics) is reproducible for a given
// seed regardless of thread count.
func RunPoint(ctx context.Context, cfg Config, esNoDB float64,
	createMessage MessageSource,
	encode Encoder,
	channel Channel,
	decode Decoder) PointStats {

	var bar *pb.ProgressBar
	if cfg.ShowProgress {
		bar = pb.StartNew(cfg.Trials)
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = 1
	}

	patterns := make([][]int16, cfg.Trials)
	pool := threadpool.NewFixedSize(ctx, threads, cfg.Trials)
	for t := 0; t < cfg.Trials; t++ {
		trial := t
		pool.Add(func() {
			if cfg.ShowProgress {
				bar.Increment()
			}
			rng := rand.New(rand.NewSource(cfg.Seed + int64(trial)))

			message := createMessage(trial, rng)
			codeword := encode(message)
			llr := channel(trial, codeword, esNoDB, rng)
			decoded := decode(llr)

			errs := make([]int16, message.Len())
			for i := 0; i < message.Len(); i++ {
				if decoded.At(i) != message.At(i) {
					errs[i] = 1
				}
			}
			patterns[trial] = errs
		})
	}
	pool.Wait()
	if cfg.ShowProgress {
		bar.Finish()
	}

	stats := PointStats{
		EsNoDB: esNoDB,
		EbNoDB: EbNoDB(esNoDB, cfg.BitsPerSymbol, cfg.CodeRate),
	}

	//commit in trial order; nil patterns are trials cancelled before running
	for _, errs := range patterns {
		if errs == nil {
			continue
		}
		frameErrs := 0
		for _, e := range errs {
			if e != 0 {
				frameErrs++
			}
		}

		stats.Counts.Bits += len(errs)
		stats.Counts.BitErrors += frameErrs
		stats.Counts.Frames++
		if frameErrs > 0 {
			stats.Counts.FrameErrors++
		}
		stats.FrameBER.Update(float64(frameErrs) / float64(len(errs)))
		stats.ErrorPattern = append(stats.ErrorPattern, errs...)
	}

	//re-segment the whole concatenated stream into transport packets,
	// packets may span frame boundaries; a trailing partial packet is
	// not counted
	if cfg.PacketBits > 0 {
		for start := 0; start+cfg.PacketBits <= len(stats.ErrorPattern); start += cfg.PacketBits {
			stats.Counts.Packets++
			for _, e := range stats.ErrorPattern[start : start+cfg.PacketBits] {
				if e != 0 {
					stats.Counts.PacketErrors++
					break
				}
			}
		}
	}

	stats.BER = ratio(stats.Counts.BitErrors, stats.Counts.Bits)
	stats.FER = ratio(stats.Counts.FrameErrors, stats.Counts.Frames)
	stats.PER = ratio(stats.Counts.PacketErrors, stats.Counts.Packets)
	return stats
}

//RunSweep runs one point per Es/No value, in order. Each point gets a fresh
// accumulator; the seed is offset per point so no trial reuses a random
// stream.
func RunSweep(ctx context.Context, cfg Config, esNoDBs []float64,
	createMessage MessageSource,
	encode Encoder,
	channel Channel,
	decode Decoder) []PointStats {

	points := make([]PointStats, 0, len(esNoDBs))
	for i, esNoDB := range esNoDBs {
		select {
		case <-ctx.Done():
			return points
		default:
		}

		pointCfg := cfg
		pointCfg.Seed = cfg.Seed + int64(i)*int64(cfg.Trials)
		points = append(points, RunPoint(ctx, pointCfg, esNoDB, createMessage, encode, channel, decode))
	}
	return points
}
