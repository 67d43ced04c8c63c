package simulation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"testing"

	mat "github.com/nathanhack/sparsemat"
)

//identity "code" used to exercise the harness bookkeeping directly
func identityHooks() (Encoder, Channel, Decoder) {
	encode := func(message mat.SparseVector) mat.SparseVector {
		return message
	}
	channel := func(trial int, codeword mat.SparseVector, esNoDB float64, rng *rand.Rand) []float64 {
		llr := make([]float64, codeword.Len())
		for i := range llr {
			llr[i] = 4 * (1 - 2*float64(codeword.At(i)))
		}
		return llr
	}
	decode := func(llr []float64) mat.SparseVector {
		message := mat.CSRVec(len(llr))
		for i, v := range llr {
			if v < 0 {
				message.Set(i, 1)
			}
		}
		return message
	}
	return encode, channel, decode
}

func testConfig() Config {
	return Config{
		Trials:        10,
		Threads:       1,
		Seed:          1,
		PacketBits:    16,
		BitsPerSymbol: 1,
		CodeRate:      0.5,
	}
}

func TestRunPoint_NoErrors(t *testing.T) {
	cfg := testConfig()
	encode, channel, decode := identityHooks()
	createMessage := func(trial int, rng *rand.Rand) mat.SparseVector {
		return RandomMessage(rng, 8)
	}

	stats := RunPoint(context.Background(), cfg, 3, createMessage, encode, channel, decode)

	if stats.Counts.Bits != 80 || stats.Counts.Frames != 10 {
		t.Fatalf("expected 80 bits over 10 frames but found %v over %v", stats.Counts.Bits, stats.Counts.Frames)
	}
	if stats.Counts.BitErrors != 0 || stats.Counts.FrameErrors != 0 || stats.Counts.PacketErrors != 0 {
		t.Fatalf("expected zero errors but found %+v", stats.Counts)
	}
	if stats.BER != 0 || stats.FER != 0 || stats.PER != 0 {
		t.Fatalf("expected zero rates but found %+v", stats)
	}
	if stats.Counts.Packets != 5 {
		t.Fatalf("expected 5 packets of 16 bits from 80 bits but found %v", stats.Counts.Packets)
	}
	if len(stats.ErrorPattern) != 80 {
		t.Fatalf("expected 80 pattern entries but found %v", len(stats.ErrorPattern))
	}

	//EbNo = Es - 10log10(bitsPerSymbol * rate)
	expected := 3 - 10*math.Log10(0.5)
	if math.Abs(stats.EbNoDB-expected) > 1e-12 {
		t.Fatalf("expected EbNo %v but found %v", expected, stats.EbNoDB)
	}
}

func TestRunPoint_EveryFrameErrored(t *testing.T) {
	cfg := testConfig()
	encode, channel, _ := identityHooks()
	createMessage := func(trial int, rng *rand.Rand) mat.SparseVector {
		return RandomMessage(rng, 8)
	}
	//decoder flips bit 0 of every frame
	decode := func(llr []float64) mat.SparseVector {
		message := mat.CSRVec(len(llr))
		for i, v := range llr {
			if v < 0 {
				message.Set(i, 1)
			}
		}
		message.Set(0, message.At(0)+1)
		return message
	}

	stats := RunPoint(context.Background(), cfg, 3, createMessage, encode, channel, decode)

	if stats.Counts.BitErrors != 10 {
		t.Fatalf("expected 10 bit errors but found %v", stats.Counts.BitErrors)
	}
	if stats.BER != 10.0/80.0 {
		t.Fatalf("expected BER 0.125 but found %v", stats.BER)
	}
	if stats.FER != 1 {
		t.Fatalf("expected FER 1 but found %v", stats.FER)
	}
	//each 16 bit packet spans two 8 bit frames and both carry an error
	if stats.PER != 1 {
		t.Fatalf("expected PER 1 but found %v", stats.PER)
	}
	if stats.FrameBER.Mean != 0.125 {
		t.Fatalf("expected mean frame BER 0.125 but found %v", stats.FrameBER.Mean)
	}
}

func TestRunPoint_PacketsSpanFrames(t *testing.T) {
	cfg := testConfig()
	cfg.Trials = 3
	cfg.PacketBits = 5 //does not divide the 8 bit frames

	encode, channel, decode := identityHooks()
	createMessage := func(trial int, rng *rand.Rand) mat.SparseVector {
		return RandomMessage(rng, 8)
	}

	stats := RunPoint(context.Background(), cfg, 3, createMessage, encode, channel, decode)

	//24 bits -> 4 full packets of 5 bits, trailing 4 bits uncounted
	if stats.Counts.Packets != 4 {
		t.Fatalf("expected 4 packets but found %v", stats.Counts.Packets)
	}
}

func TestRunPoint_DeterministicAcrossThreads(t *testing.T) {
	encode, _, decodeClean := identityHooks()
	createMessage := func(trial int, rng *rand.Rand) mat.SparseVector {
		return RandomMessage(rng, 8)
	}
	//channel that injects rng driven sign flips
	noisy := func(trial int, codeword mat.SparseVector, esNoDB float64, rng *rand.Rand) []float64 {
		llr := make([]float64, codeword.Len())
		for i := range llr {
			llr[i] = 4 * (1 - 2*float64(codeword.At(i)))
			if rng.Float64() < 0.2 {
				llr[i] = -llr[i]
			}
		}
		return llr
	}

	cfg := testConfig()
	cfg.Trials = 50

	cfg.Threads = 1
	serial := RunPoint(context.Background(), cfg, 3, createMessage, encode, noisy, decodeClean)

	cfg.Threads = 8
	parallel := RunPoint(context.Background(), cfg, 3, createMessage, encode, noisy, decodeClean)

	if !reflect.DeepEqual(serial.ErrorPattern, parallel.ErrorPattern) {
		t.Fatalf("expected identical error patterns regardless of thread count")
	}
	if serial.Counts != parallel.Counts {
		t.Fatalf("expected identical counts but found %+v and %+v", serial.Counts, parallel.Counts)
	}
}

func TestRunSweep_IndependentPoints(t *testing.T) {
	encode, channel, decode := identityHooks()
	createMessage := func(trial int, rng *rand.Rand) mat.SparseVector {
		return RandomMessage(rng, 8)
	}

	cfg := testConfig()
	points := RunSweep(context.Background(), cfg, []float64{0, 3, 6}, createMessage, encode, channel, decode)

	if len(points) != 3 {
		t.Fatalf("expected 3 points but found %v", len(points))
	}
	for i, esNo := range []float64{0, 3, 6} {
		if points[i].EsNoDB != esNo {
			t.Fatalf("point %v: expected EsNo %v but found %v", i, esNo, points[i].EsNoDB)
		}
		if points[i].Counts.Frames != cfg.Trials {
			t.Fatalf("point %v: expected %v frames but found %v", i, cfg.Trials, points[i].Counts.Frames)
		}
	}
}

func TestRunSweep_Cancelled(t *testing.T) {
	encode, channel, decode := identityHooks()
	createMessage := func(trial int, rng *rand.Rand) mat.SparseVector {
		return RandomMessage(rng, 8)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	points := RunSweep(ctx, testConfig(), []float64{0, 3, 6}, createMessage, encode, channel, decode)
	if len(points) != 0 {
		t.Fatalf("expected no points after cancellation but found %v", len(points))
	}
}

func TestCounts_Add(t *testing.T) {
	a := Counts{BitErrors: 1, Bits: 10, FrameErrors: 1, Frames: 2, PacketErrors: 0, Packets: 1}
	b := Counts{BitErrors: 2, Bits: 20, FrameErrors: 0, Frames: 3, PacketErrors: 2, Packets: 4}

	sum := a.Add(b)
	expected := Counts{BitErrors: 3, Bits: 30, FrameErrors: 1, Frames: 5, PacketErrors: 2, Packets: 5}
	if sum != expected {
		t.Fatalf("expected %+v but found %+v", expected, sum)
	}
}

func ExampleRunPoint() {
	encode, channel, decode := identityHooks()
	createMessage := func(trial int, rng *rand.Rand) mat.SparseVector {
		return RandomMessage(rng, 8)
	}

	cfg := Config{
		Trials:        100,
		Threads:       1,
		Seed:          1,
		PacketBits:    16,
		BitsPerSymbol: 1,
		CodeRate:      0.5,
	}
	stats := RunPoint(context.Background(), cfg, 3, createMessage, encode, channel, decode)

	fmt.Println("Error rates :", stats)
	//Output:
	// Error rates : {EbNo:6.01 BER:0.00e+00(+/-0.00e+00) FER:0.00e+00 PER:0.00e+00}
}
