//Package simulate holds the shared wiring for the simulate subcommands: the
// common flag set, the operating point sweep, results JSON IO and the error
// pattern file.
package simulate

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/jumbo77/c2dev-700/channel"
	"github.com/jumbo77/c2dev-700/simulation"
	mat "github.com/nathanhack/sparsemat"
)

//flags shared by every simulate subcommand
var (
	Trials       uint
	Threads      uint
	EsNo         []float64
	Channel      string
	Genie        bool
	PacketBits   uint
	Seed         int64
	DopplerHz    float64
	SymbolRateHz float64
	ErrFile      string
)

//Results is the structured output of one sweep, one entry per operating
// point, consumed by the results subcommands.
type Results struct {
	Code       string
	Channel    string
	Genie      bool
	PacketBits int
	Trials     int
	Points     []simulation.PointStats
}

//Sweep runs the Es/No sweep for one code using the shared flags: builds the
// channel model, runs all points (cancellable via SIGINT/SIGTERM), then
// writes the results JSON and, when requested, the error pattern file.
func Sweep(codeName string, messageBits int, codeRate float64,
	encode simulation.Encoder, decode simulation.Decoder, resultPath string) error {

	kind, err := channel.ParseKind(Channel)
	if err != nil {
		return err
	}

	threads := int(Threads)
	if threads == 0 {
		threads = runtime.NumCPU()
	}

	cfg := simulation.Config{
		Trials:        int(Trials),
		Threads:       threads,
		Seed:          Seed,
		PacketBits:    int(PacketBits),
		BitsPerSymbol: 1,
		CodeRate:      codeRate,
		ShowProgress:  true,
	}

	model := channel.Model{
		Kind:         kind,
		Genie:        Genie,
		DopplerHz:    DopplerHz,
		SymbolRateHz: SymbolRateHz,
	}

	createMessage := func(trial int, rng *rand.Rand) mat.SparseVector {
		return simulation.RandomMessage(rng, messageBits)
	}

	//one channel batch per operating point: the fading realization spans
	// every trial of the point and each trial consumes its own slice. The
	// fading seeds sit beyond every per-trial stream of the sweep.
	codewordBits := encode(simulation.RandomMessage(rand.New(rand.NewSource(Seed)), messageBits)).Len()
	batches := make(map[float64]*channel.Batch, len(EsNo))
	for i, esNoDB := range EsNo {
		m := model
		m.EsNoDB = esNoDB
		fadingSeed := Seed + int64(len(EsNo))*int64(Trials) + int64(i)
		batches[esNoDB] = m.NewBatch(rand.New(rand.NewSource(fadingSeed)), int(Trials), codewordBits)
	}
	channelHook := func(trial int, codeword mat.SparseVector, esNoDB float64, rng *rand.Rand) []float64 {
		return batches[esNoDB].Transmit(trial, codeword, rng)
	}

	ctx, cancel := signalContext()
	defer cancel()

	points := simulation.RunSweep(ctx, cfg, EsNo, createMessage, encode, channelHook, decode)

	results := &Results{
		Code:       codeName,
		Channel:    kind.String(),
		Genie:      Genie,
		PacketBits: int(PacketBits),
		Trials:     int(Trials),
		Points:     points,
	}
	if err := Save(resultPath, results); err != nil {
		return err
	}

	if ErrFile != "" {
		return simulation.WriteErrorPattern(ErrFile, points)
	}
	return nil
}

func signalContext() (context.Context, context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := <-sigs
		fmt.Println()
		fmt.Println(sig)
		cancel()
	}()
	return ctx, cancel
}

//Save writes the sweep results as JSON.
func Save(filepath string, results *Results) error {
	bs, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("error serializing results: %v", err)
	}

	if err := os.WriteFile(filepath, bs, 0644); err != nil {
		return fmt.Errorf("error while saving results to %v: %v", filepath, err)
	}
	return nil
}

//Load reads a sweep results JSON. A missing file returns nil, nil.
func Load(filepath string) (*Results, error) {
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return nil, nil
	}

	bs, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error while reading file %v: %v", filepath, err)
	}

	var results Results
	if err := json.Unmarshal(bs, &results); err != nil {
		return nil, fmt.Errorf("error while unmarshalling file %v: %v", filepath, err)
	}
	return &results, nil
}
