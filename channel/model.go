package channel

import (
	"fmt"
	"math"
	"math/rand"

	mat "github.com/nathanhack/sparsemat"
	mat2 "gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

//Kind selects the simulated channel.
type Kind int

const (
	AWGN Kind = iota
	HF
)

func (k Kind) String() string {
	switch k {
	case AWGN:
		return "awgn"
	case HF:
		return "hf"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

//ParseKind maps a channel name onto its Kind. Unknown names are a
// configuration error.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "awgn":
		return AWGN, nil
	case "hf":
		return HF, nil
	}
	return 0, fmt.Errorf("unknown channel %q, must be one of: awgn, hf", s)
}

// floor on the blind noise variance estimate, keeps the derived Es/No (and
// with it the LLR magnitudes) finite when the residuals degenerate
const minNoiseVariance = 1e-3

//Model is the immutable channel configuration for one sweep; NewBatch binds
// it to the trials of one operating point.
type Model struct {
	Kind   Kind
	EsNoDB float64
	Genie  bool //true: LLRs scaled by the known Es/No, false: blind estimate

	//HF fading parameters, ignored for AWGN
	DopplerHz    float64
	SymbolRateHz float64
}

//Batch is the channel state for one operating point: the model parameters
// plus, for HF, a single fading realization spanning every trial of the
// batch. Trials address disjoint symbol ranges, so a Batch is safe for
// concurrent Transmit calls.
type Batch struct {
	model        Model
	frameSymbols int
	fading       *Fading
}

//NewBatch prepares the channel for trials frames of frameSymbols symbols
// each. For HF the whole fading process is generated up front from rng and
// consumed slice by slice, trial t covering symbols
// [t*frameSymbols, (t+1)*frameSymbols). Normalizing over the whole batch
// keeps slow fades deeper or shallower than any single frame.
func (m Model) NewBatch(rng *rand.Rand, trials, frameSymbols int) *Batch {
	b := &Batch{model: m, frameSymbols: frameSymbols}
	if m.Kind == HF {
		b.fading = NewFading(rng, m.DopplerHz, m.SymbolRateHz, trials*frameSymbols)
	}
	return b
}

//Transmit BPSK-maps the codeword, applies trial's slice of the batch fading
// (HF only) and additive Gaussian noise, and returns the decoder LLR input.
// Negative LLRs favor bit=1, matching the 1-2b symbol mapping.
func (b *Batch) Transmit(trial int, codeword mat.SparseVector, rng *rand.Rand) []float64 {
	symbols := BPSK(codeword)
	received := b.receive(trial, symbols, rng)

	esNo := math.Pow(10, b.model.EsNoDB/10)
	if !b.model.Genie {
		esNo = EstimateEsNo(received)
	}
	return LLR(received, esNo)
}

func (b *Batch) receive(trial int, symbols mat2.Vector, rng *rand.Rand) mat2.Vector {
	if b.fading != nil && symbols.Len() != b.frameSymbols {
		panic(fmt.Sprintf("frame length == %v is required but found %v", b.frameSymbols, symbols.Len()))
	}

	esNo := math.Pow(10, b.model.EsNoDB/10)
	sigma := math.Sqrt(1 / (2 * esNo))
	offset := trial * b.frameSymbols

	received := mat2.NewVecDense(symbols.Len(), nil)
	for i := 0; i < symbols.Len(); i++ {
		s := symbols.AtVec(i)
		if b.fading != nil {
			//amplitude distortion only, a fading dip simply
			// shrinks the symbol (and with it the LLR)
			s *= b.fading.GainAt(offset + i)
		}
		received.SetVec(i, s+rng.NormFloat64()*sigma)
	}
	return received
}

//BPSK maps codeword bits to antipodal symbols, s = 1-2b.
func BPSK(codeword mat.SparseVector) mat2.Vector {
	symbols := mat2.NewVecDense(codeword.Len(), nil)
	for i := 0; i < codeword.Len(); i++ {
		symbols.SetVec(i, 1-2*float64(codeword.At(i)))
	}
	return symbols
}

//LLR scales received samples into log likelihood ratios, llr = 4*EsNo*r.
func LLR(received mat2.Vector, esNo float64) []float64 {
	llr := make([]float64, received.Len())
	for i := range llr {
		llr[i] = 4 * esNo * received.AtVec(i)
	}
	return llr
}

//EstimateEsNo blindly estimates the symbol SNR from received samples:
// normalize by the mean magnitude so the signal amplitude is near one, then
// take the noise variance from the residual r-sign(r). The variance is
// floored at minNoiseVariance, a safety margin beyond the reference model so
// pathological inputs cannot produce infinite LLRs.
func EstimateEsNo(received mat2.Vector) float64 {
	n := received.Len()

	magnitudes := make([]float64, n)
	for i := 0; i < n; i++ {
		magnitudes[i] = math.Abs(received.AtVec(i))
	}
	mean := stat.Mean(magnitudes, nil)
	if mean == 0 {
		return 1 / (2 * minNoiseVariance)
	}

	residuals := make([]float64, n)
	for i := 0; i < n; i++ {
		r := received.AtVec(i) / mean
		if r >= 0 {
			residuals[i] = r - 1
		} else {
			residuals[i] = r + 1
		}
	}

	noiseVariance := stat.Variance(residuals, nil)
	if noiseVariance < minNoiseVariance {
		noiseVariance = minNoiseVariance
	}
	return 1 / (2 * noiseVariance)
}
