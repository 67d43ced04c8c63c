package channel

import (
	"math"
	"math/cmplx"
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

const (
	//carrier layout of the multi-carrier HF waveform the model emulates
	carrierCount   = 14
	carrierSpacing = 1.5 //in units of the symbol rate

	//delay of the second propagation path, the classic 1ms HF two-path value
	pathDelaySeconds = 1e-3

	spreadFilterOrder = 100
)

//Spread synthesizes n correlated complex Gaussian fading samples whose
// bandwidth matches dopplerHz at symbolRateHz: white complex Gaussian noise
// shaped by a windowed-sinc low pass filter with cutoff at the Doppler
// spread. Deterministic given the rng. Output power is arbitrary, callers
// normalize from the empirical variance (see NewFading).
func Spread(rng *rand.Rand, dopplerHz, symbolRateHz float64, n int) []complex128 {
	f := newFir(lowpassTaps(dopplerHz/symbolRateHz, spreadFilterOrder))

	//run past the group delay before recording output
	for i := 0; i <= spreadFilterOrder; i++ {
		f.filter(complex(rng.NormFloat64(), rng.NormFloat64()))
	}

	out := make([]complex128, n)
	for i := range out {
		out[i] = f.filter(complex(rng.NormFloat64(), rng.NormFloat64()))
	}
	return out
}

//Fading holds the two independent rays of a two-path HF channel for one
// trial batch. Samples are consumed sequentially, one per transmitted symbol.
type Fading struct {
	spread1, spread2 []complex128
	symbolRateHz     float64
	gain             float64 //normalizes the combined two-ray power to unity
	pos              int
}

//NewFading generates both rays for n symbols and computes the normalizing
// gain from their empirical variance so the combined model has unit average
// power.
func NewFading(rng *rand.Rand, dopplerHz, symbolRateHz float64, n int) *Fading {
	f := &Fading{
		spread1:      Spread(rng, dopplerHz, symbolRateHz, n),
		spread2:      Spread(rng, dopplerHz, symbolRateHz, n),
		symbolRateHz: symbolRateHz,
	}

	power := meanPower(f.spread1) + meanPower(f.spread2)
	f.gain = 1 / math.Sqrt(power)
	return f
}

//GainAt returns the amplitude of the channel gain at symbol position i. The
// second ray is offset by the carrier-spacing dependent phase of its path
// delay; only amplitude distortion is modeled, phase is assumed compensated
// upstream. Read-only, so disjoint position ranges can be read concurrently.
func (f *Fading) GainAt(i int) float64 {
	carrier := i % carrierCount
	freqHz := carrierSpacing * f.symbolRateHz * float64(carrier+1)
	phase := -2 * math.Pi * freqHz * pathDelaySeconds

	g := f.spread1[i] + f.spread2[i]*cmplx.Exp(complex(0, phase))
	return f.gain * cmplx.Abs(g)
}

//Gain returns the amplitude of the next gain sample in sequence.
func (f *Fading) Gain() float64 {
	g := f.GainAt(f.pos)
	f.pos++
	return g
}

//Remaining reports how many gain samples are left unconsumed.
func (f *Fading) Remaining() int {
	return len(f.spread1) - f.pos
}

func meanPower(samples []complex128) float64 {
	powers := make([]float64, len(samples))
	for i, s := range samples {
		powers[i] = real(s)*real(s) + imag(s)*imag(s)
	}
	return stat.Mean(powers, nil)
}

func lowpassTaps(cutoff float64, order int) []float64 {
	taps := make([]float64, order+1)
	mid := order / 2
	for i := range taps {
		x := float64(i - mid)
		var sinc float64
		if x == 0 {
			sinc = 2 * cutoff
		} else {
			sinc = math.Sin(2*math.Pi*cutoff*x) / (math.Pi * x)
		}
		window := 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(order))
		taps[i] = sinc * window
	}
	return taps
}

type fir struct {
	taps         []complex128
	coefficients []float64
	offset       int
}

func newFir(coefficients []float64) *fir {
	return &fir{
		taps:         make([]complex128, len(coefficients)),
		coefficients: coefficients,
	}
}

func (f *fir) filter(value complex128) complex128 {
	var r complex128

	f.taps[f.offset] = value
	for i := range f.taps {
		j := (i + f.offset) % len(f.taps)
		r += complex(f.coefficients[i]*real(f.taps[j]), f.coefficients[i]*imag(f.taps[j]))
	}

	if f.offset < len(f.taps)-1 {
		f.offset++
	} else {
		f.offset = 0
	}
	return r
}
