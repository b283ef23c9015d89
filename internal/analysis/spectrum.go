package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum is the one-sided power spectrum of a series sampled once per frame.
type Spectrum struct {
	// Power[k] is the magnitude at k cycles per len(series) frames.
	Power []float64
	n     int
}

// NewSpectrum removes the mean from series and transforms it. Any length
// works; go-dsp pads internally for non powers of two.
func NewSpectrum(series []float64) *Spectrum {
	n := len(series)
	if n < 2 {
		return &Spectrum{n: n}
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	centred := make([]float64, n)
	for i, v := range series {
		centred[i] = v - mean
	}

	coeffs := fft.FFTReal(centred)
	ps := make([]float64, n/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return &Spectrum{Power: ps, n: n}
}

// Dominant returns the strongest non-DC bin, or 0 if there is none.
func (s *Spectrum) Dominant() int {
	best, bestIdx := 0.0, 0
	for i := 1; i < len(s.Power); i++ {
		if s.Power[i] > best {
			best, bestIdx = s.Power[i], i
		}
	}
	return bestIdx
}

// DominantPeriod returns the period of the strongest component in frames,
// or 0 for a flat series.
func (s *Spectrum) DominantPeriod() float64 {
	k := s.Dominant()
	if k == 0 {
		return 0
	}
	return float64(s.n) / float64(k)
}
