package cfar

import (
	"fmt"

	"github.com/starbelt/radar-dsp/dsp/core"
)

// FloorDB is the sentinel value written to sub-threshold bins of the masked
// output, matching the -200 dBFS fill used by the waterfall exports.
const FloorDB = -200.0

// Method selects how reference-cell power is combined into a noise estimate.
type Method int

const (
	// MethodAverage takes the arithmetic mean of reference-cell power.
	MethodAverage Method = iota
)

// String returns the configuration name of the method.
func (m Method) String() string {
	switch m {
	case MethodAverage:
		return "average"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod converts a configuration string into a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "average":
		return MethodAverage, nil
	default:
		return 0, fmt.Errorf("cfar: unknown method %q", s)
	}
}

// Params holds the detector configuration.
//
// A Params value is immutable for the lifetime of a processing session and
// may be shared across concurrent Detect calls.
type Params struct {
	// GuardCells is the number of bins on each side of the cell under test
	// excluded from the noise estimate.
	GuardCells int

	// RefCells is the number of bins on each side, outside the guard band,
	// used to estimate local noise.
	RefCells int

	// BiasDB is the additive margin above the estimated noise level.
	BiasDB float64

	Method Method
}

// DefaultParams returns the interactive defaults: 8 guard cells, 16
// reference cells, 11 dB bias, power averaging.
func DefaultParams() Params {
	return Params{GuardCells: 8, RefCells: 16, BiasDB: 11, Method: MethodAverage}
}

// Validate checks the parameters against a spectrum of length n.
func (p Params) Validate(n int) error {
	if n <= 0 {
		return fmt.Errorf("cfar: spectrum must not be empty")
	}
	if p.GuardCells < 0 {
		return fmt.Errorf("cfar: guard cells must be >= 0: %d", p.GuardCells)
	}
	if p.RefCells < 1 {
		return fmt.Errorf("cfar: reference cells must be >= 1: %d", p.RefCells)
	}
	if p.Method != MethodAverage {
		return fmt.Errorf("cfar: unknown method %d", int(p.Method))
	}
	if span := p.GuardCells + p.RefCells; span > n/2 {
		return fmt.Errorf("cfar: guard+reference span %d exceeds half the spectrum length %d", span, n/2)
	}
	return nil
}

// Result holds the per-bin threshold and the masked detection spectrum.
//
// DetectionsDB carries the input value where Mask is true and [FloorDB]
// elsewhere. All slices have the input length. A Result is derived per call
// and has no identity across calls.
type Result struct {
	ThresholdDB  []float64
	DetectionsDB []float64
	Mask         []bool
}

// Count returns the number of detected bins.
func (r Result) Count() int {
	n := 0
	for _, d := range r.Mask {
		if d {
			n++
		}
	}
	return n
}

// Detector applies CFAR thresholding with fixed parameters.
type Detector struct {
	p Params
}

// NewDetector creates a detector. The parameters are validated per call
// against the spectrum length.
func NewDetector(p Params) *Detector {
	return &Detector{p: p}
}

// Params returns the detector configuration.
func (d *Detector) Params() Params { return d.p }

// Detect is a one-shot detection pass over a single spectrum.
func Detect(spectrumDB []float64, p Params) (Result, error) {
	return NewDetector(p).Detect(spectrumDB)
}

// Detect computes the adaptive threshold and masked spectrum.
//
// The reference window at each bin is the RefCells bins immediately outside
// the guard band on each side, clipped to the array bounds. Edge bins fall
// back to whatever one-sided reference cells remain; a bin with no reference
// cells at all uses the global mean power. The pass is O(N) via a prefix sum
// over linear power.
func (d *Detector) Detect(spectrumDB []float64) (Result, error) {
	n := len(spectrumDB)
	if err := d.p.Validate(n); err != nil {
		return Result{}, err
	}

	// Prefix sums over linear power, so any reference window reduces to two
	// subtractions.
	prefix := make([]float64, n+1)
	for i, db := range spectrumDB {
		prefix[i+1] = prefix[i] + core.DBPowerToLinear(db)
	}
	globalMean := prefix[n] / float64(n)

	threshold := make([]float64, n)
	detections := make([]float64, n)
	mask := make([]bool, n)

	guard := d.p.GuardCells
	ref := d.p.RefCells

	for i := 0; i < n; i++ {
		sum := 0.0
		count := 0

		// Left reference window [i-guard-ref, i-guard-1].
		lo := i - guard - ref
		hi := i - guard - 1
		if lo < 0 {
			lo = 0
		}
		if hi >= lo {
			sum += prefix[hi+1] - prefix[lo]
			count += hi - lo + 1
		}

		// Right reference window [i+guard+1, i+guard+ref].
		lo = i + guard + 1
		hi = i + guard + ref
		if hi > n-1 {
			hi = n - 1
		}
		if hi >= lo {
			sum += prefix[hi+1] - prefix[lo]
			count += hi - lo + 1
		}

		mean := globalMean
		if count > 0 {
			mean = sum / float64(count)
			if mean < 0 {
				mean = 0
			}
		}

		threshold[i] = core.LinearPowerToDB(mean) + d.p.BiasDB

		if spectrumDB[i] > threshold[i] {
			detections[i] = spectrumDB[i]
			mask[i] = true
		} else {
			detections[i] = FloorDB
		}
	}

	return Result{
		ThresholdDB:  threshold,
		DetectionsDB: detections,
		Mask:         mask,
	}, nil
}
