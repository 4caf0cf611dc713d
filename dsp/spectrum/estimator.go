package spectrum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/starbelt/radar-dsp/dsp/core"
)

const (
	// DefaultFullScale is the nominal digitizer full-scale code (2^11).
	DefaultFullScale = 2048.0

	// epsilonFloor guards the logarithm so all-zero bursts map to a finite
	// floor instead of -Inf.
	epsilonFloor = 1e-15
)

// Config holds spectral estimation parameters.
type Config struct {
	// TransformSize is the FFT length N. A burst shorter than N is inserted
	// into a zero buffer at Offset before transforming.
	TransformSize int

	// SampleRate in Hz, used only to derive the frequency axis.
	SampleRate float64

	// FullScale is the reference amplitude for the dBFS conversion.
	FullScale float64

	// Offset is the insertion position of the windowed burst within the
	// padded transform buffer.
	Offset int

	// Center places the zero-frequency bin at the array center and makes the
	// frequency axis symmetric around 0 Hz.
	Center bool
}

// Spectrum pairs a frequency axis with calibrated magnitudes in dBFS.
//
// Both slices have length equal to the transform size. A Spectrum is a
// derived value: downstream consumers must not mutate it in place.
type Spectrum struct {
	FreqHz      []float64
	MagnitudeDB []float64
}

// Len returns the number of spectral bins.
func (s Spectrum) Len() int { return len(s.MagnitudeDB) }

// Estimator computes calibrated spectra from complex baseband bursts.
//
// An Estimator holds a reusable transform for its configured size. The
// transform backend may keep scratch state, so an Estimator is not safe for
// concurrent use; callers that process frames in parallel create one
// Estimator per goroutine.
type Estimator struct {
	cfg Config
	fft Transform

	in  []complex128
	out []complex128
}

// NewEstimator creates an estimator for the given configuration.
func NewEstimator(cfg Config) (*Estimator, error) {
	cfg = normalizeConfig(cfg)
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	fft, err := NewTransform(cfg.TransformSize)
	if err != nil {
		return nil, err
	}

	return &Estimator{cfg: cfg, fft: fft}, nil
}

// Config returns the normalized estimator configuration.
func (e *Estimator) Config() Config { return e.cfg }

// Estimate is a one-shot spectral estimation for a single burst.
func Estimate(burst []complex128, coeffs []float64, cfg Config) (Spectrum, error) {
	e, err := NewEstimator(cfg)
	if err != nil {
		return Spectrum{}, err
	}
	return e.Estimate(burst, coeffs)
}

// Estimate windows the burst, transforms it, and converts the magnitudes to
// dBFS.
//
// The window must have the same length as the burst. The windowed burst is
// inserted at the configured offset into a zero-padded buffer of the
// transform size. The magnitude is normalized by the window coefficient sum
// and floored at a small epsilon before the logarithm, so all-zero input
// yields a finite floor value in every bin.
func (e *Estimator) Estimate(burst []complex128, coeffs []float64) (Spectrum, error) {
	n := e.cfg.TransformSize

	if len(burst) == 0 {
		return Spectrum{}, fmt.Errorf("spectrum: burst must not be empty")
	}
	if len(coeffs) != len(burst) {
		return Spectrum{}, fmt.Errorf("spectrum: window length %d does not match burst length %d", len(coeffs), len(burst))
	}
	if len(burst) > n {
		return Spectrum{}, fmt.Errorf("spectrum: burst length %d exceeds transform size %d", len(burst), n)
	}
	if e.cfg.Offset+len(burst) > n {
		return Spectrum{}, fmt.Errorf("spectrum: offset %d plus burst length %d exceeds transform size %d", e.cfg.Offset, len(burst), n)
	}

	winSum := 0.0
	for _, c := range coeffs {
		winSum += c
	}
	if winSum == 0 {
		return Spectrum{}, fmt.Errorf("spectrum: window coefficient sum is zero")
	}

	e.in = core.EnsureLenComplex(e.in, n)
	core.ZeroComplex(e.in)
	for i, s := range burst {
		e.in[e.cfg.Offset+i] = s * complex(coeffs[i], 0)
	}

	e.out = core.EnsureLenComplex(e.out, n)
	if err := e.fft.Forward(e.out, e.in); err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: forward FFT: %w", err)
	}

	mag := Magnitude(e.out)
	if e.cfg.Center {
		mag = FFTShift(mag)
	}

	invSum := 1 / math.Abs(winSum)
	for i, m := range mag {
		m *= invSum
		if m < epsilonFloor {
			m = epsilonFloor
		}
		mag[i] = 20 * math.Log10(m/e.cfg.FullScale)
	}

	return Spectrum{
		FreqHz:      e.frequencyAxis(),
		MagnitudeDB: mag,
	}, nil
}

// FloorDB returns the dBFS value every bin of an all-zero burst maps to.
func (e *Estimator) FloorDB() float64 {
	return 20 * math.Log10(epsilonFloor/e.cfg.FullScale)
}

func (e *Estimator) frequencyAxis() []float64 {
	axis := make([]float64, e.cfg.TransformSize)
	if e.cfg.Center {
		floats.Span(axis, -e.cfg.SampleRate/2, e.cfg.SampleRate/2)
	} else {
		floats.Span(axis, 0, e.cfg.SampleRate)
	}
	return axis
}

func normalizeConfig(cfg Config) Config {
	def := core.DefaultAcquisitionConfig()

	if cfg.TransformSize <= 0 {
		cfg.TransformSize = def.TransformSize
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = def.SampleRate
	}
	if cfg.FullScale <= 0 {
		cfg.FullScale = DefaultFullScale
	}
	if cfg.Offset < 0 {
		cfg.Offset = 0
	}

	return cfg
}

func validateConfig(cfg Config) error {
	if cfg.Offset >= cfg.TransformSize {
		return fmt.Errorf("spectrum: offset %d must be < transform size %d", cfg.Offset, cfg.TransformSize)
	}
	return nil
}
