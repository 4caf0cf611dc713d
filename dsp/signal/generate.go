// Package signal generates deterministic complex baseband bursts for
// pipeline tests and synthetic radar scenes.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/starbelt/radar-dsp/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.AcquisitionConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.AcquisitionOption) *Generator {
	return &Generator{
		cfg:  core.ApplyAcquisitionOptions(opts...),
		seed: 1,
	}
}

// NewGeneratorWithOptions creates a signal generator with generator-specific
// options on top of the acquisition settings.
func NewGeneratorWithOptions(coreOpts []core.AcquisitionOption, opts ...Option) *Generator {
	g := NewGenerator(coreOpts...)
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator acquisition configuration.
func (g *Generator) Config() core.AcquisitionConfig {
	return g.cfg
}

// SetSeed replaces the noise seed.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// Seed returns the current noise seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Tone generates a complex exponential at freqHz. Negative frequencies give
// the conjugate rotation, matching a deramped target below the IF.
func (g *Generator) Tone(freqHz, amplitude float64, samples int) ([]complex128, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: tone samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("signal: tone sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	out := make([]complex128, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		phase := step * float64(i)
		out[i] = complex(amplitude*math.Cos(phase), amplitude*math.Sin(phase))
	}
	return out, nil
}

// WhiteNoise generates deterministic complex white noise with each component
// uniform in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]complex128, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("signal: noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("signal: noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]complex128, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		re := (rng.Float64()*2 - 1) * amplitude
		im := (rng.Float64()*2 - 1) * amplitude
		out[i] = complex(re, im)
	}
	return out, nil
}

// Scatterer describes one synthetic return in a chirp matrix.
type Scatterer struct {
	// BeatFreqHz is the deramped beat frequency of the return.
	BeatFreqHz float64

	// Amplitude of the return relative to full scale 1.0.
	Amplitude float64

	// DopplerCycles is the phase progression per chirp in cycles. Zero
	// models a stationary scatterer.
	DopplerCycles float64
}

// ChirpMatrix synthesizes a coherent processing interval of chirps rows by
// samples columns containing the given scatterers plus optional noise.
// noiseAmplitude zero disables the noise floor.
func (g *Generator) ChirpMatrix(chirps, samples int, scatterers []Scatterer, noiseAmplitude float64) ([][]complex128, error) {
	if chirps <= 0 {
		return nil, fmt.Errorf("signal: chirp count must be > 0: %d", chirps)
	}
	if samples <= 0 {
		return nil, fmt.Errorf("signal: chirp length must be > 0: %d", samples)
	}

	matrix := make([][]complex128, chirps)
	for c := range matrix {
		matrix[c] = make([]complex128, samples)
	}

	for _, s := range scatterers {
		tone, err := g.Tone(s.BeatFreqHz, s.Amplitude, samples)
		if err != nil {
			return nil, err
		}
		for c := range matrix {
			phase := 2 * math.Pi * s.DopplerCycles * float64(c)
			rot := complex(math.Cos(phase), math.Sin(phase))
			for i := range tone {
				matrix[c][i] += tone[i] * rot
			}
		}
	}

	if noiseAmplitude > 0 {
		rng := rand.New(rand.NewSource(g.seed))
		for c := range matrix {
			for i := range matrix[c] {
				re := (rng.Float64()*2 - 1) * noiseAmplitude
				im := (rng.Float64()*2 - 1) * noiseAmplitude
				matrix[c][i] += complex(re, im)
			}
		}
	}

	return matrix, nil
}

// Normalize scales data to a target peak modulus and returns a new slice.
func Normalize(data []complex128, targetPeak float64) ([]complex128, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("signal: normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("signal: normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		av := math.Hypot(real(v), imag(v))
		if av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]complex128, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := complex(targetPeak/maxAbs, 0)
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
