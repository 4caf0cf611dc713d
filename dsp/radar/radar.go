// Package radar maps spectral bins to physical range and velocity for an
// FMCW chirp geometry.
//
// All functions are pure derivations over an immutable parameter record; the
// package never touches hardware.
package radar

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// SpeedOfLight in m/s, as used by the ramp geometry throughout.
const SpeedOfLight = 3e8

// RampParams describes one FMCW chirp ramp and its coherent processing
// interval. Frequencies are in Hz, times in seconds.
type RampParams struct {
	// SampleRate of the baseband capture.
	SampleRate float64

	// IFFreqHz is the intermediate-frequency offset of the deramped beat
	// signal (signal_freq on the Phaser front end).
	IFFreqHz float64

	// OutputFreqHz is the radiated carrier frequency, used for wavelength.
	OutputFreqHz float64

	// ChirpBandwidthHz is the swept bandwidth of one ramp.
	ChirpBandwidthHz float64

	// RampTime is the active sweep duration of one chirp.
	RampTime float64

	// PRI is the pulse repetition interval between chirp starts.
	PRI float64

	// NumChirps is the number of chirps in one coherent processing interval.
	NumChirps int
}

// Validate checks the parameter record for physical plausibility.
func (p RampParams) Validate() error {
	if p.SampleRate <= 0 {
		return fmt.Errorf("radar: sample rate must be > 0: %g", p.SampleRate)
	}
	if p.OutputFreqHz <= 0 {
		return fmt.Errorf("radar: output frequency must be > 0: %g", p.OutputFreqHz)
	}
	if p.ChirpBandwidthHz <= 0 {
		return fmt.Errorf("radar: chirp bandwidth must be > 0: %g", p.ChirpBandwidthHz)
	}
	if p.RampTime <= 0 {
		return fmt.Errorf("radar: ramp time must be > 0: %g", p.RampTime)
	}
	if p.PRI <= 0 {
		return fmt.Errorf("radar: PRI must be > 0: %g", p.PRI)
	}
	if p.NumChirps < 1 {
		return fmt.Errorf("radar: chirp count must be >= 1: %d", p.NumChirps)
	}
	return nil
}

// Slope returns the chirp slope in Hz/s.
func (p RampParams) Slope() float64 {
	return p.ChirpBandwidthHz / p.RampTime
}

// Wavelength returns the carrier wavelength in meters.
func (p RampParams) Wavelength() float64 {
	return SpeedOfLight / p.OutputFreqHz
}

// PRF returns the pulse repetition frequency in Hz.
func (p RampParams) PRF() float64 {
	return 1 / p.PRI
}

// RangeResolution returns the range bin spacing in meters, c/(2*B).
func (p RampParams) RangeResolution() float64 {
	return SpeedOfLight / (2 * p.ChirpBandwidthHz)
}

// VelocityResolution returns the Doppler bin spacing in m/s over the
// coherent processing interval.
func (p RampParams) VelocityResolution() float64 {
	return p.Wavelength() / (2 * float64(p.NumChirps) * p.PRI)
}

// MaxDopplerFrequency returns the unambiguous Doppler limit, PRF/2.
func (p RampParams) MaxDopplerFrequency() float64 {
	return p.PRF() / 2
}

// MaxDopplerVelocity returns the unambiguous velocity limit in m/s.
func (p RampParams) MaxDopplerVelocity() float64 {
	return p.MaxDopplerFrequency() * p.Wavelength() / 2
}

// FrequencyAxis returns a symmetric beat-frequency axis of n bins spanning
// [-SampleRate/2, SampleRate/2].
func (p RampParams) FrequencyAxis(n int) []float64 {
	if n <= 0 {
		return nil
	}
	axis := make([]float64, n)
	floats.Span(axis, -p.SampleRate/2, p.SampleRate/2)
	return axis
}

// FrequencySpan returns a beat-frequency axis of n bins spanning [lo, hi].
func FrequencySpan(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	axis := make([]float64, n)
	floats.Span(axis, lo, hi)
	return axis
}

// RangeAxis converts beat frequencies to one-way distance in meters via
// (f - IF) * c / (2 * slope).
func (p RampParams) RangeAxis(freqHz []float64) []float64 {
	out := make([]float64, len(freqHz))
	scale := SpeedOfLight / (2 * p.Slope())
	for i, f := range freqHz {
		out[i] = (f - p.IFFreqHz) * scale
	}
	return out
}

// RangeForFrequency converts a single beat frequency to distance in meters.
func (p RampParams) RangeForFrequency(freqHz float64) float64 {
	return (freqHz - p.IFFreqHz) * SpeedOfLight / (2 * p.Slope())
}

// FrequencyForRange converts a distance in meters back to a beat frequency.
func (p RampParams) FrequencyForRange(dist float64) float64 {
	return dist*2*p.Slope()/SpeedOfLight + p.IFFreqHz
}

// VelocityAxis returns a symmetric Doppler velocity axis of m bins spanning
// [-MaxDopplerVelocity, MaxDopplerVelocity].
func (p RampParams) VelocityAxis(m int) []float64 {
	if m <= 0 {
		return nil
	}
	axis := make([]float64, m)
	vmax := p.MaxDopplerVelocity()
	floats.Span(axis, -vmax, vmax)
	return axis
}
