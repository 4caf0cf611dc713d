package testutil

import (
	"math"
	"math/rand"
)

// ComplexTone generates a deterministic complex exponential burst.
func ComplexTone(freqHz, sampleRate, amplitude float64, length int) []complex128 {
	out := make([]complex128, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		phase := step * float64(i)
		out[i] = complex(amplitude*math.Cos(phase), amplitude*math.Sin(phase))
	}
	return out
}

// ComplexNoise generates complex white noise with a fixed seed for
// reproducibility.
func ComplexNoise(seed int64, amplitude float64, length int) []complex128 {
	out := make([]complex128, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		re := (rng.Float64()*2 - 1) * amplitude
		im := (rng.Float64()*2 - 1) * amplitude
		out[i] = complex(re, im)
	}
	return out
}

// FlatSpectrum returns a spectrum slice with every bin at levelDB.
func FlatSpectrum(levelDB float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = levelDB
	}
	return out
}

// SpikeSpectrum returns a flat floor with a single spike at the given bin.
func SpikeSpectrum(floorDB, spikeDB float64, length, spikeBin int) []float64 {
	out := FlatSpectrum(floorDB, length)
	if spikeBin >= 0 && spikeBin < length {
		out[spikeBin] = spikeDB
	}
	return out
}

// StaticChirpMatrix builds a coherent processing interval where every chirp
// carries the same stationary return at beatFreqHz. Zero chirp-to-chirp phase
// progression puts all target energy in the zero-Doppler bin.
func StaticChirpMatrix(chirps, samples int, beatFreqHz, sampleRate, amplitude float64) [][]complex128 {
	matrix := make([][]complex128, chirps)
	for c := range matrix {
		matrix[c] = ComplexTone(beatFreqHz, sampleRate, amplitude, samples)
	}
	return matrix
}

// MovingChirpMatrix builds a coherent processing interval with a constant
// chirp-to-chirp phase step, modelling a scatterer at a fixed Doppler
// frequency. dopplerCycles is the phase progression per chirp in cycles.
func MovingChirpMatrix(chirps, samples int, beatFreqHz, sampleRate, amplitude, dopplerCycles float64) [][]complex128 {
	matrix := make([][]complex128, chirps)
	for c := range matrix {
		burst := ComplexTone(beatFreqHz, sampleRate, amplitude, samples)
		rot := complexExp(2 * math.Pi * dopplerCycles * float64(c))
		for i := range burst {
			burst[i] *= rot
		}
		matrix[c] = burst
	}
	return matrix
}

func complexExp(phase float64) complex128 {
	return complex(math.Cos(phase), math.Sin(phase))
}
