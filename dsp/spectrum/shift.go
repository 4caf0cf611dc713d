package spectrum

import "github.com/starbelt/radar-dsp/dsp/core"

// FFTShift returns a copy of in with the zero-frequency bin moved to the
// array center. For odd lengths the extra bin stays on the negative side,
// matching the usual fftshift convention.
func FFTShift(in []float64) []float64 {
	n := len(in)
	if n == 0 {
		return nil
	}

	split := (n + 1) / 2
	out := make([]float64, n)
	copy(out, in[split:])
	copy(out[n-split:], in[:split])
	return out
}

// IFFTShift undoes [FFTShift].
func IFFTShift(in []float64) []float64 {
	n := len(in)
	if n == 0 {
		return nil
	}

	split := n / 2
	out := make([]float64, n)
	copy(out, in[split:])
	copy(out[n-split:], in[:split])
	return out
}

// FFTShiftComplex returns a copy of in with the zero-frequency bin moved to
// the array center.
func FFTShiftComplex(in []complex128) []complex128 {
	n := len(in)
	if n == 0 {
		return nil
	}

	split := (n + 1) / 2
	out := make([]complex128, n)
	copy(out, in[split:])
	copy(out[n-split:], in[:split])
	return out
}

// FFTShiftInPlace shifts the zero-frequency bin of in to the array center.
// Even lengths swap halves without allocating; odd lengths rotate through a
// temporary copy.
func FFTShiftInPlace(in []float64) {
	n := len(in)
	if n == 0 {
		return
	}

	if n%2 == 0 {
		half := n / 2
		for i := 0; i < half; i++ {
			in[i], in[half+i] = in[half+i], in[i]
		}
		return
	}

	core.CopyInto(in, FFTShift(in))
}
