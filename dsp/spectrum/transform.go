package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Transform is a reusable forward DFT of a fixed length.
//
// Power-of-two lengths run on the SIMD FFT backend; other lengths (capture
// windows such as 1022 samples are common on the Phaser front end) fall back
// to a mixed-radix implementation.
type Transform interface {
	// Forward computes the unnormalized forward DFT of src into dst.
	// Both slices must have length Len.
	Forward(dst, src []complex128) error

	// Len returns the transform length.
	Len() int
}

// NewTransform creates a forward DFT of length n.
func NewTransform(n int) (Transform, error) {
	if n <= 0 {
		return nil, fmt.Errorf("spectrum: transform size must be > 0: %d", n)
	}

	if n&(n-1) == 0 {
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("spectrum: creating FFT plan: %w", err)
		}
		return planTransform{plan: plan}, nil
	}

	return cmplxTransform{fft: fourier.NewCmplxFFT(n), n: n}, nil
}

type planTransform struct {
	plan *algofft.Plan[complex128]
}

func (t planTransform) Forward(dst, src []complex128) error {
	return t.plan.Forward(dst, src)
}

func (t planTransform) Len() int { return t.plan.Len() }

type cmplxTransform struct {
	fft *fourier.CmplxFFT
	n   int
}

func (t cmplxTransform) Forward(dst, src []complex128) error {
	if len(dst) != t.n || len(src) != t.n {
		return fmt.Errorf("spectrum: transform length mismatch: dst %d, src %d, want %d", len(dst), len(src), t.n)
	}
	t.fft.Coefficients(dst, src)
	return nil
}

func (t cmplxTransform) Len() int { return t.n }
