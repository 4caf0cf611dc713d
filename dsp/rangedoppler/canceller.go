package rangedoppler

import "math/cmplx"

// TwoPulse runs a single moving-target-indication pass over a chirp matrix.
// For every adjacent pair of chirps the residual phase offset between the two
// is estimated from their cross-correlation, the earlier chirp is rotated
// onto the later one, and the pair is differenced. Static returns cancel
// while moving returns survive with a Doppler-dependent gain.
//
// The result has one row fewer than the input. Rows are not aliased into the
// input matrix.
func TwoPulse(matrix [][]complex128) ([][]complex128, error) {
	if err := checkMatrix(matrix, 2); err != nil {
		return nil, err
	}
	out := make([][]complex128, len(matrix)-1)
	for k := 0; k+1 < len(matrix); k++ {
		a, b := matrix[k], matrix[k+1]
		rot := cmplx.Exp(complex(0, -phaseOffset(a, b)))
		row := make([]complex128, len(a))
		for i := range a {
			row[i] = b[i] - a[i]*rot
		}
		out[k] = row
	}
	return out, nil
}

// ThreePulse runs a second cancellation pass over the output of TwoPulse,
// forming the second difference of the chirp sequence. The result has two
// rows fewer than the input and suppresses slowly fluctuating clutter more
// strongly than a single pass.
func ThreePulse(matrix [][]complex128) ([][]complex128, error) {
	if err := checkMatrix(matrix, 3); err != nil {
		return nil, err
	}
	first, err := TwoPulse(matrix)
	if err != nil {
		return nil, err
	}
	out := make([][]complex128, len(first)-1)
	for k := 0; k+1 < len(first); k++ {
		row := make([]complex128, len(first[k]))
		for i := range row {
			row[i] = first[k+1][i] - first[k][i]
		}
		out[k] = row
	}
	return out, nil
}

// Cancel applies the cancellation selected by mode. MTINone returns the
// input matrix unchanged.
func Cancel(mode MTIMode, matrix [][]complex128) ([][]complex128, error) {
	switch mode {
	case MTITwoPulse:
		return TwoPulse(matrix)
	case MTIThreePulse:
		return ThreePulse(matrix)
	default:
		if err := checkMatrix(matrix, 1); err != nil {
			return nil, err
		}
		return matrix, nil
	}
}

// phaseOffset estimates the bulk phase drift between two chirps from the
// zero-lag cross-correlation sum(a[i] * conj(b[i])).
func phaseOffset(a, b []complex128) float64 {
	var corr complex128
	for i := range a {
		corr += a[i] * cmplx.Conj(b[i])
	}
	return cmplx.Phase(corr)
}

func checkMatrix(matrix [][]complex128, minRows int) error {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return ErrEmptyMatrix
	}
	if len(matrix) < minRows {
		return ErrInsufficientChirps
	}
	n := len(matrix[0])
	for _, row := range matrix[1:] {
		if len(row) != n {
			return ErrRaggedMatrix
		}
	}
	return nil
}
