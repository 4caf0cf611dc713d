package rangedoppler

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/starbelt/radar-dsp/internal/testutil"
)

func TestTwoPulseCancelsStaticReturn(t *testing.T) {
	matrix := testutil.StaticChirpMatrix(8, 64, 4e3, 32e3, 1.0)
	out, err := TwoPulse(matrix)
	if err != nil {
		t.Fatalf("TwoPulse: %v", err)
	}
	if len(out) != 7 {
		t.Fatalf("rows = %d, want 7", len(out))
	}
	for r, row := range out {
		for i, v := range row {
			if cmplx.Abs(v) > 1e-12 {
				t.Fatalf("residual %v at row %d sample %d", v, r, i)
			}
		}
	}
}

func TestTwoPulseCancelsStaticReturnWithPhaseDrift(t *testing.T) {
	// A constant chirp-to-chirp phase drift models LO wander. The canceller
	// estimates and removes it before differencing, so the static return
	// still cancels exactly.
	matrix := testutil.MovingChirpMatrix(8, 64, 4e3, 32e3, 1.0, 0.1)
	out, err := TwoPulse(matrix)
	if err != nil {
		t.Fatalf("TwoPulse: %v", err)
	}
	for r, row := range out {
		for i, v := range row {
			if cmplx.Abs(v) > 1e-9 {
				t.Fatalf("residual %v at row %d sample %d", v, r, i)
			}
		}
	}
}

func TestTwoPulsePreservesMoverAgainstClutter(t *testing.T) {
	const (
		chirps  = 9
		samples = 64
	)
	static := testutil.StaticChirpMatrix(chirps, samples, 4e3, 32e3, 1.0)
	mover := testutil.MovingChirpMatrix(chirps, samples, 9e3, 32e3, 0.1, 0.25)
	matrix := make([][]complex128, chirps)
	for c := range matrix {
		row := make([]complex128, samples)
		for i := range row {
			row[i] = static[c][i] + mover[c][i]
		}
		matrix[c] = row
	}

	out, err := TwoPulse(matrix)
	if err != nil {
		t.Fatalf("TwoPulse: %v", err)
	}

	// Mean residual power must sit well below the clutter power going in
	// while retaining energy from the mover.
	var power float64
	for _, row := range out {
		for _, v := range row {
			power += real(v)*real(v) + imag(v)*imag(v)
		}
	}
	power /= float64(len(out) * samples)
	clutterPower := 1.0
	if suppression := 10 * math.Log10(clutterPower/power); suppression < 10 {
		t.Fatalf("clutter suppression %.1f dB, want >= 10", suppression)
	}
	if power < 1e-6 {
		t.Fatalf("mover energy cancelled entirely: %g", power)
	}
}

func TestThreePulseRowCount(t *testing.T) {
	matrix := testutil.StaticChirpMatrix(8, 16, 2e3, 32e3, 1.0)
	out, err := ThreePulse(matrix)
	if err != nil {
		t.Fatalf("ThreePulse: %v", err)
	}
	if len(out) != 6 {
		t.Fatalf("rows = %d, want 6", len(out))
	}
}

func TestCancelErrors(t *testing.T) {
	if _, err := TwoPulse(nil); !errors.Is(err, ErrEmptyMatrix) {
		t.Fatalf("nil matrix: %v", err)
	}
	one := testutil.StaticChirpMatrix(1, 16, 2e3, 32e3, 1.0)
	if _, err := TwoPulse(one); !errors.Is(err, ErrInsufficientChirps) {
		t.Fatalf("single chirp: %v", err)
	}
	two := testutil.StaticChirpMatrix(2, 16, 2e3, 32e3, 1.0)
	if _, err := ThreePulse(two); !errors.Is(err, ErrInsufficientChirps) {
		t.Fatalf("two chirps for 3-pulse: %v", err)
	}

	ragged := testutil.StaticChirpMatrix(3, 16, 2e3, 32e3, 1.0)
	ragged[1] = ragged[1][:8]
	if _, err := TwoPulse(ragged); !errors.Is(err, ErrRaggedMatrix) {
		t.Fatalf("ragged matrix: %v", err)
	}
}

func TestCancelModeDispatch(t *testing.T) {
	matrix := testutil.StaticChirpMatrix(4, 16, 2e3, 32e3, 1.0)

	same, err := Cancel(MTINone, matrix)
	if err != nil {
		t.Fatalf("Cancel none: %v", err)
	}
	if len(same) != 4 {
		t.Fatalf("none rows = %d, want 4", len(same))
	}

	for _, tc := range []struct {
		mode MTIMode
		rows int
	}{
		{MTITwoPulse, 3},
		{MTIThreePulse, 2},
	} {
		out, err := Cancel(tc.mode, matrix)
		if err != nil {
			t.Fatalf("Cancel %v: %v", tc.mode, err)
		}
		if len(out) != tc.rows {
			t.Fatalf("%v rows = %d, want %d", tc.mode, len(out), tc.rows)
		}
	}
}
