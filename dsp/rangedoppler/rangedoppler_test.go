package rangedoppler

import (
	"math"
	"testing"

	"github.com/starbelt/radar-dsp/dsp/radar"
	"github.com/starbelt/radar-dsp/dsp/window"
	"github.com/starbelt/radar-dsp/internal/testutil"
)

const (
	testSampleRate = 32e3
	testSamples    = 32
)

func testRamp(chirps int) radar.RampParams {
	return radar.RampParams{
		SampleRate:       testSampleRate,
		IFFreqHz:         0,
		OutputFreqHz:     10e9,
		ChirpBandwidthHz: 500e6,
		RampTime:         1e-3,
		PRI:              1.5e-3,
		NumChirps:        chirps,
	}
}

func testConfig(chirps int, mode MTIMode) Config {
	return Config{
		MTI:      mode,
		MinScale: -5,
		MaxScale: 5,
		Ramp:     testRamp(chirps),
	}
}

// combinedMatrix sums a unit static return at range bin 4 with a weak mover
// at range bin 9 advancing a quarter cycle per chirp.
func combinedMatrix(chirps int) [][]complex128 {
	static := testutil.StaticChirpMatrix(chirps, testSamples, 4e3, testSampleRate, 1.0)
	mover := testutil.MovingChirpMatrix(chirps, testSamples, 9e3, testSampleRate, 0.1, 0.25)
	matrix := make([][]complex128, chirps)
	for c := range matrix {
		row := make([]complex128, testSamples)
		for i := range row {
			row[i] = static[c][i] + mover[c][i]
		}
		matrix[c] = row
	}
	return matrix
}

func mapArgmax(m *Map) (dopplerBin, rangeBin int) {
	best := math.Inf(-1)
	for d, row := range m.Data {
		for r, v := range row {
			if v > best {
				best = v
				dopplerBin, rangeBin = d, r
			}
		}
	}
	return dopplerBin, rangeBin
}

func TestProcessDimensionLaw(t *testing.T) {
	const chirps = 17
	matrix := testutil.StaticChirpMatrix(chirps, testSamples, 4e3, testSampleRate, 1.0)

	for _, tc := range []struct {
		mode MTIMode
		rows int
	}{
		{MTINone, 17},
		{MTITwoPulse, 16},
		{MTIThreePulse, 15},
	} {
		m, err := Process(matrix, testConfig(chirps, tc.mode))
		if err != nil {
			t.Fatalf("%v: %v", tc.mode, err)
		}
		if m.Rows() != tc.rows || m.Cols() != testSamples {
			t.Fatalf("%v: map %dx%d, want %dx%d", tc.mode, m.Rows(), m.Cols(), tc.rows, testSamples)
		}
		if len(m.VelocityAxis) != tc.rows {
			t.Fatalf("%v: velocity axis length %d, want %d", tc.mode, len(m.VelocityAxis), tc.rows)
		}
		if len(m.RangeAxis) != testSamples {
			t.Fatalf("%v: range axis length %d, want %d", tc.mode, len(m.RangeAxis), testSamples)
		}
	}
}

func TestProcessStaticTargetPeak(t *testing.T) {
	const chirps = 16
	matrix := testutil.StaticChirpMatrix(chirps, testSamples, 4e3, testSampleRate, 1.0)

	m, err := Process(matrix, testConfig(chirps, MTINone))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	// Zero Doppler lands on the center row, range bin 4 lands four columns
	// right of the center column.
	d, r := mapArgmax(m)
	if d != chirps/2 || r != testSamples/2+4 {
		t.Fatalf("peak at (doppler %d, range %d), want (%d, %d)", d, r, chirps/2, testSamples/2+4)
	}

	want := math.Log10(float64(chirps) * float64(testSamples))
	if got := m.At(r, d); math.Abs(got-want) > 1e-6 {
		t.Fatalf("peak value %v, want %v", got, want)
	}

	// Off-peak cells hold only the floor, clamped to MinScale.
	if got := m.At(0, 0); got != -5 {
		t.Fatalf("corner value %v, want -5", got)
	}
}

func TestProcessTwoPulseSuppressesClutter(t *testing.T) {
	const chirps = 17
	matrix := combinedMatrix(chirps)

	plain, err := Process(matrix, testConfig(chirps, MTINone))
	if err != nil {
		t.Fatalf("Process none: %v", err)
	}
	cancelled, err := Process(matrix, testConfig(chirps, MTITwoPulse))
	if err != nil {
		t.Fatalf("Process 2pulse: %v", err)
	}

	staticCol := testSamples/2 + 4
	before := plain.At(staticCol, plain.Rows()/2)
	after := cancelled.At(staticCol, cancelled.Rows()/2)

	// Map cells are log10 magnitudes, so 0.5 decades is 10 dB.
	if suppression := 20 * (before - after); suppression < 10 {
		t.Fatalf("clutter suppression %.1f dB, want >= 10", suppression)
	}

	// The mover advances a quarter cycle per chirp, so with 16 surviving
	// rows it lands four Doppler bins above center at range bin 9.
	d, r := mapArgmax(cancelled)
	if d != cancelled.Rows()/2+4 || r != testSamples/2+9 {
		t.Fatalf("mover at (doppler %d, range %d), want (%d, %d)", d, r, cancelled.Rows()/2+4, testSamples/2+9)
	}
}

func TestProcessCenterExcision(t *testing.T) {
	const chirps = 16
	matrix := testutil.StaticChirpMatrix(chirps, testSamples, 4e3, testSampleRate, 1.0)

	cfg := testConfig(chirps, MTINone)
	cfg.CenterExcision = 3
	m, err := Process(matrix, cfg)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	// The static peak sits on the zero-velocity row and is cut away.
	for d := chirps/2 - 1; d <= chirps/2+1; d++ {
		for r := 0; r < m.Cols(); r++ {
			if m.At(r, d) != 0 {
				t.Fatalf("excised cell (%d, %d) = %v", d, r, m.At(r, d))
			}
		}
	}
	if m.At(0, 0) != -5 {
		t.Fatalf("untouched cell clamped incorrectly: %v", m.At(0, 0))
	}
}

func TestProcessRangeExcision(t *testing.T) {
	const chirps = 16
	matrix := testutil.StaticChirpMatrix(chirps, testSamples, 4e3, testSampleRate, 1.0)

	cfg := testConfig(chirps, MTINone)
	cfg.RangeExcision = 5
	m, err := Process(matrix, cfg)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	// Columns from zero range up to and including the target bin are cut.
	for c := testSamples / 2; c < testSamples/2+5; c++ {
		for d := 0; d < m.Rows(); d++ {
			if m.At(c, d) != 0 {
				t.Fatalf("excised column cell (%d, %d) = %v", d, c, m.At(c, d))
			}
		}
	}
	if d, r := mapArgmax(m); r == testSamples/2+4 {
		t.Fatalf("target at (%d, %d) survived range excision", d, r)
	}
}

func TestProcessDefaultScale(t *testing.T) {
	const chirps = 16
	matrix := testutil.StaticChirpMatrix(chirps, testSamples, 4e3, testSampleRate, 1.0)

	cfg := Config{MTI: MTINone, Ramp: testRamp(chirps)}
	m, err := Process(matrix, cfg)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	for d, row := range m.Data {
		for r, v := range row {
			if v < DefaultMinScale || v > DefaultMaxScale {
				t.Fatalf("cell (%d, %d) = %v outside default scale", d, r, v)
			}
		}
	}
}

func TestProcessWindowedPeakStaysPut(t *testing.T) {
	const chirps = 16
	matrix := testutil.StaticChirpMatrix(chirps, testSamples, 4e3, testSampleRate, 1.0)

	cfg := testConfig(chirps, MTINone)
	cfg.Window = window.TypeBlackman
	m, err := Process(matrix, cfg)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if d, r := mapArgmax(m); d != chirps/2 || r != testSamples/2+4 {
		t.Fatalf("windowed peak at (%d, %d), want (%d, %d)", d, r, chirps/2, testSamples/2+4)
	}
}

func TestProcessDeterministic(t *testing.T) {
	const chirps = 17
	matrix := combinedMatrix(chirps)
	cfg := testConfig(chirps, MTITwoPulse)

	a, err := Process(matrix, cfg)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	b, err := Process(matrix, cfg)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	for d := range a.Data {
		diff, err := testutil.MaxAbsDiff(a.Data[d], b.Data[d])
		if err != nil {
			t.Fatalf("row %d: %v", d, err)
		}
		if diff != 0 {
			t.Fatalf("row %d differs by %v between runs", d, diff)
		}
	}
}

func TestNewProcessorValidation(t *testing.T) {
	base := testConfig(16, MTINone)

	bad := base
	bad.MinScale, bad.MaxScale = 6, 4
	if _, err := NewProcessor(bad); err == nil {
		t.Fatalf("expected error for inverted scale range")
	}

	bad = base
	bad.CenterExcision = -1
	if _, err := NewProcessor(bad); err == nil {
		t.Fatalf("expected error for negative excision")
	}

	bad = base
	bad.MTI = MTIMode(99)
	if _, err := NewProcessor(bad); err == nil {
		t.Fatalf("expected error for unknown MTI mode")
	}

	bad = base
	bad.Ramp.SampleRate = 0
	if _, err := NewProcessor(bad); err == nil {
		t.Fatalf("expected error for invalid ramp")
	}
}

func TestParseMTIMode(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want MTIMode
	}{
		{"none", MTINone},
		{"", MTINone},
		{"2pulse", MTITwoPulse},
		{"3pulse", MTIThreePulse},
	} {
		got, err := ParseMTIMode(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("ParseMTIMode(%q) = %v, %v", tc.in, got, err)
		}
	}
	if _, err := ParseMTIMode("4pulse"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}

	if MTITwoPulse.String() != "2pulse" || MTIThreePulse.Passes() != 2 {
		t.Fatalf("mode metadata mismatch")
	}
}
