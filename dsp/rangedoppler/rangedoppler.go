package rangedoppler

import (
	"fmt"
	"math"

	"github.com/starbelt/radar-dsp/dsp/core"
	"github.com/starbelt/radar-dsp/dsp/radar"
	"github.com/starbelt/radar-dsp/dsp/spectrum"
	"github.com/starbelt/radar-dsp/dsp/window"
)

const epsilonFloor = 1e-15

// Config controls map formation.
type Config struct {
	// MTI selects the clutter cancellation applied before the transform.
	MTI MTIMode

	// MinScale and MaxScale clamp the log10-magnitude output for display.
	MinScale float64
	MaxScale float64

	// CenterExcision zeroes this many Doppler rows around zero velocity
	// after centering. Zero disables the cut.
	CenterExcision int

	// RangeExcision zeroes this many range columns starting at zero range
	// after centering. Zero disables the cut.
	RangeExcision int

	// Window is applied along the range axis of every chirp before the
	// transform. The zero value is rectangular.
	Window window.Type

	// Ramp supplies the chirp geometry for the axis metadata.
	Ramp radar.RampParams
}

// Map is one centered range-Doppler frame. Data is Doppler-major: Data[d][r]
// holds the clamped log10 magnitude at Doppler row d and range column r.
// Zero velocity and zero range sit at the center of their axes.
type Map struct {
	Data         [][]float64
	VelocityAxis []float64
	RangeAxis    []float64
}

// Rows returns the number of Doppler rows.
func (m *Map) Rows() int { return len(m.Data) }

// Cols returns the number of range columns.
func (m *Map) Cols() int {
	if len(m.Data) == 0 {
		return 0
	}
	return len(m.Data[0])
}

// At returns the map value at the given range and Doppler bin.
func (m *Map) At(rangeBin, dopplerBin int) float64 {
	return m.Data[dopplerBin][rangeBin]
}

// Processor forms range-Doppler maps for one fixed configuration. A
// Processor caches transform plans per matrix shape and is not safe for
// concurrent use; create one per goroutine.
type Processor struct {
	cfg        Config
	winCoeffs  []float64
	rangeFFT   spectrum.Transform
	dopplerFFT spectrum.Transform
}

// NewProcessor validates cfg and returns a Processor.
func NewProcessor(cfg Config) (*Processor, error) {
	if cfg.MaxScale == 0 && cfg.MinScale == 0 {
		cfg.MinScale, cfg.MaxScale = DefaultMinScale, DefaultMaxScale
	}
	if cfg.MinScale >= cfg.MaxScale {
		return nil, fmt.Errorf("rangedoppler: scale range [%g, %g] is empty", cfg.MinScale, cfg.MaxScale)
	}
	if cfg.CenterExcision < 0 || cfg.RangeExcision < 0 {
		return nil, fmt.Errorf("rangedoppler: excision widths must be >= 0")
	}
	switch cfg.MTI {
	case MTINone, MTITwoPulse, MTIThreePulse:
	default:
		return nil, fmt.Errorf("rangedoppler: unknown MTI mode %d", int(cfg.MTI))
	}
	if err := cfg.Ramp.Validate(); err != nil {
		return nil, err
	}
	return &Processor{cfg: cfg}, nil
}

// Default display scale, in decades of magnitude.
const (
	DefaultMinScale = 4.0
	DefaultMaxScale = 6.0
)

// Process forms one range-Doppler map from a chirp matrix. Each row of the
// matrix is one chirp of baseband samples; all rows must share a length.
// After cancellation the map has len(matrix) - passes Doppler rows and
// len(matrix[0]) range columns.
func (p *Processor) Process(matrix [][]complex128) (*Map, error) {
	cancelled, err := Cancel(p.cfg.MTI, matrix)
	if err != nil {
		return nil, err
	}
	if len(cancelled) < 1 {
		return nil, ErrInsufficientChirps
	}

	rows := len(cancelled)
	cols := len(cancelled[0])

	if err := p.plan(rows, cols); err != nil {
		return nil, err
	}

	// Range FFT across every chirp.
	freq := make([][]complex128, rows)
	scratch := make([]complex128, cols)
	for r, chirp := range cancelled {
		copy(scratch, chirp)
		if p.winCoeffs != nil {
			if err := applyWindowInPlace(scratch, p.winCoeffs); err != nil {
				return nil, err
			}
		}
		freq[r] = make([]complex128, cols)
		if err := p.rangeFFT.Forward(freq[r], scratch); err != nil {
			return nil, err
		}
	}

	// Doppler FFT down every range column. Together with the range pass this
	// is the full 2-D transform of the matrix.
	colIn := make([]complex128, rows)
	colOut := make([]complex128, rows)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			colIn[r] = freq[r][c]
		}
		if err := p.dopplerFFT.Forward(colOut, colIn); err != nil {
			return nil, err
		}
		for r := 0; r < rows; r++ {
			freq[r][c] = colOut[r]
		}
	}

	// Center both axes, then collapse to clamped log magnitude.
	shifted := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		src := spectrum.FFTShiftComplex(freq[r])
		row := make([]float64, cols)
		for c, v := range src {
			m := math.Hypot(real(v), imag(v))
			if m < epsilonFloor {
				m = epsilonFloor
			}
			row[c] = math.Log10(m)
		}
		shifted[r] = row
	}
	data := shiftRows(shifted)

	p.excise(data)

	for _, row := range data {
		for c := range row {
			row[c] = core.Clamp(row[c], p.cfg.MinScale, p.cfg.MaxScale)
		}
	}

	return &Map{
		Data:         data,
		VelocityAxis: p.cfg.Ramp.VelocityAxis(rows),
		RangeAxis:    p.cfg.Ramp.RangeAxis(p.cfg.Ramp.FrequencyAxis(cols)),
	}, nil
}

func (p *Processor) plan(rows, cols int) error {
	var err error
	if p.rangeFFT == nil || p.rangeFFT.Len() != cols {
		if p.rangeFFT, err = spectrum.NewTransform(cols); err != nil {
			return err
		}
		if p.cfg.Window != window.TypeRectangular {
			p.winCoeffs = window.Generate(p.cfg.Window, cols)
		} else {
			p.winCoeffs = nil
		}
	}
	if p.dopplerFFT == nil || p.dopplerFFT.Len() != rows {
		if p.dopplerFFT, err = spectrum.NewTransform(rows); err != nil {
			return err
		}
	}
	return nil
}

// excise zeroes the configured Doppler rows around zero velocity and range
// columns at zero range.
func (p *Processor) excise(data [][]float64) {
	rows := len(data)
	if rows == 0 {
		return
	}
	cols := len(data[0])

	if ce := p.cfg.CenterExcision; ce > 0 {
		start := rows/2 - ce/2
		for d := start; d < start+ce; d++ {
			if d < 0 || d >= rows {
				continue
			}
			core.Zero(data[d])
		}
	}
	if re := p.cfg.RangeExcision; re > 0 {
		start := cols / 2
		for c := start; c < start+re && c < cols; c++ {
			for d := 0; d < rows; d++ {
				data[d][c] = 0
			}
		}
	}
}

// shiftRows reorders Doppler rows so the zero-velocity row lands at the
// center, the row analogue of spectrum.FFTShift.
func shiftRows(rows [][]float64) [][]float64 {
	n := len(rows)
	split := (n + 1) / 2
	out := make([][]float64, 0, n)
	out = append(out, rows[split:]...)
	out = append(out, rows[:split]...)
	return out
}

func applyWindowInPlace(samples []complex128, coeffs []float64) error {
	windowed, err := window.ApplyComplex(samples, coeffs)
	if err != nil {
		return err
	}
	copy(samples, windowed)
	return nil
}

// Process is the one-shot form of Processor.Process.
func Process(matrix [][]complex128, cfg Config) (*Map, error) {
	p, err := NewProcessor(cfg)
	if err != nil {
		return nil, err
	}
	return p.Process(matrix)
}
