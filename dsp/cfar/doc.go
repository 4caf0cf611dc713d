// Package cfar implements constant-false-alarm-rate detection over
// calibrated dB spectra.
//
// The detector estimates the local noise level at each bin from reference
// cells outside a guard band, adds a bias margin, and masks every bin that
// does not clear the resulting threshold. Averaging happens in the linear
// power domain; thresholds and outputs stay in dB.
package cfar
