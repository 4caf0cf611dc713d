// Package spectrum converts complex baseband bursts into calibrated
// magnitude spectra.
//
// The estimator windows a burst, transforms it with an external FFT backend,
// removes the window's coherent gain, and scales the result to dBFS against
// the digitizer full-scale code. Magnitude and power helpers operate on raw
// complex bins for callers that run their own transforms.
package spectrum
