package core

// AcquisitionConfig defines the scalar capture settings shared by burst
// generators and spectral processing defaults.
type AcquisitionConfig struct {
	SampleRate    float64
	TransformSize int
}

// AcquisitionOption mutates an AcquisitionConfig.
type AcquisitionOption func(*AcquisitionConfig)

// DefaultAcquisitionConfig returns the capture defaults observed on the
// Phaser front end: 0.682 MSPS and a 1022-point transform.
func DefaultAcquisitionConfig() AcquisitionConfig {
	return AcquisitionConfig{
		SampleRate:    0.682e6,
		TransformSize: 1022,
	}
}

// WithSampleRate sets the capture sample rate in Hz.
func WithSampleRate(sampleRate float64) AcquisitionOption {
	return func(cfg *AcquisitionConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithTransformSize sets the spectral transform size in bins.
func WithTransformSize(size int) AcquisitionOption {
	return func(cfg *AcquisitionConfig) {
		if size > 0 {
			cfg.TransformSize = size
		}
	}
}

// ApplyAcquisitionOptions applies zero or more options to the default config.
func ApplyAcquisitionOptions(opts ...AcquisitionOption) AcquisitionConfig {
	cfg := DefaultAcquisitionConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
