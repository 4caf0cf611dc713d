package main

// this file contains all the code that directly uses the viper package
import (
	"github.com/spf13/viper"
)

type radarSettings struct {
	SampleRate float64
	IFFreq     float64
	OutputFreq float64
	Bandwidth  float64
	RampTime   float64
	PRI        float64
	NumChirps  int
	FFTSize    int
}

type cfarSettings struct {
	Guard int
	Ref   int
	Bias  float64
}

type rdmapSettings struct {
	MTI            string
	MinScale       float64
	MaxScale       float64
	CenterExcision int
	RangeExcision  int
}

var (
	radarCfg radarSettings
	cfarCfg  cfarSettings
	rdmapCfg rdmapSettings
)

// loadConfig reads configuration from a TOML-formatted file called
// 'radarproc.toml'. It looks in /etc/radarproc and then in the current
// directory, for convenience.
// Returns true if a config file was read.
func loadConfig() bool {
	viper.SetConfigName("radarproc")
	viper.AddConfigPath("/etc/radarproc")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		return false
	}
	viper.UnmarshalKey("radar", &radarCfg)
	viper.UnmarshalKey("cfar", &cfarCfg)
	viper.UnmarshalKey("rdmap", &rdmapCfg)
	return true
}

// setDefaultConfig fills in the Phaser capture defaults. Called before
// loadConfig so a partial config file only overrides what it names.
func setDefaultConfig() {
	radarCfg = radarSettings{
		SampleRate: 0.682e6,
		IFFreq:     100e3,
		OutputFreq: 10e9,
		Bandwidth:  750e6,
		RampTime:   500e-6,
		PRI:        1.5e-3,
		NumChirps:  256,
		FFTSize:    1022,
	}
	cfarCfg = cfarSettings{Guard: 8, Ref: 16, Bias: 11}
	rdmapCfg = rdmapSettings{MTI: "2pulse", MinScale: 4, MaxScale: 6}
}
