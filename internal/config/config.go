// Package config holds the tunable constants exposed across the
// reconstruction pipeline (spec glossary), loadable from an optional YAML
// override file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ChannelWeights weights the four compatibility-score channels.
type ChannelWeights struct {
	Shape float64 `yaml:"shape"`
	Hue   float64 `yaml:"hue"`
	Sat   float64 `yaml:"sat"`
	Lum   float64 `yaml:"lum"`
}

// Params collects every constant named in the spec's glossary as tunable.
type Params struct {
	NumThreads int `yaml:"num_threads"`

	ColorFuzz           int     `yaml:"color_fuzz"`
	AvgReclusterChange  float64 `yaml:"avg_recluster_change"`
	ResolutionDepth     int     `yaml:"resolution_depth"`
	BaseSize            int     `yaml:"base_size"`
	VisualizationFrame  int     `yaml:"visualization_frame"`
	VisualizationErode  int     `yaml:"visualization_erode"`
	ColorBlurRadius     int     `yaml:"color_blur_radius"`
	EdgeToColorDistance int     `yaml:"edge_to_color_distance"`
	MinEdgeSize         float64 `yaml:"min_edge_size"`
	MinMaxPieceSizeRatio float64 `yaml:"min_max_piece_size_ratio"`

	Weights ChannelWeights `yaml:"weights"`
}

// Default returns the constants exactly as specified in the spec glossary
// and component descriptions.
func Default() Params {
	return Params{
		NumThreads: 8,

		ColorFuzz:            20,
		AvgReclusterChange:   1.0,
		ResolutionDepth:      3,
		BaseSize:             50,
		VisualizationFrame:   20,
		VisualizationErode:   2,
		ColorBlurRadius:      2,
		EdgeToColorDistance:  6,
		MinEdgeSize:          30,
		MinMaxPieceSizeRatio: 0.25,

		Weights: ChannelWeights{Shape: 1, Hue: 0, Sat: 0, Lum: 0},
	}
}

// Load reads overrides from a YAML file on top of Default(). An empty path
// returns Default() unmodified.
func Load(path string) (Params, error) {
	p := Default()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse config %s: %w", path, err)
	}
	return p, nil
}
