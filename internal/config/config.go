// Package config handles normalization job configuration files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	Jobs []Job `yaml:"jobs"`

	// Parallel enables concurrent geometry decoding for all jobs.
	Parallel bool `yaml:"parallel,omitempty"`

	// Workers caps decode goroutines when Parallel is set; 0 means NumCPU.
	Workers int `yaml:"workers,omitempty"`
}

// Job describes one input file to normalize.
type Job struct {
	// Input is the path of the source file.
	Input string `yaml:"input"`

	// Format selects the decoding path: "hex" for delimited text with a
	// hex-encoded geometry column, "gml" for a GML feature collection.
	Format string `yaml:"format"`

	// GeometryColumn names the hex geometry column. Defaults to "geometry".
	GeometryColumn string `yaml:"geometry_column,omitempty"`

	// Output is the GeoJSON destination path; stdout when empty.
	Output string `yaml:"output,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	for i := range cfg.Jobs {
		if err := cfg.Jobs[i].validate(); err != nil {
			return nil, fmt.Errorf("job %d: %w", i+1, err)
		}
	}

	return &cfg, nil
}

func (j *Job) validate() error {
	if j.Input == "" {
		return fmt.Errorf("input is required")
	}
	switch j.Format {
	case "hex", "gml":
	default:
		return fmt.Errorf("format must be \"hex\" or \"gml\", got %q", j.Format)
	}
	if j.GeometryColumn == "" {
		j.GeometryColumn = "geometry"
	}
	return nil
}
