package config

// DefaultMaxDimension is the largest field dimension accepted for
// interpolation unless overridden. The conversion engine is O(2^(3n)).
const DefaultMaxDimension = 12

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.apncat",
		Interpolation: InterpolationConfig{
			Workers:      0, // one per CPU
			MaxDimension: DefaultMaxDimension,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.apncat/apncat.log",
		},
	}
}
