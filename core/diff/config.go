package diff

// Config is the environment-facing form of Options, bound by core/config.
type Config struct {
	// CompareSize enables the size equality strategy.
	CompareSize bool `mapstructure:"compare_size" default:"true"`
	// CompareContent enables the byte content equality strategy.
	CompareContent bool `mapstructure:"compare_content" default:"true"`
	// Exclude is a comma separated list of doublestar globs (COMPARE_EXCLUDE="logs/**,**/*.tmp").
	Exclude []string `mapstructure:"exclude" default:""`
	// InvalidRecords is "reject" or "skip".
	InvalidRecords string `mapstructure:"invalid_records" default:"reject"`
}

// Options converts the configuration into comparator options using logger.
func (c Config) Options(logger Logger) Options {
	exclude := make([]string, 0, len(c.Exclude))
	for _, pattern := range c.Exclude {
		if pattern != "" {
			exclude = append(exclude, pattern)
		}
	}
	return Options{
		CompareSize:    c.CompareSize,
		CompareContent: c.CompareContent,
		Exclude:        exclude,
		InvalidRecords: RecordPolicy(c.InvalidRecords),
		Logger:         logger,
	}
}
