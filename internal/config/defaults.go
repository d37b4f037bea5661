package config

// NewDefaults returns a Config populated with all default values: no tag
// selection, no timeout, declaration order, and no report file.
func NewDefaults() *Config {
	return &Config{
		Tags: TagsConfig{
			Include: []string{},
			Exclude: []string{},
		},
	}
}
