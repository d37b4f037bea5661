package config

import (
	"slices"
	"strconv"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/tagging"
)

// ConfigSource identifies where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value came from built-in defaults.
	SourceDefault ConfigSource = "default"
	// SourceFile indicates the value came from the spectrum.toml config file.
	SourceFile ConfigSource = "file"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
	// SourceOptions indicates the value came from the options record passed
	// to a declared root (or from a CLI flag).
	SourceOptions ConfigSource = "options"
)

// Environment variables read by Resolve.
const (
	EnvIncludeTags   = "SPECTRUM_INCLUDE_TAGS"
	EnvExcludeTags   = "SPECTRUM_EXCLUDE_TAGS"
	EnvTimeout       = "SPECTRUM_TIMEOUT"
	EnvRandomSeed    = "SPECTRUM_RANDOM_SEED"
	EnvReportFile    = "SPECTRUM_REPORT_FILE"
	EnvReportConsole = "SPECTRUM_REPORT_CONSOLE"
)

// ResolvedConfig holds the fully-resolved configuration with source tracking.
// The Config field contains the merged values; Sources tracks where each came from.
type ResolvedConfig struct {
	Config  *Config
	Sources map[string]ConfigSource // key is dotted path, e.g., "tags.include"
	Path    string                  // path to the config file used (empty if none)
	// Issues collects environment values that could not be parsed. They are
	// reported by Validate alongside problems in the merged Config.
	Issues []ValidationIssue
}

// Overrides is the options record attached to a declared root. Tag lists
// override the lower layers only when non-empty, independently of each
// other. A nil pointer means "not overridden".
type Overrides struct {
	IncludeTags   []string
	ExcludeTags   []string
	Timeout       *string
	RandomSeed    *uint64
	ReportFile    *string
	ReportConsole *bool
}

// EnvFunc is a function that looks up environment variables.
// Default implementation is os.LookupEnv. Injected for testability.
type EnvFunc func(key string) (string, bool)

// Resolve merges configuration from all sources in priority order:
// options record > environment variables > config file > defaults.
//
// Parameters:
//   - defaults: built-in default config (from NewDefaults())
//   - fileConfig: parsed config from spectrum.toml (nil if no file found)
//   - envFn: function to look up environment variables
//   - overrides: options record values (nil fields mean "not set")
//
// Returns the fully-resolved config with source annotations.
func Resolve(defaults *Config, fileConfig *Config, envFn EnvFunc, overrides *Overrides) *ResolvedConfig {
	rc := &ResolvedConfig{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}

	if defaults == nil {
		defaults = &Config{}
	}
	if envFn == nil {
		envFn = func(string) (string, bool) { return "", false }
	}
	if overrides == nil {
		overrides = &Overrides{}
	}

	// Layer 1: Start with defaults as the base.
	resolveFromDefaults(rc, defaults)

	// Layer 2: Merge file config on top (non-zero values override).
	if fileConfig != nil {
		resolveFromFile(rc, fileConfig)
	}

	// Layer 3: Merge environment variables on top.
	resolveFromEnv(rc, envFn)

	// Layer 4: Merge the options record on top.
	resolveFromOptions(rc, overrides)

	return rc
}

// --- Layer 1: Defaults ---

func resolveFromDefaults(rc *ResolvedConfig, d *Config) {
	c := rc.Config
	setStrings(&c.Tags.Include, d.Tags.Include, "tags.include", SourceDefault, rc.Sources)
	setStrings(&c.Tags.Exclude, d.Tags.Exclude, "tags.exclude", SourceDefault, rc.Sources)
	setString(&c.Run.Timeout, d.Run.Timeout, "run.timeout", SourceDefault, rc.Sources)
	c.Run.RandomSeed = d.Run.RandomSeed
	rc.Sources["run.random_seed"] = SourceDefault
	setString(&c.Report.File, d.Report.File, "report.file", SourceDefault, rc.Sources)
	c.Report.Console = d.Report.Console
	rc.Sources["report.console"] = SourceDefault
}

// --- Layer 2: File ---

func resolveFromFile(rc *ResolvedConfig, f *Config) {
	c := rc.Config
	mergeStrings(&c.Tags.Include, f.Tags.Include, "tags.include", SourceFile, rc.Sources)
	mergeStrings(&c.Tags.Exclude, f.Tags.Exclude, "tags.exclude", SourceFile, rc.Sources)
	mergeString(&c.Run.Timeout, f.Run.Timeout, "run.timeout", SourceFile, rc.Sources)
	if f.Run.RandomSeed != 0 {
		c.Run.RandomSeed = f.Run.RandomSeed
		rc.Sources["run.random_seed"] = SourceFile
	}
	mergeString(&c.Report.File, f.Report.File, "report.file", SourceFile, rc.Sources)
	if f.Report.Console {
		c.Report.Console = true
		rc.Sources["report.console"] = SourceFile
	}
}

// --- Layer 3: Environment ---

// Environment variable mapping:
//
//	SPECTRUM_INCLUDE_TAGS    -> tags.include (comma separated)
//	SPECTRUM_EXCLUDE_TAGS    -> tags.exclude (comma separated)
//	SPECTRUM_TIMEOUT         -> run.timeout
//	SPECTRUM_RANDOM_SEED     -> run.random_seed
//	SPECTRUM_REPORT_FILE     -> report.file
//	SPECTRUM_REPORT_CONSOLE  -> report.console
func resolveFromEnv(rc *ResolvedConfig, envFn EnvFunc) {
	c := rc.Config

	if val, ok := envFn(EnvIncludeTags); ok {
		c.Tags.Include = tagging.ParseList(val)
		rc.Sources["tags.include"] = SourceEnv
	}
	if val, ok := envFn(EnvExcludeTags); ok {
		c.Tags.Exclude = tagging.ParseList(val)
		rc.Sources["tags.exclude"] = SourceEnv
	}
	if val, ok := envFn(EnvTimeout); ok {
		c.Run.Timeout = val
		rc.Sources["run.timeout"] = SourceEnv
	}
	if val, ok := envFn(EnvRandomSeed); ok {
		seed, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			rc.Issues = append(rc.Issues, ValidationIssue{
				Severity: SeverityError,
				Field:    "run.random_seed",
				Message:  EnvRandomSeed + " must be an unsigned integer, got " + strconv.Quote(val),
			})
		} else {
			c.Run.RandomSeed = seed
			rc.Sources["run.random_seed"] = SourceEnv
		}
	}
	if val, ok := envFn(EnvReportFile); ok {
		c.Report.File = val
		rc.Sources["report.file"] = SourceEnv
	}
	if val, ok := envFn(EnvReportConsole); ok {
		on, err := strconv.ParseBool(val)
		if err != nil {
			rc.Issues = append(rc.Issues, ValidationIssue{
				Severity: SeverityError,
				Field:    "report.console",
				Message:  EnvReportConsole + " must be a boolean, got " + strconv.Quote(val),
			})
		} else {
			c.Report.Console = on
			rc.Sources["report.console"] = SourceEnv
		}
	}
}

// --- Layer 4: Options record ---

func resolveFromOptions(rc *ResolvedConfig, o *Overrides) {
	c := rc.Config

	// Tag lists win only when non-empty so an unset list never erases the
	// environment's selection.
	mergeStrings(&c.Tags.Include, o.IncludeTags, "tags.include", SourceOptions, rc.Sources)
	mergeStrings(&c.Tags.Exclude, o.ExcludeTags, "tags.exclude", SourceOptions, rc.Sources)

	if o.Timeout != nil {
		c.Run.Timeout = *o.Timeout
		rc.Sources["run.timeout"] = SourceOptions
	}
	if o.RandomSeed != nil {
		c.Run.RandomSeed = *o.RandomSeed
		rc.Sources["run.random_seed"] = SourceOptions
	}
	if o.ReportFile != nil {
		c.Report.File = *o.ReportFile
		rc.Sources["report.file"] = SourceOptions
	}
	if o.ReportConsole != nil {
		c.Report.Console = *o.ReportConsole
		rc.Sources["report.console"] = SourceOptions
	}
}

// --- Helpers ---

// setString unconditionally sets the target to the given value and records the source.
func setString(target *string, value string, path string, source ConfigSource, sources map[string]ConfigSource) {
	*target = value
	sources[path] = source
}

// mergeString overwrites the target only if value is non-empty (non-zero string).
// For file-layer merging, an empty string in the file means "not set in file",
// so it does not override the default.
func mergeString(target *string, value string, path string, source ConfigSource, sources map[string]ConfigSource) {
	if value != "" {
		*target = value
		sources[path] = source
	}
}

// setStrings unconditionally replaces the target with a copy of values.
func setStrings(target *[]string, values []string, path string, source ConfigSource, sources map[string]ConfigSource) {
	*target = slices.Clone(values)
	sources[path] = source
}

// mergeStrings replaces the target with a copy of values only if values is non-empty.
func mergeStrings(target *[]string, values []string, path string, source ConfigSource, sources map[string]ConfigSource) {
	if len(values) > 0 {
		*target = slices.Clone(values)
		sources[path] = source
	}
}
