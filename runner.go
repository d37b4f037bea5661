package spectrum

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/AbdelazizMoustafa10m/spectrum/internal/blockconfig"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/config"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/declare"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/logging"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/report"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/tagging"
	"github.com/AbdelazizMoustafa10m/spectrum/internal/tree"
)

// ErrMissingName is returned by Build when the root has no name.
var ErrMissingName = errors.New("spectrum: root suite needs a name")

// reportNamePlaceholder in a report file path is replaced by the root
// suite's name.
const reportNamePlaceholder = "{name}"

// Option configures Build and Run.
type Option func(*options)

type options struct {
	overrides  config.Overrides
	env        config.EnvFunc
	configDir  string
	configPath string
	noFile     bool
	logger     *log.Logger
	reporters  []report.Reporter
	stderr     io.Writer
}

// WithIncludeTags restricts the run to specs carrying at least one of
// tags. When non-empty it replaces SPECTRUM_INCLUDE_TAGS and the file.
func WithIncludeTags(tags ...string) Option {
	return func(o *options) { o.overrides.IncludeTags = tags }
}

// WithExcludeTags ignores nodes carrying any of tags. When non-empty it
// replaces SPECTRUM_EXCLUDE_TAGS and the file.
func WithExcludeTags(tags ...string) Option {
	return func(o *options) { o.overrides.ExcludeTags = tags }
}

// WithTimeout sets the default per-spec time limit. Zero disables it.
func WithTimeout(d time.Duration) Option {
	limit := ""
	if d > 0 {
		limit = d.String()
	}
	return func(o *options) { o.overrides.Timeout = &limit }
}

// WithRandomSeed shuffles every suite's children with seed. Zero keeps
// declaration order.
func WithRandomSeed(seed uint64) Option {
	return func(o *options) { o.overrides.RandomSeed = &seed }
}

// WithReportFile writes the run's NDJSON event stream to path. A path
// containing "{name}" is truncated per root; any other path is appended
// to. An empty path disables the file.
func WithReportFile(path string) Option {
	return func(o *options) { o.overrides.ReportFile = &path }
}

// WithConsole mirrors the run's events to stderr.
func WithConsole(on bool) Option {
	return func(o *options) { o.overrides.ReportConsole = &on }
}

// WithReporter adds a Reporter receiving every event of the run.
func WithReporter(rep Reporter) Option {
	return func(o *options) { o.reporters = append(o.reporters, rep) }
}

// WithLogger replaces the default logger, which writes warnings to stderr
// (debug traces with SPECTRUM_VERBOSE=1).
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithEnv replaces os.LookupEnv as the source of SPECTRUM_* variables.
func WithEnv(lookup func(string) (string, bool)) Option {
	return func(o *options) { o.env = lookup }
}

// WithConfigFile loads configuration from path instead of searching for
// spectrum.toml.
func WithConfigFile(path string) Option {
	return func(o *options) { o.configPath = path }
}

// WithConfigDir searches for spectrum.toml upward from dir instead of the
// working directory.
func WithConfigDir(dir string) Option {
	return func(o *options) { o.configDir = dir }
}

// Isolated ignores spectrum.toml and the environment so that only Options
// configure the run.
func Isolated() Option {
	return func(o *options) {
		o.noFile = true
		o.env = func(string) (string, bool) { return "", false }
	}
}

// Runner is a declared tree ready to run once.
type Runner struct {
	root     *tree.Suite
	settings config.Config
	logger   *log.Logger
	extra    []report.Reporter
	stderr   io.Writer
	ran      bool
}

// Build declares the tree named name by running declare, after resolving
// the configuration. Declaration panics become failing specs; only a
// missing name or an unusable configuration make Build fail.
func Build(name string, declareFn func(*DSL), opts ...Option) (*Runner, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrMissingName
	}

	o := options{env: os.LookupEnv, configDir: ".", stderr: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.NewStandalone("spectrum", o.stderr, logging.OptionsFromEnv(o.env))
	}

	resolved, err := o.resolve()
	if err != nil {
		return nil, err
	}
	defaults, criteria, err := rootSettings(resolved.Config)
	if err != nil {
		return nil, err
	}

	root := tree.NewRoot(name, criteria, defaults)
	stack := declare.NewStack(o.logger)
	dsl := &DSL{stack: stack, logger: o.logger}
	stack.Declare(root, func() {
		if declareFn != nil {
			declareFn(dsl)
		}
	})

	o.logger.Debug("tree declared", "root", name, "tests", root.TestCount(), "config", defaults)
	return &Runner{
		root:     root,
		settings: *resolved.Config,
		logger:   o.logger,
		extra:    o.reporters,
		stderr:   o.stderr,
	}, nil
}

func (o *options) resolve() (*config.ResolvedConfig, error) {
	var (
		resolved *config.ResolvedConfig
		meta     *toml.MetaData
		err      error
	)
	if o.noFile {
		resolved = config.Resolve(config.NewDefaults(), nil, o.env, &o.overrides)
	} else {
		resolved, meta, err = config.Load(o.configDir, o.configPath, o.env, &o.overrides)
		if err != nil {
			return nil, err
		}
	}

	result := config.ValidateResolved(resolved, meta)
	for _, w := range result.Warnings() {
		o.logger.Warn("configuration", "field", w.Field, "issue", w.Message)
	}
	if errs := result.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("spectrum: invalid configuration: %s: %s", errs[0].Field, errs[0].Message)
	}
	return resolved, nil
}

// rootSettings turns the resolved configuration into the root suite's
// block configuration and tag criteria.
func rootSettings(cfg *config.Config) (blockconfig.Configuration, *tagging.Criteria, error) {
	defaults := blockconfig.Of()
	timeout, err := cfg.Run.TimeoutDuration()
	if err != nil {
		return defaults, nil, err
	}
	if timeout > 0 {
		defaults = defaults.With(blockconfig.Timeout(timeout))
	}
	if cfg.Run.RandomSeed != 0 {
		defaults = defaults.With(blockconfig.RandomOrder(cfg.Run.RandomSeed))
	}
	return defaults, tagging.New(cfg.Tags.Include, cfg.Tags.Exclude), nil
}

// Description returns the identity structure of the declared tree.
func (r *Runner) Description() Tree {
	return r.root.Tree()
}

// Run executes the tree, reporting to rep (which may be nil) and to the
// sinks selected by the configuration, and returns the tally. A Runner runs
// once.
func (r *Runner) Run(ctx context.Context, rep Reporter) (Summary, error) {
	if r.ran {
		return Summary{}, ErrAlreadyRun
	}
	r.ran = true

	sinks := append([]report.Reporter{}, r.extra...)
	if rep != nil {
		sinks = append(sinks, rep)
	}
	if r.settings.Report.Console {
		sinks = append(sinks, report.NewConsole(r.stderr))
	}

	var writer *report.JSONWriter
	if path, truncate := r.reportPath(); path != "" {
		f, err := openReport(path, truncate)
		if err != nil {
			return Summary{}, err
		}
		defer f.Close()
		writer = report.NewJSONWriter(f)
		sinks = append(sinks, writer)
	}

	counting := report.NewCounting(report.Multi(sinks...))
	if err := r.root.Run(ctx, counting, tree.WithLogger(r.logger)); err != nil {
		return Summary{}, err
	}

	summary := counting.Summary()
	r.logger.Debug("run finished", "root", r.root.Description().ID(), "summary", summary)
	if writer != nil {
		if err := writer.Err(); err != nil {
			return summary, fmt.Errorf("writing report: %w", err)
		}
	}
	return summary, nil
}

// reportPath returns the report file for this root and whether it is
// private to the root (and so truncated rather than appended to).
func (r *Runner) reportPath() (string, bool) {
	path := r.settings.Report.File
	if !strings.Contains(path, reportNamePlaceholder) {
		return path, false
	}
	name := strings.ReplaceAll(r.root.Description().Name, string(filepath.Separator), "-")
	return strings.ReplaceAll(path, reportNamePlaceholder, name), true
}

func openReport(path string, truncate bool) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating report directory: %w", err)
		}
	}
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if truncate {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening report file: %w", err)
	}
	return f, nil
}
