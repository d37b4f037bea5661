package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ValidationSeverity indicates whether a validation issue is an error or warning.
type ValidationSeverity string

const (
	// SeverityError indicates a fatal validation issue; the configuration is unusable.
	SeverityError ValidationSeverity = "error"
	// SeverityWarning indicates an informational validation issue; the configuration works
	// but may have problems.
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationIssue represents a single validation finding.
type ValidationIssue struct {
	Severity ValidationSeverity
	Field    string // dotted path, e.g., "run.timeout"
	Message  string
}

// ValidationResult holds all validation findings.
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasErrors returns true if any issue has error severity.
func (vr *ValidationResult) HasErrors() bool {
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if any issue has warning severity.
func (vr *ValidationResult) HasWarnings() bool {
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// Errors returns only error-severity issues.
func (vr *ValidationResult) Errors() []ValidationIssue {
	var errs []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityError {
			errs = append(errs, issue)
		}
	}
	return errs
}

// Warnings returns only warning-severity issues.
func (vr *ValidationResult) Warnings() []ValidationIssue {
	var warns []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityWarning {
			warns = append(warns, issue)
		}
	}
	return warns
}

// Validate checks the configuration for correctness.
// It performs semantic validation and unknown key detection.
//
// Parameters:
//   - cfg: the configuration to validate
//   - meta: TOML metadata from BurntSushi/toml (may be nil if no file was loaded)
//
// Returns validation results. Check HasErrors() to determine if the config is usable.
func Validate(cfg *Config, meta *toml.MetaData) *ValidationResult {
	vr := &ValidationResult{}

	if cfg == nil {
		addError(vr, "", "configuration is nil")
		return vr
	}

	validateTags(vr, &cfg.Tags)
	validateRun(vr, &cfg.Run)
	validateUnknownKeys(vr, meta)

	return vr
}

// ValidateResolved validates the merged configuration and includes the
// issues found while reading the environment.
func ValidateResolved(rc *ResolvedConfig, meta *toml.MetaData) *ValidationResult {
	if rc == nil {
		return Validate(nil, meta)
	}
	vr := Validate(rc.Config, meta)
	vr.Issues = append(append([]ValidationIssue(nil), rc.Issues...), vr.Issues...)
	return vr
}

// validateTags checks the [tags] section.
func validateTags(vr *ValidationResult, t *TagsConfig) {
	checkTagList(vr, "tags.include", t.Include)
	checkTagList(vr, "tags.exclude", t.Exclude)

	// Warning: a tag in both lists can never run.
	excluded := make(map[string]bool, len(t.Exclude))
	for _, tag := range t.Exclude {
		excluded[tag] = true
	}
	for _, tag := range t.Include {
		if excluded[tag] {
			addWarning(vr, "tags.include",
				fmt.Sprintf("tag %q is also excluded; specs carrying it never run", tag))
		}
	}
}

func checkTagList(vr *ValidationResult, field string, tags []string) {
	for i, tag := range tags {
		switch {
		case strings.TrimSpace(tag) == "":
			addError(vr, fmt.Sprintf("%s[%d]", field, i), "must not be an empty string")
		case strings.ContainsAny(tag, ", \t\n"):
			addError(vr, fmt.Sprintf("%s[%d]", field, i),
				fmt.Sprintf("tag %q must not contain commas or whitespace", tag))
		}
	}
}

// validateRun checks the [run] section.
func validateRun(vr *ValidationResult, r *RunConfig) {
	if _, err := r.TimeoutDuration(); err != nil {
		addError(vr, "run.timeout", err.Error())
	}
}

// validateUnknownKeys checks for TOML keys that did not map to any config struct field.
func validateUnknownKeys(vr *ValidationResult, meta *toml.MetaData) {
	if meta == nil {
		return
	}

	for _, key := range meta.Undecoded() {
		path := strings.Join(key, ".")
		addWarning(vr, path, "unknown configuration key")
	}
}

// addError appends an error-severity issue to the validation result.
func addError(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityError,
		Field:    field,
		Message:  message,
	})
}

// addWarning appends a warning-severity issue to the validation result.
func addWarning(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityWarning,
		Field:    field,
		Message:  message,
	})
}
