// Package config loads the layered checkers configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultHelperTimeout bounds analyzer subprocesses when not configured.
const DefaultHelperTimeout = 10 * time.Second

// Duration is a time.Duration written as a string ("10s", "1m30s") in TOML.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config is the merged configuration of one invocation.
type Config struct {
	// LabelsDir holds the label files. Empty selects the embedded labels.
	LabelsDir string `toml:"labels_dir"`

	// Analyzers is the default analyzer selection. Empty means all.
	Analyzers []string `toml:"analyzers" validate:"dive,required,analyzer_name"`

	// Output is the default output format.
	Output string `toml:"output" validate:"required,oneof=rows table csv json"`

	// Binaries overrides analyzer binary lookup.
	Binaries Binaries `toml:"binaries"`

	// Env extends the analyzer environment.
	Env Env `toml:"env"`

	// HelperTimeout bounds every analyzer subprocess.
	HelperTimeout Duration `toml:"helper_timeout" validate:"gt=0"`
}

// Binaries are explicit analyzer binary paths or names.
type Binaries struct {
	Clang     string `toml:"clang"`
	ClangTidy string `toml:"clang_tidy"`
	Diagtool  string `toml:"diagtool"`
}

// Env lists directories prepended to the analyzer search paths.
type Env struct {
	PathExtra          []string `toml:"path_extra"`
	LDLibraryPathExtra []string `toml:"ld_library_path_extra"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output:        "rows",
		HelperTimeout: Duration(DefaultHelperTimeout),
	}
}

// Timeout returns HelperTimeout as a time.Duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HelperTimeout)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("analyzer_name", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s != "" && strings.TrimSpace(s) == s && !strings.ContainsAny(s, ", \t")
	})
	return v
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, formatFieldError(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}

// formatFieldError converts a single field validation error to a human-readable message.
func formatFieldError(fe validator.FieldError) string {
	field := tomlName(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be positive", field)
	case "analyzer_name":
		return fmt.Sprintf("%s: invalid analyzer name %q", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

// tomlName maps a validator namespace ("Config.HelperTimeout") to the TOML
// key users write ("helper_timeout").
func tomlName(namespace string) string {
	_, field, ok := strings.Cut(namespace, ".")
	if !ok {
		field = namespace
	}
	switch {
	case strings.HasPrefix(field, "Analyzers"):
		return "analyzers" + strings.TrimPrefix(field, "Analyzers")
	case field == "Output":
		return "output"
	case field == "HelperTimeout":
		return "helper_timeout"
	}
	return field
}
