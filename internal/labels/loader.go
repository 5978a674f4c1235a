package labels

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/ancients-collective/checkers/internal/types"
)

// File locations inside a label directory.
const (
	DescriptionsFile = "descriptions.yaml"
	AnalyzerPattern  = "analyzers/**/*.{yaml,yml}"
)

var (
	// checkerNamePattern matches checker names across backends
	// (govet-printf, core.DivideZero, bugprone-use-after-move).
	checkerNamePattern  = regexp.MustCompile(`^[A-Za-z0-9_.+\-]+$`)
	analyzerNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_\-]*$`)
)

// labelFile is the on-disk shape of analyzers/<analyzer>.yaml.
type labelFile struct {
	Analyzer string              `yaml:"analyzer" validate:"required,analyzer_name"`
	Labels   map[string][]string `yaml:"labels" validate:"required,min=1,dive,keys,checker_name,endkeys,min=1,dive,label"`
}

// parsed is the outcome of reading one label file.
type parsed struct {
	path   string
	labels map[string][]types.Label
	err    error
}

// Loader reads label directories and validates every file against the schema.
type Loader struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewLoader creates a Loader. A nil logger falls back to slog.Default().
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	v := validator.New()
	_ = v.RegisterValidation("checker_name", func(fl validator.FieldLevel) bool {
		return checkerNamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("analyzer_name", func(fl validator.FieldLevel) bool {
		return analyzerNamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("label", func(fl validator.FieldLevel) bool {
		return validLabel(fl.Field().String()) == nil
	})

	return &Loader{validate: v, logger: logger}
}

// LoadDirectory loads a label directory from disk.
func (l *Loader) LoadDirectory(dir string) (*Store, []error) {
	info, err := os.Stat(dir)
	if err != nil {
		return NewStore(nil, nil), []error{fmt.Errorf("cannot access label directory %q: %w", dir, err)}
	}
	if !info.IsDir() {
		return NewStore(nil, nil), []error{fmt.Errorf("label path %q is not a directory", dir)}
	}
	return l.LoadFS(os.DirFS(dir))
}

// LoadFS builds a Store from a label directory tree. It returns every fact
// from the files that loaded and one error per file that did not; loading
// continues past individual file failures. A checker described in several
// files accumulates its facts in sorted path order.
func (l *Loader) LoadFS(fsys fs.FS) (*Store, []error) {
	var errs []error

	descriptions, err := l.loadDescriptions(fsys)
	if err != nil {
		errs = append(errs, err)
	}

	paths, err := doublestar.Glob(fsys, AnalyzerPattern)
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to list label files: %w", err))
	}
	sort.Strings(paths)

	results := make([]parsed, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			results[i] = l.parseFile(fsys, path)
			return nil
		})
	}
	_ = g.Wait()

	merged := make(map[string][]types.Label)
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.path, r.err))
			continue
		}
		for checker, facts := range r.labels {
			merged[checker] = append(merged[checker], facts...)
		}
		l.logger.Debug("Loaded label file", slog.String("path", r.path), slog.Int("checkers", len(r.labels)))
	}

	return NewStore(merged, descriptions), errs
}

// loadDescriptions reads descriptions.yaml. A missing file is an error but
// leaves an empty description index so the checker facts remain usable.
func (l *Loader) loadDescriptions(fsys fs.FS) (map[string]map[string]string, error) {
	data, err := fs.ReadFile(fsys, DescriptionsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", DescriptionsFile, err)
	}

	var desc map[string]map[string]string
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML in %s: %w", DescriptionsFile, err)
	}

	for key, values := range desc {
		if strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%s: empty label key", DescriptionsFile)
		}
		for value := range values {
			if strings.TrimSpace(value) == "" {
				return nil, fmt.Errorf("%s: empty value under %q", DescriptionsFile, key)
			}
		}
	}
	return desc, nil
}

// parseFile reads and validates a single analyzer label file.
func (l *Loader) parseFile(fsys fs.FS, path string) parsed {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return parsed{path: path, err: fmt.Errorf("failed to read: %w", err)}
	}

	labels, err := l.parse(data)
	return parsed{path: path, labels: labels, err: err}
}

// parse decodes and validates label file content.
func (l *Loader) parse(data []byte) (map[string][]types.Label, error) {
	var file labelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := l.validate.Struct(file); err != nil {
		return nil, formatValidationErrors(err)
	}

	out := make(map[string][]types.Label, len(file.Labels))
	for checker, raw := range file.Labels {
		facts := make([]types.Label, 0, len(raw))
		for _, s := range raw {
			lbl, err := types.ParseLabel(s)
			if err != nil {
				return nil, fmt.Errorf("checker %q: %w", checker, err)
			}
			facts = append(facts, lbl)
		}
		out[checker] = facts
	}
	return out, nil
}

// validLabel checks label syntax and, for severity labels, the value range.
func validLabel(s string) error {
	lbl, err := types.ParseLabel(s)
	if err != nil {
		return err
	}
	if lbl.Key == types.SeverityKey {
		if _, ok := types.ParseSeverity(lbl.Value); !ok {
			return fmt.Errorf("invalid severity %q", lbl.Value)
		}
	}
	return nil
}

// formatValidationErrors converts validator errors into user-friendly messages.
func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, formatFieldError(fe))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// formatFieldError converts a single field validation error to a human-readable message.
func formatFieldError(fe validator.FieldError) string {
	field := fe.Namespace()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	case "analyzer_name":
		return fmt.Sprintf("%s must be a lowercase analyzer name, got %q", field, fe.Value())
	case "checker_name":
		return fmt.Sprintf("%s: invalid checker name %q", field, fe.Value())
	case "label":
		value, _ := fe.Value().(string)
		if err := validLabel(value); err != nil {
			return fmt.Sprintf("%s: %v", field, err)
		}
		return fmt.Sprintf("%s: invalid label %q", field, value)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}
