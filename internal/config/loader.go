package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// ProjectConfigFile is the name of the project-level config file.
	ProjectConfigFile = "checkers.toml"
	// UserConfigDir is the directory for user-level config, relative to home.
	UserConfigDir = ".config/checkers"
	// UserConfigFile is the name of the user-level config file.
	UserConfigFile = "config.toml"
)

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger *slog.Logger

	// UserPath overrides the user config location. Empty uses
	// ~/.config/checkers/config.toml.
	UserPath string

	// StartDir is where the project config search begins. Empty uses the
	// working directory.
	StartDir string
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
//  1. Default config
//  2. User config (~/.config/checkers/config.toml)
//  3. Project config: explicitPath when given, otherwise checkers.toml in
//     the start directory or its parents
//
// A broken user or discovered project file is logged and skipped; a broken
// explicit file is an error. Command-line flags are applied by the caller.
func (l *Loader) Load(explicitPath string) (*Config, error) {
	cfg := Default()

	userPath := l.UserPath
	if userPath == "" {
		userPath = userConfigPath()
	}
	if userPath != "" {
		if _, err := l.decodeFile(userPath, cfg); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", userPath))
		} else if !errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", userPath), slog.String("error", err.Error()))
		}
	}

	if explicitPath != "" {
		meta, err := l.decodeFile(explicitPath, cfg)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded config", slog.String("path", explicitPath))
		if meta.IsDefined("labels_dir") {
			cfg.LabelsDir = resolveRelative(explicitPath, cfg.LabelsDir)
		}
	} else {
		projectPath, ok, err := FindProjectConfig(l.StartDir)
		switch {
		case err != nil:
			l.logger.Warn("Failed to search for project config", slog.String("error", err.Error()))
		case !ok:
			l.logger.Debug("No project config found")
		default:
			meta, err := l.decodeFile(projectPath, cfg)
			if err != nil {
				l.logger.Warn("Failed to load project config", slog.String("path", projectPath), slog.String("error", err.Error()))
				break
			}
			l.logger.Debug("Loaded project config", slog.String("path", projectPath))
			if meta.IsDefined("labels_dir") {
				cfg.LabelsDir = resolveRelative(projectPath, cfg.LabelsDir)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeFile decodes a TOML file over cfg, so only keys present in the file
// replace earlier layers. Unknown keys are logged.
func (l *Loader) decodeFile(path string, cfg *Config) (toml.MetaData, error) {
	if _, err := os.Stat(path); err != nil {
		return toml.MetaData{}, err
	}

	// Decode into a copy so a parse error leaves cfg untouched.
	next := *cfg
	meta, err := toml.DecodeFile(path, &next)
	if err != nil {
		return toml.MetaData{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		l.logger.Warn("Unknown config keys ignored", slog.String("path", path), slog.String("keys", strings.Join(keys, ", ")))
	}
	*cfg = next
	return meta, nil
}

// FindProjectConfig searches for checkers.toml in startDir and its parents.
func FindProjectConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// userConfigPath returns the path to the user config file.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// resolveRelative makes a labels_dir set in a project file relative to that
// file's directory.
func resolveRelative(configPath, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(filepath.Dir(configPath), dir)
}
