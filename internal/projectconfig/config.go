// Package projectconfig provides the ProjectConfig struct and loader for
// .cotboard.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"time"

	"github.com/spboyer/cotboard/internal/source"
	"github.com/spboyer/cotboard/internal/utils"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up from the working directory upwards.
const FileName = ".cotboard.yaml"

// Default values for project configuration. New() is the only place that applies them.
const (
	DefaultReportsLocation    = "reports"
	DefaultReportsConcurrency = 8
	DefaultReportsTimeout     = 30

	DefaultServerPort = 3000

	DefaultExportDir = "site"
)

// ReportsConfig says where published reports are read from.
type ReportsConfig struct {
	// Type is dir, http or azblob. Empty means inferred from Location.
	Type     string         `yaml:"type,omitempty"`
	Location string         `yaml:"location,omitempty"`
	Options  map[string]any `yaml:"options,omitempty"`
	// Concurrency bounds parallel score file downloads.
	Concurrency int `yaml:"concurrency,omitempty"`
	// Timeout is the per-request HTTP timeout in seconds.
	Timeout int `yaml:"timeout,omitempty"`
}

// ServerConfig holds viewer server settings.
type ServerConfig struct {
	Port        int      `yaml:"port,omitempty"`
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
	NoBrowser   *bool    `yaml:"no_browser,omitempty"`
}

// ExportConfig holds static export settings.
type ExportConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .cotboard.yaml.
type ProjectConfig struct {
	Reports ReportsConfig `yaml:"reports,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
	Export  ExportConfig  `yaml:"export,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Reports: ReportsConfig{
			Location:    DefaultReportsLocation,
			Concurrency: DefaultReportsConcurrency,
			Timeout:     DefaultReportsTimeout,
		},
		Server: ServerConfig{
			Port:      DefaultServerPort,
			NoBrowser: boolPtr(false),
		},
		Export: ExportConfig{
			Dir: DefaultExportDir,
		},
	}
}

// Load finds .cotboard.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, path, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}
	return merged(cfg, data, path)
}

// LoadFile reads an explicit configuration file. Unlike Load, a missing file is an error.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return merged(New(), data, path)
}

// merged overlays the file at path onto cfg. Relative directories in the file
// are resolved against the file's directory.
func merged(cfg *ProjectConfig, data []byte, path string) (*ProjectConfig, error) {
	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	fileCfg.Reports.Location = utils.ResolveLocation(fileCfg.Reports.Location, dir)
	fileCfg.Export.Dir = utils.ResolveLocation(fileCfg.Export.Dir, dir)
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .cotboard.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, "", os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Reports
	if src.Reports.Type != "" {
		dst.Reports.Type = src.Reports.Type
	}
	if src.Reports.Location != "" {
		dst.Reports.Location = src.Reports.Location
	}
	if src.Reports.Options != nil {
		dst.Reports.Options = src.Reports.Options
	}
	if src.Reports.Concurrency != 0 {
		dst.Reports.Concurrency = src.Reports.Concurrency
	}
	if src.Reports.Timeout != 0 {
		dst.Reports.Timeout = src.Reports.Timeout
	}

	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.CORSOrigins != nil {
		dst.Server.CORSOrigins = src.Server.CORSOrigins
	}
	if src.Server.NoBrowser != nil {
		dst.Server.NoBrowser = src.Server.NoBrowser
	}

	// Export
	if src.Export.Dir != "" {
		dst.Export.Dir = src.Export.Dir
	}
}

// SourceSpec converts the reports settings into a source.Spec. The timeout is
// passed to HTTP sources unless their options already set one.
func (r ReportsConfig) SourceSpec() source.Spec {
	spec := source.Spec{
		Kind:     source.Kind(r.Type),
		Location: r.Location,
		Options:  maps.Clone(r.Options),
	}
	kind := spec.Kind
	if kind == "" {
		kind = source.InferKind(r.Location)
	}
	if kind == source.KindHTTP && r.Timeout > 0 {
		if spec.Options == nil {
			spec.Options = map[string]any{}
		}
		if _, ok := spec.Options["timeout"]; !ok {
			spec.Options["timeout"] = (time.Duration(r.Timeout) * time.Second).String()
		}
	}
	return spec
}

func boolPtr(b bool) *bool {
	return &b
}
