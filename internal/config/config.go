package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "wellmech/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Well      WellConfig      `yaml:"well"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Sources   []SourceConfig  `yaml:"sources" ignored:"true" validate:"dive"`
	Output    OutputConfig    `yaml:"output"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" split_words:"true" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" split_words:"true" validate:"eq=json"`
	Output   string `yaml:"output" split_words:"true" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" split_words:"true" validate:"required_unless=Output console"`
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	Tracing       bool    `yaml:"tracing" split_words:"true"`
	Metrics       bool    `yaml:"metrics" split_words:"true"`
	TraceExporter string  `yaml:"trace_exporter" split_words:"true" validate:"oneof=stdout none"`
	Environment   string  `yaml:"environment" split_words:"true"`
	SampleRatio   float64 `yaml:"sample_ratio" split_words:"true" validate:"gte=0,lte=1"`
	// MetricsFile, when set, receives a node-exporter textfile after each run
	MetricsFile string `yaml:"metrics_file" split_words:"true"`
}

// WellConfig holds the per-well constants. Template points at an input
// workbook that carries bit area, mud weight and a logs sheet; values set
// here take precedence over the workbook.
type WellConfig struct {
	Name      string  `yaml:"name" split_words:"true"`
	MudWeight float64 `yaml:"mud_weight" split_words:"true" validate:"gte=0"`
	BitArea   float64 `yaml:"bit_area" split_words:"true" validate:"gte=0"`
	Template  string  `yaml:"template" split_words:"true"`
}

// PipelineConfig selects methods and thresholds for the property pipeline
type PipelineConfig struct {
	KickOffThreshold   float64      `yaml:"kick_off_threshold" split_words:"true" validate:"gte=0,lte=180"`
	GammaRayCutoff     float64      `yaml:"gamma_ray_cutoff" split_words:"true" validate:"gte=0"`
	PumpEfficiency     float64      `yaml:"pump_efficiency" split_words:"true" validate:"gt=0,lte=1"`
	UCSMethod          string       `yaml:"ucs_method" split_words:"true" validate:"required"`
	PorosityMethod     int          `yaml:"porosity_method" split_words:"true"`
	PermeabilityMethod int          `yaml:"permeability_method" split_words:"true"`
	Curves             CurvesConfig `yaml:"curves"`
}

// CurvesConfig names the merged curves the pipeline reads
type CurvesConfig struct {
	Depth        string `yaml:"depth" split_words:"true" validate:"required"`
	Inclination  string `yaml:"inclination" split_words:"true"`
	WOB          string `yaml:"wob" split_words:"true" validate:"required"`
	RPM          string `yaml:"rpm" split_words:"true" validate:"required"`
	Torque       string `yaml:"torque" split_words:"true" validate:"required"`
	ROP          string `yaml:"rop" split_words:"true" validate:"required"`
	DiffPressure string `yaml:"diff_pressure" split_words:"true" validate:"required"`
	GammaRay     string `yaml:"gamma_ray" split_words:"true" validate:"required"`
}

// SourceConfig describes one input file and which of its columns become curves
type SourceConfig struct {
	Name   string `yaml:"name" validate:"required"`
	Path   string `yaml:"path" validate:"required"`
	Format string `yaml:"format" validate:"omitempty,oneof=las csv xlsx"`
	// Sheet is the worksheet read for xlsx sources
	Sheet           string         `yaml:"sheet"`
	HeaderRows      int            `yaml:"header_rows" validate:"gte=0"`
	DetectHeader    bool           `yaml:"detect_header"`
	KeepNonPositive bool           `yaml:"keep_non_positive"`
	Curves          []ColumnConfig `yaml:"curves" validate:"required,min=1,dive"`
}

// ColumnConfig maps a zero-based column to a named curve
type ColumnConfig struct {
	Curve  string `yaml:"curve" validate:"required"`
	Column int    `yaml:"column" validate:"gte=0"`
	Unit   string `yaml:"unit"`
}

// OutputConfig controls where the merged and derived curves are written
type OutputConfig struct {
	Path    string `yaml:"path" split_words:"true"`
	Format  string `yaml:"format" split_words:"true" validate:"omitempty,oneof=csv xlsx"`
	Sheet   string `yaml:"sheet" split_words:"true"`
	Summary bool   `yaml:"summary" split_words:"true"`
}

// Load builds the configuration from defaults, the YAML file at path (if
// any) and WELLMECH_* environment variables, in that order, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg.resolvePaths(filepath.Dir(path))
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigurationError("config", "env", err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrTypeConfiguration, "cannot read config file", err).
			WithContext("path", filePath)
	}

	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return apperrors.NewAppError(apperrors.ErrTypeConfiguration, "invalid config file", err).
			WithContext("path", filePath)
	}

	return nil
}

// resolvePaths makes relative file paths relative to the config file
func (c *Config) resolvePaths(base string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	for i := range c.Sources {
		c.Sources[i].Path = resolve(c.Sources[i].Path)
	}
	c.Well.Template = resolve(c.Well.Template)
	c.Output.Path = resolve(c.Output.Path)
	c.Telemetry.MetricsFile = resolve(c.Telemetry.MetricsFile)
}

// Validate checks struct tags and the cross-field rules tags cannot express
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return apperrors.NewConfigurationError("config", "struct", err.Error())
		}
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, formatValidationError(fe))
		}
		return apperrors.NewConfigurationError("config", fieldErrs[0].Namespace(), strings.Join(msgs, "; "))
	}

	if c.Well.Template == "" {
		if !(c.Well.MudWeight > 0) {
			return apperrors.NewConfigurationError("config", "well.mud_weight", "must be positive when no template is given")
		}
		if !(c.Well.BitArea > 0) {
			return apperrors.NewConfigurationError("config", "well.bit_area", "must be positive when no template is given")
		}
		if len(c.Sources) == 0 {
			return apperrors.NewConfigurationError("config", "sources", "at least one source is required when no template is given")
		}
	}

	seen := make(map[string]bool, len(c.Sources))
	for _, s := range c.Sources {
		if seen[s.Name] {
			return apperrors.NewConfigurationError("config", "sources", fmt.Sprintf("duplicate source name %q", s.Name))
		}
		seen[s.Name] = true
	}

	return nil
}

var validate = validator.New()

func formatValidationError(err validator.FieldError) string {
	field := err.Namespace()
	param := err.Param()

	switch err.Tag() {
	case "required", "required_unless":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "eq":
		return fmt.Sprintf("%s must be %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Telemetry: TelemetryConfig{
			Tracing:       false,
			Metrics:       true,
			TraceExporter: "none",
			SampleRatio:   1.0,
		},
		Pipeline: PipelineConfig{
			KickOffThreshold:   DefaultKickOffThreshold,
			GammaRayCutoff:     DefaultGammaRayCutoff,
			PumpEfficiency:     DefaultPumpEfficiency,
			UCSMethod:          DefaultUCSMethod,
			PorosityMethod:     DefaultPorosityMethod,
			PermeabilityMethod: DefaultPermeabilityMethod,
			Curves: CurvesConfig{
				Depth:        "TVD",
				WOB:          "WOB",
				RPM:          "RPM",
				Torque:       "TOR",
				ROP:          "ROP",
				DiffPressure: "DIFP",
				GammaRay:     "GR",
			},
		},
		Output: OutputConfig{
			Sheet:   DefaultOutputSheet,
			Summary: true,
		},
	}
}
