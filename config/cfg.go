package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"rbg/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	RenderConfig struct {
		DPI        float64 `yaml:"dpi" validate:"gte=36,lte=1200"`
		FontPath   string  `yaml:"font_path,omitempty" sanitize:"path_clean" validate:"omitempty,filepath"`
		FontSize   float64 `yaml:"font_size" validate:"gt=0"`
		LineHeight float64 `yaml:"line_height" validate:"gt=0"`
	}

	ImagesConfig struct {
		UseBroken bool            `yaml:"use_broken"`
		Fit       common.ImageFit `yaml:"fit" validate:"gte=0,lte=2"`
	}

	XlsxConfig struct {
		SheetName     string `yaml:"sheet_name" validate:"required"`
		IncludeHidden bool   `yaml:"include_hidden"`
	}

	DocumentConfig struct {
		OutputNameTemplate string       `yaml:"output_name_template"`
		FileNameSlug       bool         `yaml:"file_name_slug"`
		Render             RenderConfig `yaml:"render"`
		Images             ImagesConfig `yaml:"images"`
		Xlsx               XlsxConfig   `yaml:"xlsx"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of the expanded configuration template to
// provide sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
