package config

import (
	"os"
	"path/filepath"
	"testing"

	"rbg/common"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}

	if cfg.Document.Render.DPI != 96 {
		t.Errorf("Default DPI = %g, want 96", cfg.Document.Render.DPI)
	}

	if cfg.Document.Images.Fit != common.ImageFitKeepAR {
		t.Errorf("Default image fit = %d, want keepAR", cfg.Document.Images.Fit)
	}

	if cfg.Document.Xlsx.SheetName != "Report" {
		t.Errorf("Default sheet name = %q, want Report", cfg.Document.Xlsx.SheetName)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
document:
  output_name_template: "{{ .Date }}-report"
  file_name_slug: true
  render:
    dpi: 300
    font_size: 12
    line_height: 1.4
  images:
    use_broken: true
    fit: 2
  xlsx:
    sheet_name: Data
logging:
  console:
    level: normal
  file:
    level: debug
    destination: /tmp/test.log
    mode: append
reporting:
  destination: /tmp/test-report.zip
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Document.Render.DPI != 300 {
		t.Errorf("DPI = %g, want 300", cfg.Document.Render.DPI)
	}

	if !cfg.Document.FileNameSlug {
		t.Error("Expected FileNameSlug to be true")
	}

	if cfg.Document.Images.Fit != common.ImageFitStretch {
		t.Errorf("Image fit = %d, want stretch", cfg.Document.Images.Fit)
	}

	if cfg.Document.Xlsx.SheetName != "Data" {
		t.Errorf("SheetName = %q, want Data", cfg.Document.Xlsx.SheetName)
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unknown.yaml")

	configWithUnknown := `version: 1
unknown_field: value
document:
  file_name_slug: true
`

	if err := os.WriteFile(configPath, []byte(configWithUnknown), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfiguration(configPath); err == nil {
		t.Error("Expected error for unknown fields")
	}
}

func TestLoadConfiguration_ValidationError(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_values.yaml")

	// DPI far below the validated minimum
	configContent := `version: 1
document:
  render:
    dpi: 1
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := LoadConfiguration(configPath); err == nil {
		t.Error("Expected validation error for out-of-range dpi")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Prepare() returned empty configuration")
	}
}

func TestDumpRoundTrip(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatal(err)
	}
	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	cfg2, err := unmarshalConfig(data, &Config{}, true)
	if err != nil {
		t.Fatalf("unable to reload dumped config: %v", err)
	}
	if cfg2.Document.Render.DPI != cfg.Document.Render.DPI {
		t.Errorf("round trip DPI = %g, want %g", cfg2.Document.Render.DPI, cfg.Document.Render.DPI)
	}
}
