package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLevelFloor(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
		ok    bool
	}{
		{level: "normal", want: zapcore.InfoLevel, ok: true},
		{level: "debug", want: zapcore.DebugLevel, ok: true},
		{level: "none", ok: false},
		{level: "", ok: false},
	}
	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			got, ok := levelFloor(tt.level)
			if ok != tt.ok {
				t.Fatalf("levelFloor(%q) ok = %v, want %v", tt.level, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Fatalf("levelFloor(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestLoggingPrepare_FileLogger(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "run.log")
	conf := &LoggingConfig{
		FileLogger:    LoggerConfig{Level: "normal", Destination: dest, Mode: "overwrite"},
		ConsoleLogger: LoggerConfig{Level: "none"},
	}

	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	log.Info("render finished")
	log.Debug("placement detail")
	log.Sync()

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("unable to read log file: %v", err)
	}
	if !strings.Contains(string(data), "render finished") {
		t.Errorf("log file missing info entry:\n%s", data)
	}
	if strings.Contains(string(data), "placement detail") {
		t.Errorf("normal level must not record debug entries:\n%s", data)
	}
}

func TestLoggingPrepare_DebugReportForcesFileLog(t *testing.T) {
	tmpDir := t.TempDir()
	conf := &LoggingConfig{
		FileLogger:    LoggerConfig{Level: "none", Destination: filepath.Join(tmpDir, "run.log")},
		ConsoleLogger: LoggerConfig{Level: "none"},
	}
	rconf := &ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	rpt, err := rconf.Prepare()
	if err != nil {
		t.Fatalf("reporter Prepare() error: %v", err)
	}

	log, err := conf.Prepare(rpt)
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	log.Debug("placement detail")
	log.Sync()

	data, err := os.ReadFile(filepath.Join(tmpDir, "run.log"))
	if err != nil {
		t.Fatalf("unable to read log file: %v", err)
	}
	if !strings.Contains(string(data), "placement detail") {
		t.Errorf("debug report must force debug level file logging:\n%s", data)
	}
}
