package config

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestReport_ArchivesStoredEntries(t *testing.T) {
	tmpDir := t.TempDir()

	src := filepath.Join(tmpDir, "template.json")
	if err := os.WriteFile(src, []byte(`{"version":1}`), 0644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}

	conf := &ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}

	r.Store("input/template.json", src)
	r.StoreData("dump/tree.txt", []byte("template tree"))
	name := r.Name()

	if err := r.Close(); err != nil {
		t.Fatalf("Report.Close() error: %v", err)
	}

	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("unable to open report archive: %v", err)
	}
	defer zr.Close()

	found := make(map[string]bool)
	for _, f := range zr.File {
		found[f.Name] = true
	}
	if !found["input/template.json"] || !found["dump/tree.txt"] {
		t.Errorf("archive entries = %v, want stored entries present", found)
	}
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReportStore_NilReceiverIsSafe(t *testing.T) {
	var r *Report
	r.Store("name", "/tmp/whatever")
	r.StoreData("name", []byte("data"))
}
